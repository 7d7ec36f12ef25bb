package recipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Valid(t *testing.T) {
	p := Defaults()
	require.NoError(t, p.Validate())
	assert.Equal(t, 11, p.BlurKernel)
	assert.Equal(t, 10, p.GaborSize)
	assert.InDelta(t, math.Pi/2, p.GaborTheta, 1e-12)
	assert.Equal(t, 5, p.DilateKernel)
	assert.False(t, p.AdaptiveThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"even blur", func(p *Params) { p.BlurKernel = 10 }},
		{"zero clip", func(p *Params) { p.ClaheClip = 0 }},
		{"zero tiles", func(p *Params) { p.ClaheTiles = 0 }},
		{"zero diameter", func(p *Params) { p.BilateralDiameter = 0 }},
		{"negative sigma color", func(p *Params) { p.BilateralSigmaColor = -1 }},
		{"even threshold block", func(p *Params) { p.AdaptiveThreshold = true; p.ThresholdBlock = 20 }},
		{"zero gabor sigma", func(p *Params) { p.GaborSigma = 0 }},
		{"zero lambda", func(p *Params) { p.GaborLambda = 0 }},
		{"zero gamma", func(p *Params) { p.GaborGamma = 0 }},
		{"negative erode iter", func(p *Params) { p.ErodeIter = -1 }},
		{"zero dilate kernel", func(p *Params) { p.DilateKernel = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestValidate_SkippedStagesIgnoreKernels(t *testing.T) {
	p := Defaults()
	p.DilateIter = 0
	p.DilateKernel = 0
	p.ThresholdBlock = 4
	assert.NoError(t, p.Validate())
}

func TestFromMap_RoundTrip(t *testing.T) {
	want := Defaults()
	want.BlurKernel = 7
	want.GaborTheta = math.Pi / 4

	got, err := FromMap(want.ToMap())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFromMap_NumericCoercion(t *testing.T) {
	got, err := FromMap(map[string]interface{}{
		"blur_kernel": float64(7),
		"gabor_sigma": 6,
		"clahe_clip":  float32(3),
		"dilate_iter": int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.BlurKernel)
	assert.InDelta(t, 6.0, got.GaborSigma, 1e-12)
	assert.InDelta(t, 3.0, got.ClaheClip, 1e-6)
	assert.Equal(t, 2, got.DilateIter)
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]interface{}
	}{
		{"unknown key", map[string]interface{}{"threshold": 3}},
		{"fractional int", map[string]interface{}{"blur_kernel": 7.5}},
		{"string value", map[string]interface{}{"gabor_sigma": "big"}},
		{"bool type", map[string]interface{}{"adaptive_threshold": 1}},
		{"invalid result", map[string]interface{}{"blur_kernel": 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.in)
			assert.Error(t, err)
		})
	}
}
