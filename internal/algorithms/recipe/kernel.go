package recipe

import "math"

// Kernel is a square convolution kernel in row-major order.
type Kernel struct {
	Size   int
	Values []float32
}

func (k Kernel) At(row, col int) float32 {
	return k.Values[row*k.Size+col]
}

// GaborKernel builds a real Gabor kernel with the same sampling and
// orientation conventions as OpenCV's getGaborKernel. A size of n produces
// a (2*(n/2)+1) square kernel, so even sizes round up to the next odd one.
func GaborKernel(size int, sigma, theta, lambda, gamma, psi float64) Kernel {
	half := size / 2
	if half < 0 {
		half = 0
	}
	n := 2*half + 1

	sigmaX := sigma
	sigmaY := sigma / gamma
	c, s := math.Cos(theta), math.Sin(theta)
	ex := -0.5 / (sigmaX * sigmaX)
	ey := -0.5 / (sigmaY * sigmaY)
	cscale := 2 * math.Pi / lambda

	k := Kernel{Size: n, Values: make([]float32, n*n)}
	for y := -half; y <= half; y++ {
		for x := -half; x <= half; x++ {
			xr := float64(x)*c + float64(y)*s
			yr := -float64(x)*s + float64(y)*c
			v := math.Exp(ex*xr*xr+ey*yr*yr) * math.Cos(cscale*xr+psi)
			k.Values[(half-y)*n+(half-x)] = float32(v)
		}
	}
	return k
}

// Kernel returns the Gabor kernel configured by p.
func (p Params) Kernel() Kernel {
	return GaborKernel(p.GaborSize, p.GaborSigma, p.GaborTheta, p.GaborLambda, p.GaborGamma, p.GaborPsi)
}
