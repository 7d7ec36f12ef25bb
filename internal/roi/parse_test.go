package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	s, err := ParseSize("500x400")
	require.NoError(t, err)
	assert.Equal(t, Size{W: 500, H: 400}, s)

	s, err = ParseSize(" 640X480 ")
	require.NoError(t, err)
	assert.Equal(t, Size{W: 640, H: 480}, s)

	for _, bad := range []string{"", "500", "ax5", "5xb", "0x10", "10x-1", "infx10", "10xnan"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDrag(t *testing.T) {
	start, end, err := ParseDrag("100,400:300, 200")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 100, Y: 400}, start)
	assert.Equal(t, Point{X: 300, Y: 200}, end)

	for _, bad := range []string{"", "1,2", "1,2:3", "a,2:3,4", "1,2:3,b", "10,10:nan,5", "inf,1:2,3", "1,2:3,-inf"} {
		_, _, err := ParseDrag(bad)
		assert.Error(t, err, bad)
	}
}
