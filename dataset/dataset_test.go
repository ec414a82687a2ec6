package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSineDataShape(t *testing.T) {
	X, y, err := SineData(20, 0.15, 42)
	require.NoError(t, err)

	rows, cols := X.Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 1, cols)

	rows, cols = y.Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 1, cols)
}

func TestSineDataSortedInputs(t *testing.T) {
	X, _, err := SineData(50, 0.1, 7)
	require.NoError(t, err)

	for i := 1; i < 50; i++ {
		assert.LessOrEqual(t, X.At(i-1, 0), X.At(i, 0), "inputs must be sorted ascending")
	}

	for i := 0; i < 50; i++ {
		x := X.At(i, 0)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 1.0)
	}
}

func TestSineDataZeroNoiseMatchesTarget(t *testing.T) {
	X, y, err := SineData(30, 0, 123)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		assert.InDelta(t, TrueSine(X.At(i, 0)), y.At(i, 0), 1e-12)
	}
}

func TestSineDataDeterministic(t *testing.T) {
	X1, y1, err := SineData(20, 0.15, 42)
	require.NoError(t, err)
	X2, y2, err := SineData(20, 0.15, 42)
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2), "same seed must reproduce inputs")
	assert.True(t, mat.Equal(y1, y2), "same seed must reproduce targets")

	X3, _, err := SineData(20, 0.15, 43)
	require.NoError(t, err)
	assert.False(t, mat.Equal(X1, X3), "different seeds must differ")
}

func TestSineDataSeedPinsInputsAcrossNoiseLevels(t *testing.T) {
	X1, _, err := SineData(20, 0.0, 42)
	require.NoError(t, err)
	X2, _, err := SineData(20, 0.5, 42)
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2), "noise level must not move the x positions")
}

func TestSineDataValidation(t *testing.T) {
	_, _, err := SineData(0, 0.1, 1)
	assert.Error(t, err)

	_, _, err = SineData(-5, 0.1, 1)
	assert.Error(t, err)

	_, _, err = SineData(10, -0.1, 1)
	assert.Error(t, err)
}

func TestTrueSine(t *testing.T) {
	assert.InDelta(t, 0.0, TrueSine(0), 1e-12)
	// x = 1: sin(1.8π) = -sin(0.8π)
	assert.InDelta(t, -math.Sin(0.8*math.Pi), TrueSine(1), 1e-12)
}

func TestBlobs(t *testing.T) {
	centers := [][]float64{{-2, 0}, {2, 0}}
	X, y, err := Blobs(200, centers, 0.5, 42)
	require.NoError(t, err)

	rows, cols := X.Dims()
	assert.Equal(t, 400, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 400, y.Len())

	// rows are laid out center by center: first block 0, second block 1
	for i := 0; i < 200; i++ {
		assert.Equal(t, 0.0, y.AtVec(i))
	}
	for i := 200; i < 400; i++ {
		assert.Equal(t, 1.0, y.AtVec(i))
	}

	// each blob's mean should sit near its center
	for label, center := range centers {
		var sumX, sumY float64
		for i := label * 200; i < (label+1)*200; i++ {
			sumX += X.At(i, 0)
			sumY += X.At(i, 1)
		}
		assert.InDelta(t, center[0], sumX/200, 0.2)
		assert.InDelta(t, center[1], sumY/200, 0.2)
	}
}

func TestBlobsDeterministic(t *testing.T) {
	centers := [][]float64{{0, 0}, {3, 3}}

	X1, y1, err := Blobs(50, centers, 0.3, 9)
	require.NoError(t, err)
	X2, y2, err := Blobs(50, centers, 0.3, 9)
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2))
	assert.True(t, mat.Equal(y1, y2))
}

func TestBlobsValidation(t *testing.T) {
	_, _, err := Blobs(0, [][]float64{{0}}, 1, 1)
	assert.Error(t, err)

	_, _, err = Blobs(10, nil, 1, 1)
	assert.Error(t, err)

	_, _, err = Blobs(10, [][]float64{{0, 0}, {1}}, 1, 1)
	assert.Error(t, err, "ragged centers must be rejected")

	_, _, err = Blobs(10, [][]float64{{0}}, 0, 1)
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	g := Grid(0, 1, 5)
	require.Len(t, g, 5)
	assert.InDelta(t, 0.0, g[0], 1e-12)
	assert.InDelta(t, 0.25, g[1], 1e-12)
	assert.InDelta(t, 1.0, g[4], 1e-12)

	m := GridMatrix(0, 1, 5)
	rows, cols := m.Dims()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, g[2], m.At(2, 0))
}
