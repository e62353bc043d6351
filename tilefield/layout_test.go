package tilefield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSize(t *testing.T) {
	for n := 1; n <= 50; n++ {
		cols, rows := GridSize(n)
		assert.Equal(t, int(math.Ceil(math.Sqrt(float64(n)))), cols, "n=%d", n)
		assert.GreaterOrEqual(t, cols*rows, n, "n=%d", n)
		assert.Less(t, cols*(rows-1), n, "n=%d has an empty row", n)
	}

	cols, rows := GridSize(0)
	assert.Zero(t, cols)
	assert.Zero(t, rows)
}

func TestDistributeStaysInBounds(t *testing.T) {
	const spanX, spanY, depth = 18.0, 12.0, 6.0
	for n := 1; n <= 40; n++ {
		for i := 0; i < n; i++ {
			for _, r := range []float64{0, 0.5, 0.999} {
				p := Distribute(i, n, spanX, spanY, depth, r)
				assert.LessOrEqual(t, math.Abs(p.X), spanX/2, "n=%d i=%d", n, i)
				assert.LessOrEqual(t, math.Abs(p.Y), spanY/2, "n=%d i=%d", n, i)
				assert.LessOrEqual(t, math.Abs(p.Z), depth/2, "n=%d i=%d", n, i)
			}
		}
	}
}

func TestDistributeFiveTiles(t *testing.T) {
	cols, rows := GridSize(5)
	require.Equal(t, 3, cols)
	require.Equal(t, 2, rows)

	col, row := GridCell(2, 5)
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, row)

	p := Distribute(2, 5, 12, 8, 6, 0.5)
	assert.InDelta(t, 6.0, p.X, 1e-9)
	assert.InDelta(t, -4.0, p.Y, 1e-9)
	assert.InDelta(t, 0.0, p.Z, 1e-9)
	assert.Greater(t, p.X, 12.0/6, "tile 2 should sit in the rightmost third")
}

func TestDistributeSingleTile(t *testing.T) {
	p := Distribute(0, 1, 18, 12, 6, 0.5)
	assert.InDelta(t, -9.0, p.X, 1e-9)
	assert.InDelta(t, -6.0, p.Y, 1e-9)
}
