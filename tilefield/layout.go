package tilefield

import "math"

// GridSize returns the pseudo-grid used to spread total tiles: the column
// count is ceil(sqrt(total)) and rows cover the remainder.
func GridSize(total int) (cols, rows int) {
	if total <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(total))))
	rows = (total + cols - 1) / cols
	return cols, rows
}

// GridCell returns the (column, row) cell of tile index.
func GridCell(index, total int) (col, row int) {
	cols, _ := GridSize(total)
	if cols == 0 {
		return 0, 0
	}
	return index % cols, index / cols
}

// Distribute places tile index of total inside a spanX x spanY rectangle
// centred on the origin. depthRand is a uniform sample in [0,1) that picks
// Z inside a slab of the given depth.
func Distribute(index, total int, spanX, spanY, depth, depthRand float64) Vec3 {
	cols, rows := GridSize(total)
	col, row := GridCell(index, total)

	x := (float64(col)/float64(max(cols-1, 1)) - 0.5) * spanX
	y := (float64(row)/float64(max(rows-1, 1)) - 0.5) * spanY
	z := (depthRand - 0.5) * depth
	return Vec3{X: x, Y: y, Z: z}
}
