package puzzle

/*

Puzzle Geometry

There is exactly one geometry in this module: the standard 9x9
Sudoku square with nine non-overlapping 3x3 boxes.  The grid,
the generator, and the validity predicate all share the
constants and the box arithmetic defined here.

*/

// Geometry constants for the standard puzzle.
const (
	SideLength = 9                       // cells per row, column, and box
	BoxSize    = 3                       // side length of one box
	CellCount  = SideLength * SideLength // total cells in the grid
)

// boxOrigin returns the top-left coordinates of the box
// containing the given cell.
func boxOrigin(row, col int) (int, int) {
	return row - row%BoxSize, col - col%BoxSize
}

// inBounds reports whether the given coordinates designate a
// cell of the grid.
func inBounds(row, col int) bool {
	return row >= 0 && row < SideLength && col >= 0 && col < SideLength
}

// validValue reports whether v is an allowed cell content: 0
// (empty) or a digit 1 through the side length.
func validValue(v int) bool {
	return v >= 0 && v <= SideLength
}
