// Package puzzle generates and validates standard 9x9 Sudoku
// puzzles.
//
// In this package, puzzles are made of cells which are either
// empty (represented with a 0 value) or have an assigned value
// between 1 and 9.  Cells are designated by 0-based (row, col)
// coordinates, row 0 at the top, col 0 on the left.
//
// A fully solved grid has every row, every column, and every one
// of the nine non-overlapping 3x3 boxes containing each of 1-9
// exactly once.  Generation works in three stages: the three
// boxes on the main diagonal are seeded with independent random
// permutations (they can never conflict with one another), the
// remaining cells are completed by backtracking search, and a
// difficulty-dependent number of cells is then blanked again to
// produce the playable puzzle.
//
// The package enforces no play rules after generation: the grid
// is handed to callers as plain cell values, and the exported
// validity predicate lets them detect conflicts introduced by
// later edits.
package puzzle

/*

Grid representation

*/

// A Grid is the 9x9 cell matrix.  The zero value is the empty
// grid, ready for use.  A Grid owns no state beyond its cells;
// accessors do no validity policing, which is deliberate:
// conflict detection belongs to IsValid, and callers that edit
// cells after generation are expected to use it.
type Grid [SideLength][SideLength]int

// Get returns the value of the cell at (row, col).
func (g *Grid) Get(row, col int) int {
	return g[row][col]
}

// Set assigns a value to the cell at (row, col).  The value is
// not checked against the placement rule.
func (g *Grid) Set(row, col, value int) {
	g[row][col] = value
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	*g = Grid{}
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() (count int) {
	for row := range g {
		for col := range g[row] {
			if g[row][col] != 0 {
				count++
			}
		}
	}
	return
}

// Values returns the cell values in row-major order.  The
// returned slice does not share storage with the grid.
func (g *Grid) Values() []int {
	vs := make([]int, 0, CellCount)
	for row := range g {
		vs = append(vs, g[row][:]...)
	}
	return vs
}

// SetValues assigns all cells from row-major values.  It returns
// an Error if the slice is not exactly one value per cell or any
// value is outside [0, 9].
func (g *Grid) SetValues(values []int) error {
	if len(values) != CellCount {
		return Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: ValueAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{len(values), "Wrong number of cell values"},
		}
	}
	for i, v := range values {
		if !validValue(v) {
			return Error{
				Scope:     GridScope,
				Structure: AttributeValueStructure,
				Attribute: ValueAttribute,
				Condition: TooLargeCondition,
				Values:    ErrorData{i, v, SideLength},
			}
		}
	}
	for row := range g {
		copy(g[row][:], values[row*SideLength:(row+1)*SideLength])
	}
	return nil
}

/*

Placement validity

*/

// IsValid reports whether value may be placed at (row, col)
// without conflicting: true iff the value does not already occur
// elsewhere in the cell's row, column, or containing 3x3 box.
// The candidate cell itself is excluded from the scan, so the
// predicate gives the same answer whether the cell currently
// holds the value or not.  The grid is never modified.
//
// This is the single constraint check shared by the generator's
// backtracking search and by clients that highlight conflicts
// after user edits.
func IsValid(g *Grid, row, col, value int) bool {
	for c := 0; c < SideLength; c++ {
		if c != col && g[row][c] == value {
			return false
		}
	}
	for r := 0; r < SideLength; r++ {
		if r != row && g[r][col] == value {
			return false
		}
	}
	boxRow, boxCol := boxOrigin(row, col)
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			if (r != row || c != col) && g[r][c] == value {
				return false
			}
		}
	}
	return true
}
