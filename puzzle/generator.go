package puzzle

/*

Puzzle generation

Generation runs three stages over one grid:

1. Seed the three boxes on the main diagonal with independent
random permutations of 1-9.  These boxes share no row, column,
or box with one another, so no constraint check is needed and
the seed is always consistent.

2. Complete the remaining cells with a recursive depth-first
search in reading order, trying candidates 1-9 ascending and
undoing each placement whose subtree fails.  A consistent
diagonal seed always admits a completion, so the search is
guaranteed to succeed in normal operation; the failure path
exists only to drive backtracking (and to surface contract
violations when a caller hands the search an inconsistent grid).

3. Blank a difficulty-dependent number of cells, chosen
uniformly at random without replacement.  Removal is plain
random blanking: the resulting puzzle may admit more than one
solution, which is deliberate.

*/

import (
	"math/rand"
	"time"
)

// DefaultBlankCounts maps each difficulty level to the number of
// cells blanked after a full solution is found.  Level 0 is the
// easiest.  The mapping is configuration, not derived; engines
// accept a replacement table at construction.
var DefaultBlankCounts = map[int]int{
	0: 35,
	1: 43,
	2: 55,
	3: 60,
}

// An Engine owns a Grid and generates puzzles into it.  Engines
// are not safe for concurrent use: a single caller drives the
// grid at a time.
type Engine struct {
	grid   Grid
	blanks map[int]int
	rnd    *rand.Rand
}

// NewEngine returns an engine with the default difficulty table.
// The random source may be nil, in which case a time-seeded
// source is used; tests inject a fixed-seed source to make
// generation reproducible.
func NewEngine(rnd *rand.Rand) *Engine {
	return NewEngineWithBlankCounts(rnd, DefaultBlankCounts)
}

// NewEngineWithBlankCounts returns an engine with a custom
// difficulty table.  The table is copied, so later changes by
// the caller don't affect the engine.
func NewEngineWithBlankCounts(rnd *rand.Rand, blanks map[int]int) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bs := make(map[int]int, len(blanks))
	for level, count := range blanks {
		bs[level] = count
	}
	return &Engine{blanks: bs, rnd: rnd}
}

// Grid returns the engine's grid.  The caller may read and edit
// cells directly; the engine does not track edits.
func (e *Engine) Grid() *Grid {
	return &e.grid
}

// Get returns the value of the cell at (row, col).
func (e *Engine) Get(row, col int) int {
	return e.grid.Get(row, col)
}

// Set assigns a value to the cell at (row, col), with no
// validity enforcement.
func (e *Engine) Set(row, col, value int) {
	e.grid.Set(row, col, value)
}

// Clear resets the grid to all-empty.
func (e *Engine) Clear() {
	e.grid.Clear()
}

// Levels returns the configured difficulty levels in no
// particular order.
func (e *Engine) Levels() []int {
	levels := make([]int, 0, len(e.blanks))
	for level := range e.blanks {
		levels = append(levels, level)
	}
	return levels
}

// BlankCount returns the number of cells blanked for a level and
// whether the level is configured.
func (e *Engine) BlankCount(level int) (int, bool) {
	count, ok := e.blanks[level]
	return count, ok
}

// Generate clears the grid and produces a playable puzzle for
// the given difficulty level.  An unconfigured level is an
// argument Error and leaves the grid untouched.  A root-level
// search failure cannot occur on a freshly seeded grid; if it
// happens anyway it is reported as an internal Error and the
// grid contents are undefined.
func (e *Engine) Generate(level int) error {
	count, ok := e.blanks[level]
	if !ok {
		return Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: LevelAttribute,
			Condition: UnknownLevelCondition,
			Values:    ErrorData{level},
		}
	}
	e.grid.Clear()
	e.seedDiagonal()
	if !fill(&e.grid, 0, 0) {
		return Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: NoCompletionCondition,
			Values:    ErrorData{"Generate"},
		}
	}
	e.removeCells(count)
	return nil
}

// Solve completes all empty cells of the engine's grid in place,
// provided the currently placed cells are consistent.  It returns
// false, leaving the grid in an undefined partially-filled
// state, when no completion exists.  Generate is the normal
// entry point; Solve is exposed for callers that pre-seed the
// grid themselves.
func (e *Engine) Solve() bool {
	return fill(&e.grid, 0, 0)
}

// seedDiagonal fills the three diagonal boxes, each with an
// independent uniform permutation of 1-9.
func (e *Engine) seedDiagonal() {
	for box := 0; box < SideLength; box += BoxSize {
		perm := e.rnd.Perm(SideLength)
		i := 0
		for row := box; row < box+BoxSize; row++ {
			for col := box; col < box+BoxSize; col++ {
				e.grid[row][col] = perm[i] + 1
				i++
			}
		}
	}
}

// fill is the backtracking search.  It visits cells in reading
// order starting at (row, col): already-filled cells are skipped
// without consuming a search branch; empty cells try candidates
// 1-9 ascending, recursing after each valid placement and
// clearing the cell when the subtree fails.  The first complete
// assignment wins.  Returns false only when every candidate at
// some cell conflicts, which propagates the failure to the
// caller's loop.
func fill(g *Grid, row, col int) bool {
	if col == SideLength {
		row, col = row+1, 0
	}
	if row == SideLength {
		return true
	}
	if g[row][col] != 0 {
		return fill(g, row, col+1)
	}
	for v := 1; v <= SideLength; v++ {
		if IsValid(g, row, col, v) {
			g[row][col] = v
			if fill(g, row, col+1) {
				return true
			}
			g[row][col] = 0
		}
	}
	return false
}

// removeCells blanks exactly count distinct cells, drawing
// uniformly random coordinates and re-drawing on already-empty
// hits.  The retry loop is unbounded in principle but the board
// never gets empty enough for that to matter at the configured
// blank counts.
func (e *Engine) removeCells(count int) {
	for n := 0; n < count; n++ {
		for {
			row, col := e.rnd.Intn(SideLength), e.rnd.Intn(SideLength)
			if e.grid[row][col] != 0 {
				e.grid[row][col] = 0
				break
			}
		}
	}
}
