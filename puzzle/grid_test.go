package puzzle

import (
	"reflect"
	"testing"
)

/*

Test values

*/

var (
	// a full solution: row bands are rotations of 1-9, so every
	// row, column, and box is a permutation.
	patternSolvedValues = []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		4, 5, 6, 7, 8, 9, 1, 2, 3,
		7, 8, 9, 1, 2, 3, 4, 5, 6,
		2, 3, 4, 5, 6, 7, 8, 9, 1,
		5, 6, 7, 8, 9, 1, 2, 3, 4,
		8, 9, 1, 2, 3, 4, 5, 6, 7,
		3, 4, 5, 6, 7, 8, 9, 1, 2,
		6, 7, 8, 9, 1, 2, 3, 4, 5,
		9, 1, 2, 3, 4, 5, 6, 7, 8,
	}
)

func mustGrid(t *testing.T, values []int) *Grid {
	t.Helper()
	var g Grid
	if err := g.SetValues(values); err != nil {
		t.Fatalf("Failed to load test grid: %v", err)
	}
	return &g
}

func TestGetSetClear(t *testing.T) {
	var g Grid
	g.Set(4, 7, 6)
	if v := g.Get(4, 7); v != 6 {
		t.Errorf("Get after Set returned %d, expected 6", v)
	}
	if count := g.FilledCount(); count != 1 {
		t.Errorf("FilledCount is %d, expected 1", count)
	}
	g.Clear()
	if count := g.FilledCount(); count != 0 {
		t.Errorf("FilledCount after Clear is %d, expected 0", count)
	}
	// clearing twice gives the same all-zero state as once
	cleared := g
	g.Clear()
	if !reflect.DeepEqual(g, cleared) {
		t.Errorf("Second Clear changed the grid: %v", g)
	}
}

func TestValuesRoundTrip(t *testing.T) {
	g := mustGrid(t, patternSolvedValues)
	if vs := g.Values(); !reflect.DeepEqual(vs, patternSolvedValues) {
		t.Errorf("Values returned %v, expected %v", vs, patternSolvedValues)
	}
	// the returned slice must not alias the grid
	vs := g.Values()
	vs[0] = 9
	if g.Get(0, 0) != 1 {
		t.Errorf("Mutating the Values slice changed the grid")
	}
}

type setValuesTestcase struct {
	values []int
	ok     bool
}

func TestSetValuesErrors(t *testing.T) {
	bad := append([]int(nil), patternSolvedValues...)
	bad[40] = 10
	tcs := []setValuesTestcase{
		{patternSolvedValues, true},
		{patternSolvedValues[:80], false},
		{append(append([]int(nil), patternSolvedValues...), 5), false},
		{bad, false},
	}
	for i, tc := range tcs {
		var g Grid
		err := g.SetValues(tc.values)
		if tc.ok && err != nil {
			t.Errorf("case %d: SetValues failed: %v", i+1, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("case %d: SetValues accepted bad values", i+1)
			} else if _, isErr := err.(Error); !isErr {
				t.Errorf("case %d: SetValues returned a non-Error error: %v", i+1, err)
			}
		}
	}
}

/*

placement validity

*/

func TestIsValidAgainstSolvedGrid(t *testing.T) {
	g := mustGrid(t, patternSolvedValues)
	// on a solved grid, the held value of every cell is valid and
	// every other value conflicts
	for row := 0; row < SideLength; row++ {
		for col := 0; col < SideLength; col++ {
			held := g.Get(row, col)
			for v := 1; v <= SideLength; v++ {
				valid := IsValid(g, row, col, v)
				if v == held && !valid {
					t.Errorf("IsValid(%d, %d, %d) is false for the held value", row, col, v)
				}
				if v != held && valid {
					t.Errorf("IsValid(%d, %d, %d) is true for a conflicting value", row, col, v)
				}
			}
		}
	}
}

func TestIsValidLastCellInRow(t *testing.T) {
	// place 8 of the 9 digits validly in row 0 and leave (0, 8)
	// empty; only the missing digit may be placed there
	var g Grid
	for col := 0; col < 8; col++ {
		g.Set(0, col, col+1) // digits 1-8, 9 missing
	}
	for v := 1; v <= SideLength; v++ {
		valid := IsValid(&g, 0, 8, v)
		if v == 9 && !valid {
			t.Errorf("IsValid rejected the one missing digit %d", v)
		}
		if v != 9 && valid {
			t.Errorf("IsValid accepted already-placed digit %d", v)
		}
	}
	// a digit placed elsewhere in column 8 blocks that digit too
	g.Set(5, 8, 9)
	if IsValid(&g, 0, 8, 9) {
		t.Errorf("IsValid ignored a conflict in column 8")
	}
	g.Set(5, 8, 0)
	// likewise for the containing box
	g.Set(2, 6, 9)
	if IsValid(&g, 0, 8, 9) {
		t.Errorf("IsValid ignored a conflict in the containing box")
	}
}

func TestIsValidExcludesCandidateCell(t *testing.T) {
	var g Grid
	g.Set(3, 3, 7)
	if !IsValid(&g, 3, 3, 7) {
		t.Errorf("IsValid counted the candidate cell's own value as a conflict")
	}
	if IsValid(&g, 3, 4, 7) {
		t.Errorf("IsValid missed a row conflict")
	}
	if IsValid(&g, 8, 3, 7) {
		t.Errorf("IsValid missed a column conflict")
	}
	if IsValid(&g, 4, 4, 7) {
		t.Errorf("IsValid missed a box conflict")
	}
	if !IsValid(&g, 8, 8, 7) {
		t.Errorf("IsValid reported a conflict for an unrelated cell")
	}
}
