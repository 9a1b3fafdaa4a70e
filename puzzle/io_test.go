package puzzle

import (
	"strings"
	"testing"
)

func TestStringEmptyGrid(t *testing.T) {
	var g Grid
	s := g.String()
	// one header line, three band separators, nine rows
	if lines := strings.Count(s, "\n"); lines != 13 {
		t.Errorf("pretty print has %d lines, expected 13:\n%s", lines, s)
	}
	if got := strings.Count(s, " _ "); got != CellCount {
		t.Errorf("pretty print shows %d empty cells, expected %d:\n%s", got, CellCount, s)
	}
}

func TestStringFilledGrid(t *testing.T) {
	g := mustGrid(t, patternSolvedValues)
	s := g.String()
	if strings.Contains(s, "_") {
		t.Errorf("pretty print of a solved grid shows empty cells:\n%s", s)
	}
	for _, digit := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		if !strings.Contains(s, " "+digit+" ") {
			t.Errorf("pretty print is missing digit %s:\n%s", digit, s)
		}
	}
	if (*Grid)(nil).String() != "" {
		t.Errorf("pretty print of a nil grid is not empty")
	}
}

func TestFingerprintStability(t *testing.T) {
	a := Fingerprint(0, patternSolvedValues)
	b := Fingerprint(0, patternSolvedValues)
	if a != b {
		t.Errorf("Same inputs gave different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Fingerprint %q is not a SHA-256 hex string", a)
	}
	if c := Fingerprint(1, patternSolvedValues); c == a {
		t.Errorf("Different levels gave the same fingerprint")
	}
	changed := append([]int(nil), patternSolvedValues...)
	changed[17] = 0
	if d := Fingerprint(0, changed); d == a {
		t.Errorf("Different cells gave the same fingerprint")
	}
}
