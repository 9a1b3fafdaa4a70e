// sudoku-game - a Sudoku puzzle generator and playing toolkit.
// Copyright (C) 2016 Daniel C. Brotsky.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package storage

import (
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dom-ini/sudoku-game/dbprep"
	"github.com/dom-ini/sudoku-game/puzzle"
	"github.com/gomodule/redigo/redis"
)

// All the tests in this module require live Redis and Postgres
// services, which they reinitialize before running.
func TestMain(m *testing.M) {
	// the tests run in this directory, the migrations don't live here
	if os.Getenv("MIGRATIONS_PATH") == "" {
		os.Setenv("MIGRATIONS_PATH", filepath.Join("..", "dbprep", "migrations"))
	}
	if err := dbprep.ReinitializeAll(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// generate a puzzle record at the given level with a fixed seed,
// so tests that want the same record twice can get it
func testRecord(t *testing.T, level int, seed int64) *Record {
	e := puzzle.NewEngine(rand.New(rand.NewSource(seed)))
	if err := e.Generate(level); err != nil {
		t.Fatalf("Failed to generate level %d puzzle: %v", level, err)
	}
	cells := e.Grid().Values()
	if !e.Solve() {
		t.Fatalf("Failed to re-solve generated level %d puzzle", level)
	}
	return NewRecord(level, cells, e.Grid().Values())
}

func TestConnect(t *testing.T) {
	cacheId, databaseId, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close()
	if cacheId == "" || databaseId == "" {
		t.Errorf("Connect returned empty ids: cache %q, database %q", cacheId, databaseId)
	}
}

func TestNewRecord(t *testing.T) {
	r := testRecord(t, 2, 101)
	if r.PuzzleId == "" {
		t.Errorf("Record has no puzzle id")
	}
	if r.Level != 2 {
		t.Errorf("Record has level %d, expected 2", r.Level)
	}
	blanks, _ := puzzle.NewEngine(nil).BlankCount(2)
	if int(r.Blanks) != blanks {
		t.Errorf("Record has %d blanks, expected %d", r.Blanks, blanks)
	}
	if len(r.Cells) != puzzle.CellCount || len(r.Solution) != puzzle.CellCount {
		t.Errorf("Record has %d cells and %d solution values",
			len(r.Cells), len(r.Solution))
	}
	same := testRecord(t, 2, 101)
	if same.PuzzleId != r.PuzzleId {
		t.Errorf("Same generation produced different ids: %q vs %q",
			same.PuzzleId, r.PuzzleId)
	}
}

func TestSaveLoadPuzzle(t *testing.T) {
	_, _, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close()

	saved := testRecord(t, 1, 202)
	SavePuzzle(saved)

	// load should hit the cache
	loaded, found := LoadPuzzle(saved.PuzzleId)
	if !found {
		t.Fatalf("Saved puzzle %q not found", saved.PuzzleId)
	}
	if loaded.PuzzleId != saved.PuzzleId ||
		loaded.Level != saved.Level ||
		loaded.Blanks != saved.Blanks ||
		!reflect.DeepEqual(loaded.Cells, saved.Cells) ||
		!reflect.DeepEqual(loaded.Solution, saved.Solution) {
		t.Errorf("Loaded record differs from saved:\nsaved: %+v\nloaded: %+v",
			saved, loaded)
	}

	// drop the cache entry and load again, forcing the database path
	rdExecute(func(tx redis.Conn) error {
		_, err := tx.Do("DEL", saved.key())
		return err
	})
	reloaded, found := LoadPuzzle(saved.PuzzleId)
	if !found {
		t.Fatalf("Saved puzzle %q not found after cache flush", saved.PuzzleId)
	}
	if !reflect.DeepEqual(reloaded.Cells, saved.Cells) ||
		!reflect.DeepEqual(reloaded.Solution, saved.Solution) {
		t.Errorf("Database record differs from saved:\nsaved: %+v\nloaded: %+v",
			saved, reloaded)
	}

	// re-saving the same record should not fail
	SavePuzzle(saved)
}

func TestLoadMissingPuzzle(t *testing.T) {
	_, _, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close()
	r, found := LoadPuzzle("no-such-puzzle")
	if found || r != nil {
		t.Errorf("Load of unknown id found %+v", r)
	}
}

func TestRecentPuzzles(t *testing.T) {
	_, _, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close()

	var saved []*Record
	for seed := int64(300); seed < 305; seed++ {
		r := testRecord(t, 3, seed)
		SavePuzzle(r)
		saved = append(saved, r)
	}

	recent := RecentPuzzles(3, 3)
	if len(recent) != 3 {
		t.Fatalf("Asked for 3 recent puzzles, got %d", len(recent))
	}
	for i, r := range recent {
		if r.Level != 3 {
			t.Errorf("case %d: recent puzzle has level %d", i, r.Level)
		}
		if i > 0 && r.Created.After(recent[i-1].Created) {
			t.Errorf("case %d: recent puzzles out of order", i)
		}
	}

	// a level nothing was stored at should come back empty
	if recs := RecentPuzzles(17, 10); len(recs) != 0 {
		t.Errorf("Recent puzzles at unused level found %d records", len(recs))
	}
}

func TestSaveEmptyRecord(t *testing.T) {
	_, _, err := Connect()
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Save of empty record failed to panic")
		}
	}()
	SavePuzzle(&Record{})
}
