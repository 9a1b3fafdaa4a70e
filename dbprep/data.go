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

package dbprep

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dom-ini/sudoku-game/puzzle"
	"github.com/jackc/pgx"
)

/*

entries

*/

type dataFunction func(*pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/sudoku?sslmode=disable"
	}

	// open the database, defer the close
	cfg, err := pgx.ParseURI(url)
	if err != nil {
		return err
	}
	conn, err := pgx.Connect(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback()
				panic(e)
			}
		}()
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

insert one sample puzzle per difficulty level

*/

// a solved grid that the sample puzzles are cut from
var sampleSolution = []int{
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

// one sample per level, filled in by init
type samplePuzzle struct {
	level  int
	blanks int
	cells  []int
	hash   string
}

var samplePuzzles []samplePuzzle

// derive the sample puzzles from the solution by blanking the
// first blank-count cells of each level
func init() {
	levels := make([]int, 0, len(puzzle.DefaultBlankCounts))
	for level := range puzzle.DefaultBlankCounts {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		blanks := puzzle.DefaultBlankCounts[level]
		cells := make([]int, len(sampleSolution))
		copy(cells, sampleSolution)
		for i := 0; i < blanks; i++ {
			cells[i] = 0
		}
		samplePuzzles = append(samplePuzzles, samplePuzzle{
			level:  level,
			blanks: blanks,
			cells:  cells,
			hash:   puzzle.Fingerprint(level, cells),
		})
	}
}

// Insert the sample puzzles
func insertSamples(tx *pgx.Tx) error {
	// idempotency: if the first sample already exists, we are done
	var count int64
	row := tx.QueryRow("SELECT COUNT(*) FROM puzzles "+
		"WHERE puzzleId = $1", samplePuzzles[0].hash)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for sample puzzles: %v", err)
	}
	if count > 0 {
		return nil
	}

	// get the timestamp of this load
	now := time.Now()

	for i, sample := range samplePuzzles {
		cells := make([]int32, len(sample.cells))
		for j, v := range sample.cells {
			cells[j] = int32(v) // use 4-byte ints in database
		}
		solution := make([]int32, len(sampleSolution))
		for j, v := range sampleSolution {
			solution[j] = int32(v)
		}
		_, err := tx.Exec(
			"INSERT INTO puzzles (puzzleId, level, blanks, cellList, solutionList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			sample.hash, int32(sample.level), int32(sample.blanks), cells, solution, now)
		if err != nil {
			return fmt.Errorf("Database error saving sample puzzle %d: %v", i, err)
		}
	}
	return nil
}

// Delete the sample puzzles
func deleteSamples(tx *pgx.Tx) error {
	for i, sample := range samplePuzzles {
		_, err := tx.Exec(
			"DELETE from puzzles where puzzleId = $1", sample.hash)
		if err != nil {
			return fmt.Errorf("Database error deleting sample puzzle %d: %v", i, err)
		}
	}
	return nil
}
