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
	"encoding/json"
	"fmt"
	"time"

	"github.com/dom-ini/sudoku-game/puzzle"
	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx"
)

/*

puzzle records

*/

// A Record is the stored form of a generated puzzle: the cells
// as handed to the player, the full solution they came from, and
// enough metadata to list and re-fetch them.  The PuzzleId is a
// fingerprint of the level and the puzzle cells, so the same
// generated puzzle always stores under the same id.
type Record struct {
	PuzzleId string    `json:"puzzleId"`
	Level    int32     `json:"level"`
	Blanks   int32     `json:"blanks"`
	Cells    []int32   `json:"cells"`
	Solution []int32   `json:"solution"`
	Created  time.Time `json:"created"`
}

// NewRecord: build the stored form of a generated puzzle from
// its level, its player-facing cells, and its solution.
func NewRecord(level int, cells, solution []int) *Record {
	blanks := int32(0)
	for _, v := range cells {
		if v == 0 {
			blanks++
		}
	}
	return &Record{
		PuzzleId: puzzle.Fingerprint(level, cells),
		Level:    int32(level),
		Blanks:   blanks,
		Cells:    int32Values(cells),
		Solution: int32Values(solution),
		Created:  time.Now().UTC(),
	}
}

// CellValues: the player-facing cells as plain ints, suitable
// for Grid.SetValues.
func (r *Record) CellValues() []int {
	return intValues(r.Cells)
}

// SolutionValues: the solution cells as plain ints.
func (r *Record) SolutionValues() []int {
	return intValues(r.Solution)
}

func int32Values(vals []int) []int32 {
	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = int32(v)
	}
	return out
}

func intValues(vals []int32) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}

/*

persistence operations

*/

// SavePuzzle: store the record in the database and the cache.
// Saving an already-stored puzzle is a no-op, because the id is
// content-derived.  Panics on storage failure.
func SavePuzzle(r *Record) {
	if r == nil || r.PuzzleId == "" {
		panic(fmt.Errorf("Attempt to save an empty puzzle record"))
	}
	r.databaseInsert()
	r.cacheInsert()
}

// LoadPuzzle: fetch the record with the given id.  Reads through
// the cache, falling back to the database and refilling the
// cache on a miss.  Returns the record and whether it was found.
// Panics on storage failure.
func LoadPuzzle(puzzleId string) (*Record, bool) {
	r := &Record{PuzzleId: puzzleId}
	if r.cacheLoad() {
		return r, true
	}
	if r.databaseLoad() {
		r.cacheInsert()
		return r, true
	}
	return nil, false
}

// RecentPuzzles: the most recently stored puzzles at the given
// level, newest first, at most limit of them.  Panics on storage
// failure.
func RecentPuzzles(level, limit int) []*Record {
	var recs []*Record
	pgExecute(func(tx *pgx.Tx) error {
		rows, err := tx.Query(
			"SELECT puzzleId, level, blanks, cellList, solutionList, created "+
				"FROM puzzles WHERE level = $1 ORDER BY created DESC LIMIT $2;",
			int32(level), int32(limit))
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r := &Record{}
			err = rows.Scan(&r.PuzzleId, &r.Level, &r.Blanks,
				&r.Cells, &r.Solution, &r.Created)
			if err != nil {
				return err
			}
			recs = append(recs, r)
		}
		return rows.Err()
	})
	return recs
}

/*

cache and database helpers

*/

// key of the record in the cache
func (r *Record) key() string {
	return "PZL:" + r.PuzzleId
}

// cacheLoad: fill the record from the cache.  Returns whether
// the record was present.
func (r *Record) cacheLoad() (found bool) {
	rdExecute(func(tx redis.Conn) error {
		body, err := redis.Bytes(tx.Do("GET", r.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, r); err != nil {
			return err
		}
		found = true
		return nil
	})
	return
}

// cacheInsert: save the record to the cache.
func (r *Record) cacheInsert() {
	body, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Errorf("Failed to marshal %+v as JSON: %v", r, err))
	}
	rdExecute(func(tx redis.Conn) error {
		_, err := tx.Do("SET", r.key(), body)
		return err
	})
}

// databaseLoad: fill the record from the database.  Returns
// whether the record was present.
func (r *Record) databaseLoad() (found bool) {
	pgExecute(func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT level, blanks, cellList, solutionList, created "+
				"FROM puzzles WHERE puzzleId = $1;",
			r.PuzzleId)
		err := row.Scan(&r.Level, &r.Blanks, &r.Cells, &r.Solution, &r.Created)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return
}

// databaseInsert: save the record to the database.  Re-saving an
// existing record leaves the stored row alone.
func (r *Record) databaseInsert() {
	pgExecute(func(tx *pgx.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO puzzles (puzzleId, level, blanks, cellList, solutionList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6) "+
				"ON CONFLICT (puzzleId) DO NOTHING;",
			r.PuzzleId, r.Level, r.Blanks, r.Cells, r.Solution, r.Created)
		return err
	})
}
