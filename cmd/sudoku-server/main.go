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

// Web service for generating and checking puzzles
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/dom-ini/sudoku-game/puzzle"
	"github.com/dom-ini/sudoku-game/storage"
	"github.com/gorilla/mux"
)

// the generator is not safe for concurrent use, so requests
// that generate puzzles serialize on this mutex
var (
	engine      = puzzle.NewEngine(nil)
	engineMutex sync.Mutex
)

// storage is optional in dev mode: if the backing services
// aren't reachable, we fall back to keeping generated puzzles
// in memory for the life of the process
var (
	storageUsable bool
	memPuzzles    = make(map[string]*storage.Record)
	memOrder      []string // insertion order, oldest first
	memMutex      sync.RWMutex
)

func main() {
	if cacheId, databaseId, err := storage.Connect(); err != nil {
		log.Printf("No storage, keeping puzzles in memory: %v", err)
	} else {
		storageUsable = true
		defer storage.Close()
		log.Printf("Connected to cache at %q and database at %q.", cacheId, databaseId)
	}

	// Heroku environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err := http.ListenAndServe(port, newRouter())
	if err != nil {
		log.Fatal("Listener failure: ", err)
	}
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/levels", errorWrapper(levelsHandler)).Methods("GET")
	r.HandleFunc("/api/puzzles", errorWrapper(newPuzzleHandler)).Methods("POST")
	r.HandleFunc("/api/puzzles", errorWrapper(recentPuzzlesHandler)).Methods("GET")
	r.HandleFunc("/api/puzzles/{puzzleId}", errorWrapper(getPuzzleHandler)).Methods("GET")
	r.HandleFunc("/api/check", errorWrapper(checkHandler)).Methods("POST")
	return r
}

// errorWrapper: keep storage panics from killing the process,
// turning them into 500 responses instead
func errorWrapper(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				log.Printf("Handler panic on %s %s: %v", r.Method, r.URL.Path, e)
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("%v", e))
			}
		}()
		log.Printf("Handling %s %s...", r.Method, r.URL.Path)
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal %+v as JSON: %v", v, err)
		writeError(w, http.StatusInternalServerError, "response encoding failure")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

/*

puzzle endpoints

*/

type levelInfo struct {
	Level  int `json:"level"`
	Blanks int `json:"blanks"`
}

func levelsHandler(w http.ResponseWriter, r *http.Request) {
	engineMutex.Lock()
	levels := engine.Levels()
	sort.Ints(levels)
	infos := make([]levelInfo, len(levels))
	for i, level := range levels {
		blanks, _ := engine.BlankCount(level)
		infos[i] = levelInfo{Level: level, Blanks: blanks}
	}
	engineMutex.Unlock()
	writeJSON(w, http.StatusOK, infos)
}

func newPuzzleHandler(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "level must be an integer")
		return
	}

	engineMutex.Lock()
	genErr := engine.Generate(level)
	var cells, solution []int
	if genErr == nil {
		cells = engine.Grid().Values()
		if !engine.Solve() {
			engineMutex.Unlock()
			writeError(w, http.StatusInternalServerError, "generated puzzle has no solution")
			return
		}
		solution = engine.Grid().Values()
	}
	engineMutex.Unlock()
	if genErr != nil {
		writeError(w, http.StatusBadRequest, genErr.Error())
		return
	}

	rec := storage.NewRecord(level, cells, solution)
	savePuzzle(rec)
	writeJSON(w, http.StatusCreated, rec)
}

func getPuzzleHandler(w http.ResponseWriter, r *http.Request) {
	puzzleId := mux.Vars(r)["puzzleId"]
	rec, found := loadPuzzle(puzzleId)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no puzzle with id %q", puzzleId))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func recentPuzzlesHandler(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "level must be an integer")
		return
	}
	limit := 10
	if arg := r.URL.Query().Get("limit"); arg != "" {
		limit, err = strconv.Atoi(arg)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}
	recs := recentPuzzles(level, limit)
	if recs == nil {
		recs = []*storage.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

/*

placement checking

*/

type checkRequest struct {
	Cells []int `json:"cells"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value int   `json:"value"`
}

type checkResponse struct {
	Valid bool `json:"valid"`
}

func checkHandler(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("request decoding failure: %v", err))
		return
	}
	var g puzzle.Grid
	if err := g.SetValues(req.Cells); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Row < 0 || req.Row >= puzzle.SideLength ||
		req.Col < 0 || req.Col >= puzzle.SideLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("cell (%d, %d) is out of range", req.Row, req.Col))
		return
	}
	if req.Value < 1 || req.Value > puzzle.SideLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("value %d is out of range", req.Value))
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Valid: puzzle.IsValid(&g, req.Row, req.Col, req.Value)})
}

/*

storage indirection: real storage when available, in-memory
records otherwise

*/

func savePuzzle(rec *storage.Record) {
	if storageUsable {
		storage.SavePuzzle(rec)
		return
	}
	memMutex.Lock()
	defer memMutex.Unlock()
	if _, ok := memPuzzles[rec.PuzzleId]; !ok {
		memPuzzles[rec.PuzzleId] = rec
		memOrder = append(memOrder, rec.PuzzleId)
	}
}

func loadPuzzle(puzzleId string) (*storage.Record, bool) {
	if storageUsable {
		return storage.LoadPuzzle(puzzleId)
	}
	memMutex.RLock()
	defer memMutex.RUnlock()
	rec, ok := memPuzzles[puzzleId]
	return rec, ok
}

func recentPuzzles(level, limit int) []*storage.Record {
	if storageUsable {
		return storage.RecentPuzzles(level, limit)
	}
	memMutex.RLock()
	defer memMutex.RUnlock()
	var recs []*storage.Record
	for i := len(memOrder) - 1; i >= 0 && len(recs) < limit; i-- {
		if rec := memPuzzles[memOrder[i]]; int(rec.Level) == level {
			recs = append(recs, rec)
		}
	}
	return recs
}
