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

// Command-line client for generating and playing puzzles
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dom-ini/sudoku-game/puzzle"
)

func main() {
	err := listener(os.Stdout, os.Stdin)
	if err != nil {
		log.Fatalf("CLI failure: %v", err)
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	// (see http://stackoverflow.com/questions/22744443/ for source)
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(out, "sudoku> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if prompt {
					fmt.Fprintf(out, " (read error)\n")
				}
				return err
			}
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		}
		r := &request{inline: strings.Trim(scanner.Text(), " \t\r\n")}
		args := strings.Split(r.inline, " ")
		r.command = strings.ToLower(args[0])
		switch r.command {
		case "":
			continue
		case "quit":
			fallthrough
		case "exit":
			return nil
		}
		for _, arg := range args[1:] {
			if len(arg) > 0 {
				r.args = append(r.args, strings.ToLower(arg))
			}
		}
		dispatchCommand(out, r)
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"check", "index value", "check whether a value fits a cell", checkHandler},
		{"clear", "", "empty out the grid", clearHandler},
		{"levels", "", "list difficulty levels", levelsHandler},
		{"new", "[level]", "generate a new puzzle", newHandler},
		{"set", "index value", "assign a value to a cell (0 clears)", setHandler},
		{"show", "", "show the current grid", showHandler},
		{"solve", "", "complete the current grid", solveHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(w, r)
	}
}

/*

request handlers

*/

// the puzzle being played, kept for the life of the process
var engine = puzzle.NewEngine(nil)

// parseCell: turn an index like "a1" into 0-based coordinates.
// Rows are letters from the top, columns numbers from the left,
// matching the output of the grid printer.
func parseCell(idx string) (row, col int, err error) {
	if len(idx) < 2 {
		return 0, 0, fmt.Errorf("index (%s) must be a row letter and a column number", idx)
	}
	row = int(idx[0] - 'a')
	if row < 0 || row >= puzzle.SideLength {
		return 0, 0, fmt.Errorf("index (%s) row is out of range", idx)
	}
	col, err = strconv.Atoi(idx[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("index (%s) column is not a number", idx)
	}
	if col < 1 || col > puzzle.SideLength {
		return 0, 0, fmt.Errorf("index (%s) column is out of range", idx)
	}
	return row, col - 1, nil
}

func newHandler(w io.Writer, r *request) {
	level := 1
	if len(r.args) > 0 {
		l, err := strconv.Atoi(r.args[0])
		if err != nil {
			usageHandler(fmt.Sprintf("%s level (%s) must be a number", r.command, r.args[0]), w, r)
			return
		}
		level = l
	}
	if err := engine.Generate(level); err != nil {
		fmt.Fprintf(w, "Generate failed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "New level %d puzzle:\n", level)
	showHandler(w, r)
}

func showHandler(w io.Writer, r *request) {
	fmt.Fprintf(w, "%s", engine.Grid().String())
}

func setHandler(w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	row, col, err := parseCell(r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	value, err := strconv.Atoi(r.args[1])
	if err != nil || value < 0 || value > puzzle.SideLength {
		usageHandler(fmt.Sprintf("%s value (%s) must be a number from 0 to %d",
			r.command, r.args[1], puzzle.SideLength), w, r)
		return
	}
	if value != 0 && !puzzle.IsValid(engine.Grid(), row, col, value) {
		fmt.Fprintf(w, "Set failed: %d conflicts at %s\n", value, r.args[0])
		return
	}
	engine.Set(row, col, value)
	showHandler(w, r)
}

func checkHandler(w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	row, col, err := parseCell(r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	value, err := strconv.Atoi(r.args[1])
	if err != nil || value < 1 || value > puzzle.SideLength {
		usageHandler(fmt.Sprintf("%s value (%s) must be a number from 1 to %d",
			r.command, r.args[1], puzzle.SideLength), w, r)
		return
	}
	if puzzle.IsValid(engine.Grid(), row, col, value) {
		fmt.Fprintf(w, "%d fits at %s\n", value, r.args[0])
	} else {
		fmt.Fprintf(w, "%d conflicts at %s\n", value, r.args[0])
	}
}

func clearHandler(w io.Writer, r *request) {
	engine.Clear()
	fmt.Fprintf(w, "Grid cleared.\n")
}

func solveHandler(w io.Writer, r *request) {
	if !engine.Solve() {
		fmt.Fprintf(w, "The grid has no completion.\n")
		return
	}
	showHandler(w, r)
}

func levelsHandler(w io.Writer, r *request) {
	levels := engine.Levels()
	sort.Ints(levels)
	for _, level := range levels {
		blanks, _ := engine.BlankCount(level)
		fmt.Fprintf(w, "level %d: %d blank cells\n", level, blanks)
	}
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-11s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Printf("Error executing %q: %v\n", r.inline, err)
}
