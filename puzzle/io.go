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

package puzzle

import (
	"fmt"
)

/*

Pretty-printed grids in strings, for debugging and the CLI.

*/

var (
	valueStrings   = []string{" ", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	nonValueString = "?"
)

func vstr(i int) string {
	if i < 0 || i >= len(valueStrings) {
		return nonValueString
	}
	return valueStrings[i]
}

// String gives a pretty-printed view of a grid: column numbers
// across the top, row letters down the left, box boundaries
// marked, empty cells shown as underscores.
func (g *Grid) String() (result string) {
	if g == nil {
		return
	}
	// first put out the header
	result += " "
	for col := 0; col < SideLength; col++ {
		if col%BoxSize != 0 {
			result += " "
		} else {
			result += "|"
		}
		result += fmt.Sprintf("%2d ", col+1)
	}
	result += "\n"
	// next are the rows, including the separator at the top of
	// each band
	for row, rowhdr := 0, 'a'; row < SideLength; row, rowhdr = row+1, rowhdr+1 {
		if row%BoxSize == 0 {
			result += " "
			for col := 0; col < SideLength; col++ {
				result += "+---"
			}
			result += "\n"
		}
		result += string(rowhdr)
		for col := 0; col < SideLength; col++ {
			if col%BoxSize != 0 {
				result += " "
			} else {
				result += "|"
			}
			if v := g[row][col]; v != 0 {
				result += fmt.Sprintf(" %s ", vstr(v))
			} else {
				result += " _ "
			}
		}
		result += "\n"
	}
	return
}
