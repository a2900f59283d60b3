// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cchess

// File is a vertical column of points on a xiangqi board. The zero value is
// [NoFile]; files a-i can be represented (9 files, wider than chess's 8).
type File uint8

const (
	NoFile File = iota
	FileA
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileI
)

// String returns a single lowercase letter if valid, else "-".
func (f File) String() string {
	switch f {
	case NoFile:
		return "-"
	case FileA:
		return "a"
	case FileB:
		return "b"
	case FileC:
		return "c"
	case FileD:
		return "d"
	case FileE:
		return "e"
	case FileF:
		return "f"
	case FileG:
		return "g"
	case FileH:
		return "h"
	case FileI:
		return "i"
	default:
		return "-"
	}
}

// Rank is a horizontal row of points on a xiangqi board. The zero value is
// [NoRank]; ranks 0-9 can be represented (10 ranks). Rank is kept single
// digit so UCI/XBoard move strings stay 4 characters, e.g. "h2e2".
type Rank uint8

const (
	NoRank Rank = iota
	Rank0
	Rank1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
)

// String returns a single digit if valid, else "-".
func (r Rank) String() string {
	switch r {
	case NoRank:
		return "-"
	case Rank0:
		return "0"
	case Rank1:
		return "1"
	case Rank2:
		return "2"
	case Rank3:
		return "3"
	case Rank4:
		return "4"
	case Rank5:
		return "5"
	case Rank6:
		return "6"
	case Rank7:
		return "7"
	case Rank8:
		return "8"
	case Rank9:
		return "9"
	default:
		return "-"
	}
}

// Square represents one of the 90 points on a xiangqi board. The zero value
// represents [NoSquare]. Red starts on ranks 0-4, Black on ranks 5-9; the
// river runs between rank 4 and rank 5.
type Square struct {
	File File
	Rank Rank
}

// String returns coordinate-notation square strings (e.g. "e0"). Gives "-"
// if [NoSquare].
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return s.File.String() + s.Rank.String()
}

var NoSquare = Square{File: NoFile, Rank: NoRank}

// AllSquares enumerates all 90 squares, file-major (a0..a9, b0..b9, ...).
var AllSquares = buildAllSquares()

func buildAllSquares() [90]Square {
	var squares [90]Square
	i := 0
	for f := FileA; f <= FileI; f++ {
		for r := Rank0; r <= Rank9; r++ {
			squares[i] = Square{File: f, Rank: r}
			i++
		}
	}
	return squares
}

func parseSquare(s string) Square {
	if len(s) != 2 {
		return NoSquare
	}
	square := Square{parseFile(s[0:1]), parseRank(s[1:2])}
	if square.File == NoFile || square.Rank == NoRank {
		return NoSquare
	}
	return square
}

func parseFile(f string) File {
	switch f {
	case "a":
		return FileA
	case "b":
		return FileB
	case "c":
		return FileC
	case "d":
		return FileD
	case "e":
		return FileE
	case "f":
		return FileF
	case "g":
		return FileG
	case "h":
		return FileH
	case "i":
		return FileI
	default:
		return NoFile
	}
}

func parseRank(r string) Rank {
	switch r {
	case "0":
		return Rank0
	case "1":
		return Rank1
	case "2":
		return Rank2
	case "3":
		return Rank3
	case "4":
		return Rank4
	case "5":
		return Rank5
	case "6":
		return Rank6
	case "7":
		return Rank7
	case "8":
		return Rank8
	case "9":
		return Rank9
	default:
		return NoRank
	}
}

// squareOnBoard reports whether s is one of the 90 valid board squares.
func squareOnBoard(s Square) bool {
	return s.File >= FileA && s.File <= FileI && s.Rank >= Rank0 && s.Rank <= Rank9
}

// squareToIndex returns a 0-89 index into a flat rank-major board array ([10]*[9]),
// i.e. rank*9+file, matching the rank-major walk [Position.parseFenBody] uses.
func squareToIndex(s Square) int {
	return int(s.Rank-Rank0)*9 + int(s.File-FileA)
}
