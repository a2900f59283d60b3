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

import "fmt"

// Move represents a xiangqi move as a from/to square pair. Xiangqi has no
// promotion, so unlike chess's Move this carries no Promotion field.
type Move struct {
	FromSquare Square
	ToSquare   Square
}

// NullMove is the zero-valued move used by some engines to mean "no move
// available" or to pad a move history. [Move.IsNull] reports it.
var NullMove = Move{}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m == NullMove
}

// String returns the coordinate-notation form of m, e.g. "h2e2". This is
// also the UCI wire form (see [Move.UCI]).
func (m Move) String() string {
	return m.FromSquare.String() + m.ToSquare.String()
}

// UCI returns the UCI wire representation of m.
func (m Move) UCI() string {
	return m.String()
}

// XBoard returns the XBoard/CECP wire representation of m. Xiangqi engines
// use the same coordinate notation for both dialects (spec scenario 5 feeds
// "h2e2 h9g7" straight into an XBoard thinking-output PV), so this matches
// [Move.UCI] byte for byte; it exists as a distinct method because the Board
// collaborator contract names the two formatters separately.
func (m Move) XBoard() string {
	return m.String()
}

// ParseUCIMove parses a move given in UCI notation (e.g. "h2e2"). Returns an
// error if uci is malformed. Does not validate legality.
func ParseUCIMove(uci string) (Move, error) {
	if uci == "0000" || uci == "none" || uci == "NULL" || uci == "(none)" {
		return NullMove, nil
	}
	if len(uci) != 4 {
		return Move{}, fmt.Errorf("could not parse uci move %q: expected 4 characters", uci)
	}
	from := parseSquare(uci[0:2])
	if from == NoSquare {
		return Move{}, fmt.Errorf("could not parse uci move %q: invalid from-square", uci)
	}
	to := parseSquare(uci[2:4])
	if to == NoSquare {
		return Move{}, fmt.Errorf("could not parse uci move %q: invalid to-square", uci)
	}
	return Move{FromSquare: from, ToSquare: to}, nil
}

// ParseXBoardMove parses a move given in XBoard/CECP notation. Identical
// grammar to UCI notation for xiangqi; see [ParseUCIMove].
func ParseXBoardMove(xboard string) (Move, error) {
	return ParseUCIMove(xboard)
}
