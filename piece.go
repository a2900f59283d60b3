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

import (
	"fmt"
	"strings"
)

// PieceType represents the type of a xiangqi piece. See also [Piece].
//
// Xiangqi has seven piece types, none of which promote: King (General),
// Advisor (Mandarin), Bishop (Elephant), Knight (Horse), Rook (Chariot),
// Cannon, and Pawn (Soldier).
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Cannon
	Rook
	Knight
	Bishop
	Advisor
	King
)

// String returns a single uppercase letter representation of the piece type
// if valid, else "-".
func (pt PieceType) String() string {
	switch pt {
	case NoPieceType:
		return "-"
	case Pawn:
		return "P"
	case Cannon:
		return "C"
	case Rook:
		return "R"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Advisor:
		return "A"
	case King:
		return "K"
	default:
		return "-"
	}
}

func parsePieceType(s string) PieceType {
	switch strings.ToUpper(s) {
	case "P":
		return Pawn
	case "C":
		return Cannon
	case "R":
		return Rook
	case "N":
		return Knight
	case "B", "E":
		return Bishop
	case "A":
		return Advisor
	case "K":
		return King
	default:
		return NoPieceType
	}
}

// Piece represents a xiangqi piece with type and color. The zero value is no
// piece.
type Piece struct {
	Type  PieceType
	Color Color
}

var (
	NoPiece = Piece{Type: NoPieceType, Color: NoColor}

	RedPawn    = Piece{Type: Pawn, Color: Red}
	RedCannon  = Piece{Type: Cannon, Color: Red}
	RedRook    = Piece{Type: Rook, Color: Red}
	RedKnight  = Piece{Type: Knight, Color: Red}
	RedBishop  = Piece{Type: Bishop, Color: Red}
	RedAdvisor = Piece{Type: Advisor, Color: Red}
	RedKing    = Piece{Type: King, Color: Red}

	BlackPawn    = Piece{Type: Pawn, Color: Black}
	BlackCannon  = Piece{Type: Cannon, Color: Black}
	BlackRook    = Piece{Type: Rook, Color: Black}
	BlackKnight  = Piece{Type: Knight, Color: Black}
	BlackBishop  = Piece{Type: Bishop, Color: Black}
	BlackAdvisor = Piece{Type: Advisor, Color: Black}
	BlackKing    = Piece{Type: King, Color: Black}
)

// String returns a single letter representation of the piece if valid, else
// "-". Red pieces are uppercase, Black pieces are lowercase, matching
// standard xiangqi FEN.
func (p Piece) String() string {
	switch p.Color {
	case Red:
		return strings.ToUpper(p.Type.String())
	case Black:
		return strings.ToLower(p.Type.String())
	default:
		return "-"
	}
}

func parsePiece(s string) (Piece, error) {
	pt := parsePieceType(s)
	if pt == NoPieceType {
		return NoPiece, fmt.Errorf("invalid piece letter %q", s)
	}
	if s == strings.ToUpper(s) {
		return Piece{Type: pt, Color: Red}, nil
	}
	return Piece{Type: pt, Color: Black}, nil
}
