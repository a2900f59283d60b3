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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultFEN is the starting position of a standard xiangqi game.
const DefaultFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// Position represents all parts of a xiangqi position as specified by a
// xiangqi FEN string (the same four-rank-separator grammar as chess FEN,
// widened to 9 files / 10 ranks, with no castling or en passant fields).
//
// The zero value is usable, though not very useful. See [DefaultFEN] for the
// starting position.
type Position struct {
	// squares is indexed by [squareToIndex]: rank-major, rank 0 first.
	squares [90]Piece

	SideToMove Color

	// HalfMove counts plies since the last capture.
	HalfMove uint
	// FullMove is the move number, starting at 1 and incrementing after
	// Black moves.
	FullMove uint
}

// Copy creates a copy of the current position.
func (pos *Position) Copy() *Position {
	newPos := *pos
	return &newPos
}

// Equal returns true if the positions are the same, excluding move counters.
func (pos *Position) Equal(other *Position) bool {
	if other == nil {
		return false
	}
	return pos.squares == other.squares && pos.SideToMove == other.SideToMove
}

// UnmarshalText is an implementation of the [encoding.TextUnmarshaler]
// interface. It expects text in xiangqi FEN. It returns an error if it could
// not parse fen.
func (pos *Position) UnmarshalText(fen []byte) error {
	words := strings.Fields(string(fen))
	if len(words) != 6 {
		return fmt.Errorf("pos %q could not be unmarshaled: fen should contain 6 distinct sections", fen)
	}
	p := &Position{}
	if err := p.parseFenBody(words[0]); err != nil {
		return fmt.Errorf("pos %q could not be unmarshaled: %w", fen, err)
	}
	if err := p.parseSideToMove(words[1]); err != nil {
		return fmt.Errorf("pos %q could not be unmarshaled: %w", fen, err)
	}
	// words[2] and words[3] are castling/en-passant placeholders ("-"),
	// kept only for FEN-grammar compatibility with chess-derived tooling;
	// xiangqi has neither concept.
	if err := p.parseHalfMove(words[4]); err != nil {
		return fmt.Errorf("pos %q could not be unmarshaled: %w", fen, err)
	}
	if err := p.parseFullMove(words[5]); err != nil {
		return fmt.Errorf("pos %q could not be unmarshaled: %w", fen, err)
	}
	*pos = *p
	return nil
}

func (pos *Position) parseFenBody(body string) error {
	currentFile := FileA
	currentRank := Rank9
	for _, r := range body {
		switch {
		case unicode.IsLetter(r):
			p, err := parsePiece(string(r))
			if err != nil {
				return fmt.Errorf("could not parse fen body: %w", err)
			}
			pos.SetPiece(p, Square{currentFile, currentRank})
		case unicode.IsNumber(r):
			currentFile += File(r - '1') // file is incremented once more below
		case r == '/':
			if currentFile != FileI+1 {
				return fmt.Errorf("could not parse fen body, invalid number of squares on rank %d", currentRank)
			}
			currentRank -= 1
			currentFile = NoFile
		default:
			return fmt.Errorf("could not parse fen body, encountered unexpected character %q", r)
		}
		currentFile += 1
	}
	if currentRank != Rank0 {
		return fmt.Errorf("could not parse fen body, ended on rank %v, should be Rank0", currentRank)
	}
	return nil
}

func (pos *Position) parseSideToMove(sideToMove string) error {
	color := parseColor(sideToMove)
	if color == NoColor {
		return fmt.Errorf("could not parse side to move %q", sideToMove)
	}
	pos.SideToMove = color
	return nil
}

func (pos *Position) parseHalfMove(halfMove string) error {
	hm, err := strconv.ParseUint(halfMove, 10, 0)
	if err != nil {
		return fmt.Errorf("could not parse half move: %w", err)
	}
	pos.HalfMove = uint(hm)
	return nil
}

func (pos *Position) parseFullMove(fullMove string) error {
	fm, err := strconv.ParseUint(fullMove, 10, 0)
	if err != nil {
		return fmt.Errorf("could not parse full move: %w", err)
	}
	pos.FullMove = uint(fm)
	return nil
}

// MarshalText is an implementation of the [encoding.TextMarshaler]
// interface. It provides the FEN representation of the position.
func (pos *Position) MarshalText() (text []byte, err error) {
	stm, err := pos.sideToMoveString()
	if err != nil {
		return nil, fmt.Errorf("could not marshal position: %w", err)
	}
	fen := pos.boardString() + " " + stm + " - - "
	fen += strconv.FormatUint(uint64(pos.HalfMove), 10) + " "
	fen += strconv.FormatUint(uint64(pos.FullMove), 10)
	return []byte(fen), nil
}

func (pos *Position) boardString() string {
	var b strings.Builder
	numEmpty := 0
	for currentRank := Rank9; currentRank != NoRank; currentRank -= 1 {
		for currentFile := FileA; currentFile <= FileI; currentFile += 1 {
			if piece := pos.Piece(Square{currentFile, currentRank}); piece == NoPiece {
				numEmpty++
			} else {
				if numEmpty > 0 {
					b.WriteString(strconv.Itoa(numEmpty))
					numEmpty = 0
				}
				b.WriteString(piece.String())
			}
		}
		if numEmpty > 0 {
			b.WriteString(strconv.Itoa(numEmpty))
			numEmpty = 0
		}
		if currentRank != Rank0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func (pos *Position) sideToMoveString() (string, error) {
	switch pos.SideToMove {
	case Red:
		return "w", nil
	case Black:
		return "b", nil
	default:
		return "", errors.New("side to move not set")
	}
}

// String returns a board-like representation of the current position.
// Uppercase letters are Red, lowercase are Black.
func (pos *Position) String() string {
	var b strings.Builder
	for currentRank := Rank9; currentRank != NoRank; currentRank -= 1 {
		b.WriteString(currentRank.String())
		for currentFile := FileA; currentFile <= FileI; currentFile += 1 {
			b.WriteString(pos.Piece(Square{currentFile, currentRank}).String())
		}
		b.WriteByte('\n')
	}
	b.WriteString(" abcdefghi")
	return b.String()
}

// Piece gets the piece on the given square. [NoPiece] is returned if no
// piece is present, or square is invalid.
func (pos *Position) Piece(s Square) Piece {
	if !squareOnBoard(s) {
		return NoPiece
	}
	return pos.squares[squareToIndex(s)]
}

// SetPiece sets p on square s. If s is invalid nothing happens.
func (pos *Position) SetPiece(p Piece, s Square) {
	if !squareOnBoard(s) {
		return
	}
	pos.squares[squareToIndex(s)] = p
}

// ClearPiece removes any piece from the given square. Nothing happens if s
// is invalid.
func (pos *Position) ClearPiece(s Square) {
	pos.SetPiece(NoPiece, s)
}

// Move applies m mechanically: the piece on FromSquare moves to ToSquare,
// capturing whatever was there. Xiangqi has no legality concept in this
// package (board/move legality is an external concern, see package doc), so
// Move never rejects a move; callers that need legal-move generation must
// supply their own Board collaborator.
//
// The half-move clock resets on a capture, otherwise increments; the
// full-move counter increments after Black moves; side to move flips.
func (pos *Position) Move(m Move) {
	if pos.Piece(m.ToSquare) != NoPiece {
		pos.HalfMove = 0
	} else {
		pos.HalfMove++
	}
	pos.SetPiece(pos.Piece(m.FromSquare), m.ToSquare)
	pos.ClearPiece(m.FromSquare)

	if pos.SideToMove == Black {
		pos.FullMove++
	}
	pos.SideToMove = pos.SideToMove.Other()
}
