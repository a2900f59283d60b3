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

// Termination describes why a [Game] ended, for [Game.Outcome].
type Termination uint8

const (
	NoTermination Termination = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
	VariantWin
	VariantDraw
)

// Outcome reports a game's winner (NoColor for a draw or undetermined game)
// and the reason play ended.
type Outcome struct {
	Winner      Color
	Termination Termination
}

// Done reports whether o represents a finished game.
func (o Outcome) Done() bool {
	return o.Termination != NoTermination
}

// XBoardVariant is the XBoard `variant` token this package's games declare
// themselves as, for engines that support more than one game.
const XBoardVariant = "xiangqi"

// Game tracks a xiangqi position together with the move history that
// produced it, satisfying the Board collaborator contract: FEN
// serialization, a move stack, copy-without-history, and UCI/XBoard move
// push/parse.
//
// A Game is not safe for concurrent use; the engine package never shares a
// Board across goroutines.
type Game struct {
	rootPos *Position
	pos     *Position

	moveStack []Move

	// Cchess960 marks positions set up outside the standard starting
	// array (xiangqi's analogue of chess960 random start positions),
	// mirroring the `cchess960` flag engines expect in UCI_Chess960-style setup.
	Cchess960 bool
}

// NewGame returns a fresh game in the standard xiangqi starting position.
func NewGame() *Game {
	g, err := NewGameFromFEN(DefaultFEN)
	if err != nil {
		// DefaultFEN is a compile-time constant; a parse failure here
		// would be a bug in this package, not a caller error.
		panic(fmt.Sprintf("cchess: DefaultFEN failed to parse: %v", err))
	}
	return g
}

// NewGameFromFEN starts a game from the position described by fen. Returns
// an error if fen could not be parsed.
func NewGameFromFEN(fen string) (*Game, error) {
	pos := &Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, fmt.Errorf("could not start game: %w", err)
	}
	return &Game{
		rootPos:   pos.Copy(),
		pos:       pos.Copy(),
		moveStack: nil,
		Cchess960: fen != DefaultFEN,
	}, nil
}

// FEN returns the FEN string of the current position.
func (g *Game) FEN() (string, error) {
	text, err := g.pos.MarshalText()
	if err != nil {
		return "", fmt.Errorf("could not produce fen: %w", err)
	}
	return string(text), nil
}

// Root returns a new Game at the initial position of the current game tree
// (i.e. before any of [Game.MoveStack]'s moves were played), with an empty
// move stack.
func (g *Game) Root() *Game {
	return &Game{
		rootPos:   g.rootPos.Copy(),
		pos:       g.rootPos.Copy(),
		moveStack: nil,
		Cchess960: g.Cchess960,
	}
}

// MoveStack returns a copy of the moves played since the root position.
func (g *Game) MoveStack() []Move {
	stack := make([]Move, len(g.moveStack))
	copy(stack, g.moveStack)
	return stack
}

// Turn returns the color to move in the current position.
func (g *Game) Turn() Color {
	return g.pos.SideToMove
}

// Copy returns a copy of g. If stack is false the returned game's move
// stack is cleared and its root is reset to the current position.
func (g *Game) Copy(stack bool) *Game {
	if !stack {
		return &Game{
			rootPos:   g.pos.Copy(),
			pos:       g.pos.Copy(),
			moveStack: nil,
			Cchess960: g.Cchess960,
		}
	}
	return &Game{
		rootPos:   g.rootPos.Copy(),
		pos:       g.pos.Copy(),
		moveStack: g.MoveStack(),
		Cchess960: g.Cchess960,
	}
}

// ParseUCI parses a UCI move string against the current position. It does
// not apply the move or check legality, only notation validity.
func (g *Game) ParseUCI(s string) (Move, error) {
	return ParseUCIMove(s)
}

// PushUCI parses and applies a UCI move string to the current position,
// appending it to the move stack. No legality checking is performed (see
// package doc).
func (g *Game) PushUCI(s string) (Move, error) {
	m, err := g.ParseUCI(s)
	if err != nil {
		return Move{}, err
	}
	g.push(m)
	return m, nil
}

// ParseXBoard parses an XBoard/CECP move string against the current
// position.
func (g *Game) ParseXBoard(s string) (Move, error) {
	return ParseXBoardMove(s)
}

// PushXBoard parses and applies an XBoard/CECP move string, appending it to
// the move stack.
func (g *Game) PushXBoard(s string) (Move, error) {
	m, err := g.ParseXBoard(s)
	if err != nil {
		return Move{}, err
	}
	g.push(m)
	return m, nil
}

// XBoard formats m in this game's XBoard/CECP wire dialect.
func (g *Game) XBoard(m Move) string {
	return m.XBoard()
}

func (g *Game) push(m Move) {
	if !m.IsNull() {
		g.pos.Move(m)
	}
	g.moveStack = append(g.moveStack, m)
}

// Pop undoes the most recent move and returns it. Calling Pop on a game
// with an empty move stack returns [NullMove] and leaves the game
// unchanged.
func (g *Game) Pop() Move {
	if len(g.moveStack) == 0 {
		return NullMove
	}
	last := g.moveStack[len(g.moveStack)-1]
	g.moveStack = g.moveStack[:len(g.moveStack)-1]

	replay := g.rootPos.Copy()
	for _, m := range g.moveStack {
		if !m.IsNull() {
			replay.Move(m)
		}
	}
	g.pos = replay
	return last
}

// Equal reports whether two games represent the same position reached
// through the same move history.
func (g *Game) Equal(other *Game) bool {
	if other == nil {
		return false
	}
	if !g.rootPos.Equal(other.rootPos) {
		return false
	}
	if len(g.moveStack) != len(other.moveStack) {
		return false
	}
	for i, m := range g.moveStack {
		if m != other.moveStack[i] {
			return false
		}
	}
	return true
}

// Outcome reports the game's result. This package has no move-legality
// implementation (see package doc), so it can only ever report
// [NoTermination] with [NoColor] as winner; a host that wants real
// checkmate/stalemate/repetition detection supplies a richer Board.
// claimDraw is accepted for interface compatibility but is unused here.
func (g *Game) Outcome(claimDraw bool) Outcome {
	_ = claimDraw
	return Outcome{Winner: NoColor, Termination: NoTermination}
}
