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

package engine

import (
	"context"

	"github.com/hxqdev/cchess"
)

// Board is the host-owned game-state collaborator a Protocol reads when it
// needs to describe the current position to the engine. It is the only
// point of contact between this module and a host's game representation;
// this module's own cchess.Game satisfies it via NewBoard, but a host may
// supply any implementation.
type Board interface {
	// RootFEN returns the FEN of the position the move list is relative
	// to.
	RootFEN() (string, error)
	// Moves returns every move played since RootFEN, oldest first, in
	// UCI coordinate notation (e.g. "h2e2").
	Moves() []string
	// Turn reports whose turn it is to move in the current position.
	Turn() cchess.Color
}

// gameBoard adapts *cchess.Game to Board.
type gameBoard struct{ g *cchess.Game }

// NewBoard adapts g to the Board interface Protocol implementations use.
func NewBoard(g *cchess.Game) Board { return gameBoard{g: g} }

func (b gameBoard) RootFEN() (string, error) { return b.g.Root().FEN() }

func (b gameBoard) Moves() []string {
	stack := b.g.MoveStack()
	moves := make([]string, len(stack))
	for i, m := range stack {
		moves[i] = m.UCI()
	}
	return moves
}

func (b gameBoard) Turn() cchess.Color { return b.g.Turn() }

// InitializeResult is what Initialize resolves with: the engine's
// self-reported identity and the options it declared.
type InitializeResult struct {
	ID      map[string]string
	Options []Option
}

// OpponentInfo describes the engine's upcoming opponent, for protocols that
// support telling the engine who it's playing (UCI_Opponent, XBoard's
// "name"/"rating" commands).
type OpponentInfo struct {
	Name     string
	Rating   *int
	IsEngine bool
	Title    string
}

// GameOutcome is the result a SendGameResult call reports to the engine
// once a game concludes.
type GameOutcome uint8

const (
	GameOngoing GameOutcome = iota
	GameWin
	GameLoss
	GameDraw
)

// GameResult pairs an outcome with the free-text reason the wire protocol
// carries alongside it (e.g. XBoard's "result 1-0 {White mates}").
type GameResult struct {
	Outcome GameOutcome
	Comment string
}

// Protocol is implemented once per wire dialect (engine/uci, engine/xboard).
// Every method blocks until the engine has acknowledged the corresponding
// exchange or ctx expires; Engine (the blocking facade) is the thing hosts
// normally call, and it delegates each of its methods straight through to a
// Protocol.
type Protocol interface {
	// Initialize performs the dialect's handshake (UCI "uci"/"uciok",
	// XBoard "xboard"/"protover"/feature negotiation) and returns the
	// engine's identity and declared options.
	Initialize(ctx context.Context) (InitializeResult, error)
	// Ping performs a synchronization round trip (UCI "isready"/"readyok"
	// style) without affecting search state.
	Ping(ctx context.Context) error
	// Configure applies target, the full set of desired non-default
	// option values, sending only the entries that differ from what was
	// last sent.
	Configure(ctx context.Context, target *OptionMap) error
	// Play starts a search on board under limit and blocks for its
	// result. If ponder is true and the engine supports pondering, the
	// returned PlayResult may include a Ponder move the caller can use to
	// start pondering the opponent's reply.
	Play(ctx context.Context, board Board, limit Limit, ponder bool) (PlayResult, error)
	// Analyse starts an infinite/bounded search on board under limit and
	// returns immediately with a streaming handle; the search keeps
	// running until the caller calls Stop or limit expires.
	Analyse(ctx context.Context, board Board, limit Limit) (*AnalysisStream, error)
	// SendOpponentInformation tells the engine about its upcoming
	// opponent, where the dialect supports it; a no-op otherwise.
	SendOpponentInformation(ctx context.Context, opponent OpponentInfo) error
	// SendGameResult informs the engine a game has concluded, where the
	// dialect supports it; a no-op otherwise.
	SendGameResult(ctx context.Context, board Board, result GameResult) error
	// Quit asks the engine to exit and waits for the child process to
	// die.
	Quit(ctx context.Context) error
}
