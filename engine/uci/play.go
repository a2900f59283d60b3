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

package uci

import (
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// pondering records an in-flight "go ponder" search started speculatively
// after a Play call's first bestmove, so a later Play matching snap can
// short-circuit straight to "ponderhit" instead of stopping and restarting
// the search, per original_source's may_ponderhit convention.
type pondering struct {
	snap   boardSnapshot
	result *engine.Future[engine.PlayResult]
}

// playCommand drives one "position"/"go"/"bestmove" exchange, optionally
// continuing into a speculative "go ponder" phase after its first bestmove.
type playCommand struct {
	proto  *Protocol
	board  engine.Board
	limit  engine.Limit
	ponder bool

	snap boardSnapshot
	turn cchess.Color
	info engine.Info

	// phase is 0 while searching the requested move, 1 while pondering
	// the opponent's guessed reply.
	phase int

	// awaitingReady is set once "isready" has gone out after a fresh
	// ucinewgame, and cleared once the matching "readyok" arrives.
	awaitingReady bool
	startedAt     time.Time

	handle *engine.Handle[engine.PlayResult]
}

func (c *playCommand) Start(w engine.Writer) (bool, error) {
	c.startedAt = time.Now()

	if err := c.proto.applyManagedPlayOptions(w, c.ponder); err != nil {
		return true, err
	}
	sentNewGame, err := c.proto.ensureNewGame(w, c.board)
	if err != nil {
		return true, err
	}
	if sentNewGame {
		c.awaitingReady = true
		return false, w.WriteLine("isready")
	}
	return false, c.startSearch(w)
}

// startSearch emits "position ..." followed by "go ...", either right from
// Start (no ucinewgame needed) or once "readyok" answers the "isready" Start
// sent after a fresh ucinewgame.
func (c *playCommand) startSearch(w engine.Writer) error {
	line, err := positionLine(c.board)
	if err != nil {
		return err
	}
	if err := w.WriteLine(line); err != nil {
		return err
	}
	return w.WriteLine(goLine(c.limit, false, false))
}

func (c *playCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	switch token {
	case "info":
		if strings.TrimSpace(rest) != "" {
			c.info = c.info.merge(parseInfo(rest, c.turn))
		}
		return false, nil
	case "bestmove":
		move, ponderMove := parseBestmove(rest)
		result := engine.PlayResult{Move: move, Ponder: ponderMove, Info: c.info}
		if c.phase == 1 {
			if c.proto.pondering != nil {
				c.proto.pondering.result.Resolve(result)
				c.proto.pondering = nil
			}
			return true, nil
		}
		c.handle.Resolve(result)
		if c.ponder && move != nil && ponderMove != nil {
			c.phase = 1
			ponderSnap := extendSnapshot(c.snap, *move, *ponderMove)
			c.proto.pondering = &pondering{
				snap:   ponderSnap,
				result: engine.NewFuture[engine.PlayResult](),
			}
			c.info = engine.Info{}
			if err := w.WriteLine(positionLineFromSnapshot(ponderSnap)); err != nil {
				return true, err
			}
			ponderLimit := adjustPonderLimit(c.limit, c.turn, time.Since(c.startedAt))
			if err := w.WriteLine(goLine(ponderLimit, true, false)); err != nil {
				return true, err
			}
			return false, nil
		}
		return true, nil
	}
	if c.awaitingReady && strings.TrimSpace(line) == "readyok" {
		c.awaitingReady = false
		return false, c.startSearch(w)
	}
	return false, nil
}

// Cancel sends "stop", which ends either the primary search or an
// in-progress ponder with a "bestmove" line that LineReceived discards.
func (c *playCommand) Cancel(w engine.Writer) error {
	return w.WriteLine("stop")
}

func extendSnapshot(snap boardSnapshot, moves ...cchess.Move) boardSnapshot {
	out := boardSnapshot{rootFEN: snap.rootFEN, moves: append([]string(nil), snap.moves...)}
	for _, m := range moves {
		out.moves = append(out.moves, m.UCI())
	}
	return out
}

var _ engine.Command = (*playCommand)(nil)
