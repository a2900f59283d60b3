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
	"context"
	"strings"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// analyseCommand drives an "infinite" search, streaming every "info" line to
// an AnalysisStream until "bestmove" (or an engine crash) ends it.
type analyseCommand struct {
	proto *Protocol
	board engine.Board
	limit engine.Limit

	snap boardSnapshot
	turn cchess.Color

	awaitingReady bool

	stream *engine.AnalysisStream
	handle *engine.Handle[*engine.AnalysisStream]
}

func (c *analyseCommand) Start(w engine.Writer) (bool, error) {
	sentNewGame, err := c.prepareSearch(w)
	if err != nil {
		return true, err
	}

	c.stream = engine.NewAnalysisStream(func(ctx context.Context) error {
		return c.proto.driver.CancelCurrent(ctx)
	})
	c.handle.Resolve(c.stream)

	// The driver only fails Result on termination, and Result is already
	// resolved above; watch Closed directly so a crash mid-search still
	// unblocks a caller waiting on the stream instead of hanging it.
	go func() {
		select {
		case <-c.proto.driver.Closed():
			c.stream.Fail(c.proto.driver.Err())
		case <-c.handle.Finished.Done():
		}
	}()

	if sentNewGame {
		c.awaitingReady = true
		return false, w.WriteLine("isready")
	}
	return false, c.startSearch(w)
}

// prepareSearch forces the managed analysis options and decides whether a
// fresh ucinewgame went out, without touching the stream or spawning the
// crash-watcher goroutine, so it can be exercised directly in isolation.
func (c *analyseCommand) prepareSearch(w engine.Writer) (bool, error) {
	if err := c.proto.applyManagedAnalyseOptions(w); err != nil {
		return false, err
	}
	return c.proto.ensureNewGame(w, c.board)
}

// startSearch emits "position ..." followed by "go ...", either right from
// Start (no ucinewgame needed) or once "readyok" answers the "isready" Start
// sent after a fresh ucinewgame.
func (c *analyseCommand) startSearch(w engine.Writer) error {
	line, err := positionLine(c.board)
	if err != nil {
		return err
	}
	if err := w.WriteLine(line); err != nil {
		return err
	}
	return w.WriteLine(goLine(c.limit, false, limitEmpty(c.limit)))
}

func (c *analyseCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	switch token {
	case "info":
		if strings.TrimSpace(rest) != "" {
			c.stream.PushInfo(parseInfo(rest, c.turn))
		}
		return false, nil
	case "bestmove":
		move, ponderMove := parseBestmove(rest)
		c.stream.Resolve(engine.BestMove{Move: move, Ponder: ponderMove})
		return true, nil
	}
	if c.awaitingReady && strings.TrimSpace(line) == "readyok" {
		c.awaitingReady = false
		return false, c.startSearch(w)
	}
	return false, nil
}

func (c *analyseCommand) Cancel(w engine.Writer) error {
	return w.WriteLine("stop")
}

var _ engine.Command = (*analyseCommand)(nil)
