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

package xboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// analyseCommand drives "post"/"analyze", streaming every thinking-output
// line to an AnalysisStream until a requestStop-triggered "pong" ends it,
// grounded on original_source's XBoardAnalysisCommand. Limit thresholds are
// checked inline against each post line the way the original does, plus a
// watcher goroutine for the time limit (in place of its asyncio
// loop.call_later, since this command's Start always returns promptly and
// has no later callback point of its own to hang a timer off of).
type analyseCommand struct {
	proto *Protocol
	board engine.Board
	limit engine.Limit
	turn  cchess.Color

	bestMove  *cchess.Move
	stopped   bool
	finalPong string

	stream *engine.AnalysisStream
	handle *engine.Handle[*engine.AnalysisStream]
}

func (c *analyseCommand) Start(w engine.Writer) (bool, error) {
	if c.limit.RedClock != nil || c.limit.BlackClock != nil {
		return true, engine.NewEngineError("xboard analysis does not support clock limits")
	}
	if err := c.proto.syncPosition(w, c.board); err != nil {
		return true, err
	}
	if err := w.WriteLine("post"); err != nil {
		return true, err
	}
	if err := w.WriteLine("analyze"); err != nil {
		return true, err
	}

	c.stream = engine.NewAnalysisStream(func(ctx context.Context) error {
		return c.proto.driver.CancelCurrent(ctx)
	})
	c.handle.Resolve(c.stream)

	go func() {
		select {
		case <-c.proto.driver.Closed():
			c.stream.Fail(c.proto.driver.Err())
		case <-c.handle.Finished.Done():
		}
	}()

	if c.limit.Time != nil {
		deadline := *c.limit.Time
		go func() {
			select {
			case <-time.After(deadline):
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				c.proto.driver.CancelCurrent(ctx)
			case <-c.handle.Finished.Done():
			}
		}()
	}

	return false, nil
}

func (c *analyseCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(token, "#"):
		return false, nil
	case len(strings.Fields(line)) >= 4 && trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9':
		return false, c.handlePost(w, line)
	case token == "pong" && "pong "+strings.TrimSpace(rest) == c.finalPong:
		c.stream.Resolve(engine.BestMove{Move: c.bestMove})
		return true, nil
	}
	return false, nil
}

func (c *analyseCommand) handlePost(w engine.Writer, line string) error {
	info := parseXBoardPost(line, c.turn)
	c.stream.PushInfo(info)
	if len(info.PV) > 0 {
		c.bestMove = &info.PV[0]
	}

	exceeded := false
	if c.limit.Time != nil && info.Time != nil && *info.Time >= c.limit.Time.Seconds() {
		exceeded = true
	}
	if c.limit.Nodes != nil && info.Nodes != nil && *info.Nodes >= *c.limit.Nodes {
		exceeded = true
	}
	if c.limit.Depth != nil && info.Depth != nil && *info.Depth >= *c.limit.Depth {
		exceeded = true
	}
	if c.limit.Mate != nil && info.Score != nil && info.Score.Relative.Compare(engine.Mate(*c.limit.Mate)) >= 0 {
		exceeded = true
	}
	if exceeded {
		return c.requestStop(w)
	}
	return nil
}

func (c *analyseCommand) requestStop(w engine.Writer) error {
	if c.stopped {
		return nil
	}
	c.stopped = true
	if err := w.WriteLine("."); err != nil {
		return err
	}
	if err := w.WriteLine("exit"); err != nil {
		return err
	}
	c.proto.pingSeq++
	c.finalPong = "pong " + strconv.Itoa(c.proto.pingSeq)
	return w.WriteLine("ping " + strconv.Itoa(c.proto.pingSeq))
}

func (c *analyseCommand) Cancel(w engine.Writer) error {
	return c.requestStop(w)
}

var _ engine.Command = (*analyseCommand)(nil)
