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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// playCommand drives one "go" search through to its "move" line, grounded
// on original_source's XBoardPlayCommand: thinking output arrives via
// "post" lines, and completion is detected via a "ping"/"pong" round trip
// sent right after the move (or, while pondering, a second round trip sent
// after "easy" stops the speculative search).
type playCommand struct {
	proto  *Protocol
	board  engine.Board
	limit  engine.Limit
	ponder bool
	turn   cchess.Color

	result engine.PlayResult

	pongAfterMove   string
	pongAfterPonder string
	stopped         bool

	handle *engine.Handle[engine.PlayResult]
}

func (c *playCommand) Start(w engine.Writer) (bool, error) {
	if err := c.proto.syncPosition(w, c.board); err != nil {
		return true, err
	}

	clock, inc := c.clockAndInc()
	if err := c.sendTimeControl(w, clock, inc); err != nil {
		return true, err
	}

	if c.limit.Nodes != nil {
		if c.limit.Time != nil || c.limit.RedClock != nil || c.limit.BlackClock != nil || inc != nil {
			return true, engine.NewEngineError("xboard does not support mixing node limits with time limits")
		}
		if n, ok := c.proto.featureInt("nps"); ok && n == 0 {
			return true, engine.NewEngineError("xboard engine does not support node limits (feature nps=0)")
		}
		if err := w.WriteLine("nps 1"); err != nil {
			return true, err
		}
		if err := w.WriteLine("st " + strconv.Itoa(maxInt(1, *c.limit.Nodes))); err != nil {
			return true, err
		}
	}
	if c.limit.Depth != nil {
		if err := w.WriteLine("sd " + strconv.Itoa(maxInt(1, *c.limit.Depth))); err != nil {
			return true, err
		}
	}
	if c.limit.RedClock != nil {
		label := "otim"
		if c.turn == cchess.Red {
			label = "time"
		}
		if err := w.WriteLine(label + " " + centiseconds(*c.limit.RedClock)); err != nil {
			return true, err
		}
	}
	if c.limit.BlackClock != nil {
		label := "time"
		if c.turn == cchess.Red {
			label = "otim"
		}
		if err := w.WriteLine(label + " " + centiseconds(*c.limit.BlackClock)); err != nil {
			return true, err
		}
	}

	if err := w.WriteLine("post"); err != nil {
		return true, err
	}
	if c.ponder {
		if err := w.WriteLine("hard"); err != nil {
			return true, err
		}
	} else {
		if err := w.WriteLine("easy"); err != nil {
			return true, err
		}
	}
	return false, w.WriteLine("go")
}

func (c *playCommand) clockAndInc() (clock, inc *time.Duration) {
	if c.turn == cchess.Red {
		return c.limit.RedClock, c.limit.RedInc
	}
	return c.limit.BlackClock, c.limit.BlackInc
}

func (c *playCommand) sendTimeControl(w engine.Writer, clock, inc *time.Duration) error {
	if c.limit.RemainingMoves != nil || clock != nil || inc != nil {
		totalSec := 0
		if clock != nil {
			totalSec = int(clock.Seconds())
		}
		remaining := 0
		if c.limit.RemainingMoves != nil {
			remaining = *c.limit.RemainingMoves
		}
		incSec := 0
		if inc != nil {
			incSec = int(inc.Seconds())
		}
		line := fmt.Sprintf("level %d %d:%02d %d", remaining, totalSec/60, totalSec%60, incSec)
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	if c.limit.Time != nil {
		secs := c.limit.Time.Seconds()
		if secs < 0.01 {
			secs = 0.01
		}
		if err := w.WriteLine(fmt.Sprintf("st %g", secs)); err != nil {
			return err
		}
	}
	return nil
}

func centiseconds(d time.Duration) string {
	return strconv.Itoa(maxInt(1, int(math.Round(d.Seconds()*100))))
}

func (c *playCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	trimmed := strings.TrimSpace(line)
	switch {
	case token == "move":
		if m, err := cchess.ParseUCIMove(strings.TrimSpace(rest)); err == nil && !m.IsNull() && c.result.Move == nil {
			c.result.Move = &m
			if err := c.pingAfterMove(w); err != nil {
				return true, err
			}
		}
	case token == "Hint:":
		if m, err := cchess.ParseUCIMove(strings.TrimSpace(rest)); err == nil && !m.IsNull() && c.result.Move != nil && c.result.Ponder == nil {
			c.result.Ponder = &m
		}
	case token == "pong":
		pongLine := "pong " + strings.TrimSpace(rest)
		switch pongLine {
		case c.pongAfterMove:
			c.handle.Resolve(c.result)
			if !c.ponder {
				return true, nil
			}
		case c.pongAfterPonder:
			c.handle.Resolve(c.result)
			return true, nil
		}
	case token == "offer" && strings.TrimSpace(rest) == "draw":
		c.result.DrawOffered = true
		if err := c.pingAfterMove(w); err != nil {
			return true, err
		}
	case trimmed == "resign":
		c.result.Resigned = true
		if err := c.pingAfterMove(w); err != nil {
			return true, err
		}
	case token == "1-0" || token == "0-1" || token == "1/2-1/2":
		if strings.Contains(line, "resign") {
			c.result.Resigned = true
		}
		if err := c.pingAfterMove(w); err != nil {
			return true, err
		}
	case strings.HasPrefix(token, "#"):
	case len(strings.Fields(line)) >= 4 && trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9':
		c.result.Info = parseXBoardPost(line, c.turn)
	}
	return false, nil
}

func (c *playCommand) pingAfterMove(w engine.Writer) error {
	if c.pongAfterMove != "" {
		return nil
	}
	c.proto.pingSeq++
	c.pongAfterMove = "pong " + strconv.Itoa(c.proto.pingSeq)
	return w.WriteLine("ping " + strconv.Itoa(c.proto.pingSeq))
}

// Cancel stops the search (per original_source, only an in-progress ponder
// needs an explicit "easy"; a foreground search is already racing its own
// move/pong completion and Cancel only arms the ponder-stop round trip).
func (c *playCommand) Cancel(w engine.Writer) error {
	if c.stopped {
		return nil
	}
	c.stopped = true
	if !c.ponder {
		return nil
	}
	if err := w.WriteLine("easy"); err != nil {
		return err
	}
	c.proto.pingSeq++
	c.pongAfterPonder = "pong " + strconv.Itoa(c.proto.pingSeq)
	return w.WriteLine("ping " + strconv.Itoa(c.proto.pingSeq))
}

var _ engine.Command = (*playCommand)(nil)
