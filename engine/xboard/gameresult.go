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
	"strings"

	"github.com/hxqdev/cchess/engine"
)

// gameResultCommand sends a final "result ..." line, grounded on
// original_source's send_game_result. Outcome.GameWin/GameLoss are relative
// to Red, the same convention XBoard's own "1-0"/"0-1" carries.
type gameResultCommand struct {
	proto  *Protocol
	board  engine.Board
	result engine.GameResult
	handle *engine.Handle[struct{}]
}

func (c *gameResultCommand) Start(w engine.Writer) (bool, error) {
	if strings.ContainsAny(c.result.Comment, "{}\n\r") {
		return true, engine.NewEngineError("invalid line break or curly braces in game ending message: %q", c.result.Comment)
	}
	if err := c.proto.syncPosition(w, c.board); err != nil {
		return true, err
	}

	var resultStr string
	switch c.result.Outcome {
	case engine.GameWin:
		resultStr = "1-0"
	case engine.GameLoss:
		resultStr = "0-1"
	case engine.GameDraw:
		resultStr = "1/2-1/2"
	default:
		resultStr = "*"
	}
	ending := ""
	if c.result.Comment != "" {
		ending = "{" + c.result.Comment + "}"
	}
	line := strings.TrimSpace("result " + resultStr + " " + ending)
	if err := w.WriteLine(line); err != nil {
		return true, err
	}
	c.handle.Resolve(struct{}{})
	return true, nil
}

func (c *gameResultCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	return false, nil
}

func (c *gameResultCommand) Cancel(w engine.Writer) error { return nil }

var _ engine.Command = (*gameResultCommand)(nil)
