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

import "github.com/hxqdev/cchess/engine"

// configureCommand applies target's option values and completes
// synchronously: "setoption" carries no acknowledgement on the wire, so
// there is nothing to wait for once the lines are written.
type configureCommand struct {
	proto  *Protocol
	target *engine.OptionMap
	handle *engine.Handle[struct{}]
}

func (c *configureCommand) Start(w engine.Writer) (bool, error) {
	merged, err := c.proto.applyConfig(w, c.target)
	if err != nil {
		return true, err
	}
	c.proto.targetConfig = merged
	c.handle.Resolve(struct{}{})
	return true, nil
}

func (c *configureCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	return false, nil
}

func (c *configureCommand) Cancel(w engine.Writer) error { return nil }

var _ engine.Command = (*configureCommand)(nil)
