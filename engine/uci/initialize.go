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

	"github.com/hxqdev/cchess/engine"
)

// initializeCommand drives the "uci"/"id"/"option"/"uciok" handshake.
type initializeCommand struct {
	proto *Protocol

	id      map[string]string
	options []engine.Option

	handle *engine.Handle[engine.InitializeResult]
}

func (c *initializeCommand) Start(w engine.Writer) (bool, error) {
	c.id = map[string]string{}
	return false, w.WriteLine("uci")
}

func (c *initializeCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	switch token {
	case "id":
		kind, value := nextToken(rest)
		if kind == "name" || kind == "author" {
			c.id[kind] = value
		}
	case "option":
		if opt, ok := parseOptionDecl(rest); ok {
			c.options = append(c.options, opt)
			c.proto.options[strings.ToLower(opt.Name)] = opt
		}
	case "uciok":
		c.proto.id = c.id
		c.handle.Resolve(engine.InitializeResult{ID: c.id, Options: c.options})
		return true, nil
	}
	return false, nil
}

func (c *initializeCommand) Cancel(w engine.Writer) error { return nil }

// pingCommand drives an "isready"/"readyok" round trip.
type pingCommand struct {
	handle *engine.Handle[struct{}]
}

func (c *pingCommand) Start(w engine.Writer) (bool, error) {
	return false, w.WriteLine("isready")
}

func (c *pingCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	if strings.TrimSpace(line) == "readyok" {
		c.handle.Resolve(struct{}{})
		return true, nil
	}
	return false, nil
}

func (c *pingCommand) Cancel(w engine.Writer) error { return nil }

// quitCommand sends "quit" and completes immediately: UCI defines no
// acknowledgement for it, the engine is simply expected to exit.
type quitCommand struct {
	handle *engine.Handle[struct{}]
}

func (c *quitCommand) Start(w engine.Writer) (bool, error) {
	if err := w.WriteLine("quit"); err != nil {
		return true, err
	}
	c.handle.Resolve(struct{}{})
	return true, nil
}

func (c *quitCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	return false, nil
}

func (c *quitCommand) Cancel(w engine.Writer) error { return nil }

var (
	_ engine.Command = (*initializeCommand)(nil)
	_ engine.Command = (*pingCommand)(nil)
	_ engine.Command = (*quitCommand)(nil)
)
