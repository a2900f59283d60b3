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
	"strconv"
	"strings"

	"github.com/hxqdev/cchess/engine"
)

// initializeCommand drives the "xboard"/"protover 2"/"feature ..." feature
// negotiation handshake, grounded on original_source's
// XBoardInitializeCommand. Unlike that command, this one carries no
// call_later timeout: a stuck handshake is instead surfaced to the caller
// by its context expiring, the same mechanism every other command here
// relies on.
type initializeCommand struct {
	proto *Protocol

	id map[string]string

	handle *engine.Handle[engine.InitializeResult]
}

func (c *initializeCommand) Start(w engine.Writer) (bool, error) {
	c.id = map[string]string{}
	if err := w.WriteLine("xboard"); err != nil {
		return true, err
	}
	return false, w.WriteLine("protover 2")
}

func (c *initializeCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	token, rest := nextToken(line)
	if strings.HasPrefix(token, "#") {
		return false, nil
	}
	if token != "feature" {
		return false, nil
	}
	c.feature(rest)
	if c.proto.featureBool("done", false) {
		return c.end(w)
	}
	return false, nil
}

func (c *initializeCommand) feature(arg string) {
	for _, tok := range splitFeatureTokens(arg) {
		key, value, ok := parseFeatureToken(tok)
		if !ok {
			continue
		}
		if key == "option" {
			if opt, ok := parseXBoardOption(value); ok {
				switch opt.Name {
				case "random", "computer", "cores", "memory":
					// These stay the fixed built-ins/handled specially below.
				default:
					c.proto.options[opt.Name] = opt
				}
			}
			continue
		}
		c.proto.features[key] = value
	}
}

// end validates the mandatory features, emits rejected/accepted lines for
// the optional ones, seeds config/targetConfig from every option's default,
// and resolves the handshake result.
func (c *initializeCommand) end(w engine.Writer) (bool, error) {
	if !c.proto.featureBool("ping", false) {
		return true, engine.NewEngineError("xboard engine did not declare required feature: ping")
	}
	if !c.proto.featureBool("setboard", false) {
		return true, engine.NewEngineError("xboard engine did not declare required feature: setboard")
	}

	if !c.proto.featureBool("reuse", true) {
		if err := w.WriteLine("rejected reuse"); err != nil {
			return true, err
		}
	}
	if !c.proto.featureBool("sigterm", true) {
		if err := w.WriteLine("rejected sigterm"); err != nil {
			return true, err
		}
	}
	if c.proto.featureBool("san", false) {
		if err := w.WriteLine("rejected san"); err != nil {
			return true, err
		}
	}

	if name, ok := c.proto.features["myname"]; ok {
		c.id["name"] = name
	}

	if c.proto.featureBool("memory", false) {
		c.proto.options["memory"] = engine.Option{Name: "memory", Type: engine.OptionSpin, Default: "16", Min: engine.Int(1)}
		if err := w.WriteLine("accepted memory"); err != nil {
			return true, err
		}
	}
	if c.proto.featureBool("smp", false) {
		c.proto.options["cores"] = engine.Option{Name: "cores", Type: engine.OptionSpin, Default: "1", Min: engine.Int(1)}
		if err := w.WriteLine("accepted smp"); err != nil {
			return true, err
		}
	}
	if egt, ok := c.proto.features["egt"]; ok && egt != "" {
		for _, name := range strings.Split(egt, ",") {
			optName := "egtpath " + name
			c.proto.options[optName] = engine.Option{Name: optName, Type: engine.OptionPath}
		}
		if err := w.WriteLine("accepted egt"); err != nil {
			return true, err
		}
	}

	options := make([]engine.Option, 0, len(c.proto.options))
	for _, opt := range c.proto.options {
		options = append(options, opt)
		if opt.Default != "" {
			c.proto.config.Set(opt.Name, opt.Default)
			if !engine.IsManaged(opt.Name) {
				c.proto.targetConfig.Set(opt.Name, opt.Default)
			}
		}
	}

	c.proto.id = c.id
	c.handle.Resolve(engine.InitializeResult{ID: c.id, Options: options})
	return true, nil
}

func (c *initializeCommand) Cancel(w engine.Writer) error { return nil }

// pingCommand drives a "ping <n>"/"pong <n>" round trip, the XBoard
// synchronization idiom every other command here also relies on to detect
// completion of an asynchronous action.
type pingCommand struct {
	proto  *Protocol
	expect string

	handle *engine.Handle[struct{}]
}

func (c *pingCommand) Start(w engine.Writer) (bool, error) {
	c.proto.pingSeq++
	c.expect = "pong " + strconv.Itoa(c.proto.pingSeq)
	return false, w.WriteLine("ping " + strconv.Itoa(c.proto.pingSeq))
}

func (c *pingCommand) LineReceived(w engine.Writer, line string) (bool, error) {
	if strings.TrimSpace(line) == c.expect {
		c.handle.Resolve(struct{}{})
		return true, nil
	}
	return false, nil
}

func (c *pingCommand) Cancel(w engine.Writer) error { return nil }

// quitCommand sends "quit" and completes immediately; the child process's
// exit is awaited separately by Protocol.Quit via Driver.Close.
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

func (c *quitCommand) LineReceived(w engine.Writer, line string) (bool, error) { return false, nil }

func (c *quitCommand) Cancel(w engine.Writer) error { return nil }

var (
	_ engine.Command = (*initializeCommand)(nil)
	_ engine.Command = (*pingCommand)(nil)
	_ engine.Command = (*quitCommand)(nil)
)
