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
	"testing"

	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

func newConfigureHandle(p *Protocol, target *engine.OptionMap) (*configureCommand, *engine.Handle[struct{}]) {
	cmd := &configureCommand{proto: p, target: target}
	handle := engine.NewHandle[struct{}](cmd)
	cmd.handle = handle
	return cmd, handle
}

func TestConfigureCommand_Start_AppliesAndResolves(t *testing.T) {
	p := newTestProtocol()
	p.options["usebook"] = engine.Option{Name: "UseBook", Type: engine.OptionCheck, Default: "false"}
	target := engine.NewOptionMap()
	target.Set("UseBook", "true")

	cmd, handle := newConfigureHandle(p, target)
	w := &recordingWriter{}

	done, err := cmd.Start(w)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, []string{"setoption name UseBook value true"}, w.lines)

	_, err = handle.Result.Wait(context.Background())
	require.NoError(t, err)

	v, ok := p.targetConfig.Get("UseBook")
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestConfigureCommand_Start_RejectsManagedOption(t *testing.T) {
	p := newTestProtocol()
	target := engine.NewOptionMap()
	target.Set("MultiPV", "4")
	cmd, _ := newConfigureHandle(p, target)

	done, err := cmd.Start(&recordingWriter{})
	require.Error(t, err)
	require.True(t, done)
}

func TestConfigureCommand_LineReceivedNeverFinishes(t *testing.T) {
	cmd, _ := newConfigureHandle(newTestProtocol(), engine.NewOptionMap())
	done, err := cmd.LineReceived(&recordingWriter{}, "info string irrelevant")
	require.NoError(t, err)
	require.False(t, done)
}

func TestConfigureCommand_CancelIsNoOp(t *testing.T) {
	cmd, _ := newConfigureHandle(newTestProtocol(), engine.NewOptionMap())
	require.NoError(t, cmd.Cancel(&recordingWriter{}))
}
