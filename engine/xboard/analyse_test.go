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
	"testing"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

// newReadyAnalyseCommand builds an analyseCommand with its stream already
// attached, the way Start would leave it, without invoking Start itself
// (Start spawns goroutines that watch the owning Driver, which has no
// meaningful nil-safe stand-in here).
func newReadyAnalyseCommand(p *Protocol, board engine.Board, limit engine.Limit) (*analyseCommand, *engine.Handle[*engine.AnalysisStream]) {
	cmd := &analyseCommand{proto: p, board: board, limit: limit, turn: board.Turn()}
	handle := engine.NewHandle[*engine.AnalysisStream](cmd)
	cmd.handle = handle
	cmd.stream = engine.NewAnalysisStream(func(context.Context) error { return nil })
	return cmd, handle
}

func TestAnalyseCommand_Start_RejectsClockLimit(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	d := engine.Duration(0)
	cmd := &analyseCommand{proto: p, board: board, limit: engine.Limit{RedClock: d}, turn: board.Turn()}
	handle := engine.NewHandle[*engine.AnalysisStream](cmd)
	cmd.handle = handle

	_, err := cmd.Start(&recordingWriter{})
	require.Error(t, err)
}

func TestAnalyseCommand_PostLineExceedingDepthRequestsStop(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{Depth: engine.Int(5)})

	w := &recordingWriter{}
	done, err := cmd.LineReceived(w, "5 35 100 1000 h2e2 h9g7")
	require.NoError(t, err)
	require.False(t, done)
	require.True(t, cmd.stopped)
	require.Contains(t, w.lines, ".")
	require.Contains(t, w.lines, "exit")
	require.NotNil(t, cmd.bestMove)
}

func TestAnalyseCommand_PostLineBelowLimitDoesNotStop(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{Depth: engine.Int(20)})

	w := &recordingWriter{}
	done, err := cmd.LineReceived(w, "5 35 100 1000 h2e2 h9g7")
	require.NoError(t, err)
	require.False(t, done)
	require.False(t, cmd.stopped)
}

func TestAnalyseCommand_FinalPongResolvesStream(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})

	w := &recordingWriter{}
	require.NoError(t, cmd.requestStop(w))
	seq := cmd.finalPong[len("pong "):]

	done, err := cmd.LineReceived(w, "pong "+seq)
	require.NoError(t, err)
	require.True(t, done)

	best, err := cmd.stream.BestMove(context.Background())
	require.NoError(t, err)
	_ = best
}

func TestAnalyseCommand_RequestStopIsIdempotent(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})
	w := &recordingWriter{}

	require.NoError(t, cmd.requestStop(w))
	linesAfterFirst := len(w.lines)
	require.NoError(t, cmd.requestStop(w))
	require.Equal(t, linesAfterFirst, len(w.lines))
}

func TestAnalyseCommand_CommentLineIgnored(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})

	done, err := cmd.LineReceived(&recordingWriter{}, "# comment")
	require.NoError(t, err)
	require.False(t, done)
}
