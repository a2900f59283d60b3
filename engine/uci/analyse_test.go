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

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

// newReadyAnalyseCommand builds an analyseCommand with its stream already
// attached, the way Start would leave it, without calling Start itself:
// Start spawns a goroutine watching the owning Driver, which has no
// meaningful nil-safe stand-in in these tests.
func newReadyAnalyseCommand(p *Protocol, board engine.Board, limit engine.Limit) (*analyseCommand, *engine.Handle[*engine.AnalysisStream]) {
	cmd := &analyseCommand{proto: p, board: board, limit: limit, turn: board.Turn()}
	handle := engine.NewHandle[*engine.AnalysisStream](cmd)
	cmd.handle = handle
	cmd.stream = engine.NewAnalysisStream(func(context.Context) error { return nil })
	return cmd, handle
}

func TestAnalyseCommand_LineReceived_InfoPushesToStream(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})

	done, err := cmd.LineReceived(&recordingWriter{}, "info depth 6 score cp 35")
	require.NoError(t, err)
	require.False(t, done)

	info, err := cmd.stream.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, *info.Depth)
}

func TestAnalyseCommand_LineReceived_BestmoveResolvesStream(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})

	done, err := cmd.LineReceived(&recordingWriter{}, "bestmove h2e2")
	require.NoError(t, err)
	require.True(t, done)

	best, err := cmd.stream.BestMove(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best.Move)
	require.Equal(t, "h2e2", best.Move.UCI())
}

func TestAnalyseCommand_LineReceived_BlankInfoLineIgnored(t *testing.T) {
	cmd, _ := newReadyAnalyseCommand(newTestProtocol(), fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}, engine.Limit{})
	done, err := cmd.LineReceived(&recordingWriter{}, "info")
	require.NoError(t, err)
	require.False(t, done)
}

func TestAnalyseCommand_Cancel_WritesStop(t *testing.T) {
	cmd, _ := newReadyAnalyseCommand(newTestProtocol(), fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}, engine.Limit{})
	w := &recordingWriter{}
	require.NoError(t, cmd.Cancel(w))
	require.Equal(t, []string{"stop"}, w.lines)
}

func TestAnalyseCommand_PrepareSearch_ForcesOptionsAndSendsNewGameOnFirstCall(t *testing.T) {
	p := newTestProtocol()
	p.options["ponder"] = engine.Option{Name: "Ponder", Type: engine.OptionCheck, Default: "false"}
	p.options["uci_analysemode"] = engine.Option{Name: "UCI_AnalyseMode", Type: engine.OptionCheck, Default: "false"}
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd := &analyseCommand{proto: p, board: board, limit: engine.Limit{}, turn: board.Turn()}
	w := &recordingWriter{}

	sentNewGame, err := cmd.prepareSearch(w)
	require.NoError(t, err)
	require.True(t, sentNewGame)
	require.Equal(t, []string{
		"setoption name Ponder value false",
		"setoption name UCI_AnalyseMode value true",
		"ucinewgame",
	}, w.lines)
}

func TestAnalyseCommand_StartSearch_WritesPositionThenInfiniteGoForEmptyLimit(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})
	w := &recordingWriter{}

	require.NoError(t, cmd.startSearch(w))
	require.Equal(t, []string{"position startpos", "go infinite"}, w.lines)
}

func TestAnalyseCommand_StartSearch_OmitsInfiniteWhenLimitHasFields(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{Depth: engine.Int(8)})
	w := &recordingWriter{}

	require.NoError(t, cmd.startSearch(w))
	require.Equal(t, []string{"position startpos", "go depth 8"}, w.lines)
}

func TestAnalyseCommand_LineReceived_ReadyokAfterAwaitingReadyStartsSearch(t *testing.T) {
	p := newTestProtocol()
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}
	cmd, _ := newReadyAnalyseCommand(p, board, engine.Limit{})
	cmd.awaitingReady = true
	w := &recordingWriter{}

	done, err := cmd.LineReceived(w, "readyok")
	require.NoError(t, err)
	require.False(t, done)
	require.False(t, cmd.awaitingReady)
	require.Equal(t, []string{"position startpos", "go infinite"}, w.lines)
}
