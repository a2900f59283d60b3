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
	"testing"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

// fakeBoard is a minimal engine.Board for tests that never touch a real
// cchess.Game.
type fakeBoard struct {
	rootFEN string
	moves   []string
	turn    cchess.Color
}

func (b fakeBoard) RootFEN() (string, error) { return b.rootFEN, nil }
func (b fakeBoard) Moves() []string          { return b.moves }
func (b fakeBoard) Turn() cchess.Color       { return b.turn }

// recordingWriter captures every line a command writes, for assertions on
// exact wire sequencing.
type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) WriteLine(line string) error {
	w.lines = append(w.lines, line)
	return nil
}

func newTestProtocol() *Protocol {
	return New(nil)
}

func TestSyncPosition_FirstGameSendsNewAndSetboard(t *testing.T) {
	p := newTestProtocol()
	w := &recordingWriter{}
	board := fakeBoard{rootFEN: "non-default-fen", turn: cchess.Red}

	require.NoError(t, p.syncPosition(w, board))
	require.Equal(t, []string{"new", "force", "setboard non-default-fen"}, w.lines)
}

func TestSyncPosition_DefaultFENSkipsSetboard(t *testing.T) {
	p := newTestProtocol()
	w := &recordingWriter{}
	board := fakeBoard{rootFEN: cchess.DefaultFEN, turn: cchess.Red}

	require.NoError(t, p.syncPosition(w, board))
	require.Equal(t, []string{"new", "force"}, w.lines)
}

func TestSyncPosition_ReplaysMoves(t *testing.T) {
	p := newTestProtocol()
	w := &recordingWriter{}
	board := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7"}, turn: cchess.Red}

	require.NoError(t, p.syncPosition(w, board))
	require.Equal(t, []string{"new", "force", "h2e2", "h9g7"}, w.lines)
}

func TestSyncPosition_SameGameIncrementalReplay(t *testing.T) {
	p := newTestProtocol()
	board1 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2"}, turn: cchess.Black}
	require.NoError(t, p.syncPosition(&recordingWriter{}, board1))

	w := &recordingWriter{}
	board2 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7"}, turn: cchess.Red}
	require.NoError(t, p.syncPosition(w, board2))

	// Second call is not a new game: no "new" line, only the incremental
	// force + replay of the one new move.
	require.Equal(t, []string{"force", "h9g7"}, w.lines)
}

func TestSyncPosition_UnwindsByWholeMovePairs(t *testing.T) {
	p := newTestProtocol()
	board1 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7", "b2e2"}, turn: cchess.Red}
	require.NoError(t, p.syncPosition(&recordingWriter{}, board1))

	w := &recordingWriter{}
	board2 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2"}, turn: cchess.Black}
	require.NoError(t, p.syncPosition(w, board2))

	// Unwinding two plies (3 -> 1) down to the common prefix is exactly one
	// "remove" (which takes back a full move pair); no leftover single-ply
	// "undo" is needed here.
	require.Equal(t, []string{"force", "remove"}, w.lines)
}

func TestSyncPosition_UnwindsOddLeftoverWithUndo(t *testing.T) {
	p := newTestProtocol()
	board1 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7", "b2e2"}, turn: cchess.Red}
	require.NoError(t, p.syncPosition(&recordingWriter{}, board1))

	w := &recordingWriter{}
	board2 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7"}, turn: cchess.Red}
	require.NoError(t, p.syncPosition(w, board2))

	// 3 -> 2 is a single leftover ply: no whole pair to "remove", just one
	// "undo".
	require.Equal(t, []string{"force", "undo"}, w.lines)
}

func TestSyncPosition_NewRootFENTriggersFullResync(t *testing.T) {
	p := newTestProtocol()
	board1 := fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2"}, turn: cchess.Black}
	require.NoError(t, p.syncPosition(&recordingWriter{}, board1))

	w := &recordingWriter{}
	board2 := fakeBoard{rootFEN: "different-root", turn: cchess.Red}
	require.NoError(t, p.syncPosition(w, board2))

	require.Equal(t, []string{"new", "force", "setboard different-root"}, w.lines)
}

func TestSetOption_ManagedCategoriesSkipWireLine(t *testing.T) {
	p := newTestProtocol()
	w := &recordingWriter{}

	require.NoError(t, p.setOption(w, "name", "Arena"))
	require.NoError(t, p.setOption(w, "computer", "true"))
	require.Empty(t, w.lines)
}

func TestSetOption_CheckEmitsOneOrZero(t *testing.T) {
	p := newTestProtocol()
	p.options["UseBook"] = engine.Option{Name: "UseBook", Type: engine.OptionCheck, Default: "false"}
	w := &recordingWriter{}

	require.NoError(t, p.setOption(w, "UseBook", "true"))
	require.Equal(t, []string{"option UseBook=1"}, w.lines)
}

func TestSetOption_UnknownNameErrors(t *testing.T) {
	p := newTestProtocol()
	err := p.setOption(&recordingWriter{}, "NoSuchOption", "1")
	require.Error(t, err)
}

func TestApplyConfig_RejectsManagedOption(t *testing.T) {
	p := newTestProtocol()
	target := engine.NewOptionMap()
	target.Set("multipv", "4")

	_, err := p.applyConfig(&recordingWriter{}, target)
	require.Error(t, err)
}

func TestFeatureBoolAndInt(t *testing.T) {
	p := newTestProtocol()
	p.features["ping"] = "1"
	p.features["done"] = "0"
	p.features["myname"] = ""

	require.True(t, p.featureBool("ping", false))
	require.False(t, p.featureBool("done", true))
	require.True(t, p.featureBool("myname", false))
	require.False(t, p.featureBool("missing", false))

	n, ok := p.featureInt("ping")
	require.True(t, ok)
	require.Equal(t, 1, n)

	_, ok = p.featureInt("missing")
	require.False(t, ok)
}
