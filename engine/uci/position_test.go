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
	"testing"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

func TestPositionLine_StartposWhenDefaultFEN(t *testing.T) {
	line, err := positionLine(fakeBoard{rootFEN: cchess.DefaultFEN})
	require.NoError(t, err)
	require.Equal(t, "position startpos", line)
}

func TestPositionLine_FenWhenNonDefault(t *testing.T) {
	other := "4k4/9/9/9/9/9/9/9/9/4K4 w - - 0 1"
	line, err := positionLine(fakeBoard{rootFEN: other})
	require.NoError(t, err)
	require.Equal(t, "position fen "+other, line)
}

func TestPositionLine_AppendsMoves(t *testing.T) {
	line, err := positionLine(fakeBoard{rootFEN: cchess.DefaultFEN, moves: []string{"h2e2", "h9g7"}})
	require.NoError(t, err)
	require.Equal(t, "position startpos moves h2e2 h9g7", line)
}

func TestGoLine_InfiniteWithNoFields(t *testing.T) {
	require.Equal(t, "go infinite", goLine(engine.Limit{}, false, true))
}

func TestGoLine_EmptyLimitWithoutInfiniteFlagStillWritesGoInfinite(t *testing.T) {
	require.Equal(t, "go infinite", goLine(engine.Limit{}, false, false))
}

func TestGoLine_DepthOnly(t *testing.T) {
	require.Equal(t, "go depth 12", goLine(engine.Limit{Depth: engine.Int(12)}, false, false))
}

func TestGoLine_FieldOrderIsClockThenSearchThenInfinite(t *testing.T) {
	wtime := 5 * time.Second
	btime := 6 * time.Second
	winc := 100 * time.Millisecond
	binc := 200 * time.Millisecond
	limit := engine.Limit{
		RedClock:       &wtime,
		BlackClock:     &btime,
		RedInc:         &winc,
		BlackInc:       &binc,
		RemainingMoves: engine.Int(30),
		Depth:          engine.Int(10),
		Nodes:          engine.Int(5000),
		Mate:           engine.Int(3),
		Time:           engine.Duration(2 * time.Second),
	}
	want := "go wtime 5000 btime 6000 winc 100 binc 200 movestogo 30 depth 10 nodes 5000 mate 3 movetime 2000 infinite"
	require.Equal(t, want, goLine(limit, false, true))
}

func TestGoLine_PonderPrependsPonderFieldFirst(t *testing.T) {
	wtime := 5 * time.Second
	limit := engine.Limit{RedClock: &wtime, Depth: engine.Int(10)}
	require.Equal(t, "go ponder wtime 5000 depth 10", goLine(limit, true, false))
}

func TestGoLine_PonderAloneWithEmptyLimit(t *testing.T) {
	require.Equal(t, "go ponder", goLine(engine.Limit{}, true, false))
}

func TestMsField_RoundsDownToMilliseconds(t *testing.T) {
	require.Equal(t, "1500", msField(1500*time.Millisecond))
}

func TestMsField_ClampsSubMillisecondToOne(t *testing.T) {
	require.Equal(t, "1", msField(500*time.Microsecond))
}

func TestLimitEmpty_TrueForZeroValue(t *testing.T) {
	require.True(t, limitEmpty(engine.Limit{}))
}

func TestLimitEmpty_FalseWhenAnyFieldSet(t *testing.T) {
	require.False(t, limitEmpty(engine.Limit{Depth: engine.Int(5)}))
}

func TestAdjustPonderLimit_FoldsIncrementAndSubtractsElapsedFromSideToMove(t *testing.T) {
	redClock := 10 * time.Second
	blackClock := 12 * time.Second
	redInc := 2 * time.Second
	limit := engine.Limit{
		RedClock:       &redClock,
		BlackClock:     &blackClock,
		RedInc:         &redInc,
		RemainingMoves: engine.Int(5),
	}
	out := adjustPonderLimit(limit, cchess.Red, 3*time.Second)
	require.Equal(t, 9*time.Second, *out.RedClock)
	require.Equal(t, 12*time.Second, *out.BlackClock)
	require.Equal(t, 4, *out.RemainingMoves)
}
