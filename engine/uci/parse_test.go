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

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	tok, rest := nextToken("  go depth 10  ")
	require.Equal(t, "go", tok)
	require.Equal(t, "depth 10", rest)

	tok, rest = nextToken("bestmove")
	require.Equal(t, "bestmove", tok)
	require.Equal(t, "", rest)
}

func TestParseInfo_FullLine(t *testing.T) {
	line := "depth 12 seldepth 20 time 1500 nodes 500000 nps 333333 " +
		"multipv 1 score cp 35 hashfull 420 tbhits 0 pv h2e2 h9g7"
	info := parseInfo(line, cchess.Red)

	require.NotNil(t, info.Depth)
	require.Equal(t, 12, *info.Depth)
	require.NotNil(t, info.SelDepth)
	require.Equal(t, 20, *info.SelDepth)
	require.NotNil(t, info.Time)
	require.InDelta(t, 1.5, *info.Time, 1e-9)
	require.NotNil(t, info.Nodes)
	require.Equal(t, 500000, *info.Nodes)
	require.NotNil(t, info.Score)
	require.Equal(t, engine.Cp(35), info.Score.Relative)
	require.Equal(t, cchess.Red, info.Score.Turn)
	require.Len(t, info.PV, 2)
}

func TestParseInfo_MateScoreWithBound(t *testing.T) {
	info := parseInfo("score mate -3 lowerbound", cchess.Black)
	require.NotNil(t, info.Score)
	require.Equal(t, engine.Mate(-3), info.Score.Relative)
	require.True(t, info.Lowerbound)
	require.False(t, info.Upperbound)
}

func TestParseInfo_StringConsumesRemainder(t *testing.T) {
	info := parseInfo("string mating net loaded ok", cchess.Red)
	require.Equal(t, "mating net loaded ok", info.String)
}

func TestParseInfo_CurrmoveAndRefutation(t *testing.T) {
	info := parseInfo("currmove h2e2 currmovenumber 3 refutation h2e2 h9g7 h0g2", cchess.Red)
	require.NotNil(t, info.CurrMove)
	require.NotNil(t, info.CurrMoveNumber)
	require.Equal(t, 3, *info.CurrMoveNumber)
	require.Len(t, info.Refutation, 1)
}

func TestParseBestmove_WithPonder(t *testing.T) {
	move, ponder := parseBestmove("h2e2 ponder h9g7")
	require.NotNil(t, move)
	require.NotNil(t, ponder)
}

func TestParseBestmove_Empty(t *testing.T) {
	move, ponder := parseBestmove("")
	require.Nil(t, move)
	require.Nil(t, ponder)
}

func TestParseBestmove_NullMove(t *testing.T) {
	move, _ := parseBestmove("0000")
	require.Nil(t, move)
}

func TestParseOptionDecl_Spin(t *testing.T) {
	opt, ok := parseOptionDecl("name Hash type spin default 16 min 1 max 1024")
	require.True(t, ok)
	require.Equal(t, "Hash", opt.Name)
	require.Equal(t, engine.OptionSpin, opt.Type)
	require.Equal(t, "16", opt.Default)
	require.NotNil(t, opt.Min)
	require.Equal(t, 1, *opt.Min)
	require.NotNil(t, opt.Max)
	require.Equal(t, 1024, *opt.Max)
}

func TestParseOptionDecl_ComboVars(t *testing.T) {
	opt, ok := parseOptionDecl("name Style type combo default Normal var Solid var Normal var Risky")
	require.True(t, ok)
	require.Equal(t, engine.OptionCombo, opt.Type)
	require.Equal(t, []string{"Solid", "Normal", "Risky"}, opt.Var)
}

func TestParseOptionDecl_MultiWordName(t *testing.T) {
	opt, ok := parseOptionDecl("name Skill Level type spin default 20 min 0 max 20")
	require.True(t, ok)
	require.Equal(t, "Skill Level", opt.Name)
}

func TestParseOptionDecl_NoName(t *testing.T) {
	_, ok := parseOptionDecl("type check default false")
	require.False(t, ok)
}
