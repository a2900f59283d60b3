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
	"strconv"
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// positionLine builds a UCI "position ..." command describing board,
// grounded on original_source's _position: "startpos" when board's root is
// the standard starting array, "fen <fen>" otherwise, followed by "moves
// ..." when any moves have been played.
func positionLine(board engine.Board) (string, error) {
	snap, err := snapshotOf(board)
	if err != nil {
		return "", err
	}
	return positionLineFromSnapshot(snap), nil
}

// positionLineFromSnapshot builds the same "position ..." line as
// positionLine, from an already-captured boardSnapshot. It is used to
// describe a speculative pondered line, which has no live engine.Board to
// query.
func positionLineFromSnapshot(snap boardSnapshot) string {
	var b strings.Builder
	b.WriteString("position ")
	if snap.rootFEN == cchess.DefaultFEN {
		b.WriteString("startpos")
	} else {
		b.WriteString("fen ")
		b.WriteString(snap.rootFEN)
	}
	if len(snap.moves) > 0 {
		b.WriteString(" moves ")
		b.WriteString(strings.Join(snap.moves, " "))
	}
	return b.String()
}

// goLine builds a UCI "go ..." command from limit, grounded on
// original_source's _go: "ponder" comes first when set, then wtime/btime/
// winc/binc/movestogo (clock information), then depth/nodes/mate/movetime,
// then infinite, in that fixed field order.
func goLine(limit engine.Limit, ponder, infinite bool) string {
	var fields []string

	if ponder {
		fields = append(fields, "ponder")
	}
	if limit.RedClock != nil {
		fields = append(fields, "wtime", msField(*limit.RedClock))
	}
	if limit.BlackClock != nil {
		fields = append(fields, "btime", msField(*limit.BlackClock))
	}
	if limit.RedInc != nil {
		fields = append(fields, "winc", msField(*limit.RedInc))
	}
	if limit.BlackInc != nil {
		fields = append(fields, "binc", msField(*limit.BlackInc))
	}
	if limit.RemainingMoves != nil {
		fields = append(fields, "movestogo", strconv.Itoa(*limit.RemainingMoves))
	}
	if limit.Depth != nil {
		fields = append(fields, "depth", strconv.Itoa(*limit.Depth))
	}
	if limit.Nodes != nil {
		fields = append(fields, "nodes", strconv.Itoa(*limit.Nodes))
	}
	if limit.Mate != nil {
		fields = append(fields, "mate", strconv.Itoa(*limit.Mate))
	}
	if limit.Time != nil {
		fields = append(fields, "movetime", msField(*limit.Time))
	}
	if infinite {
		fields = append(fields, "infinite")
	}

	if len(fields) == 0 {
		return "go infinite"
	}
	return "go " + strings.Join(fields, " ")
}

// limitEmpty reports whether limit carries no termination condition at all,
// the signal Analysis uses to fall back to "go infinite".
func limitEmpty(limit engine.Limit) bool {
	return limit.Time == nil && limit.Depth == nil && limit.Nodes == nil && limit.Mate == nil &&
		limit.RedClock == nil && limit.BlackClock == nil && limit.RedInc == nil && limit.BlackInc == nil &&
		limit.RemainingMoves == nil
}

// adjustPonderLimit derives the Limit to search the predicted ponder line
// with: each side's increment is folded into that side's own clock, the
// clock belonging to turn (the side on move in the pondered position) also
// has elapsed subtracted from it, and RemainingMoves is decremented, per
// Play step 8.
func adjustPonderLimit(limit engine.Limit, turn cchess.Color, elapsed time.Duration) engine.Limit {
	out := limit
	if out.RedClock != nil {
		v := *out.RedClock
		if out.RedInc != nil {
			v += *out.RedInc
		}
		if turn == cchess.Red {
			v -= elapsed
		}
		out.RedClock = &v
	}
	if out.BlackClock != nil {
		v := *out.BlackClock
		if out.BlackInc != nil {
			v += *out.BlackInc
		}
		if turn == cchess.Black {
			v -= elapsed
		}
		out.BlackClock = &v
	}
	if out.RemainingMoves != nil {
		n := *out.RemainingMoves - 1
		out.RemainingMoves = &n
	}
	return out
}

// msField formats d as integer milliseconds, clamped to a minimum of 1: a
// zero or sub-millisecond clock value must never read as "0" on the wire.
func msField(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return strconv.FormatInt(ms, 10)
}
