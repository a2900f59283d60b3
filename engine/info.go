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

package engine

import "github.com/hxqdev/cchess"

// Info is an open record aggregating whatever fields the engine reported
// for the most recent search step. Pointer
// fields are nil when the engine hasn't reported that key.
type Info struct {
	Score *PovScore
	PV    []cchess.Move

	Depth    *int
	SelDepth *int
	Time     *float64 // seconds
	Nodes    *int
	NPS      *int
	TBHits   *int
	MultiPV  *int // 1-based

	CurrMove       *cchess.Move
	CurrMoveNumber *int

	HashFull *int
	CPULoad  *int
	EBF      *float64

	WDL *PovWdl

	// Refutation maps a refuted root move to the continuation the
	// engine found.
	Refutation map[cchess.Move][]cchess.Move
	// Currline maps a CPU/thread index to the line it is searching.
	Currline map[int][]cchess.Move

	String string

	Lowerbound bool
	Upperbound bool
}

// Clone returns a deep-enough copy of info suitable for handing to a
// caller who must not observe later in-place mutation; slice/map fields are
// copied, pointer fields are shared (they are never mutated after being
// set).
func (info Info) Clone() Info {
	clone := info
	clone.PV = append([]cchess.Move(nil), info.PV...)
	if info.Refutation != nil {
		clone.Refutation = make(map[cchess.Move][]cchess.Move, len(info.Refutation))
		for k, v := range info.Refutation {
			clone.Refutation[k] = append([]cchess.Move(nil), v...)
		}
	}
	if info.Currline != nil {
		clone.Currline = make(map[int][]cchess.Move, len(info.Currline))
		for k, v := range info.Currline {
			clone.Currline[k] = append([]cchess.Move(nil), v...)
		}
	}
	return clone
}

// merge overlays non-nil/non-empty fields of patch onto info, used to fold
// a newly-parsed partial info line into the accumulated latest InfoDict
// (only the latest accumulated snapshot is kept).
func (info Info) merge(patch Info) Info {
	if patch.Score != nil {
		info.Score = patch.Score
	}
	if patch.PV != nil {
		info.PV = patch.PV
	}
	if patch.Depth != nil {
		info.Depth = patch.Depth
	}
	if patch.SelDepth != nil {
		info.SelDepth = patch.SelDepth
	}
	if patch.Time != nil {
		info.Time = patch.Time
	}
	if patch.Nodes != nil {
		info.Nodes = patch.Nodes
	}
	if patch.NPS != nil {
		info.NPS = patch.NPS
	}
	if patch.TBHits != nil {
		info.TBHits = patch.TBHits
	}
	if patch.MultiPV != nil {
		info.MultiPV = patch.MultiPV
	}
	if patch.CurrMove != nil {
		info.CurrMove = patch.CurrMove
	}
	if patch.CurrMoveNumber != nil {
		info.CurrMoveNumber = patch.CurrMoveNumber
	}
	if patch.HashFull != nil {
		info.HashFull = patch.HashFull
	}
	if patch.CPULoad != nil {
		info.CPULoad = patch.CPULoad
	}
	if patch.EBF != nil {
		info.EBF = patch.EBF
	}
	if patch.WDL != nil {
		info.WDL = patch.WDL
	}
	if patch.Refutation != nil {
		info.Refutation = patch.Refutation
	}
	if patch.Currline != nil {
		info.Currline = patch.Currline
	}
	if patch.String != "" {
		info.String = patch.String
	}
	if patch.Lowerbound {
		info.Lowerbound = true
	}
	if patch.Upperbound {
		info.Upperbound = true
	}
	return info
}
