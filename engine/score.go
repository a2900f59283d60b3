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

import (
	"fmt"
	"math"

	"github.com/hxqdev/cchess"
)

// scoreKind tags the closed sum a [Score] represents.
type scoreKind uint8

const (
	scoreCp scoreKind = iota
	scoreMate
	scoreMateGiven
)

// Score is a closed sum of a centipawn value, a signed ply-distance to mate,
// or the singular "mate has been delivered" value. The zero value is
// Cp(0).
type Score struct {
	kind scoreKind
	n    int // centipawns for Cp, ply count for Mate (sign significant)
}

// Cp returns a centipawn score.
func Cp(n int) Score { return Score{kind: scoreCp, n: n} }

// Mate returns a signed ply-distance-to-mate score. Positive k means "we
// mate in k", negative means "we are mated in |k|", zero means "we are
// mated right now".
func Mate(k int) Score { return Score{kind: scoreMate, n: k} }

// MateGiven is the singular "we have delivered mate" value, equivalently
// -Mate(0).
var MateGiven = Score{kind: scoreMateGiven}

// IsMate reports whether s represents a mate (of either sign) or MateGiven.
func (s Score) IsMate() bool {
	return s.kind == scoreMate || s.kind == scoreMateGiven
}

// String renders s the way engines report it conversationally: "+120",
// "-35", "#+3", "#-2", or "#+0" for MateGiven.
func (s Score) String() string {
	switch s.kind {
	case scoreCp:
		if s.n > 0 {
			return fmt.Sprintf("+%d", s.n)
		}
		return fmt.Sprintf("%d", s.n)
	case scoreMate:
		if s.n > 0 {
			return fmt.Sprintf("#+%d", s.n)
		}
		return fmt.Sprintf("#%d", s.n)
	case scoreMateGiven:
		return "#+0"
	default:
		return "?"
	}
}

// Negate returns -s: -Cp(n)=Cp(-n), -Mate(k)=Mate(-k) for k≠0,
// -Mate(0)=MateGiven, -MateGiven=Mate(0).
func (s Score) Negate() Score {
	switch s.kind {
	case scoreCp:
		return Cp(-s.n)
	case scoreMate:
		if s.n == 0 {
			return MateGiven
		}
		return Mate(-s.n)
	case scoreMateGiven:
		return Mate(0)
	default:
		return s
	}
}

// tier/key implement the total order a Score's mate/cp value is compared in:
//
//	Mate(0) < Mate(-1) < Mate(-2) … < Cp(−∞) … < Cp(+∞) < … Mate(+2) < Mate(+1) < MateGiven
func (s Score) tierKey() (tier int, key int) {
	switch s.kind {
	case scoreCp:
		return 1, s.n
	case scoreMate:
		if s.n <= 0 {
			return 0, -s.n
		}
		return 2, -s.n
	case scoreMateGiven:
		return 2, math.MaxInt
	default:
		return 1, 0
	}
}

// Compare returns -1, 0, or 1 as s is less than, equal to, or greater than
// other in the same total order.
func (s Score) Compare(other Score) int {
	at, ak := s.tierKey()
	bt, bk := other.tierKey()
	switch {
	case at != bt:
		if at < bt {
			return -1
		}
		return 1
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	default:
		return 0
	}
}

// Equal reports whether s and other denote the same game-theoretic value.
func (s Score) Equal(other Score) bool {
	return s.Compare(other) == 0
}

// Abs returns the absolute value of s in the score order (s if s >=
// Cp(0), else -s).
func (s Score) Abs() Score {
	if s.Compare(Cp(0)) < 0 {
		return s.Negate()
	}
	return s
}

// ScoreValue returns the numeric score a `score(mate_score)` style helper
// would: n for Cp, mateScore-k for a positive mate in k, -mateScore-k
// for a non-positive mate, mateScore for MateGiven. If mateScore is nil and
// s is a mate variant, ok is false ("absent").
func (s Score) ScoreValue(mateScore *int) (n int, ok bool) {
	switch s.kind {
	case scoreCp:
		return s.n, true
	case scoreMate:
		if mateScore == nil {
			return 0, false
		}
		if s.n > 0 {
			return *mateScore - s.n, true
		}
		return -*mateScore - s.n, true
	case scoreMateGiven:
		if mateScore == nil {
			return 0, false
		}
		return *mateScore, true
	default:
		return 0, false
	}
}

// PovScore is a Score tagged with the side it is relative to.
type PovScore struct {
	Relative Score
	Turn     cchess.Color
}

// Pov returns the score from color's point of view, negating Relative if
// color differs from the tagged Turn.
func (p PovScore) Pov(color cchess.Color) Score {
	if color == p.Turn {
		return p.Relative
	}
	return p.Relative.Negate()
}

// Wdl is a non-negative win/draw/loss triple, conventionally summing to
// 1000.
type Wdl struct {
	Wins   int
	Draws  int
	Losses int
}

// Negate swaps Wins and Losses.
func (w Wdl) Negate() Wdl {
	return Wdl{Wins: w.Losses, Draws: w.Draws, Losses: w.Wins}
}

// Expectation returns (wins + draws/2) / total as a fraction in [0, 1].
func (w Wdl) Expectation() float64 {
	total := w.Wins + w.Draws + w.Losses
	if total == 0 {
		return 0.5
	}
	return (float64(w.Wins) + float64(w.Draws)/2) / float64(total)
}

// PovWdl is a Wdl tagged with the side it is relative to.
type PovWdl struct {
	Relative Wdl
	Turn     cchess.Color
}

// Pov returns the Wdl from color's point of view.
func (p PovWdl) Pov(color cchess.Color) Wdl {
	if color == p.Turn {
		return p.Relative
	}
	return p.Relative.Negate()
}

// WdlModel names one of the fixed WDL derivation models this package
// supports.
type WdlModel string

const (
	ModelSF      WdlModel = "sf" // alias for the latest model (sf16.1)
	ModelSF161   WdlModel = "sf16.1"
	ModelSF16    WdlModel = "sf16"
	ModelSF151   WdlModel = "sf15.1"
	ModelSF15    WdlModel = "sf15"
	ModelSF14    WdlModel = "sf14"
	ModelSF12    WdlModel = "sf12"
	ModelLicchess WdlModel = "licchess"
)

// clamp returns cp clamped to [lo, hi].
func clamp(cp, lo, hi float64) float64 {
	return math.Min(hi, math.Max(cp, lo))
}

// sfWinsGeneric implements the shared shape of every Stockfish-derived
// win-rate model: a cubic-in-ply fit for a(m)/b(m), a pawn-normalization
// constant, a clamped centipawn input, then a logistic curve. Coefficients
// below are lifted verbatim from the published Stockfish uci.cpp formulas
// (cross-checked against original_source/cchess/engine.py's _sfNN_wins
// helpers, which carry the same constants with commit-pinned source links).
func sfWinsGeneric(cp float64, m float64, aCoef, bCoef [4]float64, normalize float64, clampLo, clampHi float64) int {
	a := (((aCoef[0]*m+aCoef[1])*m+aCoef[2])*m + aCoef[3])
	b := (((bCoef[0]*m+bCoef[1])*m+bCoef[2])*m + bCoef[3])
	x := clamp(cp*normalize/100, clampLo, clampHi)
	return int(0.5 + 1000/(1+math.Exp((a-x)/b)))
}

func sf161Wins(cp int, ply int) int {
	m := clamp(float64(ply)/2+1, 8, 120) / 32
	a := [4]float64{-1.06249702, 7.42016937, 0.89425629, 0}
	b := [4]float64{-5.33122190, 39.57831533, -90.84473771, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 348.60356174), offsetA(b, 123.40620748), 356, -4000, 4000)
}

func sf16Wins(cp int, ply int) int {
	m := clamp(float64(max(ply, 0)), 0, 240) / 64
	a := [4]float64{0.38036525, -2.82015070, 23.17882135, 0}
	b := [4]float64{-2.29434733, 13.27689788, -14.26828904, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 307.36768407), offsetA(b, 63.45318330), 328, -4000, 4000)
}

func sf151Wins(cp int, ply int) int {
	m := clamp(float64(max(ply, 0)), 0, 240) / 64
	a := [4]float64{-0.58270499, 2.68512549, 15.24638015, 0}
	b := [4]float64{-2.65734562, 15.96509799, -20.69040836, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 344.49745382), offsetA(b, 73.61029937), 361, -4000, 4000)
}

func sf15Wins(cp int, ply int) int {
	m := clamp(float64(max(ply, 0)), 0, 240) / 64
	a := [4]float64{-1.17202460e-1, 5.94729104e-1, 1.12065546e+1, 0}
	b := [4]float64{-1.79066759, 11.30759193, -17.43677612, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 1.22606222e+2), offsetA(b, 36.47147479), 100, -2000, 2000)
}

func sf14Wins(cp int, ply int) int {
	m := clamp(float64(max(ply, 0)), 0, 240) / 64
	a := [4]float64{-3.68389304, 30.07065921, -60.52878723, 0}
	b := [4]float64{-2.01818570, 15.85685038, -29.83452023, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 149.53378557), offsetA(b, 47.59078827), 100, -2000, 2000)
}

func sf12Wins(cp int, ply int) int {
	m := clamp(float64(max(ply, 0)), 0, 240) / 64
	a := [4]float64{-8.24404295, 64.23892342, -95.73056462, 0}
	b := [4]float64{-3.37154371, 28.44489198, -56.67657741, 0}
	return sfWinsGeneric(float64(cp), m, offsetA(a, 153.86478679), offsetA(b, 72.05858751), 100, -1000, 1000)
}

// offsetA replaces the trailing zero placeholder in coef with the model's
// constant term, matching the `+ K` tail of each Stockfish polynomial.
func offsetA(coef [4]float64, k float64) [4]float64 {
	coef[3] = k
	return coef
}

func licchessRawWins(cp int) int {
	return int(math.Round(1000 / (1 + math.Exp(-0.00368208*float64(cp)))))
}

// Wdl derives a win/draw/loss triple from s under the named model, given
// the ply at which the score was reported. model defaults to [ModelSF] for
// any unrecognized/empty name, matching the reference implementation's
// fallback behavior.
func (s Score) Wdl(model WdlModel, ply int) Wdl {
	switch s.kind {
	case scoreCp:
		return cpWdl(s.n, model, ply)
	case scoreMate:
		return mateWdl(s.n, model)
	case scoreMateGiven:
		return Wdl{Wins: 1000, Draws: 0, Losses: 0}
	default:
		return Wdl{}
	}
}

func cpWdl(cp int, model WdlModel, ply int) Wdl {
	var wins, losses int
	if model == ModelLicchess {
		c := int(clamp(float64(cp), -1000, 1000))
		wins = licchessRawWins(c)
		losses = 1000 - wins
	} else {
		winsFn := sfWinsFunc(model)
		wins = winsFn(cp, ply)
		losses = winsFn(-cp, ply)
	}
	return Wdl{Wins: wins, Draws: 1000 - wins - losses, Losses: losses}
}

func mateWdl(k int, model WdlModel) Wdl {
	if model == ModelLicchess {
		movesCp := (21 - min(10, absInt(k))) * 100
		wins := licchessRawWins(movesCp)
		if k > 0 {
			return Wdl{Wins: wins, Draws: 0, Losses: 1000 - wins}
		}
		return Wdl{Wins: 1000 - wins, Draws: 0, Losses: wins}
	}
	if k > 0 {
		return Wdl{Wins: 1000, Draws: 0, Losses: 0}
	}
	return Wdl{Wins: 0, Draws: 0, Losses: 1000}
}

func sfWinsFunc(model WdlModel) func(cp, ply int) int {
	switch model {
	case ModelSF16:
		return sf16Wins
	case ModelSF151:
		return sf151Wins
	case ModelSF15:
		return sf15Wins
	case ModelSF14:
		return sf14Wins
	case ModelSF12:
		return sf12Wins
	default: // ModelSF, ModelSF161, and any unrecognized name
		return sf161Wins
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
