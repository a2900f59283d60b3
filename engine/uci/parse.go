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

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// nextToken splits s on its first run of whitespace, returning the leading
// word and whatever follows it (with leading whitespace trimmed). Grounded
// on original_source's _next_token helper.
func nextToken(s string) (token, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// parseMoveLine consumes leading UCI move tokens from fields, stopping at
// the first one that doesn't parse as a move.
func parseMoveLine(fields []string) (moves []cchess.Move, consumed int) {
	for _, f := range fields {
		m, err := cchess.ParseUCIMove(f)
		if err != nil {
			break
		}
		moves = append(moves, m)
		consumed++
	}
	return moves, consumed
}

// parseScore parses a "score ..." argument tail (fields after the "score"
// keyword itself) into a PovScore relative to turn, plus whether the score
// was flagged as a lower/upper bound, returning how many fields it consumed.
func parseScore(fields []string, turn cchess.Color) (score *engine.PovScore, lowerbound, upperbound bool, consumed int) {
	var rel *engine.Score
loop:
	for consumed < len(fields) {
		switch fields[consumed] {
		case "cp":
			if consumed+1 >= len(fields) {
				break loop
			}
			n, err := strconv.Atoi(fields[consumed+1])
			if err != nil {
				break loop
			}
			s := engine.Cp(n)
			rel = &s
			consumed += 2
		case "mate":
			if consumed+1 >= len(fields) {
				break loop
			}
			n, err := strconv.Atoi(fields[consumed+1])
			if err != nil {
				break loop
			}
			s := engine.Mate(n)
			rel = &s
			consumed += 2
		case "lowerbound":
			lowerbound = true
			consumed++
		case "upperbound":
			upperbound = true
			consumed++
		default:
			break loop
		}
	}
	if rel == nil {
		return nil, false, false, consumed
	}
	pov := engine.PovScore{Relative: *rel, Turn: turn}
	return &pov, lowerbound, upperbound, consumed
}

// parseInfo parses the argument tail of an "info ..." line into an
// engine.Info, relative to turn (the side to move in the position the
// search is running from).
func parseInfo(arg string, turn cchess.Color) engine.Info {
	var info engine.Info
	fields := strings.Fields(arg)

	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if v, ok := atoiField(fields, i+1); ok {
				info.Depth = engine.Int(v)
				i++
			}
		case "seldepth":
			if v, ok := atoiField(fields, i+1); ok {
				info.SelDepth = engine.Int(v)
				i++
			}
		case "time":
			if v, ok := atoiField(fields, i+1); ok {
				seconds := float64(v) / 1000
				info.Time = &seconds
				i++
			}
		case "nodes":
			if v, ok := atoiField(fields, i+1); ok {
				info.Nodes = engine.Int(v)
				i++
			}
		case "nps":
			if v, ok := atoiField(fields, i+1); ok {
				info.NPS = engine.Int(v)
				i++
			}
		case "tbhits":
			if v, ok := atoiField(fields, i+1); ok {
				info.TBHits = engine.Int(v)
				i++
			}
		case "multipv":
			if v, ok := atoiField(fields, i+1); ok {
				info.MultiPV = engine.Int(v)
				i++
			}
		case "hashfull":
			if v, ok := atoiField(fields, i+1); ok {
				info.HashFull = engine.Int(v)
				i++
			}
		case "cpuload":
			if v, ok := atoiField(fields, i+1); ok {
				info.CPULoad = engine.Int(v)
				i++
			}
		case "currmove":
			if i+1 < len(fields) {
				if m, err := cchess.ParseUCIMove(fields[i+1]); err == nil {
					info.CurrMove = &m
					i++
				}
			}
		case "currmovenumber":
			if v, ok := atoiField(fields, i+1); ok {
				info.CurrMoveNumber = engine.Int(v)
				i++
			}
		case "pv":
			moves, n := parseMoveLine(fields[i+1:])
			info.PV = moves
			i += n
		case "score":
			score, lower, upper, n := parseScore(fields[i+1:], turn)
			if score != nil {
				info.Score = score
				info.Lowerbound = lower
				info.Upperbound = upper
			}
			i += n
		case "refutation":
			moves, n := parseMoveLine(fields[i+1:])
			if len(moves) > 0 {
				if info.Refutation == nil {
					info.Refutation = map[cchess.Move][]cchess.Move{}
				}
				info.Refutation[moves[0]] = moves[1:]
			}
			i += n
		case "currline":
			if i+1 < len(fields) {
				if cpu, ok := atoiField(fields, i+1); ok {
					moves, n := parseMoveLine(fields[i+2:])
					if info.Currline == nil {
						info.Currline = map[int][]cchess.Move{}
					}
					info.Currline[cpu] = moves
					i += 1 + n
				}
			}
		case "string":
			info.String = strings.TrimSpace(strings.Join(fields[i+1:], " "))
			return info
		}
	}
	return info
}

func atoiField(fields []string, i int) (int, bool) {
	if i >= len(fields) {
		return 0, false
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBestmove parses the argument tail of a "bestmove ..." line, returning
// the move and, if present, the ponder move.
func parseBestmove(arg string) (move *cchess.Move, ponder *cchess.Move) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return nil, nil
	}
	m, err := cchess.ParseUCIMove(fields[0])
	if err != nil || m.IsNull() {
		return nil, nil
	}
	move = &m
	if len(fields) >= 3 && fields[1] == "ponder" {
		if p, err := cchess.ParseUCIMove(fields[2]); err == nil && !p.IsNull() {
			ponder = &p
		}
	}
	return move, ponder
}

// parseOptionDecl accumulates "option ..." tokens into an engine.Option, the
// way original_source's UciProtocol._option does with a state-machine over
// known keyword boundaries, generalized from enginecommands.go's
// index-walking style.
func parseOptionDecl(arg string) (engine.Option, bool) {
	fields := strings.Fields(arg)
	var opt engine.Option
	var varVals []string

	cur := ""
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "name", "type", "default", "min", "max", "var":
			cur = fields[i]
			if cur == "var" {
				if i+1 < len(fields) {
					varVals = append(varVals, fields[i+1])
					i++
				}
			}
		default:
			switch cur {
			case "name":
				if opt.Name == "" {
					opt.Name = fields[i]
				} else {
					opt.Name += " " + fields[i]
				}
			case "type":
				opt.Type = parseOptionType(fields[i])
			case "default":
				if opt.Default == "" {
					opt.Default = fields[i]
				} else {
					opt.Default += " " + fields[i]
				}
			case "min":
				if n, err := strconv.Atoi(fields[i]); err == nil {
					opt.Min = &n
				}
			case "max":
				if n, err := strconv.Atoi(fields[i]); err == nil {
					opt.Max = &n
				}
			}
		}
	}
	opt.Var = varVals
	if opt.Name == "" {
		return engine.Option{}, false
	}
	return opt, true
}

func parseOptionType(s string) engine.OptionType {
	switch s {
	case "check":
		return engine.OptionCheck
	case "spin":
		return engine.OptionSpin
	case "combo":
		return engine.OptionCombo
	case "button":
		return engine.OptionButton
	case "string":
		return engine.OptionString
	default:
		return engine.OptionString
	}
}
