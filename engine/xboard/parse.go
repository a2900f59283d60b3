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
	"strconv"
	"strings"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// nextToken splits s on its first run of whitespace, returning the leading
// word and whatever follows it (with leading whitespace trimmed).
func nextToken(s string) (token, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// splitFeatureTokens splits a "feature ..." argument tail into individual
// "key=value" tokens, honoring double-quoted values that contain spaces
// (e.g. `option="MyName -check 1"`). The standard library has no shlex
// equivalent and no library in this module's dependency set provides one, so
// this is a small purpose-built scanner, grounded on original_source's use
// of Python's shlex.split for the same line.
func splitFeatureTokens(arg string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range arg {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case (r == ' ' || r == '\t') && !inQuotes:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// parseFeatureToken splits a single "key=value" feature token.
func parseFeatureToken(tok string) (key, value string, ok bool) {
	i := strings.IndexByte(tok, '=')
	if i < 0 {
		return "", "", false
	}
	return tok[:i], tok[i+1:], true
}

// parseXBoardOption parses the value half of a "feature option=..." token
// into an engine.Option, grounded on original_source's _parse_xboard_option.
func parseXBoardOption(value string) (engine.Option, bool) {
	params := strings.Fields(value)
	if len(params) < 2 || len(params[1]) < 2 {
		return engine.Option{}, false
	}
	opt := engine.Option{Name: params[0], Type: parseFeatureOptionType(params[1][1:])}

	switch opt.Type {
	case engine.OptionCombo:
		for _, choice := range params[2:] {
			if choice == "///" {
				continue
			}
			if strings.HasPrefix(choice, "*") {
				opt.Default = choice[1:]
				opt.Var = append(opt.Var, choice[1:])
			} else {
				opt.Var = append(opt.Var, choice)
			}
		}
	case engine.OptionCheck:
		if len(params) > 2 {
			if n, err := strconv.Atoi(params[2]); err == nil {
				opt.Default = boolStr(n != 0)
			}
		}
	case engine.OptionString, engine.OptionFile, engine.OptionPath:
		if len(params) > 2 {
			opt.Default = params[2]
		}
	case engine.OptionSpin:
		if len(params) >= 5 {
			opt.Default = params[2]
			if n, err := strconv.Atoi(params[3]); err == nil {
				opt.Min = &n
			}
			if n, err := strconv.Atoi(params[4]); err == nil {
				opt.Max = &n
			}
		}
	}
	return opt, true
}

func parseFeatureOptionType(s string) engine.OptionType {
	switch s {
	case "check":
		return engine.OptionCheck
	case "spin":
		return engine.OptionSpin
	case "combo":
		return engine.OptionCombo
	case "string":
		return engine.OptionString
	case "file":
		return engine.OptionFile
	case "path":
		return engine.OptionPath
	default:
		return engine.OptionString
	}
}

// parseXBoardPost parses one "post" thinking-output line: "depth score
// time(cs) nodes [seldepth [nps [tbhits]]] pv...", grounded on
// original_source's _parse_xboard_post. Unlike UCI's "time" (milliseconds),
// XBoard's time field is centiseconds.
func parseXBoardPost(line string, turn cchess.Color) engine.Info {
	fields := strings.Fields(line)

	var ints []int
	i := 0
	for i < len(fields) {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			break
		}
		ints = append(ints, n)
		i++
	}
	if len(ints) < 4 {
		return engine.Info{}
	}

	var info engine.Info
	info.Depth = engine.Int(ints[0])
	cp := ints[1]
	seconds := float64(ints[2]) / 100
	info.Time = &seconds
	info.Nodes = engine.Int(ints[3])

	var rel engine.Score
	switch {
	case cp <= -100000:
		rel = engine.Mate(cp + 100000)
	case cp == 100000:
		rel = engine.MateGiven
	case cp >= 100000:
		rel = engine.Mate(cp - 100000)
	default:
		rel = engine.Cp(cp)
	}
	pov := engine.PovScore{Relative: rel, Turn: turn}
	info.Score = &pov

	rest := ints[4:]
	if len(rest) > 0 {
		info.SelDepth = engine.Int(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		info.NPS = engine.Int(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		info.TBHits = engine.Int(rest[len(rest)-1])
	}

	var pv []cchess.Move
	for _, tok := range fields[i:] {
		trimmed := strings.TrimSuffix(tok, ".")
		if trimmed != "" && isDigits(trimmed) {
			continue
		}
		m, err := cchess.ParseUCIMove(tok)
		if err != nil {
			break
		}
		pv = append(pv, m)
	}
	info.PV = pv

	return info
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
