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

// cchess-probe starts a xiangqi engine subprocess, initializes it over
// either the UCI or XBoard/CECP wire dialect, asks it for one move from a
// given position, and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
	"github.com/hxqdev/cchess/engine/uci"
	"github.com/hxqdev/cchess/engine/xboard"
	"github.com/seekerror/logw"
)

var (
	program  = flag.String("engine", "", "path to the xiangqi engine executable")
	dialect  = flag.String("dialect", "uci", "wire dialect to speak: uci or xboard")
	fen      = flag.String("fen", cchess.DefaultFEN, "starting position")
	moves    = flag.String("moves", "", "space-separated UCI-style moves to apply before asking for a move")
	depth    = flag.Int("depth", 10, "search depth limit")
	movetime = flag.Duration("movetime", 0, "fixed search time, overriding -depth when non-zero")
	timeout  = flag.Duration("timeout", 30*time.Second, "default per-call timeout applied to every engine request")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s -engine <path> [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *program == "" {
		logw.Exitf(ctx, "missing -engine: no xiangqi engine executable given")
	}

	board, err := cchess.NewGameFromFEN(*fen)
	if err != nil {
		logw.Exitf(ctx, "invalid -fen %q: %v", *fen, err)
	}
	for _, m := range splitMoves(*moves) {
		if _, err := board.PushUCI(m); err != nil {
			logw.Exitf(ctx, "illegal move %q: %v", m, err)
		}
	}

	driver, err := engine.NewDriver(*program, engine.Settings{Logger: &wireLogger{ctx: ctx}})
	if err != nil {
		logw.Exitf(ctx, "could not start %q: %v", *program, err)
	}
	defer driver.Close(2*time.Second, 2*time.Second)

	eng, err := buildEngine(driver, *dialect)
	if err != nil {
		logw.Exitf(ctx, "%v", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, *timeout)
	id, err := eng.Initialize(initCtx)
	cancel()
	if err != nil {
		logw.Exitf(ctx, "initialize failed: %v", err)
	}
	logw.Infof(ctx, "engine ready: %v", id.ID)

	limit := engine.Limit{}
	if *movetime > 0 {
		limit.Time = engine.Duration(*movetime)
	} else {
		limit.Depth = engine.Int(*depth)
	}

	playCtx, cancel := context.WithTimeout(ctx, *timeout)
	result, err := eng.Play(playCtx, engine.NewBoard(board), limit, false)
	cancel()
	if err != nil {
		logw.Exitf(ctx, "play failed: %v", err)
	}

	logw.Infof(ctx, "bestmove %s", result.Move.UCI())
	if result.Ponder != nil {
		logw.Infof(ctx, "ponder %s", result.Ponder.UCI())
	}
	if result.Info.Score != nil {
		logw.Infof(ctx, "score %s", result.Info.Score.Relative)
	}
	if result.Info.Depth != nil {
		logw.Infof(ctx, "depth %d", *result.Info.Depth)
	}

	quitCtx, cancel := context.WithTimeout(ctx, *timeout)
	if err := eng.Quit(quitCtx); err != nil {
		logw.Warningf(ctx, "quit failed: %v", err)
	}
	cancel()
}

// buildEngine wraps driver in the Protocol the requested dialect names, and
// returns the blocking facade over it. Keeping dialect dispatch here, rather
// than in the engine package, keeps engine from importing either wire
// implementation.
func buildEngine(driver *engine.Driver, dialect string) (*engine.Engine, error) {
	switch dialect {
	case uci.ProtocolName:
		return engine.NewEngine(uci.New(driver), 0), nil
	case xboard.ProtocolName:
		return engine.NewEngine(xboard.New(driver), 0), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q: want %q or %q", dialect, uci.ProtocolName, xboard.ProtocolName)
	}
}

// wireLogger adapts engine.Settings' io.Writer sink to logw, so the engine
// process's raw stdin/stdout/stderr lines show up at debug level rather
// than on a bare file handle. engine.Driver always calls Write once per
// already-newline-terminated line, so splitting on trailing "\n" is enough.
type wireLogger struct {
	ctx context.Context
}

func (l *wireLogger) Write(p []byte) (int, error) {
	logw.Debugf(l.ctx, "%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func splitMoves(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
