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
	"context"
	"time"

	"go.uber.org/atomic"
)

// Engine is a blocking facade: a thin wrapper
// around a Protocol that is safe to call from multiple goroutines, fails
// fast once Quit has been called, and applies a default per-call timeout so
// a caller never needs to build its own context for routine calls.
//
// The Protocol implementation (engine/uci, engine/xboard) already funnels
// every call through its Driver's single dedicated loop goroutine, so Engine
// itself holds no lock; its only job is the closed-flag fast path and
// default-timeout wrapping.
type Engine struct {
	protocol       Protocol
	defaultTimeout time.Duration
	closed         atomic.Bool
}

// NewEngine wraps protocol in a blocking facade. defaultTimeout is applied
// to any call whose ctx has no deadline of its own; zero disables the
// default (the call then blocks until ctx itself is cancelled).
func NewEngine(protocol Protocol, defaultTimeout time.Duration) *Engine {
	return &Engine{protocol: protocol, defaultTimeout: defaultTimeout}
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || e.defaultTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.defaultTimeout)
}

// Closed reports whether Quit has already been called.
func (e *Engine) Closed() bool { return e.closed.Load() }

func (e *Engine) Initialize(ctx context.Context) (InitializeResult, error) {
	if e.closed.Load() {
		return InitializeResult{}, ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.Initialize(ctx)
}

func (e *Engine) Ping(ctx context.Context) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.Ping(ctx)
}

func (e *Engine) Configure(ctx context.Context, target *OptionMap) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.Configure(ctx, target)
}

// Play blocks for the duration of the search; callers that want a default
// timeout enforced on it should pass a ctx with its own deadline, since the
// facade's defaultTimeout is meant for short control-plane calls, not
// searches that may legitimately run for minutes.
func (e *Engine) Play(ctx context.Context, board Board, limit Limit, ponder bool) (PlayResult, error) {
	if e.closed.Load() {
		return PlayResult{}, ErrEngineClosed
	}
	return e.protocol.Play(ctx, board, limit, ponder)
}

func (e *Engine) Analyse(ctx context.Context, board Board, limit Limit) (*AnalysisStream, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.Analyse(ctx, board, limit)
}

func (e *Engine) SendOpponentInformation(ctx context.Context, opponent OpponentInfo) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.SendOpponentInformation(ctx, opponent)
}

func (e *Engine) SendGameResult(ctx context.Context, board Board, result GameResult) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.SendGameResult(ctx, board, result)
}

// Quit asks the engine to exit; subsequent calls to any other Engine method
// return ErrEngineClosed immediately. Calling Quit more than once is safe;
// only the first call is forwarded to the Protocol.
func (e *Engine) Quit(ctx context.Context) error {
	if e.closed.Swap(true) {
		return nil
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.protocol.Quit(ctx)
}
