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
	"sync"
)

// analysisBufSize bounds how many unread Info updates an AnalysisStream
// keeps before it starts dropping the oldest one, the same sizing idea as
// uci's concurrentCircBuf(128).
const analysisBufSize = 128

// AnalysisStream is the streaming handle an analyse command exposes to
// callers: a sequence of Info snapshots followed by one terminal
// BestMove. It is a bounded FIFO with a completion sentinel, grounded on
// uci.concurrentCircBuf's overwrite-oldest-when-full idiom.
type AnalysisStream struct {
	infoCh   chan Info
	best     *Future[BestMove]
	cancel   func(ctx context.Context) error
	closeOne sync.Once
}

// NewAnalysisStream builds an AnalysisStream for a Protocol implementation
// to drive: cancel is called when the consumer calls Stop, and should write
// whatever wire bytes the dialect uses to end the search early.
func NewAnalysisStream(cancel func(ctx context.Context) error) *AnalysisStream {
	return &AnalysisStream{
		infoCh: make(chan Info, analysisBufSize),
		best:   NewFuture[BestMove](),
		cancel: cancel,
	}
}

// PushInfo records a freshly parsed Info snapshot, discarding the oldest
// queued one if the buffer is full. Called only from the driver's loop
// goroutine while the owning command is Active.
func (a *AnalysisStream) PushInfo(info Info) {
	select {
	case a.infoCh <- info:
		return
	default:
	}
	select {
	case <-a.infoCh:
	default:
	}
	select {
	case a.infoCh <- info:
	default:
	}
}

// Resolve is called once with the search's terminal result; it also closes
// the info stream so a Next call that has drained every queued update
// reports completion instead of blocking forever. A second call (Resolve or
// Fail) is a no-op, matching Future's own single-resolution contract.
func (a *AnalysisStream) Resolve(best BestMove) {
	a.best.Resolve(best)
	a.closeOne.Do(func() { close(a.infoCh) })
}

// Fail is Resolve's error counterpart, used when the command terminates
// abnormally (engine crash, cancellation without a bestmove line).
func (a *AnalysisStream) Fail(err error) {
	a.best.Fail(err)
	a.closeOne.Do(func() { close(a.infoCh) })
}

// Next blocks for the next queued Info update. Once the search has produced
// its terminal BestMove and every queued update has been drained, Next
// returns ErrAnalysisComplete.
func (a *AnalysisStream) Next(ctx context.Context) (Info, error) {
	select {
	case info, ok := <-a.infoCh:
		if !ok {
			return Info{}, ErrAnalysisComplete
		}
		return info, nil
	case <-ctx.Done():
		return Info{}, ctx.Err()
	}
}

// BestMove blocks until the analysis has a terminal result and returns it.
// It may be called before or after Next has drained every Info update.
func (a *AnalysisStream) BestMove(ctx context.Context) (BestMove, error) {
	return a.best.Wait(ctx)
}

// Stop requests that the engine end its search early (UCI "stop"; XBoard
// "." and "exit" followed by a "ping"). The terminal BestMove still arrives
// asynchronously once the engine acknowledges.
func (a *AnalysisStream) Stop(ctx context.Context) error {
	if a.cancel == nil {
		return nil
	}
	return a.cancel(ctx)
}
