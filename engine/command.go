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

import "sync/atomic"

// commandState is one of the four states a command moves through: New,
// Active, Cancelling (optional), Done.
type commandState int32

const (
	stateNew commandState = iota
	stateActive
	stateCancelling
	stateDone
)

// Writer is the subset of Transport a Command uses to emit wire bytes. It is
// handed to the command instead of the whole Driver so a Command can't reach
// past its own lifecycle into driver internals.
type Writer interface {
	WriteLine(line string) error
}

// Command is implemented by each protocol operation: initialize, ping,
// configure, play, analyse, send_opponent_information, send_game_result,
// quit. One Command instance drives one in-flight wire exchange.
//
// A Driver owns at most one Active command (the "current" slot) and at most
// one queued New command (the "next" slot) at a time.
type Command interface {
	// Start is called on the New->Active transition. It may write the
	// command's initiating line(s) to w. It returns done=true for
	// commands that complete synchronously within Start itself (no wire
	// acknowledgement to wait for), transitioning straight to Done.
	Start(w Writer) (done bool, err error)
	// LineReceived is called once per decoded line while the command is
	// Active or Cancelling. It returns done=true once the command has
	// seen everything it needs and should transition to Done.
	LineReceived(w Writer, line string) (done bool, err error)
	// Cancel is called on the Active->Cancelling transition; it may write
	// protocol-specific cancellation bytes (e.g. UCI "stop"). Commands
	// that can't be cancelled mid-flight may treat this as a no-op and
	// simply wait for their natural completion line.
	Cancel(w Writer) error
}

// Handle is the generic wrapper around a command's "two futures": Result
// carries the command's typed outcome, Finished resolves
// (with no payload) the instant the command leaves the Active/Cancelling
// states, regardless of whether Result ever gets a value.
type Handle[T any] struct {
	cmd   Command
	state atomic.Int32

	Result   *Future[T]
	Finished *Future[struct{}]
}

// NewHandle wraps cmd in a fresh Handle, in state New.
func NewHandle[T any](cmd Command) *Handle[T] {
	h := &Handle[T]{
		cmd:      cmd,
		Result:   NewFuture[T](),
		Finished: NewFuture[struct{}](),
	}
	h.state.Store(int32(stateNew))
	return h
}

func (h *Handle[T]) state_() commandState { return commandState(h.state.Load()) }

// Resolve resolves Result with v; used by a protocol package's line-parsing
// code once it has assembled the command's typed outcome.
func (h *Handle[T]) Resolve(v T) { h.Result.Resolve(v) }

// Fail resolves Result with err.
func (h *Handle[T]) Fail(err error) { h.Result.Fail(err) }

// start performs the New->Active transition and calls the wrapped command's
// Start. Driver-internal; a command reaches Active only via the driver's
// current-command slot.
func (h *Handle[T]) start(w Writer) error {
	h.state.Store(int32(stateActive))
	done, err := h.cmd.Start(w)
	if err != nil {
		h.finish()
		if !h.Result.IsDone() {
			h.Fail(err)
		}
		return err
	}
	if done {
		h.finish()
	}
	return nil
}

// lineReceived feeds line to the wrapped command and, if the command
// signals completion, transitions to Done and resolves Finished. If Result
// was never resolved by the command itself, it is failed so callers waiting
// on it don't block forever.
func (h *Handle[T]) lineReceived(w Writer, line string) error {
	done, err := h.cmd.LineReceived(w, line)
	if err != nil {
		h.finish()
		if !h.Result.IsDone() {
			h.Fail(err)
		}
		return err
	}
	if done {
		h.finish()
		if !h.Result.IsDone() {
			h.Fail(NewEngineError("command finished without producing a result"))
		}
	}
	return nil
}

// cancel performs the Active->Cancelling transition, a no-op outside Active.
func (h *Handle[T]) cancel(w Writer) error {
	if h.state_() != stateActive {
		return nil
	}
	h.state.Store(int32(stateCancelling))
	return h.cmd.Cancel(w)
}

// terminated is called when the child process exits while this command is
// Active or Cancelling; it fails Result with a terminal error and resolves
// Finished.
func (h *Handle[T]) terminated(err *EngineTerminatedError) {
	if h.state_() == stateDone {
		return
	}
	h.finish()
	if !h.Result.IsDone() {
		h.Fail(err)
	}
}

func (h *Handle[T]) finish() {
	h.state.Store(int32(stateDone))
	h.Finished.Resolve(struct{}{})
}

// commandHandle is the type-erased view of Handle[T] the driver's
// current/next slots hold; the driver never needs to know a command's
// Result type, only how to push it through its lifecycle.
type commandHandle interface {
	start(w Writer) error
	lineReceived(w Writer, line string) error
	cancel(w Writer) error
	terminated(err *EngineTerminatedError)
	reject(err error)
	finishedDone() <-chan struct{}
}

func (h *Handle[T]) finishedDone() <-chan struct{} { return h.Finished.Done() }

// reject fails a command that never got to run at all, e.g. because a newer
// submission preempted it from the driver's next slot, or the driver shut
// down first.
func (h *Handle[T]) reject(err error) {
	h.finish()
	if !h.Result.IsDone() {
		h.Fail(err)
	}
}

var _ commandHandle = (*Handle[struct{}])(nil)
