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
	"errors"
	"fmt"
)

// EngineError reports a protocol or usage error: an option that does not
// exist, an attempt to set a managed option, an unrecognized option type, a
// numeric range violation, an invalid move string from the engine, a
// missing mandatory XBoard feature, or an unsupported capability request.
type EngineError struct {
	Msg string
}

func (e *EngineError) Error() string { return e.Msg }

// NewEngineError builds an [EngineError] from a format string, the way
// [fmt.Errorf] does.
func NewEngineError(format string, args ...any) *EngineError {
	return &EngineError{Msg: fmt.Sprintf(format, args...)}
}

// knownCrashHints maps well-known child exit codes to a human hint, so an
// [EngineTerminatedError] can explain the common cases (binary/CPU
// mismatch, signal-terminated) instead of surfacing a bare integer.
var knownCrashHints = map[int]string{
	-4:          "binary may be incompatible with this CPU",
	0xC000001D:  "illegal instruction - binary not compatible with this CPU",
	-1073741515: "0xC0000135 - missing DLL/shared library dependency",
}

// EngineTerminatedError reports that the child process exited while a
// command was in flight. Code is the process exit code (or -1 if unknown);
// Hint is a best-effort explanation for recognized crash codes, empty
// otherwise.
type EngineTerminatedError struct {
	Code int
	Hint string
}

func (e *EngineTerminatedError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("engine process terminated, exit code %d (%s)", e.Code, e.Hint)
	}
	return fmt.Sprintf("engine process terminated, exit code %d", e.Code)
}

// NewEngineTerminatedError builds an [EngineTerminatedError] for code,
// filling in a hint from [knownCrashHints] if one is known.
func NewEngineTerminatedError(code int) *EngineTerminatedError {
	return &EngineTerminatedError{Code: code, Hint: knownCrashHints[code]}
}

// ErrAnalysisComplete is returned by [AnalysisStream.Next] once a consumer
// reads past the terminal sentinel.
var ErrAnalysisComplete = errors.New("engine: analysis complete")

// ErrEngineClosed is returned by every [Engine] facade call made after
// [Engine.Quit], and by [Driver.Submit] once the driver's loop has exited.
var ErrEngineClosed = errors.New("engine: event loop dead")

// TimeoutError reports that a facade per-call timer expired before the
// underlying command resolved.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("engine: %s timed out", e.Op)
}
