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

import "time"

// Limit is an immutable record of termination conditions for a play or
// analyse command. Every field is optional; a nil field means "not
// specified". ClockID is an opaque sentinel: a caller signals "the time
// control changed" by passing a value unequal to the one it passed last
// time.
type Limit struct {
	Time  *time.Duration
	Depth *int
	Nodes *int
	Mate  *int

	RedClock   *time.Duration
	BlackClock *time.Duration
	RedInc     *time.Duration
	BlackInc   *time.Duration

	RemainingMoves *int

	ClockID any
}

// Int builds an *int, a small convenience for the integer-valued Limit
// fields (Depth, Nodes, Mate, RemainingMoves).
func Int(n int) *int { return &n }

// Duration builds a *time.Duration, a small convenience for the
// duration-valued Limit fields (Time, RedClock, BlackClock, RedInc,
// BlackInc).
func Duration(d time.Duration) *time.Duration { return &d }
