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

// Package engine drives an external xiangqi analysis engine, executed as a
// child process, over a UCI-style or an XBoard/CECP-style line protocol.
//
// A [Driver] owns exactly one engine child process and runs a single
// goroutine-driven event loop; all protocol state is touched only from that
// loop. [Engine] wraps a [Protocol] with a blocking facade that is safe to
// call from multiple goroutines; it relies on the Driver's own loop
// goroutine rather than running one of its own.
//
// Concrete protocol implementations live in the sibling packages
// [github.com/hxqdev/cchess/engine/uci] and
// [github.com/hxqdev/cchess/engine/xboard]; this package defines the shared
// [Protocol] contract, [Command] lifecycle, score algebra, option model, and
// transport abstraction those packages and the driver build on.
package engine
