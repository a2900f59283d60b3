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

// Package xboard implements engine.Protocol for the XBoard/CECP wire
// dialect: the "xboard"/"protover 2"/"feature ..." handshake, "ping"/"pong"
// synchronization, "force"/"setboard"/move replay position sync, "post"
// thinking-output parsing, and "result" game-end reporting.
package xboard
