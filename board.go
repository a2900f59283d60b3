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

// Package cchess implements the Board/Move collaborator that the engine
// package depends on: a minimal xiangqi position and move-stack
// representation with FEN serialization and UCI/XBoard move notation.
//
// This package deliberately does not implement xiangqi's move-legality
// rules or move generation. [Position.Move] and [Game.PushUCI] apply moves
// mechanically; a host that needs legal-move checking supplies its own
// implementation of the engine package's Board interface.
package cchess
