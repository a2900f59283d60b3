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

import "github.com/hxqdev/cchess"

// PlayResult is what a Play command resolves with.
type PlayResult struct {
	Move   *cchess.Move
	Ponder *cchess.Move
	Info   Info

	DrawOffered bool
	Resigned    bool
}

// BestMove is what an analysis or ponder search terminates with.
type BestMove struct {
	Move   *cchess.Move
	Ponder *cchess.Move
}
