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

package cchess

import "strings"

// Color can be [NoColor], [Red], or [Black]. Xiangqi uses Red/Black in place
// of chess's White/Black, but the FEN letters are the same: 'w' for the side
// that moves first (Red), 'b' for Black.
type Color uint8

const (
	NoColor Color = iota
	Red
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Black:
		return "Black"
	case NoColor:
		return "NoColor"
	default:
		return "Unknown Color"
	}
}

// Other returns the opposing color. NoColor maps to itself.
func (c Color) Other() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoColor
	}
}

func parseColor(s string) Color {
	switch strings.ToLower(s) {
	case "w":
		return Red
	case "b":
		return Black
	default:
		return NoColor
	}
}
