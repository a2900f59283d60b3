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

// Package uci implements engine.Protocol for the UCI wire dialect: the
// "uci"/"uciok"/"id"/"option" handshake, "isready"/"readyok" synchronization,
// "setoption", "position"/"go"/"stop"/"bestmove" search control (including
// the ponderhit short-circuit), and "ucinewgame" bookkeeping.
package uci
