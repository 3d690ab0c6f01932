// This file is part of efr32sim.
//
// efr32sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// efr32sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with efr32sim.  If not, see <https://www.gnu.org/licenses/>.

// Package monitor is an interactive console for the machine. Commands are
// read from the terminal and executed by the script package.
//
// When the input is a terminal, lines are edited in raw mode with cursor
// movement and a command history. Otherwise input is read one line at a time
// with no editing, which is useful for piping commands into the monitor.
package monitor
