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
//
// *** NOTE: all historical versions of this file, as found in any
// git repository, are also covered by the licence, even when this
// notice is not present ***

package easyterm

// Key codes received in raw mode.
const (
	KeyInterrupt      = 3  // end-of-text
	KeyEOF            = 4  // end-of-transmission
	KeyBackspace      = 8  // backspace
	KeyTab            = 9  // horizontal tab
	KeyLineFeed       = 10 // line feed
	KeyCarriageReturn = 13 // carriage return
	KeySuspend        = 26 // substitute
	KeyEsc            = 27 // escape
	KeyDelete         = 127
)

// Second byte of escape sequences.
const (
	EscCursor = '['
)

// Final byte of cursor sequences.
const (
	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBackward = 'D'
	CursorEnd      = 'F'
	CursorHome     = 'H'

	// ESC [ 3 ~
	CursorDelete = '3'
)
