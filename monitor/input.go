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

package monitor

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/monitor/easyterm"
)

// Interrupted is returned by the line editor when the interrupt key is
// pressed.
const Interrupted = "monitor: interrupted"

// maximum number of entries kept in the command history.
const maxHistory = 100

// lineEditor reads lines from a terminal in raw mode. It echoes input, moves
// the cursor and keeps a history of entered lines.
type lineEditor struct {
	r *bufio.Reader
	w io.Writer

	history []string

	// called when the suspend key is pressed. can be nil
	suspend func()
}

func newLineEditor(r io.Reader, w io.Writer) *lineEditor {
	return &lineEditor{
		r: bufio.NewReader(r),
		w: w,
	}
}

func (ed *lineEditor) print(s string, a ...interface{}) {
	fmt.Fprintf(ed.w, s, a...)
}

// redraw the line and put the cursor in the correct place.
func (ed *lineEditor) redraw(prompt string, input []rune, cursor int) {
	ed.print("\r%s%s%s\r%s", easyterm.ClearLine, prompt, string(input),
		easyterm.CursorMove(len([]rune(prompt))+cursor))
}

func (ed *lineEditor) addHistory(s string) {
	if s == "" {
		return
	}
	if len(ed.history) > 0 && ed.history[len(ed.history)-1] == s {
		return
	}
	ed.history = append(ed.history, s)
	if len(ed.history) > maxHistory {
		ed.history = ed.history[1:]
	}
}

// read a line of input. The returned string does not include the line
// terminator.
func (ed *lineEditor) read(prompt string) (string, error) {
	var input []rune
	cursor := 0
	history := len(ed.history)

	// the latest input is kept when scrolling through the history so that it
	// can be returned to
	var buffInput []rune

	for {
		ed.redraw(prompt, input, cursor)

		r, _, err := ed.r.ReadRune()
		if err != nil {
			return string(input), err
		}

		switch r {
		case easyterm.KeyInterrupt:
			ed.print("\r\n")
			return "", curated.Errorf(Interrupted)

		case easyterm.KeyEOF:
			if len(input) == 0 {
				ed.print("\r\n")
				return "", io.EOF
			}

		case easyterm.KeySuspend:
			if ed.suspend != nil {
				ed.suspend()
			}

		case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
			s := string(input)
			ed.addHistory(s)
			ed.print("\r\n")
			return s, nil

		case easyterm.KeyBackspace, easyterm.KeyDelete:
			if cursor > 0 {
				input = append(input[:cursor-1], input[cursor:]...)
				cursor--
				history = len(ed.history)
			}

		case easyterm.KeyEsc:
			r, _, err := ed.r.ReadRune()
			if err != nil {
				return string(input), err
			}
			if r != easyterm.EscCursor {
				continue
			}

			r, _, err = ed.r.ReadRune()
			if err != nil {
				return string(input), err
			}

			switch r {
			case easyterm.CursorUp:
				if history == len(ed.history) {
					buffInput = append(buffInput[:0], input...)
				}
				if history > 0 {
					history--
					input = []rune(ed.history[history])
					cursor = len(input)
				}

			case easyterm.CursorDown:
				if history < len(ed.history)-1 {
					history++
					input = []rune(ed.history[history])
					cursor = len(input)
				} else if history == len(ed.history)-1 {
					history++
					input = append([]rune{}, buffInput...)
					cursor = len(input)
				}

			case easyterm.CursorForward:
				if cursor < len(input) {
					cursor++
				}

			case easyterm.CursorBackward:
				if cursor > 0 {
					cursor--
				}

			case easyterm.CursorHome:
				cursor = 0

			case easyterm.CursorEnd:
				cursor = len(input)

			case easyterm.CursorDelete:
				// consume the trailing tilde
				if _, _, err := ed.r.ReadRune(); err != nil {
					return string(input), err
				}
				if cursor < len(input) {
					input = append(input[:cursor], input[cursor+1:]...)
					history = len(ed.history)
				}
			}

		default:
			if unicode.IsPrint(r) {
				input = append(input, 0)
				copy(input[cursor+1:], input[cursor:])
				input[cursor] = r
				cursor++
				history = len(ed.history)
			}
		}
	}
}
