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

//go:build windows

package easyterm

import (
	"fmt"
	"os"
)

// Geometry of the terminal in characters.
type Geometry struct {
	Rows int
	Cols int
}

// Terminal is not supported on windows. Initialise() always fails.
type Terminal struct{}

// Initialise always returns an error.
func (pt *Terminal) Initialise(inputFile *os.File, outputFile *os.File) error {
	return fmt.Errorf("easyterm: not supported on this platform")
}

func (pt *Terminal) CleanUp()                         {}
func (pt *Terminal) Print(s string, a ...interface{}) {}
func (pt *Terminal) UpdateGeometry() error            { return nil }
func (pt *Terminal) Geometry() Geometry               { return Geometry{} }
func (pt *Terminal) CanonicalMode()                   {}
func (pt *Terminal) RawMode()                         {}
func (pt *Terminal) CBreakMode()                      {}
func (pt *Terminal) Flush() error                     { return nil }
func SuspendProcess()                                 {}
