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

// Package modalflag parses command lines made up of modes, each with its own
// set of flags. For example:
//
//	efr32sim SCRIPT -svd EFR32MG22.svd test.script
//
// Here SCRIPT is the mode and -svd is a flag belonging to that mode. A mode
// is chosen from a list of sub-modes. The first sub-mode in the list is the
// default and is selected if the next argument is not a sub-mode.
//
// Modes are parsed one level at a time. Flags are added after a call to
// NewMode() and are parsed, along with the next mode, by Parse().
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	md.AddSubModes("MONITOR", "SCRIPT")
//
//	p, err := md.Parse()
//	if p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "SCRIPT":
//		md.NewMode()
//		svd := md.AddString("svd", "", "SVD file")
//		p, err := md.Parse()
//		...
//	}
//
// The -help flag is always available and prints the flags and sub-modes of
// the current mode.
package modalflag
