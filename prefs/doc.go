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

// Package prefs facilitates the storage of preferential values in the
// application. It stores values in a disk file and keeps values synchronised.
//
// The Disk type is the interface to the preferences file. Values of the Bool,
// Int and String types are added to a Disk instance under a key. Load() and
// Save() then move every added value to and from the file:
//
//	dsk, err := prefs.NewDisk(pth)
//	var ramSize prefs.Int
//	err = dsk.Add("hardware.ram.size", &ramSize)
//	err = dsk.Load()
//
// The file format is one entry per line, the key and value separated by
// " :: ". Entries in the file that have not been added to the Disk instance
// are preserved when saving so that more than one Disk instance can share the
// same file.
//
// Values can also be specified on the command line. See the
// PushCommandLineStack() function.
package prefs
