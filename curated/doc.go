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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern of a curated error identifies it. Packages in this module
// declare the patterns they return as exported string constants and callers
// test for them with Is() and Has():
//
//	const UnmappedAddress = "bus: unmapped address (%#08x)"
//
//	err := curated.Errorf(UnmappedAddress, addr)
//	if curated.Is(err, UnmappedAddress) {
//		...
//	}
//
// Is() only checks the outermost error. Has() searches the chain of curated
// errors passed as placeholder values:
//
//	e := curated.Errorf(UnmappedAddress, addr)
//	f := curated.Errorf("script: line %d: %v", 10, e)
//
//	curated.Is(f, UnmappedAddress)  // false
//	curated.Has(f, UnmappedAddress) // true
//
// The Error() function normalises the message by removing duplicate adjacent
// parts of the chain. Parts are separated by the sub-string ": ". So wrapping
// an error in the same prefix twice:
//
//	curated.Errorf("bus: %v", curated.Errorf("bus: unmapped address"))
//
// results in the message "bus: unmapped address" and not "bus: bus: unmapped
// address".
package curated
