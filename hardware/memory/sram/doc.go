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

// Package sram implements banked, word addressable static RAM.
//
// The RAM holds the data written to it and, separately, a list of injected
// faults. A fault is a set of flipped bits on a single word. Reading a faulty
// word consults the ECC implementation, which is normally the HYDRARAM
// memory controller, to decide whether the fault is corrected.
//
// Each bank can be powered down independently. Powering a bank down loses its
// contents and any access to the bank is an error until it is powered up
// again.
package sram
