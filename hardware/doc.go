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

// Package hardware composes the emulated parts of the device into a single
// Machine. The peripheral models, the SRAM and its memory controller are
// mapped onto the bus at the addresses they occupy in an EFR32xG22 device.
//
// Peripherals without a hand-written model can be added from an SVD
// description of the device with AttachSVD().
//
// The Machine type is the only type that should be used by the user
// interfaces (the monitor, the script executor and the command line modes).
// Functions that change the state of a peripheral outside of a bus access
// are run in the bus critical section so that the Machine can be used from
// more than one goroutine.
package hardware
