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

// Package bus implements the memory-mapped dispatch between the CPU side of
// the emulation and the peripheral models.
//
// Peripherals are mapped into the 32-bit address space with Map(). Accesses
// are 32-bit and word aligned. The address is translated to an offset from
// the start of the peripheral's window and the peripheral's Read() or Write()
// function is called.
//
// Peek() and Poke() are debugger accesses. They have no side effects on the
// peripheral (a Peek() never clears a read-to-clear flag for example) and are
// not seen by observers.
//
// Observers are notified of every successful Read() and Write(). The monitor
// and the state publisher are both observers.
//
// The Bus type is safe to use from more than one goroutine.
package bus
