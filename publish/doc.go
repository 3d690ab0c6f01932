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

// Package publish sends the register state of the machine to a Redis server.
//
// Every register written through the bus is stored in a Redis hash, with the
// field named after the register (eg. LFXO.CTRL), and the change is announced
// on the channel of the same name as the hash. Subscribers to the channel see
// messages of the form:
//
//	LFXO.CTRL: 0x00000001
//
// Writes are queued and sent to the server in batches by a background
// goroutine so the bus is never held up waiting for the server. If the queue
// fills, further writes are dropped until there is room. The number of
// dropped writes is reported by Close().
package publish
