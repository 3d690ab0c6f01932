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

// Package register models memory-mapped peripheral registers as collections
// of named bit-fields.
//
// A peripheral model creates a Block and defines its registers and their
// fields. Fields carry an access type and a reset value and optionally hooks
// that tie the field to the behaviour of the model:
//
//	blk := register.NewBlock("LFXO", 0x30, perm).WithAliases()
//	ctrl := blk.Register("CTRL", 0x004)
//	ctrl.Flag("FORCEEN", 0, register.ReadWrite).WithChangeHook(func(_, v uint32) {
//		...
//	})
//	status := blk.Register("STATUS", 0x018)
//	status.Flag("RDY", 0, register.ReadOnly).WithValueProvider(func() uint32 {
//		...
//	})
//
// Blocks created WithAliases() decode the SET, CLR and TGL alias windows found
// in series-2 EFR32 devices. A write to offset+0x1000 ORs the value into the
// register, offset+0x2000 clears the bits set in the value and offset+0x3000
// toggles them. The result of the alias operation is then written as if it
// were a plain store, so field access rules and hooks apply as normal.
//
// The Lock type models the magic-key lock registers that gate writes to other
// registers. A Lock is attached to a register with WithGuard().
package register
