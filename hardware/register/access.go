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

package register

// Access defines how a field responds to CPU reads and writes.
type Access int

// List of valid Access values.
const (
	// value is stored on write and returned on read
	ReadWrite Access = iota

	// writes are ignored. value is set by the model
	ReadOnly

	// value is never stored and reads as zero. writes trigger hooks
	WriteOnly

	// writing a one clears the corresponding bit. writing zero has no effect
	WriteOneToClear

	// writes are ignored and the value is cleared after it has been read
	ReadToClear
)

func (a Access) String() string {
	switch a {
	case ReadWrite:
		return "RW"
	case ReadOnly:
		return "R"
	case WriteOnly:
		return "W"
	case WriteOneToClear:
		return "W1C"
	case ReadToClear:
		return "RC"
	}
	return "?"
}

// Alias identifies the alias window an offset falls into.
type Alias int

// List of valid Alias values.
const (
	AliasNone Alias = iota
	AliasSet
	AliasClear
	AliasToggle
)

// AliasStride is the distance between alias windows.
const AliasStride = 0x1000

func (a Alias) String() string {
	switch a {
	case AliasSet:
		return "SET"
	case AliasClear:
		return "CLR"
	case AliasToggle:
		return "TGL"
	}
	return ""
}

// DecodeAlias splits an offset into the base register offset and the alias
// window.
func DecodeAlias(offset uint32) (uint32, Alias) {
	return offset % AliasStride, Alias(offset / AliasStride)
}

// apply the alias operation to the stored value of a register.
func (a Alias) apply(stored uint32, value uint32) uint32 {
	switch a {
	case AliasSet:
		return stored | value
	case AliasClear:
		return stored &^ value
	case AliasToggle:
		return stored ^ value
	}
	return value
}
