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

package register

import "fmt"

// Field is a named group of contiguous bits in a Register.
type Field struct {
	Name   string
	Shift  uint
	Width  uint
	Access Access

	reg   *Register
	reset uint32
	enums map[uint32]string

	provider   func() uint32
	writeHook  func(old uint32, new uint32)
	changeHook func(old uint32, new uint32)

	// once fields ignore writes after the first until the next reset
	once    bool
	written bool
}

func widthMask(width uint) uint32 {
	if width >= 32 {
		return 0xffffffff
	}
	return (1 << width) - 1
}

// Mask returns the bits occupied by the field, in register position.
func (f *Field) Mask() uint32 {
	return widthMask(f.Width) << f.Shift
}

// WithReset sets the value the field takes on reset. The value must fit in the
// field.
func (f *Field) WithReset(v uint32) *Field {
	if v&^widthMask(f.Width) != 0 {
		panic(fmt.Sprintf("register: %s.%s: reset value %#x does not fit in %d bits", f.reg.Name, f.Name, v, f.Width))
	}
	f.reset = v
	f.reg.value = f.reg.value&^f.Mask() | v<<f.Shift
	return f
}

// WithEnums names the values of the field. The names are used when decoding
// the register for display.
func (f *Field) WithEnums(enums map[uint32]string) *Field {
	f.enums = enums
	return f
}

// WithValueProvider sets the function that supplies the field value on read.
// The stored value of the field is ignored.
func (f *Field) WithValueProvider(fn func() uint32) *Field {
	f.provider = fn
	return f
}

// WithWriteHook sets the function called after every write to the register.
// The old and new values are the field values, not the register value. For
// WriteOnly fields the old value is always zero and the new value is the
// value written.
func (f *Field) WithWriteHook(fn func(old uint32, new uint32)) *Field {
	f.writeHook = fn
	return f
}

// WithChangeHook sets the function called after a write to the register
// changes the value of the field.
func (f *Field) WithChangeHook(fn func(old uint32, new uint32)) *Field {
	f.changeHook = fn
	return f
}

// WithWriteOnce makes the field accept only the first write after a reset.
// Later writes leave the field unchanged and do not call its hooks.
func (f *Field) WithWriteOnce() *Field {
	f.once = true
	return f
}

// Latched returns true if the field is write-once and has been written.
func (f *Field) Latched() bool {
	return f.once && f.written
}

// Value returns the current value of the field.
func (f *Field) Value() uint32 {
	if f.provider != nil {
		return f.provider() & widthMask(f.Width)
	}
	return (f.reg.value & f.Mask()) >> f.Shift
}

// Bool returns true if the field value is non-zero.
func (f *Field) Bool() bool {
	return f.Value() != 0
}

// Set the stored value of the field. Access rules and hooks do not apply.
func (f *Field) Set(v uint32) {
	f.reg.value = f.reg.value&^f.Mask() | (v<<f.Shift)&f.Mask()
}

// SetBool sets a single bit field to one or zero.
func (f *Field) SetBool(v bool) {
	if v {
		f.Set(1)
	} else {
		f.Set(0)
	}
}

// Reset returns the reset value of the field.
func (f *Field) Reset() uint32 {
	return f.reset
}

// Enum returns the name of the field's current value. Returns the empty
// string if the value is not named.
func (f *Field) Enum() string {
	if f.enums == nil {
		return ""
	}
	return f.enums[f.Value()]
}

func (f *Field) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("%s[%d]", f.Name, f.Shift)
	}
	return fmt.Sprintf("%s[%d:%d]", f.Name, f.Shift+f.Width-1, f.Shift)
}
