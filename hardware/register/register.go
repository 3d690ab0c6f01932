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

import (
	"fmt"
	"strings"
)

// Register is a single 32-bit register made up of fields.
type Register struct {
	Name   string
	Offset uint32

	fields []*Field
	value  uint32

	guard     func() bool
	writeHook func(old uint32, new uint32)
}

// NewRegister is the preferred method of initialisation for the Register
// type. Registers are usually created with Block.Register().
func NewRegister(name string, offset uint32) *Register {
	if offset%4 != 0 {
		panic(fmt.Sprintf("register: %s: misaligned offset %#x", name, offset))
	}
	return &Register{
		Name:   name,
		Offset: offset,
	}
}

func (r *Register) define(name string, shift uint, width uint, access Access) *Field {
	if width == 0 || shift+width > 32 {
		panic(fmt.Sprintf("register: %s.%s: illegal field geometry (shift %d, width %d)", r.Name, name, shift, width))
	}

	f := &Field{
		Name:   name,
		Shift:  shift,
		Width:  width,
		Access: access,
		reg:    r,
	}

	for _, g := range r.fields {
		if g.Name == name {
			panic(fmt.Sprintf("register: %s: duplicate field name %s", r.Name, name))
		}
		if g.Mask()&f.Mask() != 0 {
			panic(fmt.Sprintf("register: %s: field %s overlaps %s", r.Name, name, g.Name))
		}
	}

	r.fields = append(r.fields, f)
	return f
}

// Flag defines a single bit field.
func (r *Register) Flag(name string, bit uint, access Access) *Field {
	return r.define(name, bit, 1, access)
}

// Bits defines a multi-bit field.
func (r *Register) Bits(name string, shift uint, width uint, access Access) *Field {
	return r.define(name, shift, width, access)
}

// WithGuard sets the function that decides whether a CPU write to the
// register is allowed. A refused write leaves the register untouched and no
// hooks are called.
func (r *Register) WithGuard(fn func() bool) *Register {
	r.guard = fn
	return r
}

// WithWriteHook sets the function called after every accepted write to the
// register. Field hooks are called before the register hook.
func (r *Register) WithWriteHook(fn func(old uint32, new uint32)) *Register {
	r.writeHook = fn
	return r
}

// Fields returns the fields of the register in the order they were defined.
func (r *Register) Fields() []*Field {
	return r.fields
}

// Field returns the named field or nil if it does not exist.
func (r *Register) Field(name string) *Field {
	for _, f := range r.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (r *Register) mustField(name string) *Field {
	f := r.Field(name)
	if f == nil {
		panic(fmt.Sprintf("register: %s: no field named %s", r.Name, name))
	}
	return f
}

// Get returns the value of the named field.
func (r *Register) Get(name string) uint32 {
	return r.mustField(name).Value()
}

// Set the stored value of the named field. Access rules and hooks do not
// apply.
func (r *Register) Set(name string, v uint32) {
	r.mustField(name).Set(v)
}

// Mask returns the bits of the register covered by fields.
func (r *Register) Mask() uint32 {
	var m uint32
	for _, f := range r.fields {
		m |= f.Mask()
	}
	return m
}

// the bits occupied by fields with the access type.
func (r *Register) accessMask(access Access) uint32 {
	var m uint32
	for _, f := range r.fields {
		if f.Access == access {
			m |= f.Mask()
		}
	}
	return m
}

// ResetValue returns the value of the register after a reset.
func (r *Register) ResetValue() uint32 {
	var v uint32
	for _, f := range r.fields {
		v |= f.reset << f.Shift
	}
	return v
}

func (r *Register) reset() {
	r.value = r.ResetValue()
	for _, f := range r.fields {
		f.written = false
	}
}

// Stored returns the raw stored bits of the register. Value providers are
// not consulted.
func (r *Register) Stored() uint32 {
	return r.value
}

// read the value of the register as seen by the CPU. if consume is true then
// ReadToClear fields are cleared.
func (r *Register) read(consume bool) uint32 {
	var v uint32
	for _, f := range r.fields {
		if f.Access == WriteOnly {
			continue
		}
		v |= (f.Value() << f.Shift) & f.Mask()
		if consume && f.Access == ReadToClear {
			r.value &^= f.Mask()
		}
	}
	return v
}

// write a value to the register as the CPU would. returns false if the write
// was refused by the guard.
func (r *Register) write(v uint32) bool {
	if r.guard != nil && !r.guard() {
		return false
	}

	old := r.value
	next := old
	for _, f := range r.fields {
		if f.Latched() {
			continue
		}
		m := f.Mask()
		switch f.Access {
		case ReadWrite:
			next = next&^m | v&m
		case WriteOneToClear:
			next &^= v & m
		}
	}
	r.value = next

	for _, f := range r.fields {
		if f.Latched() {
			continue
		}
		f.written = f.once

		var o, n uint32
		switch f.Access {
		case ReadOnly, ReadToClear:
			continue
		case WriteOnly:
			n = (v & f.Mask()) >> f.Shift
		default:
			o = (old & f.Mask()) >> f.Shift
			n = (next & f.Mask()) >> f.Shift
		}
		if f.writeHook != nil {
			f.writeHook(o, n)
		}
		if f.changeHook != nil && o != n {
			f.changeHook(o, n)
		}
	}

	if r.writeHook != nil {
		r.writeHook(old, next)
	}

	return true
}

// Decoded is a field name and value pair. Returned by the Decode() function.
type Decoded struct {
	Field  *Field
	Value  uint32
	Enum   string
	Access Access
}

func (d Decoded) String() string {
	if d.Enum != "" {
		return fmt.Sprintf("%s=%s", d.Field.Name, d.Enum)
	}
	if d.Field.Width == 1 {
		return fmt.Sprintf("%s=%d", d.Field.Name, d.Value)
	}
	return fmt.Sprintf("%s=%#x", d.Field.Name, d.Value)
}

// Decode the register into its fields. The values are as they would be seen
// by the CPU, without any read side effects.
func (r *Register) Decode() []Decoded {
	d := make([]Decoded, 0, len(r.fields))
	for _, f := range r.fields {
		var v uint32
		if f.Access != WriteOnly {
			v = f.Value()
		}
		d = append(d, Decoded{
			Field:  f,
			Value:  v,
			Enum:   f.enums[v],
			Access: f.Access,
		})
	}
	return d
}

func (r *Register) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %08x", r.Name, r.read(false)))
	for _, d := range r.Decode() {
		s.WriteString(" ")
		s.WriteString(d.String())
	}
	return s.String()
}
