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
	"sort"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/logger"
)

// Sentinal error patterns.
const (
	UnmappedOffset   = "register: %s: unmapped offset (%#04x)"
	MisalignedOffset = "register: %s: misaligned offset (%#04x)"
)

// Block is the collection of registers belonging to a single peripheral.
type Block struct {
	name    string
	size    uint32
	aliases bool
	perm    logger.Permission

	regs  map[uint32]*Register
	order []*Register

	onReset []func()
}

// NewBlock is the preferred method of initialisation for the Block type. The
// size argument is the size of the register window, not including any alias
// windows.
func NewBlock(name string, size uint32, perm logger.Permission) *Block {
	if perm == nil {
		perm = logger.Allow
	}
	return &Block{
		name: name,
		size: size,
		perm: perm,
		regs: make(map[uint32]*Register),
	}
}

// WithAliases enables the SET, CLR and TGL alias windows. The register window
// must fit inside the alias stride.
func (b *Block) WithAliases() *Block {
	if b.size > AliasStride {
		panic(fmt.Sprintf("register: %s: window too large (%#x) for alias windows", b.name, b.size))
	}
	b.aliases = true
	return b
}

// Name returns the name of the block. This is the name of the peripheral.
func (b *Block) Name() string {
	return b.name
}

// Size returns the size of the address space occupied by the block, including
// any alias windows.
func (b *Block) Size() uint32 {
	if b.aliases {
		return AliasStride * 4
	}
	return b.size
}

// Aliases returns true if the block decodes the SET, CLR and TGL windows.
func (b *Block) Aliases() bool {
	return b.aliases
}

// Define adds a register to the block. Defining a register at an offset that
// is already in use, or outside the register window, will cause a panic.
func (b *Block) Define(r *Register) *Register {
	if r.Offset >= b.size {
		panic(fmt.Sprintf("register: %s: %s outside of register window (%#x)", b.name, r.Name, r.Offset))
	}
	if e, ok := b.regs[r.Offset]; ok {
		panic(fmt.Sprintf("register: %s: %s and %s share offset %#x", b.name, e.Name, r.Name, r.Offset))
	}
	b.regs[r.Offset] = r
	b.order = append(b.order, r)
	sort.Slice(b.order, func(i, j int) bool {
		return b.order[i].Offset < b.order[j].Offset
	})
	return r
}

// Register creates and defines a new register.
func (b *Block) Register(name string, offset uint32) *Register {
	return b.Define(NewRegister(name, offset))
}

// OnReset adds a function to be called at the end of Reset(). Models use this
// to reset state that is not held in registers.
func (b *Block) OnReset(fn func()) {
	b.onReset = append(b.onReset, fn)
}

// Reset all registers to their reset values.
func (b *Block) Reset() {
	for _, r := range b.order {
		r.reset()
	}
	for _, fn := range b.onReset {
		fn()
	}
}

// Registers returns all registers ordered by offset.
func (b *Block) Registers() []*Register {
	return b.order
}

// Lookup returns the register with the specified name. The comparison is case
// insensitive.
func (b *Block) Lookup(name string) (*Register, bool) {
	for _, r := range b.order {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return nil, false
}

// Resolve returns the offset of the named register. Names may be suffixed
// with _SET, _CLR or _TGL if the block decodes alias windows.
func (b *Block) Resolve(name string) (uint32, bool) {
	if r, ok := b.Lookup(name); ok {
		return r.Offset, true
	}

	if !b.aliases {
		return 0, false
	}

	for _, a := range []Alias{AliasSet, AliasClear, AliasToggle} {
		sfx := "_" + a.String()
		if len(name) > len(sfx) && strings.EqualFold(name[len(name)-len(sfx):], sfx) {
			if r, ok := b.Lookup(name[:len(name)-len(sfx)]); ok {
				return r.Offset + uint32(a)*AliasStride, true
			}
		}
	}

	return 0, false
}

// Describe returns the symbolic name of the offset.
func (b *Block) Describe(offset uint32) string {
	r, a, err := b.decode(offset)
	if err != nil {
		return fmt.Sprintf("%#04x", offset)
	}
	if a == AliasNone {
		return r.Name
	}
	return fmt.Sprintf("%s_%s", r.Name, a)
}

func (b *Block) decode(offset uint32) (*Register, Alias, error) {
	if offset%4 != 0 {
		return nil, AliasNone, curated.Errorf(MisalignedOffset, b.name, offset)
	}

	base, alias := offset, AliasNone
	if b.aliases {
		base, alias = DecodeAlias(offset)
		if alias > AliasToggle {
			return nil, AliasNone, curated.Errorf(UnmappedOffset, b.name, offset)
		}
	}

	r, ok := b.regs[base]
	if !ok {
		return nil, AliasNone, curated.Errorf(UnmappedOffset, b.name, offset)
	}

	return r, alias, nil
}

// RegisterAt returns the register at offset and the alias window the offset
// falls into.
func (b *Block) RegisterAt(offset uint32) (*Register, Alias, error) {
	return b.decode(offset)
}

// Read the register at offset. Reads through an alias window return the value
// of the base register.
func (b *Block) Read(offset uint32) (uint32, error) {
	r, _, err := b.decode(offset)
	if err != nil {
		return 0, err
	}
	return r.read(true), nil
}

// Write a value to the register at offset.
func (b *Block) Write(offset uint32, value uint32) error {
	r, alias, err := b.decode(offset)
	if err != nil {
		return err
	}

	v := alias.apply(r.value, value)

	// write-one-to-clear fields see the bits written, not the combined value.
	// a CLR alias write never clears them
	if w1c := r.accessMask(WriteOneToClear); w1c != 0 {
		v &^= w1c
		if alias != AliasClear {
			v |= value & w1c
		}
	}

	if u := v &^ r.Mask(); u != 0 {
		logger.Logf(b.perm, b.name, "write to undefined bits of %s (%08x)", r.Name, u)
	}

	if !r.write(v) {
		logger.Logf(b.perm, b.name, "write to %s refused (%08x)", b.Describe(offset), value)
	}

	return nil
}

// Peek returns the value of the register at offset without side effects.
func (b *Block) Peek(offset uint32) (uint32, error) {
	r, _, err := b.decode(offset)
	if err != nil {
		return 0, err
	}
	return r.read(false), nil
}

// Poke stores a value in the register at offset. Access rules, guards and
// hooks are bypassed. Poking through an alias window stores to the base
// register without applying the alias operation.
func (b *Block) Poke(offset uint32, value uint32) error {
	r, _, err := b.decode(offset)
	if err != nil {
		return err
	}
	r.value = value & r.Mask()
	return nil
}
