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

package hardware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/memory/bus"
	"github.com/efr32sim/efr32sim/hardware/register"
)

// Sentinal error patterns.
const (
	UnknownSymbol    = "machine: unknown symbol (%s)"
	UnknownInterrupt = "machine: unknown interrupt (%s)"
	NotRAM           = "machine: address is not in RAM (%#08x)"
	NotRegister      = "machine: no register at address (%#08x)"
	NoPeripherals    = "machine: no peripherals in SVD description"
)

// implemented by peripherals built on register.Block.
type registerBlock interface {
	Resolve(name string) (uint32, bool)
	RegisterAt(offset uint32) (*register.Register, register.Alias, error)
	Registers() []*register.Register
}

func (m *Machine) mapping(label string) (bus.Mapping, bool) {
	for _, mp := range m.Bus.Mappings() {
		if strings.EqualFold(mp.Label, label) {
			return mp, true
		}
	}
	return bus.Mapping{}, false
}

// Resolve a symbol to an address. Symbols can take the following forms:
//
//	0x40020004         numeric address
//	LFXO               base address of a peripheral
//	LFXO.CTRL          address of a register
//	LFXO.CTRL_SET      address of a register's alias
//	SRAM+0x100         offset from the base address of a peripheral
//
// Peripheral and register names are not case sensitive.
func (m *Machine) Resolve(symbol string) (uint32, error) {
	symbol = strings.TrimSpace(symbol)

	if v, err := strconv.ParseUint(symbol, 0, 32); err == nil {
		return uint32(v), nil
	}

	if periph, offset, ok := strings.Cut(symbol, "+"); ok {
		mp, ok := m.mapping(periph)
		if !ok {
			return 0, curated.Errorf(UnknownSymbol, symbol)
		}
		o, err := strconv.ParseUint(offset, 0, 32)
		if err != nil || uint32(o) >= mp.Periph.Size() {
			return 0, curated.Errorf(UnknownSymbol, symbol)
		}
		return mp.Base + uint32(o), nil
	}

	periph, reg, ok := strings.Cut(symbol, ".")

	mp, found := m.mapping(periph)
	if !found {
		return 0, curated.Errorf(UnknownSymbol, symbol)
	}

	if !ok {
		return mp.Base, nil
	}

	if blk, ok := mp.Periph.(registerBlock); ok {
		if o, ok := blk.Resolve(reg); ok {
			return mp.Base + o, nil
		}
	}

	return 0, curated.Errorf(UnknownSymbol, symbol)
}

// Symbolise returns the symbolic name of an address. Addresses that do not
// fall in a mapping are returned as hex numbers.
func (m *Machine) Symbolise(addr uint32) string {
	mp, _, ok := m.Bus.Find(addr)
	if !ok {
		return fmt.Sprintf("%#08x", addr)
	}
	return mp.Describe(addr)
}

// Register returns the register at the address. The alias window of the
// address is also returned.
func (m *Machine) Register(addr uint32) (*register.Register, register.Alias, error) {
	mp, offset, ok := m.Bus.Find(addr)
	if !ok {
		return nil, register.AliasNone, curated.Errorf(NotRegister, addr)
	}

	blk, ok := mp.Periph.(registerBlock)
	if !ok {
		return nil, register.AliasNone, curated.Errorf(NotRegister, addr)
	}

	r, a, err := blk.RegisterAt(offset)
	if err != nil {
		return nil, register.AliasNone, curated.Errorf(NotRegister, addr)
	}

	return r, a, nil
}

// Fields returns the decoded fields of the register at the address. The
// values are read without side effects.
func (m *Machine) Fields(addr uint32) ([]register.Decoded, error) {
	var d []register.Decoded
	r, _, err := m.Register(addr)
	if err != nil {
		return nil, err
	}
	m.Bus.Exclusive(func() {
		d = r.Decode()
	})
	return d, nil
}

// RegisterInfo is an entry in the list returned by RegisterMap().
type RegisterInfo struct {
	Label    string
	Address  uint32
	Register *register.Register
}

// RegisterMap returns every register of every mapped peripheral in address
// order.
func (m *Machine) RegisterMap() []RegisterInfo {
	var info []RegisterInfo
	for _, mp := range m.Bus.Mappings() {
		blk, ok := mp.Periph.(registerBlock)
		if !ok {
			continue
		}
		for _, r := range blk.Registers() {
			info = append(info, RegisterInfo{
				Label:    mp.Label,
				Address:  mp.Base + r.Offset,
				Register: r,
			})
		}
	}
	return info
}
