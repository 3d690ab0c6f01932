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

package bus

import (
	"fmt"
	"sort"
	"sync"

	"github.com/efr32sim/efr32sim/curated"
)

// Sentinal error patterns.
const (
	UnmappedAddress    = "bus: unmapped address (%#08x)"
	MisalignedAddress  = "bus: misaligned address (%#08x)"
	OverlappingMapping = "bus: %s (%#08x) overlaps %s (%#08x)"
	PeripheralError    = "bus: %s: %v"
	NotPokeable        = "bus: %s does not support peek/poke"
)

// Peripheral is implemented by every model that can be mapped onto the bus.
// Offsets are relative to the start of the peripheral's window.
type Peripheral interface {
	Name() string
	Size() uint32
	Reset()
	Read(offset uint32) (uint32, error)
	Write(offset uint32, value uint32) error
}

// DebuggerBus is implemented by peripherals that support side-effect free
// access.
type DebuggerBus interface {
	Peek(offset uint32) (uint32, error)
	Poke(offset uint32, value uint32) error
}

// Describer is implemented by peripherals that can name an offset.
type Describer interface {
	Describe(offset uint32) string
}

// Mapping is a peripheral placed in the address space.
type Mapping struct {
	Base   uint32
	Periph Peripheral

	// label is usually the peripheral name but can be different when a
	// peripheral is mapped more than once. for example, the non-secure alias
	// of a peripheral is labelled with the _NS suffix
	Label string
}

// End returns the last address in the mapping.
func (m Mapping) End() uint32 {
	return m.Base + m.Periph.Size() - 1
}

// Contains returns true if the address is inside the mapping.
func (m Mapping) Contains(addr uint32) bool {
	return addr >= m.Base && addr <= m.End()
}

// Describe returns the symbolic name of the address.
func (m Mapping) Describe(addr uint32) string {
	if d, ok := m.Periph.(Describer); ok {
		return fmt.Sprintf("%s.%s", m.Label, d.Describe(addr-m.Base))
	}
	return fmt.Sprintf("%s+%#x", m.Label, addr-m.Base)
}

func (m Mapping) String() string {
	return fmt.Sprintf("%08x-%08x %s", m.Base, m.End(), m.Label)
}

// Event describes a completed bus access. Events are sent to observers.
type Event struct {
	Write   bool
	Address uint32
	Value   uint32
	Label   string
	Symbol  string
}

func (ev Event) String() string {
	if ev.Write {
		return fmt.Sprintf("W %08x %s <- %08x", ev.Address, ev.Symbol, ev.Value)
	}
	return fmt.Sprintf("R %08x %s -> %08x", ev.Address, ev.Symbol, ev.Value)
}

// Observer implementations are notified of every bus access.
type Observer interface {
	Observe(ev Event)
}

// Bus is the 32-bit memory-mapped bus.
type Bus struct {
	crit      sync.Mutex
	mappings  []Mapping
	observers []Observer
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// Map a peripheral at the base address. Mappings may not overlap.
func (b *Bus) Map(base uint32, p Peripheral, label string) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	if label == "" {
		label = p.Name()
	}

	n := Mapping{Base: base, Periph: p, Label: label}
	if p.Size() == 0 || n.End() < base {
		return fmt.Errorf("bus: illegal size for %s (%#x)", label, p.Size())
	}

	for _, m := range b.mappings {
		if n.Base <= m.End() && m.Base <= n.End() {
			return curated.Errorf(OverlappingMapping, label, base, m.Label, m.Base)
		}
	}

	b.mappings = append(b.mappings, n)
	sort.Slice(b.mappings, func(i, j int) bool {
		return b.mappings[i].Base < b.mappings[j].Base
	})

	return nil
}

// Mappings returns a copy of the list of mappings ordered by base address.
func (b *Bus) Mappings() []Mapping {
	b.crit.Lock()
	defer b.crit.Unlock()
	m := make([]Mapping, len(b.mappings))
	copy(m, b.mappings)
	return m
}

// Find the mapping for an address. Returns the mapping and the offset into
// the mapping.
func (b *Bus) Find(addr uint32) (Mapping, uint32, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.find(addr)
}

func (b *Bus) find(addr uint32) (Mapping, uint32, bool) {
	i := sort.Search(len(b.mappings), func(i int) bool {
		return b.mappings[i].End() >= addr
	})
	if i < len(b.mappings) && b.mappings[i].Contains(addr) {
		return b.mappings[i], addr - b.mappings[i].Base, true
	}
	return Mapping{}, 0, false
}

func (b *Bus) translate(addr uint32) (Mapping, uint32, error) {
	if addr%4 != 0 {
		return Mapping{}, 0, curated.Errorf(MisalignedAddress, addr)
	}
	m, offset, ok := b.find(addr)
	if !ok {
		return Mapping{}, 0, curated.Errorf(UnmappedAddress, addr)
	}
	return m, offset, nil
}

// AddObserver adds an observer to the bus.
func (b *Bus) AddObserver(o Observer) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.observers = append(b.observers, o)
}

func (b *Bus) notify(observers []Observer, ev Event) {
	for _, o := range observers {
		o.Observe(ev)
	}
}

// Read a 32-bit value from the address.
func (b *Bus) Read(addr uint32) (uint32, error) {
	b.crit.Lock()

	m, offset, err := b.translate(addr)
	if err != nil {
		b.crit.Unlock()
		return 0, err
	}

	v, err := m.Periph.Read(offset)
	if err != nil {
		b.crit.Unlock()
		return 0, curated.Errorf(PeripheralError, m.Label, err)
	}

	// observers are notified outside of the critical section so that they
	// can use the bus themselves
	observers := b.observers
	ev := Event{Address: addr, Value: v, Label: m.Label, Symbol: m.Describe(addr)}
	b.crit.Unlock()

	b.notify(observers, ev)
	return v, nil
}

// Write a 32-bit value to the address.
func (b *Bus) Write(addr uint32, value uint32) error {
	b.crit.Lock()

	m, offset, err := b.translate(addr)
	if err != nil {
		b.crit.Unlock()
		return err
	}

	err = m.Periph.Write(offset, value)
	if err != nil {
		b.crit.Unlock()
		return curated.Errorf(PeripheralError, m.Label, err)
	}

	observers := b.observers
	ev := Event{Write: true, Address: addr, Value: value, Label: m.Label, Symbol: m.Describe(addr)}
	b.crit.Unlock()

	b.notify(observers, ev)
	return nil
}

// Peek returns the value at the address without side effects.
func (b *Bus) Peek(addr uint32) (uint32, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	m, offset, err := b.translate(addr)
	if err != nil {
		return 0, err
	}

	d, ok := m.Periph.(DebuggerBus)
	if !ok {
		return 0, curated.Errorf(NotPokeable, m.Label)
	}

	v, err := d.Peek(offset)
	if err != nil {
		return 0, curated.Errorf(PeripheralError, m.Label, err)
	}
	return v, nil
}

// Poke stores a value at the address without side effects.
func (b *Bus) Poke(addr uint32, value uint32) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	m, offset, err := b.translate(addr)
	if err != nil {
		return err
	}

	d, ok := m.Periph.(DebuggerBus)
	if !ok {
		return curated.Errorf(NotPokeable, m.Label)
	}

	if err := d.Poke(offset, value); err != nil {
		return curated.Errorf(PeripheralError, m.Label, err)
	}
	return nil
}

// Reset every mapped peripheral. Peripherals mapped more than once are reset
// once.
func (b *Bus) Reset() {
	b.crit.Lock()
	defer b.crit.Unlock()

	done := make(map[Peripheral]bool)
	for _, m := range b.mappings {
		if !done[m.Periph] {
			m.Periph.Reset()
			done[m.Periph] = true
		}
	}
}

// Exclusive runs the function inside the bus critical section. Used to
// advance the state of peripherals without racing bus accesses. The function
// must not access the bus.
func (b *Bus) Exclusive(f func()) {
	b.crit.Lock()
	defer b.crit.Unlock()
	f()
}
