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

package sram

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
)

// Sentinal error patterns.
const (
	BankPoweredDown = "sram: bank %d is powered down (offset %#x)"
	OutOfRange      = "sram: offset out of range (%#x)"
	Misaligned      = "sram: misaligned offset (%#x)"
	IllegalFault    = "sram: fault must flip one or two bits (%08x)"
)

// ECC is implemented by the controller responsible for checking the RAM. The
// Check() function is called on the read of a faulty word with the number of
// flipped bits.
//
// The correct return value indicates that the original data should be
// returned. The writeback return value indicates that the corrected data
// should be stored, removing the fault.
type ECC interface {
	Check(offset uint32, flipped int) (correct bool, writeback bool)
}

// Fault is a set of flipped bits on a single word.
type Fault struct {
	Offset uint32
	Mask   uint32
}

// Flipped returns the number of flipped bits.
func (f Fault) Flipped() int {
	return bits.OnesCount32(f.Mask)
}

func (f Fault) String() string {
	return fmt.Sprintf("%#06x: %08x (%d bit)", f.Offset, f.Mask, f.Flipped())
}

// SRAM is banked static RAM.
type SRAM struct {
	name     string
	bankSize uint32
	data     []byte
	down     []bool
	faults   map[uint32]uint32
	ecc      ECC
}

// NewSRAM is the preferred method of initialisation for the SRAM type. The
// size must be a whole number of words and divide equally into the number of
// banks.
func NewSRAM(name string, size uint32, banks int) (*SRAM, error) {
	if banks < 1 {
		return nil, fmt.Errorf("sram: %s: at least one bank required", name)
	}
	if size == 0 || size%4 != 0 || size%uint32(banks*4) != 0 {
		return nil, fmt.Errorf("sram: %s: size (%#x) is not a multiple of %d banks of words", name, size, banks)
	}

	return &SRAM{
		name:     name,
		bankSize: size / uint32(banks),
		data:     make([]byte, size),
		down:     make([]bool, banks),
		faults:   make(map[uint32]uint32),
	}, nil
}

// AttachECC sets the ECC implementation. A nil argument detaches ECC and
// faulty words are returned as they are.
func (ram *SRAM) AttachECC(ecc ECC) {
	ram.ecc = ecc
}

// Name implements the bus.Peripheral interface.
func (ram *SRAM) Name() string {
	return ram.name
}

// Size implements the bus.Peripheral interface.
func (ram *SRAM) Size() uint32 {
	return uint32(len(ram.data))
}

// Reset implements the bus.Peripheral interface. Every bank is powered up.
// The contents of the RAM survive the reset.
func (ram *SRAM) Reset() {
	for i := range ram.down {
		ram.down[i] = false
	}
}

// Banks returns the number of banks.
func (ram *SRAM) Banks() int {
	return len(ram.down)
}

// BankSize returns the size of each bank in bytes.
func (ram *SRAM) BankSize() uint32 {
	return ram.bankSize
}

// Bank returns the bank number for an offset.
func (ram *SRAM) Bank(offset uint32) int {
	return int(offset / ram.bankSize)
}

// PowerDown changes the power state of the bank. Powering a bank down clears
// its contents.
func (ram *SRAM) PowerDown(bank int, down bool) {
	if bank < 0 || bank >= len(ram.down) {
		return
	}

	if down && !ram.down[bank] {
		origin := uint32(bank) * ram.bankSize
		memtop := origin + ram.bankSize
		clear(ram.data[origin:memtop])
		for o := range ram.faults {
			if o >= origin && o < memtop {
				delete(ram.faults, o)
			}
		}
	}

	ram.down[bank] = down
}

// PoweredDown returns true if the bank is powered down.
func (ram *SRAM) PoweredDown(bank int) bool {
	if bank < 0 || bank >= len(ram.down) {
		return false
	}
	return ram.down[bank]
}

func (ram *SRAM) check(offset uint32, length uint32) error {
	if offset+length > uint32(len(ram.data)) || offset+length < offset {
		return curated.Errorf(OutOfRange, offset)
	}
	for b := ram.Bank(offset); b <= ram.Bank(offset+length-1); b++ {
		if ram.down[b] {
			return curated.Errorf(BankPoweredDown, b, offset)
		}
	}
	return nil
}

func (ram *SRAM) word(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(ram.data[offset:])
}

func (ram *SRAM) putWord(offset uint32, value uint32) {
	binary.LittleEndian.PutUint32(ram.data[offset:], value)
}

// Read implements the bus.Peripheral interface.
func (ram *SRAM) Read(offset uint32) (uint32, error) {
	if offset%4 != 0 {
		return 0, curated.Errorf(Misaligned, offset)
	}
	if err := ram.check(offset, 4); err != nil {
		return 0, err
	}

	v := ram.word(offset)

	mask, ok := ram.faults[offset]
	if !ok {
		return v, nil
	}

	if ram.ecc != nil {
		correct, writeback := ram.ecc.Check(offset, bits.OnesCount32(mask))
		if correct {
			if writeback {
				delete(ram.faults, offset)
			}
			return v, nil
		}
	}

	return v ^ mask, nil
}

// Write implements the bus.Peripheral interface. Writing a word removes any
// fault on it.
func (ram *SRAM) Write(offset uint32, value uint32) error {
	if offset%4 != 0 {
		return curated.Errorf(Misaligned, offset)
	}
	if err := ram.check(offset, 4); err != nil {
		return err
	}
	ram.putWord(offset, value)
	delete(ram.faults, offset)
	return nil
}

// Peek implements the bus.DebuggerBus interface. The word is returned as it
// is stored, including any flipped bits. ECC is not consulted.
func (ram *SRAM) Peek(offset uint32) (uint32, error) {
	if offset%4 != 0 {
		return 0, curated.Errorf(Misaligned, offset)
	}
	if err := ram.check(offset, 4); err != nil {
		return 0, err
	}
	return ram.word(offset) ^ ram.faults[offset], nil
}

// Poke implements the bus.DebuggerBus interface.
func (ram *SRAM) Poke(offset uint32, value uint32) error {
	return ram.Write(offset, value)
}

// CheckLoad returns the error that Load() would return for the range.
func (ram *SRAM) CheckLoad(offset uint32, length uint32) error {
	if length == 0 {
		return nil
	}
	return ram.check(offset, length)
}

// Load bytes into the RAM starting at offset. Faults on any word touched by
// the data are removed.
func (ram *SRAM) Load(offset uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := ram.check(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(ram.data[offset:], data)
	for o := offset &^ 3; o < offset+uint32(len(data)); o += 4 {
		delete(ram.faults, o)
	}
	return nil
}

// Dump returns a copy of the RAM contents starting at offset. Flipped bits
// are included in the dump. Powered down banks read as zero.
func (ram *SRAM) Dump(offset uint32, length uint32) ([]byte, error) {
	if offset+length > uint32(len(ram.data)) || offset+length < offset {
		return nil, curated.Errorf(OutOfRange, offset)
	}

	d := make([]byte, length)
	copy(d, ram.data[offset:offset+length])
	for o, mask := range ram.faults {
		for i := uint32(0); i < 4; i++ {
			if o+i >= offset && o+i < offset+length {
				d[o+i-offset] ^= byte(mask >> (i * 8))
			}
		}
	}
	return d, nil
}

// InjectFault flips one or two bits of the word at offset. The stored data is
// not changed. The fault is removed when the word is written.
func (ram *SRAM) InjectFault(offset uint32, mask uint32) error {
	if offset%4 != 0 {
		return curated.Errorf(Misaligned, offset)
	}
	if err := ram.check(offset, 4); err != nil {
		return err
	}
	if n := bits.OnesCount32(mask); n < 1 || n > 2 {
		return curated.Errorf(IllegalFault, mask)
	}
	ram.faults[offset] = mask
	return nil
}

// Faults returns the list of injected faults ordered by offset.
func (ram *SRAM) Faults() []Fault {
	f := make([]Fault, 0, len(ram.faults))
	for o, m := range ram.faults {
		f = append(f, Fault{Offset: o, Mask: m})
	}
	sort.Slice(f, func(i, j int) bool {
		return f[i].Offset < f[j].Offset
	})
	return f
}

func (ram *SRAM) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %d bytes in %d banks", ram.name, len(ram.data), len(ram.down)))
	for i, d := range ram.down {
		if d {
			s.WriteString(fmt.Sprintf("\n  bank %d powered down", i))
		}
	}
	for _, f := range ram.Faults() {
		s.WriteString(fmt.Sprintf("\n  fault %s", f))
	}
	return s.String()
}
