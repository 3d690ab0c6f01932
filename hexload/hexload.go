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

// Package hexload moves Intel HEX images in and out of the memory of the
// machine. Images are decoded and encoded by the gohex package.
//
// Any peripheral on the bus that implements the Loader interface can be the
// target of an image. In practice this is the SRAM.
package hexload

import (
	"io"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/memory/bus"
	"github.com/marcinbor85/gohex"
)

// Sentinal error patterns.
const (
	Parse       = "hexload: %v"
	NotLoadable = "hexload: %s cannot be loaded (%#08x)"
	NoMapping   = "hexload: no memory at %#08x"
	Overflow    = "hexload: segment at %#08x overflows %s"
	Unloadable  = "hexload: segment at %#08x: %v"
)

// Loader is implemented by peripherals that accept byte loading.
type Loader interface {
	Load(offset uint32, data []byte) error

	// CheckLoad returns the error Load() would return for the same range,
	// without changing anything
	CheckLoad(offset uint32, length uint32) error
}

// Dumper is implemented by peripherals that can return a copy of their
// contents.
type Dumper interface {
	Dump(offset uint32, length uint32) ([]byte, error)
}

// Segment is a contiguous block of data loaded from an image.
type Segment struct {
	Address uint32
	Length  int
	Label   string
}

// Load the Intel HEX image from the reader into the peripherals on the bus.
// Every segment in the image must fall entirely inside a single peripheral.
// Nothing is loaded if any segment fails that check or cannot be loaded by
// its peripheral.
func Load(b *bus.Bus, r io.Reader) ([]Segment, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, curated.Errorf(Parse, err)
	}

	type target struct {
		loader  Loader
		address uint32
		offset  uint32
		data    []byte
	}

	var targets []target
	var segs []Segment

	for _, s := range mem.GetDataSegments() {
		mp, offset, ok := b.Find(s.Address)
		if !ok {
			return nil, curated.Errorf(NoMapping, s.Address)
		}
		ld, ok := mp.Periph.(Loader)
		if !ok {
			return nil, curated.Errorf(NotLoadable, mp.Label, s.Address)
		}
		if uint64(offset)+uint64(len(s.Data)) > uint64(mp.Periph.Size()) {
			return nil, curated.Errorf(Overflow, s.Address, mp.Label)
		}
		targets = append(targets, target{loader: ld, address: s.Address, offset: offset, data: s.Data})
		segs = append(segs, Segment{Address: s.Address, Length: len(s.Data), Label: mp.Label})
	}

	var err error
	b.Exclusive(func() {
		for _, t := range targets {
			if err = t.loader.CheckLoad(t.offset, uint32(len(t.data))); err != nil {
				err = curated.Errorf(Unloadable, t.address, err)
				return
			}
		}
		for _, t := range targets {
			if err = t.loader.Load(t.offset, t.data); err != nil {
				err = curated.Errorf(Unloadable, t.address, err)
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return segs, nil
}

// Save length bytes of memory starting at addr to the writer as an Intel HEX
// image.
func Save(b *bus.Bus, w io.Writer, addr uint32, length uint32) error {
	mp, offset, ok := b.Find(addr)
	if !ok {
		return curated.Errorf(NoMapping, addr)
	}
	d, ok := mp.Periph.(Dumper)
	if !ok {
		return curated.Errorf(NotLoadable, mp.Label, addr)
	}
	if uint64(offset)+uint64(length) > uint64(mp.Periph.Size()) {
		return curated.Errorf(Overflow, addr, mp.Label)
	}

	var data []byte
	var err error
	b.Exclusive(func() {
		data, err = d.Dump(offset, length)
	})
	if err != nil {
		return curated.Errorf(Parse, err)
	}

	mem := gohex.NewMemory()
	if err := mem.AddBinary(addr, data); err != nil {
		return curated.Errorf(Parse, err)
	}
	if err := mem.DumpIntelHex(w, 16); err != nil {
		return curated.Errorf(Parse, err)
	}

	return nil
}
