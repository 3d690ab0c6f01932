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

// Package generic builds register models for peripherals that have no
// hand-written model. The register layout is taken from the SVD description
// of the device.
//
// Generic peripherals have no behaviour beyond the access rules of their
// fields. Writes are stored, read-only fields ignore writes, write-one-to-clear
// and read-to-clear fields behave as described. This is enough for firmware
// that configures a peripheral and reads the configuration back.
package generic

import (
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/svd"
)

// Sentinal error patterns.
const (
	NoRegisters = "generic: %s: no registers"
	BadRegister = "generic: %s.%s: %v"
)

// Generic is a peripheral built from an SVD description.
type Generic struct {
	*register.Block

	// address of the peripheral taken from the SVD description
	Address uint32

	Description string
	Interrupts  []string
}

type builder struct {
	perm   logger.Permission
	periph string
	blk    *register.Block
	regs   map[string]*svd.Register
}

// Access returns the register.Access value for the SVD access, modified
// write values and read action strings.
func Access(access string, modifiedWriteValues string, readAction string) register.Access {
	if readAction == "clear" {
		return register.ReadToClear
	}
	if modifiedWriteValues == "oneToClear" {
		return register.WriteOneToClear
	}
	switch access {
	case "read-only":
		return register.ReadOnly
	case "write-only", "writeOnce":
		return register.WriteOnly
	}
	return register.ReadWrite
}

// WriteOnce returns true if the SVD access string limits the field to one
// write after reset. The field's Access is given by Access().
func WriteOnce(access string) bool {
	return access == "writeOnce" || access == "read-writeOnce"
}

// NewGeneric is the preferred method of initialisation for the Generic type.
func NewGeneric(dev *svd.Device, p *svd.Peripheral, perm logger.Permission) (*Generic, error) {
	base := dev.Base(p)

	regs := p.Registers
	clusters := p.Clusters
	if len(regs) == 0 && len(clusters) == 0 {
		regs = base.Registers
		clusters = base.Clusters
	}
	if len(regs) == 0 && len(clusters) == 0 {
		return nil, curated.Errorf(NoRegisters, p.Name)
	}

	props := p.Properties.Inherit(base.Properties).Inherit(dev.Properties)

	g := &Generic{
		Address:     uint32(p.BaseAddress),
		Description: strings.Join(strings.Fields(p.Description), " "),
	}
	if g.Description == "" {
		g.Description = strings.Join(strings.Fields(base.Description), " ")
	}
	irqs := p.Interrupts
	if len(irqs) == 0 {
		irqs = base.Interrupts
	}
	for _, i := range irqs {
		g.Interrupts = append(g.Interrupts, i.Name)
	}

	// size of the register window. the largest register offset decides the
	// size rather than the address block, which usually includes the alias
	// windows
	var top uint64
	var visit func(regs []*svd.Register, clusters []*svd.Cluster, offset uint64)
	visit = func(regs []*svd.Register, clusters []*svd.Cluster, offset uint64) {
		for _, r := range regs {
			o := offset + uint64(r.AddressOffset) + uint64(r.DimIncrement)*uint64(max(r.Dim.Dim, 1)-1) + 4
			top = max(top, o)
		}
		for _, c := range clusters {
			o := offset + uint64(c.AddressOffset) + uint64(c.DimIncrement)*uint64(max(c.Dim.Dim, 1)-1)
			visit(c.Registers, c.Clusters, o)
		}
	}
	visit(regs, clusters, 0)

	var block uint64
	for _, ab := range base.AddressBlocks {
		block = max(block, uint64(ab.Offset)+uint64(ab.Size))
	}
	for _, ab := range p.AddressBlocks {
		block = max(block, uint64(ab.Offset)+uint64(ab.Size))
	}

	b := &builder{
		perm:   perm,
		periph: p.Name,
		blk:    register.NewBlock(p.Name, uint32(top), perm),
		regs:   make(map[string]*svd.Register),
	}

	// series-2 peripherals decode the SET, CLR and TGL windows when the
	// address block covers them
	if top <= register.AliasStride && block >= register.AliasStride*4 {
		b.blk.WithAliases()
	}

	for _, r := range regs {
		b.regs[r.Name] = r
	}

	if err := b.add(regs, clusters, 0, "", props); err != nil {
		return nil, err
	}

	if len(b.blk.Registers()) == 0 {
		return nil, curated.Errorf(NoRegisters, p.Name)
	}

	b.blk.Reset()
	g.Block = b.blk

	return g, nil
}

func (b *builder) add(regs []*svd.Register, clusters []*svd.Cluster, offset uint64, prefix string, props svd.Properties) error {
	for _, r := range regs {
		elements, err := r.Expand(r.Name)
		if err != nil {
			return curated.Errorf(BadRegister, b.periph, r.Name, err)
		}
		for _, e := range elements {
			if err := b.register(r, prefix+e.Name, offset+uint64(r.AddressOffset)+e.Offset, props); err != nil {
				return err
			}
		}
	}

	for _, c := range clusters {
		elements, err := c.Expand(c.Name)
		if err != nil {
			return curated.Errorf(BadRegister, b.periph, c.Name, err)
		}
		cprops := c.Properties.Inherit(props)
		for _, e := range elements {
			pfx := prefix
			if e.Name != "" {
				pfx = prefix + e.Name + "_"
			}
			if err := b.add(c.Registers, c.Clusters, offset+uint64(c.AddressOffset)+e.Offset, pfx, cprops); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) register(r *svd.Register, name string, offset uint64, props svd.Properties) error {
	// derived registers take anything they do not specify from the base
	// register
	if r.DerivedFrom != "" {
		if d, ok := b.regs[r.DerivedFrom]; ok && d != r {
			props = r.Properties.Inherit(d.Properties).Inherit(props)
			fields := r.Fields
			if len(fields) == 0 {
				fields = d.Fields
			}
			merged := *r
			merged.Fields = fields
			if merged.ModifiedWriteValues == "" {
				merged.ModifiedWriteValues = d.ModifiedWriteValues
			}
			if merged.ReadAction == "" {
				merged.ReadAction = d.ReadAction
			}
			r = &merged
		}
	} else {
		props = r.Properties.Inherit(props)
	}

	if offset%4 != 0 {
		logger.Logf(b.perm, b.periph, "register %s at misaligned offset (%#x) ignored", name, offset)
		return nil
	}
	if _, ok := b.blk.Lookup(name); ok {
		logger.Logf(b.perm, b.periph, "duplicate register %s ignored", name)
		return nil
	}
	if _, err := b.blk.Peek(uint32(offset)); err == nil {
		logger.Logf(b.perm, b.periph, "register %s shares an offset (%#x) and is ignored", name, offset)
		return nil
	}

	var access string
	if props.Access != nil {
		access = *props.Access
	}

	var reset uint64
	if props.ResetValue != nil {
		reset = uint64(*props.ResetValue)
	}
	if props.ResetMask != nil {
		reset &= uint64(*props.ResetMask)
	}

	size := uint(32)
	if props.Size != nil && *props.Size > 0 && *props.Size < 32 {
		size = uint(*props.Size)
	}

	reg := b.blk.Register(name, uint32(offset))

	if len(r.Fields) == 0 {
		f := reg.Bits(name, 0, size, Access(access, r.ModifiedWriteValues, r.ReadAction))
		f.WithReset(uint32(reset) & f.Mask())
		if WriteOnce(access) {
			f.WithWriteOnce()
		}
		return nil
	}

	var used uint32
	for _, sf := range r.Fields {
		elements, err := sf.Expand(sf.Name)
		if err != nil {
			return curated.Errorf(BadRegister, b.periph, name, err)
		}

		shift, width, err := sf.Bits()
		if err != nil {
			return curated.Errorf(BadRegister, b.periph, name, err)
		}

		for i, e := range elements {
			s := shift + uint(i)*uint(sf.DimIncrement)
			if s+width > 32 {
				return curated.Errorf(BadRegister, b.periph, name, e.Name)
			}

			mask := uint32((uint64(1)<<width)-1) << s
			if used&mask != 0 || reg.Field(e.Name) != nil {
				logger.Logf(b.perm, b.periph, "field %s.%s overlaps another field and is ignored", name, e.Name)
				continue
			}
			used |= mask

			fa := access
			if sf.Access != "" {
				fa = sf.Access
			}
			mwv := r.ModifiedWriteValues
			if sf.ModifiedWriteValues != "" {
				mwv = sf.ModifiedWriteValues
			}
			ra := r.ReadAction
			if sf.ReadAction != "" {
				ra = sf.ReadAction
			}

			f := reg.Bits(e.Name, s, width, Access(fa, mwv, ra))
			f.WithReset(uint32(reset>>s) & uint32((uint64(1)<<width)-1))
			if WriteOnce(fa) {
				f.WithWriteOnce()
			}

			if enums := enumerations(sf); len(enums) > 0 {
				f.WithEnums(enums)
			}
		}
	}

	return nil
}

func enumerations(sf *svd.Field) map[uint32]string {
	enums := make(map[uint32]string)
	for _, evs := range sf.EnumeratedValues {
		if evs.Usage == "write" {
			continue
		}
		for _, ev := range evs.EnumeratedValue {
			if ev.Value == "" {
				continue
			}
			v, err := ev.Val()
			if err != nil {
				continue
			}
			enums[uint32(v)] = ev.Name
		}
	}
	return enums
}
