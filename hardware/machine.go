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

package hardware

import (
	"fmt"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/irq"
	"github.com/efr32sim/efr32sim/hardware/memory/bus"
	"github.com/efr32sim/efr32sim/hardware/memory/sram"
	"github.com/efr32sim/efr32sim/hardware/peripherals/generic"
	"github.com/efr32sim/efr32sim/hardware/peripherals/hydraram"
	"github.com/efr32sim/efr32sim/hardware/peripherals/lfxo"
	"github.com/efr32sim/efr32sim/hardware/peripherals/prs"
	"github.com/efr32sim/efr32sim/hardware/preferences"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/svd"
)

// Addresses of the hand-written models. Peripheral addresses are the secure
// aliases.
const (
	AddrSRAM     = 0x20000000
	AddrLFXO     = 0x40020000
	AddrPRS      = 0x40038000
	AddrHYDRARAM = 0x40084000
)

// NonSecureAlias is the address bit that distinguishes the non-secure alias
// of a peripheral from the secure alias.
const NonSecureAlias = 0x10000000

// Machine is the main container for the emulated components of the device.
type Machine struct {
	Prefs *preferences.Preferences

	Bus *bus.Bus
	RAM *sram.SRAM

	LFXO     *lfxo.LFXO
	PRS      *prs.PRS
	HYDRARAM *hydraram.HYDRARAM

	// peripherals added with AttachSVD()
	Generic []*generic.Generic

	// number of cycles since the last reset
	Cycles uint64
}

// NewMachine creates a new Machine and everything associated with the
// hardware.
func NewMachine(p *preferences.Preferences) (*Machine, error) {
	if err := p.Validate(); err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	m := &Machine{
		Prefs: p,
		Bus:   bus.NewBus(),
	}

	var err error

	m.RAM, err = sram.NewSRAM("SRAM", uint32(p.RAMSize.Get().(int)), p.RAMBanks.Get().(int))
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	m.LFXO = lfxo.NewLFXO(m)
	m.PRS = prs.NewPRS(m)
	m.HYDRARAM = hydraram.NewHYDRARAM(m, m.RAM, AddrSRAM)

	nonsecure := p.NonSecure.Get().(bool)

	for _, mp := range []struct {
		addr   uint32
		periph bus.Peripheral
	}{
		{addr: AddrSRAM, periph: m.RAM},
		{addr: AddrLFXO, periph: m.LFXO},
		{addr: AddrPRS, periph: m.PRS},
		{addr: AddrHYDRARAM, periph: m.HYDRARAM},
	} {
		if err := m.Bus.Map(mp.addr, mp.periph, ""); err != nil {
			return nil, curated.Errorf("machine: %v", err)
		}
		if nonsecure {
			err := m.Bus.Map(mp.addr|NonSecureAlias, mp.periph, fmt.Sprintf("%s_NS", mp.periph.Name()))
			if err != nil {
				return nil, curated.Errorf("machine: %v", err)
			}
		}
	}

	for _, l := range m.Interrupts() {
		l.Connect(func(name string, level bool) {
			if level {
				logger.Logf(m, "IRQ", "%s raised", name)
			} else {
				logger.Logf(m, "IRQ", "%s lowered", name)
			}
		})
	}

	return m, nil
}

// AllowLogging implements the logger.Permission interface.
func (m *Machine) AllowLogging() bool {
	return m.Prefs.Logging.Get().(bool)
}

// Reset every peripheral. The contents of RAM survive the reset.
func (m *Machine) Reset() {
	m.Bus.Reset()
	m.Bus.Exclusive(func() {
		m.Cycles = 0
	})
	logger.Log(m, "machine", "reset")
}

// Step advances peripheral time by the number of cycles.
func (m *Machine) Step(cycles uint64) {
	m.Bus.Exclusive(func() {
		m.LFXO.Step(cycles)
		m.Cycles += cycles
	})
}

// Interrupts returns the interrupt lines of the machine.
func (m *Machine) Interrupts() []*irq.Line {
	return []*irq.Line{m.LFXO.IRQ, m.HYDRARAM.IRQ}
}

// Interrupt returns the named interrupt line.
func (m *Machine) Interrupt(name string) (*irq.Line, error) {
	for _, l := range m.Interrupts() {
		if strings.EqualFold(l.Name(), name) {
			return l, nil
		}
	}
	return nil, curated.Errorf(UnknownInterrupt, name)
}

// Drive a PRS producer signal.
func (m *Machine) Drive(source string, signal string, level bool) error {
	var err error
	m.Bus.Exclusive(func() {
		err = m.PRS.Drive(source, signal, level)
	})
	return err
}

// Demand requests or releases the LFXO on behalf of a clock consumer.
func (m *Machine) Demand(demand bool) {
	m.Bus.Exclusive(func() {
		m.LFXO.SetDemand(demand)
	})
}

// OscillatorFailure simulates the failure of the LFXO.
func (m *Machine) OscillatorFailure() {
	m.Bus.Exclusive(func() {
		m.LFXO.InjectFailure()
	})
}

// InjectFault flips bits of the RAM word at the address.
func (m *Machine) InjectFault(addr uint32, mask uint32) error {
	mp, offset, ok := m.Bus.Find(addr)
	if !ok || mp.Periph != m.RAM {
		return curated.Errorf(NotRAM, addr)
	}
	var err error
	m.Bus.Exclusive(func() {
		err = m.RAM.InjectFault(offset, mask)
	})
	return err
}

// AttachSVD adds generic models for the peripherals in the SVD description.
// Peripherals that have a hand-written model, or that would overlap an
// existing mapping, are skipped. Returns the number of peripherals added.
//
// SVD descriptions of series-2 devices list the secure and non-secure
// aliases of a peripheral separately. Both aliases are mapped to the same
// model.
func (m *Machine) AttachSVD(dev *svd.Device) (int, error) {
	if dev == nil || len(dev.Peripherals) == 0 {
		return 0, curated.Errorf(NoPeripherals)
	}

	builtin := map[uint32]bool{
		AddrLFXO:     true,
		AddrPRS:      true,
		AddrHYDRARAM: true,
	}

	models := make(map[uint32]*generic.Generic)
	for _, g := range m.Generic {
		models[g.Address&^NonSecureAlias] = g
	}

	var count int

	for _, p := range dev.Peripherals {
		addr := uint32(p.BaseAddress)
		key := addr &^ NonSecureAlias

		if builtin[key] {
			continue
		}

		if g, ok := models[key]; ok {
			if err := m.Bus.Map(addr, g, p.Name); err != nil {
				logger.Logf(m, "machine", "%s not attached: %v", p.Name, err)
				continue
			}
			count++
			continue
		}

		g, err := generic.NewGeneric(dev, p, m)
		if err != nil {
			logger.Logf(m, "machine", "%s not attached: %v", p.Name, err)
			continue
		}

		if err := m.Bus.Map(addr, g, ""); err != nil {
			logger.Logf(m, "machine", "%s not attached: %v", p.Name, err)
			continue
		}

		models[key] = g
		m.Generic = append(m.Generic, g)
		count++
	}

	logger.Logf(m, "machine", "%d peripherals attached from %s", count, dev.Name)

	return count, nil
}
