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

// Package hydraram models the HYDRARAM memory controller. The controller
// owns the power state of each SRAM bank and implements single error
// correction and double error detection for reads of the RAM.
package hydraram

import (
	"fmt"

	"github.com/efr32sim/efr32sim/hardware/irq"
	"github.com/efr32sim/efr32sim/hardware/memory/sram"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
)

// Name of the peripheral.
const Name = "HYDRARAM"

// Bits in the IF and IEN registers.
const (
	RAMERR1B = 1 << 0
	RAMERR2B = 1 << 1
)

// HYDRARAM is the memory controller.
type HYDRARAM struct {
	*register.Block

	perm logger.Permission
	ram  *sram.SRAM

	// bus address of the RAM. used for the ECCERRADDR register
	origin uint32

	ctrl    *register.Register
	eccctrl *register.Register
	erraddr *register.Register
	merrind *register.Register
	ifr     *register.Register
	ien     *register.Register

	IRQ *irq.Line
}

// NewHYDRARAM is the preferred method of initialisation for the HYDRARAM
// type. The controller attaches itself to the RAM as its ECC implementation.
func NewHYDRARAM(perm logger.Permission, ram *sram.SRAM, origin uint32) *HYDRARAM {
	h := &HYDRARAM{
		Block:  register.NewBlock(Name, 0x20, perm).WithAliases(),
		perm:   perm,
		ram:    ram,
		origin: origin,
		IRQ:    irq.NewLine(Name),
	}

	h.Register("IPVERSION", 0x000).Bits("IPVERSION", 0, 32, register.ReadOnly).WithReset(0x1)

	h.ctrl = h.Register("CTRL", 0x004)
	for b := 0; b < ram.Banks(); b++ {
		h.ctrl.Flag(fmt.Sprintf("BANK%dPOWERDOWN", b), uint(b), register.ReadWrite).WithChangeHook(func(_ uint32, v uint32) {
			h.powerDown(b, v == 1)
		})
	}

	h.eccctrl = h.Register("ECCCTRL", 0x008)
	h.eccctrl.Flag("RAMECCEN", 0, register.ReadWrite)
	h.eccctrl.Flag("RAMECCEWEN", 1, register.ReadWrite)

	h.erraddr = h.Register("ECCERRADDR", 0x00c)
	h.erraddr.Bits("ADDR", 0, 32, register.ReadOnly)

	h.merrind = h.Register("ECCMERRIND", 0x010)
	h.merrind.Flag("P0", 0, register.ReadWrite)

	h.ifr = h.Register("IF", 0x014)
	h.ien = h.Register("IEN", 0x018)
	for _, r := range []*register.Register{h.ifr, h.ien} {
		r.Flag("RAMERR1B", 0, register.ReadWrite)
		r.Flag("RAMERR2B", 1, register.ReadWrite)
		r.WithWriteHook(func(_ uint32, _ uint32) {
			h.updateIRQ()
		})
	}

	h.OnReset(func() {
		for b := 0; b < ram.Banks(); b++ {
			h.ram.PowerDown(b, false)
		}
		h.updateIRQ()
	})

	ram.AttachECC(h)
	h.Reset()

	return h
}

func (h *HYDRARAM) powerDown(bank int, down bool) {
	if down {
		logger.Logf(h.perm, Name, "bank %d powered down", bank)
	} else {
		logger.Logf(h.perm, Name, "bank %d powered up", bank)
	}
	h.ram.PowerDown(bank, down)
}

func (h *HYDRARAM) updateIRQ() {
	h.IRQ.Set(h.ifr.Stored()&h.ien.Stored() != 0)
}

// Check implements the sram.ECC interface.
func (h *HYDRARAM) Check(offset uint32, flipped int) (bool, bool) {
	if h.eccctrl.Get("RAMECCEN") == 0 {
		return false, false
	}

	// an error while an earlier error is still flagged
	if h.ifr.Stored()&(RAMERR1B|RAMERR2B) != 0 {
		h.merrind.Set("P0", 1)
	}

	h.erraddr.Set("ADDR", h.origin+offset)

	var correct, writeback bool
	if flipped == 1 {
		h.ifr.Set("RAMERR1B", 1)
		correct = true
		writeback = h.eccctrl.Get("RAMECCEWEN") == 1
		logger.Logf(h.perm, Name, "corrected 1-bit error at %08x", h.origin+offset)
	} else {
		h.ifr.Set("RAMERR2B", 1)
		logger.Logf(h.perm, Name, "detected %d-bit error at %08x", flipped, h.origin+offset)
	}

	h.updateIRQ()

	return correct, writeback
}
