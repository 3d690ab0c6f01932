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

// Package lfxo models the low frequency crystal oscillator of EFR32 series-2
// devices.
//
// The oscillator is enabled when CTRL.FORCEEN is set or when a clock consumer
// requests it and CTRL.DISONDEMAND is clear. Once enabled the oscillator
// becomes ready after the startup timeout selected by CFG.TIMEOUT. Time is
// advanced with the Step() function.
//
// Writes to CTRL, CFG and CAL are refused while the LOCK register is locked.
// Writes to CFG are also refused while the oscillator is enabled.
package lfxo

import (
	"github.com/efr32sim/efr32sim/hardware/irq"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
)

// Name of the peripheral.
const Name = "LFXO"

// LockKey is the value that unlocks the LOCK register.
const LockKey = 0x1a20

// Values of the CFG.MODE field.
const (
	ModeXTAL      = 0
	ModeBUFEXTCLK = 1
	ModeDIGEXTCLK = 2
)

// startup periods in oscillator cycles, indexed by CFG.TIMEOUT.
var timeouts = [8]uint64{2, 256, 1024, 2048, 4096, 8192, 16384, 32768}

// Timeout returns the number of cycles for the CFG.TIMEOUT value.
func Timeout(v uint32) uint64 {
	return timeouts[v&0x7]
}

// LFXO is the low frequency crystal oscillator.
type LFXO struct {
	*register.Block

	perm logger.Permission
	lock *register.Lock

	ctrl     *register.Register
	cfg      *register.Register
	cal      *register.Register
	status   *register.Register
	ifr      *register.Register
	ien      *register.Register
	syncbusy *register.Register

	// interrupt line. level is IF & IEN
	IRQ *irq.Line

	// a clock consumer has requested the oscillator
	demand bool

	enabled bool
	ready   bool

	// cycles since the oscillator was enabled
	elapsed uint64
}

// NewLFXO is the preferred method of initialisation for the LFXO type.
func NewLFXO(perm logger.Permission) *LFXO {
	l := &LFXO{
		Block: register.NewBlock(Name, 0x30, perm).WithAliases(),
		perm:  perm,
		lock:  register.NewLock(LockKey),
		IRQ:   irq.NewLine(Name),
	}

	l.Register("IPVERSION", 0x000).Bits("IPVERSION", 0, 32, register.ReadOnly).WithReset(0x1)

	l.ctrl = l.Register("CTRL", 0x004).WithGuard(l.lock.Unlocked)
	l.ctrl.Flag("FORCEEN", 0, register.ReadWrite)
	l.ctrl.Flag("DISONDEMAND", 1, register.ReadWrite)
	l.ctrl.Flag("FAILDETEN", 4, register.ReadWrite)
	l.ctrl.Flag("FAILDETEM4WUEN", 5, register.ReadWrite)
	l.ctrl.WithWriteHook(func(_ uint32, _ uint32) {
		l.update()
	})

	l.cfg = l.Register("CFG", 0x008).WithGuard(func() bool {
		return l.lock.Unlocked() && !l.enabled
	})
	l.cfg.Flag("AGC", 0, register.ReadWrite).WithReset(1)
	l.cfg.Flag("HIGHAMPL", 1, register.ReadWrite)
	l.cfg.Bits("MODE", 4, 2, register.ReadWrite).WithEnums(map[uint32]string{
		ModeXTAL:      "XTAL",
		ModeBUFEXTCLK: "BUFEXTCLK",
		ModeDIGEXTCLK: "DIGEXTCLK",
	})
	l.cfg.Bits("TIMEOUT", 8, 3, register.ReadWrite).WithReset(7).WithEnums(map[uint32]string{
		0: "CYCLES2", 1: "CYCLES256", 2: "CYCLES1K", 3: "CYCLES2K",
		4: "CYCLES4K", 5: "CYCLES8K", 6: "CYCLES16K", 7: "CYCLES32K",
	})

	l.cal = l.Register("CAL", 0x010).WithGuard(l.lock.Unlocked)
	l.cal.Bits("CAPTUNE", 0, 7, register.ReadWrite)
	l.cal.Bits("GAIN", 8, 2, register.ReadWrite).WithReset(2)
	l.cal.WithWriteHook(func(_ uint32, _ uint32) {
		// new calibration values are synchronised into the oscillator
		// domain. the busy flag clears on the next step
		if l.enabled {
			l.syncbusy.Set("CAL", 1)
		}
	})

	l.status = l.Register("STATUS", 0x018)
	l.status.Flag("RDY", 0, register.ReadOnly).WithValueProvider(func() uint32 {
		return b2u(l.ready)
	})
	l.status.Flag("ENS", 16, register.ReadOnly).WithValueProvider(func() uint32 {
		return b2u(l.enabled)
	})
	l.status.Flag("LOCK", 31, register.ReadOnly).WithEnums(map[uint32]string{
		0: "UNLOCKED", 1: "LOCKED",
	}).WithValueProvider(func() uint32 {
		return b2u(l.lock.Locked())
	})

	l.ifr = l.Register("IF", 0x020)
	l.ien = l.Register("IEN", 0x024)
	for _, r := range []*register.Register{l.ifr, l.ien} {
		r.Flag("RDY", 0, register.ReadWrite)
		r.Flag("POSEDGE", 1, register.ReadWrite)
		r.Flag("NEGEDGE", 2, register.ReadWrite)
		r.Flag("FAIL", 3, register.ReadWrite)
		r.WithWriteHook(func(_ uint32, _ uint32) {
			l.updateIRQ()
		})
	}

	l.syncbusy = l.Register("SYNCBUSY", 0x028)
	l.syncbusy.Flag("CAL", 0, register.ReadOnly)

	l.Register("LOCK", 0x02c).Bits("LOCKKEY", 0, 16, register.WriteOnly).WithEnums(map[uint32]string{
		LockKey: "UNLOCK",
	}).WithWriteHook(func(_ uint32, v uint32) {
		l.lock.Write(v)
	})

	l.OnReset(func() {
		l.lock.Reset()
		l.enabled = false
		l.ready = false
		l.elapsed = 0
		l.update()
		l.updateIRQ()
	})

	l.Reset()

	return l
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// SetDemand is called by clock consumers to request or release the
// oscillator. The request is ignored while CTRL.DISONDEMAND is set.
func (l *LFXO) SetDemand(demand bool) {
	l.demand = demand
	l.update()
}

// Enabled returns true if the oscillator is running (STATUS.ENS).
func (l *LFXO) Enabled() bool {
	return l.enabled
}

// Ready returns true if the oscillator is stable (STATUS.RDY).
func (l *LFXO) Ready() bool {
	return l.ready
}

// Locked returns true if the LOCK register is locked.
func (l *LFXO) Locked() bool {
	return l.lock.Locked()
}

// update the enabled state of the oscillator from CTRL and the demand state.
func (l *LFXO) update() {
	en := l.ctrl.Get("FORCEEN") == 1 || (l.demand && l.ctrl.Get("DISONDEMAND") == 0)

	if en == l.enabled {
		return
	}

	l.enabled = en
	l.elapsed = 0

	if en {
		logger.Logf(l.perm, Name, "enabled (%s)", l.cfg.Field("MODE").Enum())
		if l.cfg.Get("MODE") == ModeDIGEXTCLK {
			l.setReady()
		}
		return
	}

	logger.Log(l.perm, Name, "disabled")
	l.syncbusy.Set("CAL", 0)
	if l.ready {
		l.ready = false
		l.ifr.Set("NEGEDGE", 1)
		l.updateIRQ()
	}
}

func (l *LFXO) setReady() {
	l.ready = true
	l.ifr.Set("RDY", 1)
	l.ifr.Set("POSEDGE", 1)
	logger.Log(l.perm, Name, "ready")
	l.updateIRQ()
}

func (l *LFXO) updateIRQ() {
	l.IRQ.Set(l.ifr.Stored()&l.ien.Stored() != 0)
}

// Step advances the oscillator by the number of cycles.
func (l *LFXO) Step(cycles uint64) {
	l.syncbusy.Set("CAL", 0)

	if !l.enabled || l.ready {
		return
	}

	l.elapsed += cycles
	if l.elapsed >= Timeout(l.cfg.Get("TIMEOUT")) {
		l.setReady()
	}
}

// InjectFailure simulates the loss of the oscillator. The oscillator drops
// out of the ready state and restarts the startup period. If failure
// detection is enabled IF.FAIL is set.
func (l *LFXO) InjectFailure() {
	if !l.enabled {
		return
	}

	l.ready = false
	l.elapsed = 0

	if l.ctrl.Get("FAILDETEN") == 1 {
		l.ifr.Set("FAIL", 1)
		logger.Log(l.perm, Name, "failure detected")
	}

	l.updateIRQ()
}
