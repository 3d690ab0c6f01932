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

// Package prs models the peripheral reflex system of EFR32 series-2 devices.
//
// The PRS routes signals from producer peripherals to consumer peripherals
// without CPU involvement. Producers are driven with the Drive() function.
// Consumers are represented by listener functions registered with Connect().
//
// Each asynchronous channel combines its selected producer signal (input A)
// with input A of the channel selected by AUXSEL (input B) through the four
// entry truth table in FNSEL. Software can also drive input A with the
// ASYNC_SWLEVEL and ASYNC_SWPULSE registers. Synchronous channels pass their
// producer signal through unchanged.
package prs

import (
	"fmt"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
)

// Name of the peripheral.
const Name = "PRS"

// Number of channels.
const (
	NumAsync = 12
	NumSync  = 4
)

const (
	asyncCtrlBase = 0x018
	syncCtrlBase  = 0x048
	consumerBase  = 0x058
)

// Sentinal error patterns.
const (
	UnknownConsumer = "prs: unknown consumer (%s)"
	UnknownSource   = "prs: unknown source (%s)"
	UnknownSignal   = "prs: %s has no signal %s"
	NoSyncSelect    = "prs: %s cannot select a synchronous channel"
)

type consumerReg struct {
	consumer
	reg *register.Register
}

// the channel selected by the consumer. returns false if the selection is
// not a valid channel.
func (c *consumerReg) channel(sync bool) (int, bool) {
	if sync {
		return int(c.reg.Get("SPRSSEL")), true
	}
	ch := int(c.reg.Get("PRSSEL"))
	return ch, ch < NumAsync
}

type listener struct {
	c     *consumerReg
	sync  bool
	level bool
	fn    func(level bool)
}

// PRS is the peripheral reflex system.
type PRS struct {
	*register.Block

	perm logger.Permission

	swlevel   *register.Register
	asyncCtrl [NumAsync]*register.Register
	syncCtrl  [NumSync]*register.Register

	consumers []*consumerReg

	// producer signal levels indexed by SOURCESEL. each bit is a signal
	producers map[uint32]uint8

	// channels with a pending software pulse
	pulse uint32

	asyncOut [NumAsync]bool
	syncOut  [NumSync]bool

	listeners []*listener
}

// NewPRS is the preferred method of initialisation for the PRS type.
func NewPRS(perm logger.Permission) *PRS {
	p := &PRS{
		Block:     register.NewBlock(Name, consumerBase+uint32(len(consumers))*4, perm).WithAliases(),
		perm:      perm,
		producers: make(map[uint32]uint8),
	}

	p.Register("IPVERSION", 0x000).Bits("IPVERSION", 0, 32, register.ReadOnly).WithReset(0x1)

	swpulse := p.Register("ASYNC_SWPULSE", 0x008)
	for ch := 0; ch < NumAsync; ch++ {
		swpulse.Flag(fmt.Sprintf("CH%dPULSE", ch), uint(ch), register.WriteOnly).WithWriteHook(func(_ uint32, v uint32) {
			if v != 0 {
				p.pulse |= 1 << ch
			}
		})
	}
	swpulse.WithWriteHook(func(_ uint32, _ uint32) {
		if p.pulse == 0 {
			return
		}
		logger.Logf(p.perm, Name, "software pulse (%03x)", p.pulse)
		p.update()
		p.pulse = 0
		p.update()
	})

	p.swlevel = p.Register("ASYNC_SWLEVEL", 0x00c)
	for ch := 0; ch < NumAsync; ch++ {
		p.swlevel.Flag(fmt.Sprintf("CH%dLEVEL", ch), uint(ch), register.ReadWrite)
	}
	p.swlevel.WithWriteHook(p.changed)

	peek := p.Register("ASYNC_PEEK", 0x010)
	for ch := 0; ch < NumAsync; ch++ {
		peek.Flag(fmt.Sprintf("CH%dVAL", ch), uint(ch), register.ReadOnly).WithValueProvider(func() uint32 {
			return b2u(p.asyncOut[ch])
		})
	}

	speek := p.Register("SYNC_PEEK", 0x014)
	for ch := 0; ch < NumSync; ch++ {
		speek.Flag(fmt.Sprintf("CH%dVAL", ch), uint(ch), register.ReadOnly).WithValueProvider(func() uint32 {
			return b2u(p.syncOut[ch])
		})
	}

	for ch := 0; ch < NumAsync; ch++ {
		r := p.Register(fmt.Sprintf("ASYNC_CH%d_CTRL", ch), asyncCtrlBase+uint32(ch)*4)
		r.Bits("SIGSEL", 0, 3, register.ReadWrite)
		r.Bits("SOURCESEL", 8, 7, register.ReadWrite).WithEnums(sourceEnums())
		r.Bits("FNSEL", 16, 4, register.ReadWrite).WithReset(0xc).WithEnums(fnselEnums)
		r.Bits("AUXSEL", 24, 4, register.ReadWrite)
		r.WithWriteHook(p.changed)
		p.asyncCtrl[ch] = r
	}

	for ch := 0; ch < NumSync; ch++ {
		r := p.Register(fmt.Sprintf("SYNC_CH%d_CTRL", ch), syncCtrlBase+uint32(ch)*4)
		r.Bits("SIGSEL", 0, 3, register.ReadWrite)
		r.Bits("SOURCESEL", 8, 7, register.ReadWrite).WithEnums(sourceEnums())
		r.WithWriteHook(p.changed)
		p.syncCtrl[ch] = r
	}

	for i, c := range consumers {
		r := p.Register(fmt.Sprintf("CONSUMER_%s", c.name), consumerBase+uint32(i)*4)
		r.Bits("PRSSEL", 0, 4, register.ReadWrite)
		if c.sync {
			r.Bits("SPRSSEL", 16, 2, register.ReadWrite)
		}
		r.WithWriteHook(p.changed)
		p.consumers = append(p.consumers, &consumerReg{consumer: c, reg: r})
	}

	p.OnReset(func() {
		p.pulse = 0
		clear(p.producers)
		p.update()
	})

	p.Reset()

	return p
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func sourceEnums() map[uint32]string {
	e := make(map[uint32]string, len(sources))
	for _, s := range sources {
		e[s.Sel] = s.Name
	}
	return e
}

// register write hook
func (p *PRS) changed(_ uint32, _ uint32) {
	p.update()
}

// level of the producer signal selected by a channel control register.
func (p *PRS) producer(ctrl *register.Register) bool {
	src := ctrl.Get("SOURCESEL")
	if src == 0 {
		return false
	}
	return p.producers[src]&(1<<ctrl.Get("SIGSEL")) != 0
}

func (p *PRS) inputA(ch int) bool {
	return p.producer(p.asyncCtrl[ch]) ||
		p.swlevel.Stored()&(1<<ch) != 0 ||
		p.pulse&(1<<ch) != 0
}

// update channel outputs and notify listeners of any change.
func (p *PRS) update() {
	for ch := 0; ch < NumAsync; ch++ {
		ctrl := p.asyncCtrl[ch]
		a := p.inputA(ch)
		var b bool
		if aux := int(ctrl.Get("AUXSEL")); aux < NumAsync {
			b = p.inputA(aux)
		}
		p.asyncOut[ch] = (ctrl.Get("FNSEL")>>(b2u(a)<<1|b2u(b)))&1 == 1
	}

	for ch := 0; ch < NumSync; ch++ {
		p.syncOut[ch] = p.producer(p.syncCtrl[ch])
	}

	for _, l := range p.listeners {
		lvl := p.observed(l.c, l.sync)
		if lvl != l.level {
			l.level = lvl
			l.fn(lvl)
		}
	}
}

func (p *PRS) observed(c *consumerReg, sync bool) bool {
	ch, ok := c.channel(sync)
	if !ok {
		return false
	}
	if sync {
		return p.syncOut[ch]
	}
	return p.asyncOut[ch]
}

// Level returns the output of the asynchronous channel.
func (p *PRS) Level(ch int) bool {
	if ch < 0 || ch >= NumAsync {
		return false
	}
	return p.asyncOut[ch]
}

// SyncLevel returns the output of the synchronous channel.
func (p *PRS) SyncLevel(ch int) bool {
	if ch < 0 || ch >= NumSync {
		return false
	}
	return p.syncOut[ch]
}

// DriveSignal sets the level of a producer signal by its SOURCESEL and SIGSEL
// values. The NONE source cannot be driven.
func (p *PRS) DriveSignal(sourcesel uint32, sigsel uint32, level bool) {
	if sourcesel == 0 || sigsel > 7 {
		return
	}
	if level {
		p.producers[sourcesel] |= 1 << sigsel
	} else {
		p.producers[sourcesel] &^= 1 << sigsel
	}
	p.update()
}

// Drive sets the level of a producer signal by name. For example, Drive("TIMER0",
// "CC0", true).
func (p *PRS) Drive(source string, signal string, level bool) error {
	for _, s := range sources {
		if s.Sel == 0 || !strings.EqualFold(s.Name, source) {
			continue
		}
		for i, sig := range s.Signals {
			if strings.EqualFold(sig, signal) {
				p.DriveSignal(s.Sel, uint32(i), level)
				return nil
			}
		}
		return curated.Errorf(UnknownSignal, s.Name, signal)
	}
	return curated.Errorf(UnknownSource, source)
}

func (p *PRS) consumer(name string) (*consumerReg, error) {
	for _, c := range p.consumers {
		if strings.EqualFold(c.name, name) {
			return c, nil
		}
	}
	return nil, curated.Errorf(UnknownConsumer, name)
}

// Connect a listener to the asynchronous channel selected by the consumer's
// PRSSEL field. The listener is called whenever the observed level changes,
// including when the consumer register selects a different channel.
func (p *PRS) Connect(consumer string, fn func(level bool)) error {
	c, err := p.consumer(consumer)
	if err != nil {
		return err
	}
	p.listeners = append(p.listeners, &listener{c: c, level: p.observed(c, false), fn: fn})
	return nil
}

// ConnectSync is like Connect() but the listener observes the synchronous
// channel selected by the SPRSSEL field.
func (p *PRS) ConnectSync(consumer string, fn func(level bool)) error {
	c, err := p.consumer(consumer)
	if err != nil {
		return err
	}
	if !c.sync {
		return curated.Errorf(NoSyncSelect, c.name)
	}
	p.listeners = append(p.listeners, &listener{c: c, sync: true, level: p.observed(c, true), fn: fn})
	return nil
}

// Sources returns the list of producers.
func (p *PRS) Sources() []Source {
	return sources
}

// Consumers returns the names of the consumers.
func (p *PRS) Consumers() []string {
	n := make([]string, len(p.consumers))
	for i, c := range p.consumers {
		n[i] = c.name
	}
	return n
}

func (p *PRS) String() string {
	s := strings.Builder{}
	s.WriteString("async:")
	for ch := 0; ch < NumAsync; ch++ {
		s.WriteString(fmt.Sprintf(" %d", b2u(p.asyncOut[ch])))
	}
	s.WriteString(" sync:")
	for ch := 0; ch < NumSync; ch++ {
		s.WriteString(fmt.Sprintf(" %d", b2u(p.syncOut[ch])))
	}
	return s.String()
}
