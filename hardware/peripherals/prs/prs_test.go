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

package prs_test

import (
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/peripherals/prs"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/test"
)

const (
	swpulse   = 0x008
	swlevel   = 0x00c
	asyncPeek = 0x010
	syncPeek  = 0x014
)

func asyncCtrl(ch int) uint32 {
	return 0x018 + uint32(ch)*4
}

func syncCtrl(ch int) uint32 {
	return 0x048 + uint32(ch)*4
}

func ctrlValue(source uint32, signal uint32, fnsel uint32, aux uint32) uint32 {
	return signal | source<<8 | fnsel<<16 | aux<<24
}

func consumerOffset(t *testing.T, p *prs.PRS, name string) uint32 {
	t.Helper()
	o, ok := p.Resolve("CONSUMER_" + name)
	test.DemandSuccess(t, ok)
	return o
}

func TestResetValues(t *testing.T) {
	p := prs.NewPRS(logger.Deny)
	v, err := p.Read(asyncCtrl(0))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x000c0000))
	v, _ = p.Read(asyncPeek)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectEquality(t, consumerOffset(t, p, "CMU_CALDN"), uint32(0x058))
	test.ExpectEquality(t, len(p.Consumers()), 44)
}

func TestProducerRouting(t *testing.T) {
	p := prs.NewPRS(logger.Deny)

	// TIMER0 CC0 on channel 3, passed through
	test.DemandSuccess(t, p.Write(asyncCtrl(3), ctrlValue(0x14, 2, 0xc, 0)))

	test.ExpectSuccess(t, p.Drive("TIMER0", "CC0", true))
	test.ExpectSuccess(t, p.Level(3))
	v, _ := p.Read(asyncPeek)
	test.ExpectEquality(t, v, uint32(1<<3))

	test.ExpectSuccess(t, p.Drive("timer0", "cc0", false))
	test.ExpectFailure(t, p.Level(3))

	test.ExpectSuccess(t, curated.Is(p.Drive("TIMER9", "CC0", true), prs.UnknownSource))
	test.ExpectSuccess(t, curated.Is(p.Drive("TIMER0", "CC9", true), prs.UnknownSignal))
	test.ExpectSuccess(t, curated.Is(p.Drive("NONE", "", true), prs.UnknownSource))
}

func TestLogicFunctions(t *testing.T) {
	p := prs.NewPRS(logger.Deny)

	// channel 0 is A, channel 1 supplies B through AUXSEL
	test.DemandSuccess(t, p.Write(asyncCtrl(1), ctrlValue(0x10, 1, 0xc, 0)))

	cases := []struct {
		fnsel uint32
		a, b  bool
		out   bool
	}{
		{0x0, true, true, false},
		{0xf, false, false, true},
		{0x8, true, true, true},
		{0x8, true, false, false},
		{0x6, true, false, true},
		{0x6, true, true, false},
		{0xa, false, true, true},
		{0x3, false, true, true},
		{0x1, false, false, true},
	}

	for i, c := range cases {
		test.DemandSuccess(t, p.Write(asyncCtrl(0), ctrlValue(0x10, 0, c.fnsel, 1)))
		test.DemandSuccess(t, p.Drive("GPIO", "PIN0", c.a))
		test.DemandSuccess(t, p.Drive("GPIO", "PIN1", c.b))
		test.ExpectEquality(t, p.Level(0), c.out, i)
	}
}

func TestSoftwareLevel(t *testing.T) {
	p := prs.NewPRS(logger.Deny)
	test.DemandSuccess(t, p.Write(swlevel+0x1000, 1<<5))
	test.ExpectSuccess(t, p.Level(5))
	test.DemandSuccess(t, p.Write(swlevel+0x3000, 1<<5))
	test.ExpectFailure(t, p.Level(5))
}

func TestSoftwarePulse(t *testing.T) {
	p := prs.NewPRS(logger.Deny)

	test.DemandSuccess(t, p.Write(consumerOffset(t, p, "LETIMER0_START"), 7))

	var edges []bool
	test.DemandSuccess(t, p.Connect("LETIMER0_START", func(level bool) {
		edges = append(edges, level)
	}))

	test.DemandSuccess(t, p.Write(swpulse, 1<<7))
	test.DemandEquality(t, len(edges), 2)
	test.ExpectEquality(t, edges[0], true)
	test.ExpectEquality(t, edges[1], false)

	// pulse is not visible after the write
	v, _ := p.Read(asyncPeek)
	test.ExpectEquality(t, v, uint32(0))

	// pulse register reads as zero
	v, _ = p.Read(swpulse)
	test.ExpectEquality(t, v, uint32(0))
}

func TestConsumerReselection(t *testing.T) {
	p := prs.NewPRS(logger.Deny)

	var edges []bool
	test.DemandSuccess(t, p.Connect("TIMER0_CC0", func(level bool) {
		edges = append(edges, level)
	}))
	test.ExpectSuccess(t, curated.Is(p.Connect("TIMER9_CC0", func(bool) {}), prs.UnknownConsumer))

	// channel 2 is high but the consumer selects channel 0
	test.DemandSuccess(t, p.Write(swlevel, 1<<2))
	test.ExpectEquality(t, len(edges), 0)

	// selecting channel 2 is seen as a rising edge
	test.DemandSuccess(t, p.Write(consumerOffset(t, p, "TIMER0_CC0"), 2))
	test.DemandEquality(t, len(edges), 1)
	test.ExpectEquality(t, edges[0], true)

	// channels beyond the last async channel are always low
	test.DemandSuccess(t, p.Write(consumerOffset(t, p, "TIMER0_CC0"), 15))
	test.DemandEquality(t, len(edges), 2)
	test.ExpectEquality(t, edges[1], false)
}

func TestSyncChannels(t *testing.T) {
	p := prs.NewPRS(logger.Deny)

	test.ExpectSuccess(t, curated.Is(p.ConnectSync("TIMER0_CC0", func(bool) {}), prs.NoSyncSelect))

	var edges []bool
	test.DemandSuccess(t, p.ConnectSync("IADC0_SCANTRIGGER", func(level bool) {
		edges = append(edges, level)
	}))

	test.DemandSuccess(t, p.Write(syncCtrl(1), ctrlValue(0x15, 0, 0, 0)))
	test.DemandSuccess(t, p.Write(consumerOffset(t, p, "IADC0_SCANTRIGGER"), 1<<16))
	test.DemandSuccess(t, p.Drive("TIMER1", "UF", true))

	test.ExpectSuccess(t, p.SyncLevel(1))
	v, _ := p.Read(syncPeek)
	test.ExpectEquality(t, v, uint32(1<<1))
	test.DemandEquality(t, len(edges), 1)
	test.ExpectEquality(t, edges[0], true)

	// reset drops producer levels
	p.Reset()
	test.ExpectFailure(t, p.SyncLevel(1))
	test.ExpectEquality(t, len(edges), 2)
}
