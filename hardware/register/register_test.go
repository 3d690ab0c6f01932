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

package register_test

import (
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/test"
)

func newTestBlock() *register.Block {
	blk := register.NewBlock("TEST", 0x20, logger.Deny).WithAliases()

	ctrl := blk.Register("CTRL", 0x004)
	ctrl.Flag("EN", 0, register.ReadWrite)
	ctrl.Bits("MODE", 4, 2, register.ReadWrite).WithReset(2).WithEnums(map[uint32]string{
		0: "OFF", 1: "SLOW", 2: "FAST",
	})

	status := blk.Register("STATUS", 0x008)
	status.Flag("BUSY", 0, register.ReadOnly)

	blk.Register("CMD", 0x00c).Flag("START", 0, register.WriteOnly)

	flags := blk.Register("FLAGS", 0x010)
	flags.Flag("A", 0, register.WriteOneToClear)
	flags.Flag("B", 1, register.ReadToClear)

	blk.Register("DATA", 0x014).Bits("DATA", 0, 32, register.ReadWrite).WithReset(0xdeadbeef)

	blk.Reset()
	return blk
}

func TestResetValues(t *testing.T) {
	blk := newTestBlock()

	v, err := blk.Read(0x004)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x20))

	v, err = blk.Read(0x014)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xdeadbeef))

	r, ok := blk.Lookup("ctrl")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, r.ResetValue(), uint32(0x20))
	test.ExpectEquality(t, r.Field("MODE").Enum(), "FAST")
}

func TestAccessTypes(t *testing.T) {
	blk := newTestBlock()

	// undefined bits are not stored
	test.ExpectSuccess(t, blk.Write(0x004, 0xffffffff))
	v, _ := blk.Read(0x004)
	test.ExpectEquality(t, v, uint32(0x31))

	// read only
	test.ExpectSuccess(t, blk.Write(0x008, 0x1))
	v, _ = blk.Read(0x008)
	test.ExpectEquality(t, v, uint32(0))

	// write only reads as zero
	test.ExpectSuccess(t, blk.Write(0x00c, 0x1))
	v, _ = blk.Read(0x00c)
	test.ExpectEquality(t, v, uint32(0))

	// write one to clear and read to clear fields are set by the model
	r, _ := blk.Lookup("FLAGS")
	r.Set("A", 1)
	r.Set("B", 1)

	v, _ = blk.Peek(0x010)
	test.ExpectEquality(t, v, uint32(0x3))

	// writing zero to W1C has no effect
	test.ExpectSuccess(t, blk.Write(0x010, 0x0))
	v, _ = blk.Peek(0x010)
	test.ExpectEquality(t, v, uint32(0x3))

	// writing one clears. B is not affected by writes
	test.ExpectSuccess(t, blk.Write(0x010, 0x3))
	v, _ = blk.Peek(0x010)
	test.ExpectEquality(t, v, uint32(0x2))

	// reading clears B
	v, _ = blk.Read(0x010)
	test.ExpectEquality(t, v, uint32(0x2))
	v, _ = blk.Read(0x010)
	test.ExpectEquality(t, v, uint32(0x0))
}

func TestAliases(t *testing.T) {
	blk := newTestBlock()

	test.ExpectSuccess(t, blk.Write(0x014, 0x0000ff00))

	// SET
	test.ExpectSuccess(t, blk.Write(0x1014, 0x0000000f))
	v, _ := blk.Read(0x014)
	test.ExpectEquality(t, v, uint32(0x0000ff0f))

	// CLR
	test.ExpectSuccess(t, blk.Write(0x2014, 0x00000f01))
	v, _ = blk.Read(0x014)
	test.ExpectEquality(t, v, uint32(0x0000f00e))

	// TGL
	test.ExpectSuccess(t, blk.Write(0x3014, 0xffff0000))
	v, _ = blk.Read(0x014)
	test.ExpectEquality(t, v, uint32(0xfffff00e))

	// reads through an alias return the base register
	v, _ = blk.Read(0x2014)
	test.ExpectEquality(t, v, uint32(0xfffff00e))

	// outside of the alias windows
	_, err := blk.Read(0x4014)
	test.ExpectSuccess(t, curated.Is(err, register.UnmappedOffset))

	test.ExpectEquality(t, blk.Describe(0x1004), "CTRL_SET")
	test.ExpectEquality(t, blk.Describe(0x3010), "FLAGS_TGL")
	test.ExpectEquality(t, blk.Describe(0x0004), "CTRL")

	off, ok := blk.Resolve("status_clr")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, off, uint32(0x2008))

	_, ok = blk.Resolve("STATUS_FOO")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, blk.Size(), uint32(0x4000))
}

func TestAliasesWriteOneToClear(t *testing.T) {
	blk := register.NewBlock("IRQ", 0x10, logger.Deny).WithAliases()
	flags := blk.Register("IF", 0x000)
	flags.Bits("FLAGS", 0, 4, register.WriteOneToClear)
	blk.Reset()

	cases := []struct {
		offset   uint32
		value    uint32
		expected uint32
	}{
		// plain write of a one clears that flag only
		{offset: 0x0000, value: 0x1, expected: 0x2},
		// SET and TGL write the bits given, clearing those flags
		{offset: 0x1000, value: 0x1, expected: 0x2},
		{offset: 0x1000, value: 0x4, expected: 0x3},
		{offset: 0x3000, value: 0x2, expected: 0x1},
		// CLR never clears a write-one-to-clear flag
		{offset: 0x2000, value: 0x1, expected: 0x3},
		{offset: 0x2000, value: 0xf, expected: 0x3},
	}

	for _, c := range cases {
		flags.Set("FLAGS", 0x3)
		test.ExpectSuccess(t, blk.Write(c.offset, c.value))
		v, _ := blk.Peek(0x000)
		test.ExpectEquality(t, v, c.expected, blk.Describe(c.offset), c.value)
	}
}

func TestWriteOnce(t *testing.T) {
	blk := register.NewBlock("ONCE", 0x10, logger.Deny).WithAliases()
	cfg := blk.Register("CFG", 0x000)
	cfg.Bits("KEY", 0, 8, register.ReadWrite).WithWriteOnce()
	cfg.Bits("MODE", 8, 2, register.ReadWrite)

	var hooks int
	blk.Register("CMD", 0x004).Flag("GO", 0, register.WriteOnly).WithWriteOnce().WithWriteHook(func(_ uint32, _ uint32) {
		hooks++
	})
	blk.Reset()

	test.ExpectSuccess(t, blk.Write(0x000, 0x1a5))
	test.ExpectSuccess(t, cfg.Field("KEY").Latched())
	v, _ := blk.Read(0x000)
	test.ExpectEquality(t, v, uint32(0x1a5))

	// later writes leave the latched field alone but other fields change
	test.ExpectSuccess(t, blk.Write(0x000, 0x233))
	v, _ = blk.Read(0x000)
	test.ExpectEquality(t, v, uint32(0x2a5))
	test.ExpectSuccess(t, blk.Write(0x2000, 0xff))
	v, _ = blk.Read(0x000)
	test.ExpectEquality(t, v, uint32(0x2a5))

	test.ExpectSuccess(t, blk.Write(0x004, 0x1))
	test.ExpectSuccess(t, blk.Write(0x004, 0x1))
	test.ExpectEquality(t, hooks, 1)

	// reset releases the latch
	blk.Reset()
	test.ExpectFailure(t, cfg.Field("KEY").Latched())
	test.ExpectSuccess(t, blk.Write(0x000, 0x33))
	v, _ = blk.Read(0x000)
	test.ExpectEquality(t, v, uint32(0x33))
}

func TestNoAliases(t *testing.T) {
	blk := register.NewBlock("PLAIN", 0x10, logger.Deny)
	blk.Register("A", 0x0).Bits("A", 0, 8, register.ReadWrite)
	blk.Reset()

	err := blk.Write(0x1000, 0x1)
	test.ExpectSuccess(t, curated.Is(err, register.UnmappedOffset))

	_, ok := blk.Resolve("A_SET")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, blk.Size(), uint32(0x10))
}

func TestErrors(t *testing.T) {
	blk := newTestBlock()

	_, err := blk.Read(0x002)
	test.ExpectSuccess(t, curated.Is(err, register.MisalignedOffset))

	_, err = blk.Read(0x000)
	test.ExpectSuccess(t, curated.Is(err, register.UnmappedOffset))

	err = blk.Write(0x01c, 0)
	test.ExpectSuccess(t, curated.Is(err, register.UnmappedOffset))
}

func TestHooks(t *testing.T) {
	blk := register.NewBlock("HOOKS", 0x10, logger.Deny).WithAliases()
	r := blk.Register("CTRL", 0x0)

	var writes, changes int
	var lastOld, lastNew uint32
	r.Flag("EN", 0, register.ReadWrite).WithWriteHook(func(_, _ uint32) {
		writes++
	}).WithChangeHook(func(o, n uint32) {
		changes++
		lastOld, lastNew = o, n
	})

	var pulses int
	r.Flag("GO", 1, register.WriteOnly).WithWriteHook(func(_, n uint32) {
		if n == 1 {
			pulses++
		}
	})

	var regOld, regNew uint32
	r.WithWriteHook(func(o, n uint32) {
		regOld, regNew = o, n
	})
	blk.Reset()

	test.ExpectSuccess(t, blk.Write(0x0, 0x1))
	test.ExpectEquality(t, writes, 1)
	test.ExpectEquality(t, changes, 1)
	test.ExpectEquality(t, lastOld, uint32(0))
	test.ExpectEquality(t, lastNew, uint32(1))
	test.ExpectEquality(t, regOld, uint32(0))
	test.ExpectEquality(t, regNew, uint32(1))

	// same value. write hook but no change hook
	test.ExpectSuccess(t, blk.Write(0x0, 0x1))
	test.ExpectEquality(t, writes, 2)
	test.ExpectEquality(t, changes, 1)

	// SET alias on write only field triggers it without disturbing EN
	test.ExpectSuccess(t, blk.Write(0x1000, 0x2))
	test.ExpectEquality(t, pulses, 1)
	test.ExpectEquality(t, changes, 1)
	test.ExpectEquality(t, r.Get("EN"), uint32(1))

	// CLR alias
	test.ExpectSuccess(t, blk.Write(0x2000, 0x1))
	test.ExpectEquality(t, changes, 2)
	test.ExpectEquality(t, lastNew, uint32(0))
}

func TestGuardAndLock(t *testing.T) {
	blk := register.NewBlock("LOCKED", 0x10, logger.Deny)
	lock := register.NewLock(0x1a20)

	var changed bool
	ctrl := blk.Register("CTRL", 0x0).WithGuard(lock.Unlocked)
	ctrl.Flag("EN", 0, register.ReadWrite).WithChangeHook(func(_, _ uint32) {
		changed = true
	})
	blk.Register("LOCK", 0x4).Bits("LOCKKEY", 0, 16, register.WriteOnly).WithWriteHook(func(_, n uint32) {
		lock.Write(n)
	})
	blk.OnReset(lock.Reset)
	blk.Reset()

	// lock with any value other than the key
	test.ExpectSuccess(t, blk.Write(0x4, 0x0))
	test.ExpectSuccess(t, lock.Locked())

	test.ExpectSuccess(t, blk.Write(0x0, 0x1))
	v, _ := blk.Read(0x0)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectFailure(t, changed)

	// unlock
	test.ExpectSuccess(t, blk.Write(0x4, 0x1a20))
	test.ExpectSuccess(t, blk.Write(0x0, 0x1))
	v, _ = blk.Read(0x0)
	test.ExpectEquality(t, v, uint32(1))
	test.ExpectSuccess(t, changed)

	// reset unlocks
	test.ExpectSuccess(t, blk.Write(0x4, 0x0))
	blk.Reset()
	test.ExpectFailure(t, lock.Locked())
}

func TestValueProvider(t *testing.T) {
	blk := register.NewBlock("PROVIDER", 0x10, logger.Deny)
	ready := false
	blk.Register("STATUS", 0x0).Flag("RDY", 0, register.ReadOnly).WithValueProvider(func() uint32 {
		if ready {
			return 1
		}
		return 0
	})
	blk.Reset()

	v, _ := blk.Read(0x0)
	test.ExpectEquality(t, v, uint32(0))
	ready = true
	v, _ = blk.Read(0x0)
	test.ExpectEquality(t, v, uint32(1))
}

func TestPoke(t *testing.T) {
	blk := newTestBlock()

	// poke bypasses access rules but not the field mask
	test.ExpectSuccess(t, blk.Poke(0x008, 0xffffffff))
	v, _ := blk.Peek(0x008)
	test.ExpectEquality(t, v, uint32(0x1))

	// poke through an alias stores to the base register
	test.ExpectSuccess(t, blk.Poke(0x1014, 0x12345678))
	v, _ = blk.Peek(0x014)
	test.ExpectEquality(t, v, uint32(0x12345678))
}

func TestDecode(t *testing.T) {
	blk := newTestBlock()
	r, _ := blk.Lookup("CTRL")
	test.ExpectEquality(t, r.String(), "CTRL 00000020 EN=0 MODE=FAST")
	test.ExpectEquality(t, r.Field("MODE").String(), "MODE[5:4]")
	test.ExpectEquality(t, r.Field("EN").String(), "EN[0]")
}

func TestDefinitionPanics(t *testing.T) {
	expectPanic := func(tag string, fn func()) {
		t.Helper()
		defer func() {
			test.ExpectSuccess(t, recover() != nil, tag)
		}()
		fn()
	}

	expectPanic("overlapping fields", func() {
		r := register.NewRegister("R", 0)
		r.Bits("A", 0, 4, register.ReadWrite)
		r.Bits("B", 3, 2, register.ReadWrite)
	})

	expectPanic("shared offset", func() {
		blk := register.NewBlock("B", 0x10, logger.Deny)
		blk.Register("A", 0x0)
		blk.Register("B", 0x0)
	})

	expectPanic("outside window", func() {
		blk := register.NewBlock("B", 0x10, logger.Deny)
		blk.Register("A", 0x10)
	})

	expectPanic("reset too wide", func() {
		r := register.NewRegister("R", 0)
		r.Bits("A", 0, 2, register.ReadWrite).WithReset(4)
	})
}
