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

package svd_test

import (
	"os"
	"strings"
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/svd"
	"github.com/efr32sim/efr32sim/test"
)

func load(t *testing.T) *svd.Device {
	t.Helper()
	f, err := os.Open("testdata/efr32test.svd")
	test.DemandSuccess(t, err)
	defer f.Close()
	dev, err := svd.Load(f)
	test.DemandSuccess(t, err)
	return dev
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		s string
		v uint64
	}{
		{"10", 10},
		{"0x10", 16},
		{"0X1f", 31},
		{"0b101", 5},
		{"#101", 5},
		{"#1x1", 5},
		{" 7 ", 7},
	}
	for _, c := range cases {
		v, err := svd.ParseNumber(c.s)
		test.ExpectSuccess(t, err, c.s)
		test.ExpectEquality(t, v, c.v, c.s)
	}

	_, err := svd.ParseNumber("0xzz")
	test.ExpectSuccess(t, curated.Is(err, svd.BadNumber))
	_, err = svd.ParseNumber("")
	test.ExpectFailure(t, err)
}

func TestLoad(t *testing.T) {
	dev := load(t)

	test.ExpectEquality(t, dev.Name, "EFR32TEST")
	test.DemandSuccess(t, dev.CPU != nil)
	test.ExpectEquality(t, dev.CPU.Name, "CM33")
	test.ExpectEquality(t, bool(dev.CPU.FPUPresent), true)
	test.ExpectEquality(t, uint64(dev.Width), uint64(32))
	test.DemandSuccess(t, dev.Size != nil)
	test.ExpectEquality(t, *dev.Access, "read-write")
	test.DemandEquality(t, len(dev.Peripherals), 2)

	p := dev.Peripheral("gpcrc_s")
	test.DemandSuccess(t, p != nil)
	test.ExpectEquality(t, uint64(p.BaseAddress), uint64(0x40088000))
	test.DemandEquality(t, len(p.AddressBlocks), 1)
	test.ExpectEquality(t, uint64(p.AddressBlocks[0].Size), uint64(0x4000))
	test.DemandEquality(t, len(p.Interrupts), 1)
	test.ExpectEquality(t, uint64(p.Interrupts[0].Value), uint64(40))
	test.ExpectEquality(t, len(p.Registers), 6)

	ns := dev.Peripheral("GPCRC_NS")
	test.DemandSuccess(t, ns != nil)
	test.ExpectEquality(t, ns.DerivedFrom, "GPCRC_S")
	test.ExpectEquality(t, dev.Base(ns), p)
	test.ExpectEquality(t, dev.Base(p), p)
}

func TestFields(t *testing.T) {
	dev := load(t)
	p := dev.Peripheral("GPCRC_S")
	ctrl := p.Registers[1]
	test.DemandEquality(t, ctrl.Name, "CTRL")

	shift, width, err := ctrl.Fields[0].Bits()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, shift, uint(4))
	test.ExpectEquality(t, width, uint(1))

	shift, width, err = ctrl.Fields[1].Bits()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, shift, uint(8))
	test.ExpectEquality(t, width, uint(1))

	ev := ctrl.Fields[0].EnumeratedValues[0].EnumeratedValue[1]
	v, err := ev.Val()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint64(1))

	ipv := p.Registers[0].Fields[0]
	shift, width, err = ipv.Bits()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, shift, uint(0))
	test.ExpectEquality(t, width, uint(32))
}

func TestDim(t *testing.T) {
	dev := load(t)
	data := dev.Peripheral("GPCRC_S").Registers[5]

	e, err := data.Expand(data.Name)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(e), 4)
	test.ExpectEquality(t, e[0].Name, "DATA0")
	test.ExpectEquality(t, e[3].Name, "DATA3")
	test.ExpectEquality(t, e[3].Offset, uint64(12))

	d := svd.Dim{Dim: 3, DimIncrement: 8, DimIndex: "A,B,C"}
	e, err = d.Expand("CH%s_CTRL")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e[1].Name, "CHB_CTRL")
	test.ExpectEquality(t, e[2].Offset, uint64(16))

	d = svd.Dim{Dim: 2, DimIncrement: 4}
	e, err = d.Expand("ARR[%s]")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e[1].Name, "ARR1")

	d = svd.Dim{Dim: 3, DimIndex: "A,B"}
	_, err = d.Expand("X%s")
	test.ExpectSuccess(t, curated.Is(err, svd.BadDim))

	e, err = svd.Dim{}.Expand("PLAIN")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e[0].Name, "PLAIN")
}

func TestLoadErrors(t *testing.T) {
	_, err := svd.Load(strings.NewReader("<device></device>"))
	test.ExpectSuccess(t, curated.Is(err, svd.NoDevice))

	_, err = svd.Load(strings.NewReader("<device><name>X</name><width>nope</width></device>"))
	test.ExpectSuccess(t, curated.Is(err, svd.Decoding))
}
