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

package generic_test

import (
	"strings"
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware/peripherals/generic"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/svd"
	"github.com/efr32sim/efr32sim/test"
)

const description = `<device>
  <name>TEST</name>
  <width>32</width>
  <size>32</size>
  <access>read-write</access>
  <resetValue>0</resetValue>
  <resetMask>0xffffffff</resetMask>
  <peripherals>
    <peripheral>
      <name>WDOG0_S</name>
      <description>watchdog
        timer</description>
      <baseAddress>0x4A018000</baseAddress>
      <addressBlock><offset>0</offset><size>0x4000</size><usage>registers</usage></addressBlock>
      <interrupt><name>WDOG0</name><value>43</value></interrupt>
      <registers>
        <register>
          <name>EN</name>
          <addressOffset>0x004</addressOffset>
          <fields>
            <field><name>EN</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
          </fields>
        </register>
        <register>
          <name>CFG</name>
          <addressOffset>0x008</addressOffset>
          <resetValue>0x000f0000</resetValue>
          <fields>
            <field><name>CLRSRC</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
            <field>
              <name>PERSEL</name><bitOffset>16</bitOffset><bitWidth>4</bitWidth>
              <enumeratedValues>
                <enumeratedValue><name>SEL15</name><value>15</value></enumeratedValue>
              </enumeratedValues>
            </field>
            <field><name>OVERLAP</name><bitOffset>17</bitOffset><bitWidth>1</bitWidth></field>
          </fields>
        </register>
        <register>
          <name>CMD</name>
          <addressOffset>0x00C</addressOffset>
          <access>write-only</access>
          <fields>
            <field><name>CLEAR</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
          </fields>
        </register>
        <register>
          <name>STATUS</name>
          <addressOffset>0x010</addressOffset>
          <access>read-only</access>
          <resetValue>0x1</resetValue>
        </register>
        <register>
          <name>IF</name>
          <addressOffset>0x014</addressOffset>
          <resetValue>0x3</resetValue>
          <fields>
            <field><name>TOUT</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth><modifiedWriteValues>oneToClear</modifiedWriteValues></field>
            <field><name>PEM0</name><bitOffset>1</bitOffset><bitWidth>1</bitWidth><readAction>clear</readAction></field>
          </fields>
        </register>
        <register derivedFrom="IF">
          <name>IEN</name>
          <addressOffset>0x018</addressOffset>
          <resetValue>0</resetValue>
        </register>
        <cluster>
          <dim>2</dim>
          <dimIncrement>8</dimIncrement>
          <name>CH%s</name>
          <addressOffset>0x020</addressOffset>
          <register><name>CTRL</name><addressOffset>0</addressOffset></register>
          <register><name>DATA</name><addressOffset>4</addressOffset></register>
        </cluster>
      </registers>
    </peripheral>
    <peripheral derivedFrom="WDOG0_S">
      <name>WDOG1_S</name>
      <baseAddress>0x4A01C000</baseAddress>
    </peripheral>
    <peripheral>
      <name>EMPTY</name>
      <baseAddress>0x4B000000</baseAddress>
    </peripheral>
  </peripherals>
</device>`

func build(t *testing.T, name string) (*generic.Generic, error) {
	t.Helper()
	dev, err := svd.Load(strings.NewReader(description))
	test.DemandSuccess(t, err)
	p := dev.Peripheral(name)
	test.DemandSuccess(t, p != nil)
	return generic.NewGeneric(dev, p, logger.Deny)
}

func TestAccessMapping(t *testing.T) {
	test.ExpectEquality(t, generic.Access("read-only", "", ""), register.ReadOnly)
	test.ExpectEquality(t, generic.Access("write-only", "", ""), register.WriteOnly)
	test.ExpectEquality(t, generic.Access("writeOnce", "", ""), register.WriteOnly)
	test.ExpectEquality(t, generic.Access("read-writeOnce", "", ""), register.ReadWrite)
	test.ExpectEquality(t, generic.Access("read-write", "oneToClear", ""), register.WriteOneToClear)
	test.ExpectEquality(t, generic.Access("read-only", "", "clear"), register.ReadToClear)
}

func TestWriteOnceFields(t *testing.T) {
	test.ExpectSuccess(t, generic.WriteOnce("writeOnce"))
	test.ExpectSuccess(t, generic.WriteOnce("read-writeOnce"))
	test.ExpectFailure(t, generic.WriteOnce("read-write"))

	const once = `<device>
  <name>ONCE</name>
  <peripherals>
    <peripheral>
      <name>SEMAILBOX_S</name>
      <baseAddress>0x4C000000</baseAddress>
      <addressBlock><offset>0</offset><size>0x4000</size><usage>registers</usage></addressBlock>
      <registers>
        <register>
          <name>CFG</name>
          <addressOffset>0x000</addressOffset>
          <fields>
            <field><name>KEY</name><bitOffset>0</bitOffset><bitWidth>8</bitWidth><access>read-writeOnce</access></field>
            <field><name>MODE</name><bitOffset>8</bitOffset><bitWidth>2</bitWidth><access>read-write</access></field>
          </fields>
        </register>
        <register>
          <name>LOCK</name>
          <addressOffset>0x004</addressOffset>
          <access>read-writeOnce</access>
        </register>
      </registers>
    </peripheral>
  </peripherals>
</device>`

	dev, err := svd.Load(strings.NewReader(once))
	test.DemandSuccess(t, err)
	g, err := generic.NewGeneric(dev, dev.Peripheral("SEMAILBOX_S"), logger.Deny)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, g.Write(0x000, 0x1a5))
	test.ExpectSuccess(t, g.Write(0x000, 0x2ff))
	v, _ := g.Read(0x000)
	test.ExpectEquality(t, v, uint32(0x2a5))

	// a register with no fields is a single write once field
	test.ExpectSuccess(t, g.Write(0x004, 0x1234))
	test.ExpectSuccess(t, g.Write(0x004, 0x0))
	v, _ = g.Read(0x004)
	test.ExpectEquality(t, v, uint32(0x1234))

	// reset allows another write
	g.Reset()
	test.ExpectSuccess(t, g.Write(0x004, 0x5))
	v, _ = g.Read(0x004)
	test.ExpectEquality(t, v, uint32(0x5))
}

func TestLayout(t *testing.T) {
	g, err := build(t, "WDOG0_S")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, g.Name(), "WDOG0_S")
	test.ExpectEquality(t, g.Address, uint32(0x4a018000))
	test.ExpectEquality(t, g.Description, "watchdog timer")
	test.DemandEquality(t, len(g.Interrupts), 1)
	test.ExpectEquality(t, g.Interrupts[0], "WDOG0")

	// alias windows are decoded because the address block covers them
	test.ExpectSuccess(t, g.Aliases())
	test.ExpectEquality(t, g.Size(), uint32(0x4000))

	names := []string{}
	for _, r := range g.Registers() {
		names = append(names, r.Name)
	}
	test.ExpectEquality(t, strings.Join(names, ","), "EN,CFG,CMD,STATUS,IF,IEN,CH0_CTRL,CH0_DATA,CH1_CTRL,CH1_DATA")

	o, ok := g.Resolve("CH1_DATA")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, o, uint32(0x02c))

	// overlapping field is dropped
	cfg, _ := g.Lookup("CFG")
	test.ExpectEquality(t, len(cfg.Fields()), 2)
	test.ExpectEquality(t, cfg.Field("PERSEL").Enum(), "SEL15")
}

func TestBehaviour(t *testing.T) {
	g, err := build(t, "WDOG0_S")
	test.DemandSuccess(t, err)

	v, _ := g.Read(0x008)
	test.ExpectEquality(t, v, uint32(0x000f0000))

	test.ExpectSuccess(t, g.Write(0x1004, 0x1))
	v, _ = g.Read(0x004)
	test.ExpectEquality(t, v, uint32(0x1))

	// write only
	test.ExpectSuccess(t, g.Write(0x00c, 0x1))
	v, _ = g.Read(0x00c)
	test.ExpectEquality(t, v, uint32(0x0))

	// read only register with no fields
	test.ExpectSuccess(t, g.Write(0x010, 0x0))
	v, _ = g.Read(0x010)
	test.ExpectEquality(t, v, uint32(0x1))

	// write one to clear and read to clear
	test.ExpectSuccess(t, g.Write(0x014, 0x1))
	v, _ = g.Read(0x014)
	test.ExpectEquality(t, v, uint32(0x2))
	v, _ = g.Read(0x014)
	test.ExpectEquality(t, v, uint32(0x0))

	// derived register has the fields of the base register but its own
	// reset value
	ien, ok := g.Lookup("IEN")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(ien.Fields()), 2)
	test.ExpectEquality(t, ien.ResetValue(), uint32(0))
}

func TestDerivedPeripheral(t *testing.T) {
	g, err := build(t, "WDOG1_S")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Name(), "WDOG1_S")
	test.ExpectEquality(t, g.Address, uint32(0x4a01c000))
	test.ExpectEquality(t, g.Description, "watchdog timer")
	test.ExpectEquality(t, len(g.Registers()), 10)
}

func TestNoRegisters(t *testing.T) {
	_, err := build(t, "EMPTY")
	test.ExpectSuccess(t, curated.Is(err, generic.NoRegisters))
}
