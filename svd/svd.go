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

package svd

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
)

// Device is the root of an SVD description.
type Device struct {
	Vendor          string `xml:"vendor"`
	Name            string `xml:"name"`
	Series          string `xml:"series"`
	Version         string `xml:"version"`
	Description     string `xml:"description"`
	CPU             *CPU   `xml:"cpu"`
	AddressUnitBits Number `xml:"addressUnitBits"`
	Width           Number `xml:"width"`
	Properties
	Peripherals []*Peripheral `xml:"peripherals>peripheral"`
}

// CPU describes the processor core of the device.
type CPU struct {
	Name         string `xml:"name"`
	Revision     string `xml:"revision"`
	Endian       string `xml:"endian"`
	MPUPresent   Bool   `xml:"mpuPresent"`
	FPUPresent   Bool   `xml:"fpuPresent"`
	NVICPrioBits Number `xml:"nvicPrioBits"`
}

// Properties is the SVD register properties group. The values are inherited
// from the enclosing element when they are not specified.
type Properties struct {
	Size       *Number `xml:"size"`
	Access     *string `xml:"access"`
	Protection *string `xml:"protection"`
	ResetValue *Number `xml:"resetValue"`
	ResetMask  *Number `xml:"resetMask"`
}

// Inherit returns a copy of the properties with unset values taken from the
// outer properties.
func (p Properties) Inherit(outer Properties) Properties {
	if p.Size == nil {
		p.Size = outer.Size
	}
	if p.Access == nil {
		p.Access = outer.Access
	}
	if p.Protection == nil {
		p.Protection = outer.Protection
	}
	if p.ResetValue == nil {
		p.ResetValue = outer.ResetValue
	}
	if p.ResetMask == nil {
		p.ResetMask = outer.ResetMask
	}
	return p
}

// Dim is the SVD dim element group, used to describe arrays of peripherals,
// clusters, registers and fields.
type Dim struct {
	Dim          Number `xml:"dim"`
	DimIncrement Number `xml:"dimIncrement"`
	DimIndex     string `xml:"dimIndex"`
}

// Peripheral is a single peripheral instance.
type Peripheral struct {
	DerivedFrom string `xml:"derivedFrom,attr"`
	Dim
	Name        string `xml:"name"`
	Version     string `xml:"version"`
	Description string `xml:"description"`
	GroupName   string `xml:"groupName"`
	BaseAddress Number `xml:"baseAddress"`
	Properties
	AddressBlocks []*AddressBlock `xml:"addressBlock"`
	Interrupts    []*Interrupt    `xml:"interrupt"`
	Registers     []*Register     `xml:"registers>register"`
	Clusters      []*Cluster      `xml:"registers>cluster"`
}

// AddressBlock is a range of addresses used by a peripheral.
type AddressBlock struct {
	Offset Number `xml:"offset"`
	Size   Number `xml:"size"`
	Usage  string `xml:"usage"`
}

// Interrupt is an interrupt line of a peripheral.
type Interrupt struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Value       Number `xml:"value"`
}

// Cluster is a group of registers inside a peripheral.
type Cluster struct {
	DerivedFrom string `xml:"derivedFrom,attr"`
	Dim
	Name          string `xml:"name"`
	Description   string `xml:"description"`
	AddressOffset Number `xml:"addressOffset"`
	Properties
	Registers []*Register `xml:"register"`
	Clusters  []*Cluster  `xml:"cluster"`
}

// Register is a single register or array of registers.
type Register struct {
	DerivedFrom string `xml:"derivedFrom,attr"`
	Dim
	Name          string `xml:"name"`
	DisplayName   string `xml:"displayName"`
	Description   string `xml:"description"`
	AddressOffset Number `xml:"addressOffset"`
	Properties
	ModifiedWriteValues string   `xml:"modifiedWriteValues"`
	ReadAction          string   `xml:"readAction"`
	Fields              []*Field `xml:"fields>field"`
}

// Field is a bit field of a register. The bit position is described by one
// of three forms: offset and width, lsb and msb, or a bit range string.
type Field struct {
	DerivedFrom string `xml:"derivedFrom,attr"`
	Dim
	Name                string              `xml:"name"`
	Description         string              `xml:"description"`
	BitOffset           *Number             `xml:"bitOffset"`
	BitWidth            *Number             `xml:"bitWidth"`
	LSB                 *Number             `xml:"lsb"`
	MSB                 *Number             `xml:"msb"`
	BitRange            string              `xml:"bitRange"`
	Access              string              `xml:"access"`
	ModifiedWriteValues string              `xml:"modifiedWriteValues"`
	ReadAction          string              `xml:"readAction"`
	EnumeratedValues    []*EnumeratedValues `xml:"enumeratedValues"`
}

// EnumeratedValues is a list of named field values.
type EnumeratedValues struct {
	Name            string             `xml:"name"`
	Usage           string             `xml:"usage"`
	EnumeratedValue []*EnumeratedValue `xml:"enumeratedValue"`
}

// EnumeratedValue is a named field value.
type EnumeratedValue struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Value       string `xml:"value"`
	IsDefault   Bool   `xml:"isDefault"`
}

// Val returns the numeric value of the enumerated value.
func (ev *EnumeratedValue) Val() (uint64, error) {
	return ParseNumber(ev.Value)
}

// Load decodes an SVD description.
func Load(r io.Reader) (*Device, error) {
	dev := &Device{}
	if err := xml.NewDecoder(r).Decode(dev); err != nil {
		return nil, curated.Errorf(Decoding, err)
	}
	if dev.Name == "" {
		return nil, curated.Errorf(NoDevice)
	}
	return dev, nil
}

// Peripheral returns the named peripheral. The comparison is case
// insensitive.
func (dev *Device) Peripheral(name string) *Peripheral {
	for _, p := range dev.Peripherals {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// Base returns the peripheral that the peripheral is derived from. Returns
// the peripheral itself if it is not derived.
func (dev *Device) Base(p *Peripheral) *Peripheral {
	seen := map[*Peripheral]bool{}
	for p.DerivedFrom != "" && !seen[p] {
		seen[p] = true
		b := dev.Peripheral(p.DerivedFrom)
		if b == nil {
			break
		}
		p = b
	}
	return p
}
