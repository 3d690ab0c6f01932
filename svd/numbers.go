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
	"strconv"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
)

// Sentinal error patterns.
const (
	BadNumber = "svd: bad number (%s)"
	BadDim    = "svd: %s: bad dim (%v)"
	BadBits   = "svd: %s: bad bit range (%v)"
	Decoding  = "svd: %v"
	NoDevice  = "svd: no device name"
)

// ParseNumber parses a number in any of the formats allowed by SVD.
func ParseNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, curated.Errorf(BadNumber, s)
	}

	if s[0] == '#' || strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") {
		if s[0] == '#' {
			s = s[1:]
		} else {
			s = s[2:]
		}
		s = strings.Map(func(r rune) rune {
			if r == 'x' || r == 'X' {
				return '0'
			}
			return r
		}, s)
		v, err := strconv.ParseUint(s, 2, 64)
		if err != nil {
			return 0, curated.Errorf(BadNumber, s)
		}
		return v, nil
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(BadNumber, s)
	}
	return v, nil
}

// Number is an SVD scaled non-negative integer.
type Number uint64

// UnmarshalXML implements the xml.Unmarshaler interface.
func (n *Number) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := ParseNumber(s)
	*n = Number(v)
	return err
}

// Bool is an SVD boolean. SVD allows 1 and 0 as well as true and false.
type Bool bool

// UnmarshalXML implements the xml.Unmarshaler interface.
func (b *Bool) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	*b = Bool(v)
	return err
}
