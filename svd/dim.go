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
	"fmt"
	"strconv"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
)

// Indices returns the list of index strings for the dim group. An empty list
// is returned if the element is not an array.
//
// The dimIndex element may be a comma separated list ("A,B,C") or a range
// ("0-3"). When it is not specified the indices count from zero.
func (d Dim) Indices() ([]string, error) {
	if d.Dim == 0 {
		return nil, nil
	}

	n := int(d.Dim)

	if d.DimIndex == "" {
		idx := make([]string, n)
		for i := range idx {
			idx[i] = strconv.Itoa(i)
		}
		return idx, nil
	}

	if s := strings.Split(d.DimIndex, ","); len(s) > 1 {
		if len(s) != n {
			return nil, curated.Errorf(BadDim, d.DimIndex, n)
		}
		for i := range s {
			s[i] = strings.TrimSpace(s[i])
		}
		return s, nil
	}

	if lo, hi, ok := strings.Cut(d.DimIndex, "-"); ok {
		l, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, curated.Errorf(BadDim, d.DimIndex, err)
		}
		h, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, curated.Errorf(BadDim, d.DimIndex, err)
		}
		if h-l+1 != n {
			return nil, curated.Errorf(BadDim, d.DimIndex, n)
		}
		idx := make([]string, n)
		for i := range idx {
			idx[i] = strconv.Itoa(l + i)
		}
		return idx, nil
	}

	if n == 1 {
		return []string{d.DimIndex}, nil
	}

	return nil, curated.Errorf(BadDim, d.DimIndex, n)
}

// Element is one member of an expanded dim array.
type Element struct {
	Name   string
	Offset uint64
}

// Expand the name of an element into the list of array members. Names
// containing %s are substituted with each index. Names containing [%s] are
// substituted with the array position, giving NAME0, NAME1, etc. An element
// that is not an array expands to itself.
func (d Dim) Expand(name string) ([]Element, error) {
	idx, err := d.Indices()
	if err != nil {
		return nil, err
	}

	if len(idx) == 0 {
		return []Element{{Name: name}}, nil
	}

	e := make([]Element, len(idx))
	for i, s := range idx {
		n := name
		if strings.Contains(n, "[%s]") {
			n = strings.Replace(n, "[%s]", strconv.Itoa(i), 1)
		} else {
			n = strings.Replace(n, "%s", s, 1)
		}
		e[i] = Element{Name: n, Offset: uint64(i) * uint64(d.DimIncrement)}
	}
	return e, nil
}

// Bits returns the position of the field.
func (f *Field) Bits() (shift uint, width uint, err error) {
	switch {
	case f.BitOffset != nil:
		shift = uint(*f.BitOffset)
		width = 1
		if f.BitWidth != nil {
			width = uint(*f.BitWidth)
		}
	case f.LSB != nil && f.MSB != nil:
		if *f.MSB < *f.LSB {
			return 0, 0, curated.Errorf(BadBits, f.Name, fmt.Sprintf("lsb %d msb %d", *f.LSB, *f.MSB))
		}
		shift = uint(*f.LSB)
		width = uint(*f.MSB-*f.LSB) + 1
	case f.BitRange != "":
		var msb, lsb uint
		if _, err := fmt.Sscanf(f.BitRange, "[%d:%d]", &msb, &lsb); err != nil {
			return 0, 0, curated.Errorf(BadBits, f.Name, f.BitRange)
		}
		if msb < lsb {
			return 0, 0, curated.Errorf(BadBits, f.Name, f.BitRange)
		}
		shift = lsb
		width = msb - lsb + 1
	default:
		return 0, 0, curated.Errorf(BadBits, f.Name, "no position")
	}

	if width == 0 || shift+width > 32 {
		return 0, 0, curated.Errorf(BadBits, f.Name, fmt.Sprintf("shift %d width %d", shift, width))
	}

	return shift, width, nil
}
