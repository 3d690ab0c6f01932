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
//
// *** NOTE: all historical versions of this file, as found in any
// git repository, are also covered by the licence, even when this
// notice is not present ***

package curated_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/test"
)

const testPattern = "test: %v"
const testPatternB = "other: %d"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", curated.Errorf("not yet implemented")))
	test.ExpectEquality(t, e.Error(), "error: not yet implemented")

	// non-adjacent duplicates are preserved
	e = curated.Errorf("a: b: %v", "a")
	test.ExpectEquality(t, e.Error(), "a: b: a")
}

func TestIsAndHas(t *testing.T) {
	e := curated.Errorf(testPatternB, 10)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPatternB))
	test.ExpectFailure(t, curated.Is(e, testPattern))

	f := curated.Errorf(testPattern, e)
	test.ExpectSuccess(t, curated.Is(f, testPattern))
	test.ExpectFailure(t, curated.Is(f, testPatternB))
	test.ExpectSuccess(t, curated.Has(f, testPatternB))
	test.ExpectEquality(t, f.Error(), "test: other: 10")

	// plain errors are never curated
	p := fmt.Errorf("plain")
	test.ExpectFailure(t, curated.IsAny(p))
	test.ExpectFailure(t, curated.Has(p, testPattern))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestUnwrap(t *testing.T) {
	_, err := os.Open("/this/file/does/not/exist")
	e := curated.Errorf(testPattern, err)
	test.ExpectSuccess(t, os.IsNotExist(err))

	var pe *os.PathError
	test.ExpectSuccess(t, asPathError(e, &pe))
}

func asPathError(err error, pe **os.PathError) bool {
	for err != nil {
		if p, ok := err.(*os.PathError); ok {
			*pe = p
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
