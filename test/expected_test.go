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

package test_test

import (
	"errors"
	"io"
	"testing"

	"github.com/efr32sim/efr32sim/test"
)

func TestExpectations(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectFailure(t, false)
	test.ExpectSuccess(t, nil)
	test.ExpectFailure(t, errors.New("failure"))

	var err error
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, 10, 10)
	test.ExpectEquality(t, uint32(0x1a20), 0x1a20)
	test.ExpectInequality(t, "LFXO", "PRS")
	test.DemandEquality(t, len("PRS"), 3)
}

func TestWriter(t *testing.T) {
	tw := &test.Writer{}
	io.WriteString(tw, "LFXO: ")
	io.WriteString(tw, "ready")
	test.ExpectSuccess(t, tw.Compare("LFXO: ready"))
	test.ExpectSuccess(t, tw.Contains("ready"))

	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
