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

package monitor_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/hardware/preferences"
	"github.com/efr32sim/efr32sim/monitor"
	"github.com/efr32sim/efr32sim/test"
)

func newMachine(t *testing.T) *hardware.Machine {
	t.Helper()
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Logging.Set(false))
	m, err := hardware.NewMachine(p)
	test.DemandSuccess(t, err)
	return m
}

func TestPlainInput(t *testing.T) {
	m := newMachine(t)
	tw := &test.Writer{}

	in := strings.NewReader(`WRITE LFXO.CAL 0x25
READ LFXO.CAL
FROB
STEP 100
QUIT
READ LFXO.CAL
`)

	mon := monitor.NewMonitor(m, in, tw)
	test.ExpectSuccess(t, mon.Run())

	test.ExpectEquality(t, tw.Contains("LFXO.CAL = 00000025"), true)
	test.ExpectEquality(t, tw.Contains("* script: unknown command (FROB)"), true)
	test.ExpectEquality(t, tw.Contains("[100] > "), true)

	// nothing after QUIT is executed
	test.ExpectEquality(t, strings.Count(tw.String(), "LFXO.CAL = "), 1)
}

func TestEndOfInput(t *testing.T) {
	m := newMachine(t)
	tw := &test.Writer{}
	mon := monitor.NewMonitor(m, strings.NewReader("RESET\n"), tw)
	test.ExpectSuccess(t, mon.Run())
}
