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

package dump_test

import (
	"path/filepath"
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/dump"
	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/hardware/preferences"
	"github.com/efr32sim/efr32sim/test"
)

func TestDump(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Logging.Set(false))
	m, err := hardware.NewMachine(p)
	test.DemandSuccess(t, err)

	tw := &test.Writer{}
	test.ExpectSuccess(t, dump.Write(tw, m, "Prefs"))
	test.ExpectEquality(t, tw.Contains("digraph"), true)

	err = dump.Write(tw, m, "cpu")
	test.ExpectEquality(t, curated.Is(err, dump.UnknownTarget), true)

	test.ExpectEquality(t, len(dump.Targets()), 6)
}
