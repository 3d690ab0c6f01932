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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/efr32sim/efr32sim/hardware/preferences"
	"github.com/efr32sim/efr32sim/prefs"
	"github.com/efr32sim/efr32sim/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.RAMSize.Get().(int), 0x8000)
	test.ExpectEquality(t, p.RAMBanks.Get().(int), 4)
	test.ExpectEquality(t, p.NonSecure.Get().(bool), false)
	test.ExpectSuccess(t, p.Validate())
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.RAMSize.Set("0x4000"))
	test.DemandSuccess(t, p.NonSecure.Set(true))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.RAMSize.Get().(int), 0x4000)
	test.ExpectEquality(t, q.NonSecure.Get().(bool), true)

	test.DemandSuccess(t, q.Reset())
	test.ExpectEquality(t, q.RAMSize.Get().(int), 0x8000)
}

func TestValidate(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, p.RAMBanks.Set(3))
	test.ExpectFailure(t, p.Validate())
	test.DemandSuccess(t, p.RAMBanks.Set(0))
	test.ExpectFailure(t, p.Validate())
}

func TestCommandLine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	// a value in the preferences file does not replace the command line value
	p, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.RAMBanks.Set(8))
	test.DemandSuccess(t, p.Save())

	prefs.PushCommandLineStack("hardware.ram.banks::2")
	defer prefs.PopCommandLineStack()

	p, err = preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.RAMBanks.Get().(int), 2)
}
