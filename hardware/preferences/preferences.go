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

// Package preferences holds the preference values that configure the
// emulated hardware. The values are stored in the global preferences file.
package preferences

import (
	"fmt"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/paths"
	"github.com/efr32sim/efr32sim/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// size of SRAM in bytes and the number of banks it is divided into
	RAMSize  prefs.Int
	RAMBanks prefs.Int

	// map each peripheral at its non-secure alias address as well as the
	// secure address
	NonSecure prefs.Bool

	// peripheral models write to the central log
	Logging prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the global preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences() but with a specific
// preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.ram.size", &p.RAMSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.ram.banks", &p.RAMBanks)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("machine.nonsecure", &p.NonSecure)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.logging", &p.Logging)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	// 32K of RAM in four banks is the layout of the EFR32xG22
	p.RAMSize.Set(0x8000)
	p.RAMBanks.Set(4)
	p.NonSecure.Set(false)
	p.Logging.Set(true)
}

// Validate the combination of preference values.
func (p *Preferences) Validate() error {
	size := p.RAMSize.Get().(int)
	banks := p.RAMBanks.Get().(int)
	if banks < 1 || banks > 32 {
		return fmt.Errorf("preferences: number of RAM banks must be between 1 and 32 (%d)", banks)
	}
	if size <= 0 || size%(banks*4) != 0 {
		return fmt.Errorf("preferences: RAM size (%#x) does not divide into %d banks of words", size, banks)
	}
	return nil
}

// Reset all hardware preferences to the default values.
func (p *Preferences) Reset() error {
	return p.dsk.Reset()
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
