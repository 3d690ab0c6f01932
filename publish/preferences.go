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

package publish

import (
	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/paths"
	"github.com/efr32sim/efr32sim/prefs"
)

// Default values of the publish preferences.
const (
	DefaultAddress  = "localhost:6379"
	DefaultHash     = "efr32sim"
	DefaultAttempts = 5
)

// Preferences for the publisher. The values share the global preferences
// file with the hardware preferences.
type Preferences struct {
	dsk *prefs.Disk

	// network address of the redis server
	Address prefs.String

	// the name of the hash and of the channel
	Hash prefs.String

	// the number of connection attempts before giving up
	Attempts prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
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
	err = p.dsk.Add("publish.addr", &p.Address)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("publish.hash", &p.Hash)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("publish.attempts", &p.Attempts)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Address.Set(DefaultAddress)
	p.Hash.Set(DefaultHash)
	p.Attempts.Set(DefaultAttempts)
}

// Load the preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save the preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
