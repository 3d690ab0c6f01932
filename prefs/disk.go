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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand. changes will be overwritten ***"

// Sentinal error patterns.
const (
	NoPrefsFile    = "prefs: no preferences file (%s)"
	UnknownPrefKey = "prefs: unknown key (%s)"
)

// the separator between key and value in the preferences file.
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
	defs    map[string]string

	// keys set from the command line are not changed by Load()
	overridden map[string]bool
}

func (dsk *Disk) String() string {
	keys := dsk.keys()
	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:       path,
		entries:    make(map[string]pref),
		defs:       make(map[string]string),
		overridden: make(map[string]bool),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The current
// value of the preference is remembered as the default value for Reset().
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) || strings.ContainsAny(key, "\n") {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	dsk.entries[key] = p
	dsk.defs[key] = p.String()

	// values on the command line take priority over the current value
	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %v", err)
		}
		dsk.overridden[key] = true
	}
	return nil
}

// Get the pref with the specified key.
func (dsk *Disk) Get(key string) (pref, error) {
	p, ok := dsk.entries[key]
	if !ok {
		return nil, curated.Errorf(UnknownPrefKey, key)
	}
	return p, nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset all preferences to the value they had when they were added.
func (dsk *Disk) Reset() error {
	for k, p := range dsk.entries {
		if err := p.Set(dsk.defs[k]); err != nil {
			return fmt.Errorf("prefs: %v", err)
		}
	}
	return nil
}

// readFile returns all key/value pairs in the preferences file. an error
// satisfying os.IsNotExist() is returned if the file does not exist.
func (dsk *Disk) readFile() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		l := scanner.Text()
		if l == WarningBoilerPlate || strings.TrimSpace(l) == "" {
			continue
		}
		kv := strings.SplitN(l, keySep, 2)
		if len(kv) != 2 {
			continue
		}
		entries[kv[0]] = kv[1]
	}

	return entries, scanner.Err()
}

// Save current preference values to disk. Entries in the file belonging to
// other Disk instances are preserved.
func (dsk *Disk) Save() error {
	entries, err := dsk.readFile()
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("prefs: %v", err)
		}
		entries = make(map[string]string)
	}

	for k, p := range dsk.entries {
		entries[k] = p.String()
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, keySep, entries[k])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("prefs: %v", err)
	}
	return nil
}

// Load preference values from disk. Keys in the file that have not been added
// to the Disk instance are ignored. The NoPrefsFile error is returned if the
// file does not exist. Callers will often want to ignore that error.
func (dsk *Disk) Load() error {
	entries, err := dsk.readFile()
	if err != nil {
		if os.IsNotExist(err) {
			return curated.Errorf(NoPrefsFile, dsk.path)
		}
		return fmt.Errorf("prefs: %v", err)
	}

	for k, v := range entries {
		if dsk.overridden[k] {
			continue
		}
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %v", k, err)
			}
		}
	}

	return nil
}
