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
	"fmt"
	"sort"
	"strings"
)

// overrides is one group of key/value pairs taken from the command line.
type overrides map[string]Value

// unused lists the remaining overrides in key order.
func (o overrides) unused() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	l := make([]string, len(keys))
	for i, k := range keys {
		l[i] = fmt.Sprintf("%s::%v", k, o[k])
	}
	return strings.Join(l, "; ")
}

var overrideStack []overrides

// PushCommandLineStack parses a preferences string from the command line and
// makes it the current group of overrides. Pairs are separated by
// semi-colons:
//
//	hardware.ram.banks::2; machine.nonsecure::true
//
// An override is consumed by the first Disk.Add() with a matching key.
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	o := make(overrides)
	for _, pair := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(pair, "::")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		o[k] = strings.TrimSpace(v)
	}
	overrideStack = append(overrideStack, o)
}

// PopCommandLineStack discards the current group of overrides and returns
// the ones no preference consumed.
func PopCommandLineStack() string {
	n := len(overrideStack)
	if n == 0 {
		return ""
	}
	o := overrideStack[n-1]
	overrideStack = overrideStack[:n-1]
	return o.unused()
}

// GetCommandLinePref consumes the override for the key from the current
// group.
func GetCommandLinePref(key string) (bool, Value) {
	n := len(overrideStack)
	if n == 0 {
		return false, nil
	}
	o := overrideStack[n-1]
	v, ok := o[key]
	if ok {
		delete(o, key)
	}
	return ok, v
}
