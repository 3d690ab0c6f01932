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

// Package dump writes a graph of the emulated machine's data structures in
// the Graphviz dot language. The graph is useful for understanding how the
// models refer to one another.
//
//	efr32sim DUMP -target lfxo | dot -Tsvg > lfxo.svg
package dump

import (
	"io"
	"sort"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware"
)

// Sentinal error patterns.
const (
	UnknownTarget = "dump: unknown target (%s)"
)

// the parts of the machine that can be dumped. the machine target includes
// the contents of RAM and results in a very large graph.
var targets = map[string]func(m *hardware.Machine) interface{}{
	"machine":  func(m *hardware.Machine) interface{} { return m },
	"bus":      func(m *hardware.Machine) interface{} { return m.Bus },
	"lfxo":     func(m *hardware.Machine) interface{} { return m.LFXO },
	"prs":      func(m *hardware.Machine) interface{} { return m.PRS },
	"hydraram": func(m *hardware.Machine) interface{} { return m.HYDRARAM },
	"prefs":    func(m *hardware.Machine) interface{} { return m.Prefs },
}

// Targets returns the sorted list of dump targets.
func Targets() []string {
	t := make([]string, 0, len(targets))
	for k := range targets {
		t = append(t, k)
	}
	sort.Strings(t)
	return t
}

// Write the graph of the target to the writer.
func Write(w io.Writer, m *hardware.Machine, target string) error {
	f, ok := targets[strings.ToLower(target)]
	if !ok {
		return curated.Errorf(UnknownTarget, target)
	}
	memviz.Map(w, f(m))
	return nil
}
