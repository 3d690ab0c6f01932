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

// Package irq models level sensitive interrupt lines between peripheral
// models and whatever is listening to them.
package irq

// Line is a named, level sensitive interrupt line.
type Line struct {
	name      string
	level     bool
	listeners []func(name string, level bool)
}

// NewLine is the preferred method of initialisation for the Line type.
func NewLine(name string) *Line {
	return &Line{name: name}
}

// Name returns the name of the line.
func (l *Line) Name() string {
	return l.name
}

// Level returns the current level of the line.
func (l *Line) Level() bool {
	return l.level
}

// Set the level of the line. Listeners are notified only if the level
// changes.
func (l *Line) Set(level bool) {
	if l.level == level {
		return
	}
	l.level = level
	for _, f := range l.listeners {
		f(l.name, level)
	}
}

// Connect a listener to the line.
func (l *Line) Connect(f func(name string, level bool)) {
	l.listeners = append(l.listeners, f)
}

func (l *Line) String() string {
	if l.level {
		return l.name + ": high"
	}
	return l.name + ": low"
}
