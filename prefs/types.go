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
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/efr32sim/efr32sim/curated"
)

// CannotConvert is the error pattern for values of the wrong type.
const CannotConvert = "prefs: cannot convert %T to %s"

// Value represents the actual Go preference value.
type Value interface{}

// pref is implemented by every type that can be added to a Disk.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks run around every Set(), whether the value changes or not. An error
// from the pre hook prevents the update.
type hooks struct {
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the function called before a new value is stored.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.pre = f
}

// SetHookPost sets the function called after a new value is stored.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.post = f
}

func (h *hooks) update(nv Value, store func()) error {
	if h.pre != nil {
		if err := h.pre(nv); err != nil {
			return err
		}
	}
	store()
	if h.post != nil {
		return h.post(nv)
	}
	return nil
}

// Bool is a boolean preference.
type Bool struct {
	hooks
	value atomic.Bool
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.value.Load())
}

// Set accepts a bool or a string. Any string other than "true" (in any case)
// is false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return curated.Errorf(CannotConvert, v, "prefs.Bool")
	}
	return p.update(nv, func() { p.value.Store(nv) })
}

// Get returns the value as a bool.
func (p *Bool) Get() Value {
	return p.value.Load()
}

// Reset sets the value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// Int is an integer preference.
type Int struct {
	hooks
	value atomic.Int64
}

func (p *Int) String() string {
	return strconv.FormatInt(p.value.Load(), 10)
}

// Set accepts any integer type or a string. Strings can carry a base prefix,
// so "0x8000" is valid.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int:
		nv = v
	case int32:
		nv = int(v)
	case int64:
		nv = int(v)
	case uint32:
		nv = int(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return curated.Errorf(CannotConvert, v, "prefs.Int")
		}
		nv = int(n)
	default:
		return curated.Errorf(CannotConvert, v, "prefs.Int")
	}
	return p.update(nv, func() { p.value.Store(int64(nv)) })
}

// Get returns the value as an int.
func (p *Int) Get() Value {
	return int(p.value.Load())
}

// Reset sets the value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// String is a string preference with an optional maximum length.
type String struct {
	hooks
	maxLen int
	value  atomic.Pointer[string]
}

func (p *String) String() string {
	return p.Get().(string)
}

func (p *String) crop(s string) string {
	if p.maxLen > 0 && len(s) > p.maxLen {
		return s[:p.maxLen]
	}
	return s
}

// SetMaxLen limits the length of the string. A value of zero or less
// removes the limit. The current value is cropped if necessary.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max
	s := p.crop(p.Get().(string))
	p.value.Store(&s)
}

// Set accepts any value, formatted with the %v verb.
func (p *String) Set(v Value) error {
	nv := p.crop(fmt.Sprintf("%v", v))
	return p.update(nv, func() { p.value.Store(&nv) })
}

// Get returns the value as a string.
func (p *String) Get() Value {
	if s := p.value.Load(); s != nil {
		return *s
	}
	return ""
}

// Reset sets the value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}
