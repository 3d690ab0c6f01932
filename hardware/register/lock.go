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

package register

// Lock models a lock register. Writing the key value unlocks. Writing any
// other value locks. Locks start unlocked.
type Lock struct {
	key    uint32
	locked bool
}

// NewLock is the preferred method of initialisation for the Lock type.
func NewLock(key uint32) *Lock {
	return &Lock{key: key}
}

// Write a value to the lock.
func (l *Lock) Write(v uint32) {
	l.locked = v != l.key
}

// Locked returns true if the lock is locked.
func (l *Lock) Locked() bool {
	return l.locked
}

// Unlocked returns true if the lock is unlocked. Suitable as a register guard
// function.
func (l *Lock) Unlocked() bool {
	return !l.locked
}

// Reset the lock to the unlocked state.
func (l *Lock) Reset() {
	l.locked = false
}

// Key returns the unlock value.
func (l *Lock) Key() uint32 {
	return l.key
}
