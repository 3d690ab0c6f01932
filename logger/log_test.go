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

package logger_test

import (
	"testing"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.Writer{}

	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "")

	log.Log(logger.Allow, "LFXO", "enabled")
	log.Log(logger.Allow, "HYDRARAM", "bank 1 powered down")

	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "LFXO: enabled\nHYDRARAM: bank 1 powered down\n")

	for _, c := range []struct {
		n        int
		expected string
	}{
		{n: 100, expected: "LFXO: enabled\nHYDRARAM: bank 1 powered down\n"},
		{n: 1, expected: "HYDRARAM: bank 1 powered down\n"},
		{n: 0, expected: ""},
	} {
		tw.Clear()
		log.Tail(tw, c.n)
		test.ExpectEquality(t, tw.String(), c.expected, c.n)
	}
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.Writer{}

	for range 3 {
		log.Log(logger.Allow, "LFXO", "write refused")
	}
	log.Log(logger.Allow, "PRS", "software pulse")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "LFXO: write refused (repeat x3)\nPRS: software pulse\n")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	tw := &test.Writer{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "b: 2\nc: 3\n")
}

func TestWriteRecent(t *testing.T) {
	log := logger.NewLogger(10)
	tw := &test.Writer{}

	log.Log(logger.Allow, "PRS", "channel 0")
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "PRS: channel 0\n")

	// only entries since the previous call are written
	tw.Clear()
	log.Log(logger.Allow, "PRS", "channel 1")
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "PRS: channel 1\n")

	tw.Clear()
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(10)
	tw := &test.Writer{}

	log.SetEcho(tw)
	log.Logf(logger.Allow, "PRS", "channel %d", 3)
	test.ExpectEquality(t, tw.String(), "PRS: channel 3\n")

	log.SetEcho(nil)
	log.Log(logger.Allow, "PRS", "quiet")
	test.ExpectEquality(t, tw.String(), "PRS: channel 3\n")
}

type permission bool

func (p permission) AllowLogging() bool {
	return bool(p)
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.Writer{}

	for _, c := range []struct {
		perm     logger.Permission
		expected string
	}{
		{perm: logger.Allow, expected: "tag: detail\n"},
		{perm: logger.Deny, expected: ""},
		{perm: permission(true), expected: "tag: detail\n"},
		{perm: permission(false), expected: ""},
	} {
		log.Clear()
		tw.Clear()
		log.Log(c.perm, "tag", "detail")
		log.Write(tw)
		test.ExpectEquality(t, tw.String(), c.expected)
	}
}

type named struct{}

func (named) String() string {
	return "stringer"
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.Writer{}

	log.Log(logger.Allow, "tag", curated.Errorf("bus: unmapped address (%#08x)", 0x10))
	log.Log(logger.Allow, "tag", named{})
	log.Log(logger.Allow, "tag", 100)
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "tag: bus: unmapped address (0x000010)\ntag: stringer\ntag: 100\n")
}
