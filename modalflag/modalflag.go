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

package modalflag

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"
)

// separates the modes in the string returned by Path().
const pathSeparator = "/"

// Modes is the command line parser. The Output field should be set before
// calling Parse(). If it is nil, os.Stdout is used.
type Modes struct {
	Output io.Writer

	args []string

	// index of the next unparsed argument
	next int

	// flags and sub-modes of the current mode. recreated by NewMode()
	flags    *flag.FlagSet
	subModes []string
	help     string

	// the modes selected so far
	path []string
}

func (md *Modes) String() string {
	return md.Path()
}

// NewArgs sets the arguments to be parsed and begins a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode discards the flags and sub-modes of the current mode. Flags and
// sub-modes added after this call belong to the new mode.
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.subModes = md.subModes[:0]
	md.help = ""
}

// Mode returns the most recently selected mode. The empty string is returned
// if no mode has been selected.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, pathSeparator)
}

// AdditionalHelp is printed after the flags and sub-modes when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.help = help
}

// AddSubModes adds to the list of sub-modes for the current mode. Sub-modes
// are case insensitive and are stored in upper case.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddDefaultSubMode adds a sub-mode to the front of the list, making it the
// default.
func (md *Modes) AddDefaultSubMode(subMode string) {
	md.subModes = append([]string{strings.ToUpper(subMode)}, md.subModes...)
}

// ParseResult is returned by Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing was successful. check Mode() if sub-modes were added
	ParseContinue ParseResult = iota

	// help was requested and printed. the program should normally end
	ParseHelp

	// the error returned alongside this value says what went wrong
	ParseError
)

func (md *Modes) output() io.Writer {
	if md.Output == nil {
		return os.Stdout
	}
	return md.Output
}

// Parse the flags of the current mode and select the next mode if sub-modes
// have been added. If the argument following the flags is not a sub-mode the
// default sub-mode is selected and the argument is left for the program.
func (md *Modes) Parse() (ParseResult, error) {
	usage := &usageBuffer{}
	md.flags.SetOutput(usage)

	err := md.flags.Parse(md.args[md.next:])
	if err == flag.ErrHelp {
		usage.write(md.output(), md.Path(), md.subModes, md.help)
		return ParseHelp, nil
	}

	if len(md.subModes) == 0 {
		if err != nil {
			return ParseError, err
		}
		md.next = len(md.args) - md.flags.NArg()
		return ParseContinue, nil
	}

	// unrecognised flags may belong to the default sub-mode
	if err != nil {
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	// the index of the first argument after the flags
	md.next = len(md.args) - md.flags.NArg()

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.next++
			break
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments left after the most recent call to
// Parse().
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument from RemainingArgs(). The empty string
// is returned if there is no such argument.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// Visit calls the function for every flag that was set on the command line.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}

// AddBool adds a boolean flag to the current mode.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration adds a duration flag to the current mode.
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt adds an integer flag to the current mode.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddUint64 adds an unsigned 64 bit integer flag to the current mode.
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.flags.Uint64(name, value, usage)
}

// AddString adds a string flag to the current mode.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
