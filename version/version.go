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

// Package version reports the application name and the version and revision
// of the running binary.
//
// The version number is set at link time:
//
//	go build -ldflags "-X github.com/efr32sim/efr32sim/version.number=v0.1.0"
//
// Without a version number the version is "unreleased" when the build has
// version control information and "local" otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name of the application.
const ApplicationName = "efr32sim"

// set with -ldflags at build time.
var number string

var (
	version  string
	revision string
)

// Version returns the version string, the revision string and whether the
// binary is a numbered release.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a single line describing the application and its version.
func String() string {
	return fmt.Sprintf("%s %s (%s)", ApplicationName, version, revision)
}

func fromBuildInfo(info *debug.BuildInfo, ok bool, number string) (string, string) {
	var hasVCS, modified bool
	var rev string

	if ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				hasVCS = true
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if rev == "" {
		rev = "no revision information"
	} else if modified {
		rev = fmt.Sprintf("%s+dirty", rev)
	}

	switch {
	case number != "":
		return number, rev
	case hasVCS:
		return "unreleased", rev
	}
	return "local", rev
}

func init() {
	info, ok := debug.ReadBuildInfo()
	version, revision = fromBuildInfo(info, ok, number)
}
