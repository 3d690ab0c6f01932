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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efr32sim/efr32sim/paths"
	"github.com/efr32sim/efr32sim/test"
)

func TestLocalResourcePath(t *testing.T) {
	// a .efr32sim directory in the current directory takes priority
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)

	tmp := t.TempDir()
	test.DemandSuccess(t, os.Chdir(tmp))
	test.DemandSuccess(t, os.Mkdir(".efr32sim", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".efr32sim", "foo", "bar", "baz"))

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".efr32sim", "preferences"))

	// directory has been created
	_, err = os.Stat(filepath.Join(".efr32sim", "foo", "bar"))
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("ram", "xg22", "hex")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "ram_xg22_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".hex"))

	fn = paths.UniqueFilename("regs", "", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "regs_"))
	test.ExpectFailure(t, strings.Contains(fn, "."))
}
