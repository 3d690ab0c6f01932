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

// Package statsview serves runtime statistics of the emulator over HTTP. The
// server is provided by "github.com/go-echarts/statsview" and is only built
// when the statsview build tag is present:
//
//	go build -tags statsview
//
// After launch the statistics are viewable at:
//
//	localhost:18066/debug/statsview
//
// and the standard Go pprof statistics at:
//
//	localhost:18066/debug/pprof/
package statsview
