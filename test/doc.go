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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a failure and allow the test to continue. The
// Demand functions are fatal to the test. Use the Demand functions when the
// value being tested is needed for further tests, for example the error
// returned when creating a peripheral model.
//
// ExpectSuccess and ExpectFailure test for success or failure under generic
// conditions. The currently supported types are:
//
//	bool -> true is success
//	error -> nil is success
//
// The nil type is considered a success. This may not be how we want to
// interpret nil in all situations but because of how errors usually work (nil
// to indicate no error) we need to interpret nil in this way.
//
// The Writer type implements the io.Writer interface and should be used to
// capture output. The Writer.Compare() function can then be used to test for
// equality.
package test
