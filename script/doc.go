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

// Package script executes bus transaction commands against a machine. The
// same commands are used for script files and by the interactive monitor.
//
// A command is a single line. Everything after a # character is a comment.
// Command names are not case sensitive. Addresses can be given numerically
// or symbolically (see hardware.Machine.Resolve()) and values are numbers
// in any base understood by strconv.ParseUint(), with a base of zero.
//
//	# unlock and start the LFXO
//	WRITE LFXO.LOCK 0x1a20
//	WRITE LFXO.CTRL_SET 0x1
//	STEP 40000
//	EXPECT LFXO.STATUS 0x1 0x1
//
// The HELP command lists every command with a short usage string.
package script
