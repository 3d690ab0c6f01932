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

package script

import (
	"fmt"
	"sort"
	"strings"
)

// Command names.
const (
	cmdRead   = "READ"
	cmdWrite  = "WRITE"
	cmdExpect = "EXPECT"
	cmdPeek   = "PEEK"
	cmdPoke   = "POKE"
	cmdStep   = "STEP"
	cmdReset  = "RESET"
	cmdDrive  = "DRIVE"
	cmdIRQ    = "IRQ"
	cmdFields = "FIELDS"
	cmdMap    = "MAP"
	cmdRegs   = "REGS"
	cmdLoad   = "LOAD"
	cmdSave   = "SAVE"
	cmdSVD    = "SVD"
	cmdLog    = "LOG"
	cmdDemand = "DEMAND"
	cmdFail   = "FAIL"
	cmdFault  = "FAULT"
	cmdHelp   = "HELP"
	cmdQuit   = "QUIT"
)

type command struct {
	usage string
	help  string

	// minimum and maximum number of arguments
	min int
	max int
}

var commands = map[string]command{
	cmdRead:   {usage: "READ addr", help: "read a word from the bus", min: 1, max: 1},
	cmdWrite:  {usage: "WRITE addr value", help: "write a word to the bus", min: 2, max: 2},
	cmdExpect: {usage: "EXPECT addr value [mask]", help: "fail if the masked word at the address differs from the value", min: 2, max: 3},
	cmdPeek:   {usage: "PEEK addr", help: "read a word without side effects", min: 1, max: 1},
	cmdPoke:   {usage: "POKE addr value", help: "store a word without side effects", min: 2, max: 2},
	cmdStep:   {usage: "STEP cycles", help: "advance peripheral time", min: 1, max: 1},
	cmdReset:  {usage: "RESET", help: "reset every peripheral"},
	cmdDrive:  {usage: "DRIVE source signal level", help: "drive a PRS producer signal", min: 3, max: 3},
	cmdIRQ:    {usage: "IRQ [name [level]]", help: "show interrupt lines or fail if a line is not at the level", max: 2},
	cmdFields: {usage: "FIELDS addr", help: "decode the register at the address", min: 1, max: 1},
	cmdMap:    {usage: "MAP", help: "list the peripherals on the bus"},
	cmdRegs:   {usage: "REGS [periph]", help: "list registers and their values", max: 1},
	cmdLoad:   {usage: "LOAD file", help: "load an Intel HEX image", min: 1, max: 1},
	cmdSave:   {usage: "SAVE file [addr length]", help: "save memory as an Intel HEX image", min: 1, max: 3},
	cmdSVD:    {usage: "SVD file", help: "add peripherals described by a CMSIS-SVD file", min: 1, max: 1},
	cmdLog:    {usage: "LOG [n]", help: "show the most recent log entries", max: 1},
	cmdDemand: {usage: "DEMAND level", help: "request or release the LFXO for a clock consumer", min: 1, max: 1},
	cmdFail:   {usage: "FAIL", help: "simulate a failure of the LFXO"},
	cmdFault:  {usage: "FAULT addr mask", help: "flip bits in a RAM word", min: 2, max: 2},
	cmdHelp:   {usage: "HELP [command]", help: "list commands", max: 1},
	cmdQuit:   {usage: "QUIT", help: "leave the monitor"},
}

// Commands returns the sorted list of command names.
func Commands() []string {
	l := make([]string, 0, len(commands))
	for k := range commands {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

func help(name string) string {
	if name != "" {
		c, ok := commands[strings.ToUpper(name)]
		if !ok {
			return ""
		}
		return fmt.Sprintf("%s\n  %s\n", c.usage, c.help)
	}

	s := strings.Builder{}
	for _, k := range Commands() {
		s.WriteString(fmt.Sprintf("%-28s %s\n", commands[k].usage, commands[k].help))
	}
	return s.String()
}
