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

package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/monitor/easyterm"
	"github.com/efr32sim/efr32sim/script"
	"github.com/efr32sim/efr32sim/version"
)

// Monitor reads commands and executes them against a machine.
type Monitor struct {
	m  *hardware.Machine
	ex *script.Executor

	out io.Writer

	// term and ed are nil if the input is not a terminal
	term *easyterm.Terminal
	ed   *lineEditor

	plain *bufio.Scanner
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// If both input and output are terminals the terminal is put into raw mode
// while reading input.
func NewMonitor(m *hardware.Machine, in io.Reader, out io.Writer) *Monitor {
	mon := &Monitor{
		m:   m,
		ex:  script.NewExecutor(m, out),
		out: out,
	}

	inf, inok := in.(*os.File)
	outf, outok := out.(*os.File)
	if inok && outok {
		term := &easyterm.Terminal{}
		if err := term.Initialise(inf, outf); err == nil {
			mon.term = term
			mon.ed = newLineEditor(inf, outf)
			mon.ed.suspend = func() {
				term.CanonicalMode()
				easyterm.SuspendProcess()
				term.RawMode()
			}
		} else {
			logger.Logf(m, "monitor", "plain input: %v", err)
		}
	}

	if mon.ed == nil {
		mon.plain = bufio.NewScanner(in)
	}

	return mon
}

// Executor returns the script executor used by the monitor.
func (mon *Monitor) Executor() *script.Executor {
	return mon.ex
}

func (mon *Monitor) prompt() string {
	var cycles uint64
	mon.m.Bus.Exclusive(func() {
		cycles = mon.m.Cycles
	})
	return fmt.Sprintf("[%d] > ", cycles)
}

func (mon *Monitor) readLine() (string, error) {
	if mon.ed == nil {
		fmt.Fprint(mon.out, mon.prompt())
		if !mon.plain.Scan() {
			if err := mon.plain.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return mon.plain.Text(), nil
	}

	if mon.term != nil {
		mon.term.RawMode()
		defer mon.term.CanonicalMode()
	}
	return mon.ed.read(mon.prompt())
}

// Run the monitor until the QUIT command is entered or the input is
// exhausted. The interrupt key discards the line being edited. Errors from
// commands are printed and do not end the monitor.
func (mon *Monitor) Run() error {
	if mon.term != nil {
		defer mon.term.CleanUp()
	}

	fmt.Fprintln(mon.out, version.String())
	fmt.Fprintf(mon.out, "%d peripherals mapped. HELP lists commands\n", len(mon.m.Bus.Mappings()))

	for {
		if mon.term != nil {
			mon.ex.Width = mon.term.Geometry().Cols
		}

		line, err := mon.readLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if curated.Is(err, Interrupted) {
				continue
			}
			return curated.Errorf("monitor: %v", err)
		}

		err = mon.ex.Exec(line)
		if err != nil {
			if curated.Is(err, script.Quit) {
				return nil
			}
			fmt.Fprintf(mon.out, "* %v\n", err)
		}
	}
}
