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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/hexload"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/svd"
)

// Sentinal error patterns.
const (
	UnknownCommand = "script: unknown command (%s)"
	WrongArguments = "script: wrong number of arguments for %s (usage: %s)"
	BadValue       = "script: bad value (%s)"
	BadLevel       = "script: bad level (%s)"
	ExpectFailed   = "script: %s is %08x, expected %08x (mask %08x)"
	LevelMismatch  = "script: %s is %s, expected %s"
	CommandError   = "script: %s: %v"
	LineError      = "script: %s:%d: %v"

	// Quit is returned by Exec() when the QUIT command is executed.
	Quit = "script: quit"
)

// the number of log entries shown by LOG without an argument.
const defaultLogTail = 10

// Executor runs commands against a machine. Output is written to the
// io.Writer given to NewExecutor().
type Executor struct {
	m   *hardware.Machine
	out io.Writer

	// Dir is the directory used to resolve relative file names
	Dir string

	// Width is the maximum width of field listings. A value of zero means
	// listings are not wrapped
	Width int
}

// NewExecutor is the preferred method of initialisation for the Executor
// type.
func NewExecutor(m *hardware.Machine, out io.Writer) *Executor {
	return &Executor{
		m:   m,
		out: out,
	}
}

func (ex *Executor) printf(format string, args ...any) {
	fmt.Fprintf(ex.out, format, args...)
}

func (ex *Executor) path(file string) string {
	if ex.Dir == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(ex.Dir, file)
}

// Run executes every line from the reader. The name is used in error
// messages. Execution stops at the first failure and the error names the
// line that caused it.
func (ex *Executor) Run(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := ex.Exec(scanner.Text()); err != nil {
			if curated.Is(err, Quit) {
				return nil
			}
			return curated.Errorf(LineError, name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return curated.Errorf(LineError, name, line, err)
	}
	return nil
}

// RunFile executes the script file.
func (ex *Executor) RunFile(file string) error {
	f, err := os.Open(ex.path(file))
	if err != nil {
		return curated.Errorf(CommandError, "script", err)
	}
	defer f.Close()
	return ex.Run(f, filepath.Base(file))
}

// Tokenise splits a line into its command and arguments. Comments are
// removed and the command is returned in upper case. An empty command means
// the line had nothing to execute.
func Tokenise(line string) (string, []string) {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", nil
	}
	return strings.ToUpper(tokens[0]), tokens[1:]
}

// Exec executes a single line.
func (ex *Executor) Exec(line string) error {
	name, args := Tokenise(line)
	if name == "" {
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		return curated.Errorf(UnknownCommand, name)
	}
	if len(args) < cmd.min || len(args) > cmd.max {
		return curated.Errorf(WrongArguments, name, cmd.usage)
	}

	switch name {
	case cmdRead:
		addr, err := ex.m.Resolve(args[0])
		if err != nil {
			return err
		}
		v, err := ex.m.Bus.Read(addr)
		if err != nil {
			return err
		}
		ex.printf("%s = %08x\n", ex.m.Symbolise(addr), v)

	case cmdPeek:
		addr, err := ex.m.Resolve(args[0])
		if err != nil {
			return err
		}
		v, err := ex.m.Bus.Peek(addr)
		if err != nil {
			return err
		}
		ex.printf("%s = %08x\n", ex.m.Symbolise(addr), v)

	case cmdWrite, cmdPoke:
		addr, err := ex.m.Resolve(args[0])
		if err != nil {
			return err
		}
		v, err := value(args[1])
		if err != nil {
			return err
		}
		if name == cmdWrite {
			return ex.m.Bus.Write(addr, v)
		}
		return ex.m.Bus.Poke(addr, v)

	case cmdExpect:
		addr, err := ex.m.Resolve(args[0])
		if err != nil {
			return err
		}
		expected, err := value(args[1])
		if err != nil {
			return err
		}
		mask := uint32(0xffffffff)
		if len(args) == 3 {
			mask, err = value(args[2])
			if err != nil {
				return err
			}
		}
		v, err := ex.m.Bus.Peek(addr)
		if err != nil {
			return err
		}
		if v&mask != expected&mask {
			return curated.Errorf(ExpectFailed, ex.m.Symbolise(addr), v, expected, mask)
		}

	case cmdStep:
		n, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return curated.Errorf(BadValue, args[0])
		}
		ex.m.Step(n)

	case cmdReset:
		ex.m.Reset()

	case cmdDrive:
		level, err := parseLevel(args[2])
		if err != nil {
			return err
		}
		return ex.m.Drive(args[0], args[1], level)

	case cmdIRQ:
		return ex.irq(args)

	case cmdFields:
		return ex.fields(args[0])

	case cmdMap:
		for _, mp := range ex.m.Bus.Mappings() {
			ex.printf("%s\n", mp)
		}

	case cmdRegs:
		var periph string
		if len(args) == 1 {
			periph = args[0]
		}
		return ex.regs(periph)

	case cmdLoad:
		return ex.load(args[0])

	case cmdSave:
		return ex.save(args)

	case cmdSVD:
		f, err := os.Open(ex.path(args[0]))
		if err != nil {
			return curated.Errorf(CommandError, name, err)
		}
		defer f.Close()
		dev, err := svd.Load(f)
		if err != nil {
			return err
		}
		n, err := ex.m.AttachSVD(dev)
		if err != nil {
			return err
		}
		ex.printf("%d peripherals attached\n", n)

	case cmdLog:
		n := defaultLogTail
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return curated.Errorf(BadValue, args[0])
			}
			n = v
		}
		logger.Tail(ex.out, n)

	case cmdDemand:
		level, err := parseLevel(args[0])
		if err != nil {
			return err
		}
		ex.m.Demand(level)

	case cmdFail:
		ex.m.OscillatorFailure()

	case cmdFault:
		addr, err := ex.m.Resolve(args[0])
		if err != nil {
			return err
		}
		mask, err := value(args[1])
		if err != nil {
			return err
		}
		return ex.m.InjectFault(addr, mask)

	case cmdHelp:
		var topic string
		if len(args) == 1 {
			topic = args[0]
		}
		s := help(topic)
		if s == "" {
			return curated.Errorf(UnknownCommand, topic)
		}
		ex.printf("%s", s)

	case cmdQuit:
		return curated.Errorf(Quit)
	}

	return nil
}

func value(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf(BadValue, s)
	}
	return uint32(v), nil
}

func parseLevel(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "1", "HIGH", "ON", "TRUE":
		return true, nil
	case "0", "LOW", "OFF", "FALSE":
		return false, nil
	}
	return false, curated.Errorf(BadLevel, s)
}

func levelString(level bool) string {
	if level {
		return "high"
	}
	return "low"
}

func (ex *Executor) irq(args []string) error {
	if len(args) == 0 {
		for _, l := range ex.m.Interrupts() {
			ex.printf("%s\n", l)
		}
		return nil
	}

	l, err := ex.m.Interrupt(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		ex.printf("%s\n", l)
		return nil
	}

	level, err := parseLevel(args[1])
	if err != nil {
		return err
	}
	if l.Level() != level {
		return curated.Errorf(LevelMismatch, l.Name(), levelString(l.Level()), levelString(level))
	}

	return nil
}

func (ex *Executor) fields(symbol string) error {
	addr, err := ex.m.Resolve(symbol)
	if err != nil {
		return err
	}

	r, _, err := ex.m.Register(addr)
	if err != nil {
		return err
	}

	d, err := ex.m.Fields(addr)
	if err != nil {
		return err
	}

	v, err := ex.m.Bus.Peek(addr)
	if err != nil {
		return err
	}

	items := make([]string, 0, len(d))
	for _, f := range d {
		items = append(items, f.String())
	}

	ex.printf("%s (%08x) = %08x\n", r.Name, addr, v)
	ex.printf("%s", Wrap(items, ex.Width, "  "))

	return nil
}

func (ex *Executor) regs(periph string) error {
	var found bool
	for _, ri := range ex.m.RegisterMap() {
		if periph != "" && !strings.EqualFold(periph, ri.Label) {
			continue
		}
		found = true
		var s string
		ex.m.Bus.Exclusive(func() {
			s = ri.Register.String()
		})
		ex.printf("%08x %s.%s\n", ri.Address, ri.Label, s)
	}
	if periph != "" && !found {
		return curated.Errorf(hardware.UnknownSymbol, periph)
	}
	return nil
}

func (ex *Executor) load(file string) error {
	f, err := os.Open(ex.path(file))
	if err != nil {
		return curated.Errorf(CommandError, cmdLoad, err)
	}
	defer f.Close()

	segs, err := hexload.Load(ex.m.Bus, f)
	if err != nil {
		return err
	}

	for _, s := range segs {
		ex.printf("%08x %d bytes to %s\n", s.Address, s.Length, s.Label)
	}

	return nil
}

func (ex *Executor) save(args []string) error {
	addr := uint32(hardware.AddrSRAM)
	length := ex.m.RAM.Size()

	switch len(args) {
	case 1:
	case 3:
		var err error
		addr, err = ex.m.Resolve(args[1])
		if err != nil {
			return err
		}
		length, err = value(args[2])
		if err != nil {
			return err
		}
	default:
		return curated.Errorf(WrongArguments, cmdSave, commands[cmdSave].usage)
	}

	f, err := os.Create(ex.path(args[0]))
	if err != nil {
		return curated.Errorf(CommandError, cmdSave, err)
	}

	err = hexload.Save(ex.m.Bus, f, addr, length)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Wrap joins the items with spaces, starting a new line before any item that
// would take the line past the width. Every line starts with the indent and
// ends with a newline. A width of zero or less puts every item on the same
// line.
func Wrap(items []string, width int, indent string) string {
	if len(items) == 0 {
		return ""
	}

	s := strings.Builder{}
	n := 0

	for _, it := range items {
		if n == 0 {
			s.WriteString(indent)
			s.WriteString(it)
			n = len(indent) + len(it)
			continue
		}
		if width > 0 && n+1+len(it) > width {
			s.WriteString("\n")
			s.WriteString(indent)
			s.WriteString(it)
			n = len(indent) + len(it)
			continue
		}
		s.WriteString(" ")
		s.WriteString(it)
		n += 1 + len(it)
	}

	s.WriteString("\n")
	return s.String()
}
