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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/efr32sim/efr32sim/dump"
	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/hardware/preferences"
	"github.com/efr32sim/efr32sim/hexload"
	"github.com/efr32sim/efr32sim/logger"
	"github.com/efr32sim/efr32sim/modalflag"
	"github.com/efr32sim/efr32sim/monitor"
	"github.com/efr32sim/efr32sim/paths"
	"github.com/efr32sim/efr32sim/prefs"
	"github.com/efr32sim/efr32sim/publish"
	"github.com/efr32sim/efr32sim/script"
	"github.com/efr32sim/efr32sim/statsview"
	"github.com/efr32sim/efr32sim/svd"
	"github.com/efr32sim/efr32sim/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used by the monitor, which handles
	// the interrupt key itself.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

func main() {
	state := make(chan stateRequest)

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(state)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case s := <-state:
			switch s.req {
			case reqQuit:
				done = true
				if s.args != nil {
					if v, ok := s.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if s.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	os.Exit(exitVal)
}

func launch(state chan stateRequest) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("MONITOR", "SCRIPT", "REGS", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "MONITOR":
		err = monitorMode(md, state)

	case "SCRIPT":
		err = scriptMode(md)

	case "REGS":
		err = regsMode(md)

	case "DUMP":
		err = dumpMode(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	state <- stateRequest{req: reqQuit}
}

// flags shared by the modes that create a machine.
type machineFlags struct {
	svd       *string
	hex       *string
	nonsecure *bool
	log       *bool
	prefs     *string
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		svd:       md.AddString("svd", "", "CMSIS-SVD file describing additional peripherals"),
		hex:       md.AddString("hex", "", "Intel HEX image to load into memory"),
		nonsecure: md.AddBool("nonsecure", false, "map peripherals at their non-secure alias as well"),
		log:       md.AddBool("log", false, "echo log to stdout"),
		prefs:     md.AddString("prefs", "", "preference overrides (eg. \"hardware.ram.banks::2; machine.nonsecure::true\")"),
	}
}

func newMachine(mf machineFlags) (*hardware.Machine, error) {
	if *mf.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	// overrides are applied as the preferences are created
	prefs.PushCommandLineStack(*mf.prefs)
	p, err := preferences.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unused preference overrides: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	// the flag only ever turns the non-secure aliases on. the preference is
	// not saved
	if *mf.nonsecure {
		if err := p.NonSecure.Set(true); err != nil {
			return nil, err
		}
	}

	m, err := hardware.NewMachine(p)
	if err != nil {
		return nil, err
	}

	if *mf.svd != "" {
		f, err := os.Open(*mf.svd)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dev, err := svd.Load(f)
		if err != nil {
			return nil, err
		}

		if _, err := m.AttachSVD(dev); err != nil {
			return nil, err
		}
	}

	if *mf.hex != "" {
		f, err := os.Open(*mf.hex)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if _, err := hexload.Load(m.Bus, f); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// startPublisher connects to the redis server named in the publish
// preferences. The returned function closes the publisher.
func startPublisher(m *hardware.Machine) (func(), error) {
	pp, err := publish.NewPreferences()
	if err != nil {
		return nil, err
	}

	// the interrupt key abandons connection attempts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	conn, err := publish.Dial(ctx, pp.Address.Get().(string), pp.Attempts.Get().(int))
	stop()
	if err != nil {
		return nil, err
	}

	pub := publish.NewPublisher(m, conn, pp.Hash.Get().(string))
	pub.Snapshot()

	return func() {
		if err := pub.Close(); err != nil {
			fmt.Printf("* %v\n", err)
		}
	}, nil
}

func monitorMode(md *modalflag.Modes, state chan stateRequest) error {
	md.NewMode()

	mf := addMachineFlags(md)
	initScript := md.AddString("init", "", "script to run before the monitor starts")
	pub := md.AddBool("publish", false, "publish register writes to redis")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available %v)", statsview.Available()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	m, err := newMachine(mf)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	if *pub {
		stop, err := startPublisher(m)
		if err != nil {
			return err
		}
		defer stop()
	}

	mon := monitor.NewMonitor(m, os.Stdin, os.Stdout)

	if *initScript != "" {
		if err := mon.Executor().RunFile(*initScript); err != nil {
			return err
		}
	}

	// the monitor handles the interrupt key itself
	state <- stateRequest{req: reqNoIntSig}

	return mon.Run()
}

func scriptMode(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	pub := md.AddBool("publish", false, "publish register writes to redis")
	quiet := md.AddBool("quiet", false, "suppress command output")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one script required for %s mode", md)
	}

	m, err := newMachine(mf)
	if err != nil {
		return err
	}

	if *pub {
		stop, err := startPublisher(m)
		if err != nil {
			return err
		}
		defer stop()
	}

	var out io.Writer = os.Stdout
	if *quiet {
		out = io.Discard
	}

	ex := script.NewExecutor(m, out)
	for _, s := range md.RemainingArgs() {
		if err := ex.RunFile(s); err != nil {
			return err
		}
		fmt.Printf("! %s passed\n", s)
	}

	return nil
}

func regsMode(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := newMachine(mf)
	if err != nil {
		return err
	}

	// optional arguments restrict the listing to the named peripherals
	only := make(map[string]bool)
	for _, a := range md.RemainingArgs() {
		only[strings.ToUpper(a)] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tREGISTER\tVALUE\tRESET\tFIELDS")
	for _, ri := range m.RegisterMap() {
		if len(only) > 0 && !only[strings.ToUpper(ri.Label)] {
			continue
		}

		v, err := m.Bus.Peek(ri.Address)
		if err != nil {
			return err
		}

		d, err := m.Fields(ri.Address)
		if err != nil {
			return err
		}
		fields := make([]string, 0, len(d))
		for _, f := range d {
			fields = append(fields, f.String())
		}

		fmt.Fprintf(w, "%08x\t%s.%s\t%08x\t%08x\t%s\n", ri.Address, ri.Label, ri.Register.Name,
			v, ri.Register.ResetValue(), strings.Join(fields, " "))
	}

	return w.Flush()
}

func dumpMode(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	target := md.AddString("target", "lfxo", fmt.Sprintf("part of the machine to dump: %s", strings.Join(dump.Targets(), ", ")))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := newMachine(mf)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return dump.Write(os.Stdout, m, *target)
	case 1:
		fn := md.GetArg(0)

		// a directory argument gets a unique file name inside it
		if st, err := os.Stat(fn); err == nil && st.IsDir() {
			fn = filepath.Join(fn, paths.UniqueFilename("dump", *target, "dot"))
		}

		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()
		return dump.Write(f, m, *target)
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}
