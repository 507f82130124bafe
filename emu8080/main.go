// emu8080 runs Intel 8080 programs and provides the tools to build and
// inspect them:
//
// emu8080 run [--cpm] <image>
// emu8080 disassemble <image>
// emu8080 assemble <listing> <output>
// emu8080 convertcom <file.com>
// emu8080 snapshot <image> <output.png>
//
// Images are raw binaries loaded at --offset with everything else zero'd.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jmchacon/8080/cpm"
	"github.com/jmchacon/8080/cpu"
	"github.com/jmchacon/8080/disassemble"
	"github.com/jmchacon/8080/memory"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands.
type app struct {
	verbose bool
	level   slog.LevelVar
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "emu8080",
		Short:        "Intel 8080 emulator and tools",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.level.Set(slog.LevelDebug)
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &a.level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output")
	root.AddCommand(
		a.runCmd(),
		a.disassembleCmd(),
		a.assembleCmd(),
		a.convertComCmd(),
		a.snapshotCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// machineDef describes how to build a CPU and memory from an image file.
type machineDef struct {
	image        string
	offset       uint16
	startPC      uint16
	sp           uint16
	cpm          bool
	undocumented bool
	console      io.Writer // CP/M console output.
}

// newMachine returns a powered on CPU with the image loaded.
func (a *app) newMachine(d *machineDef) (*cpu.Processor, error) {
	b, err := os.ReadFile(d.image)
	if err != nil {
		return nil, fmt.Errorf("can't read image: %w", err)
	}
	def := &cpu.ChipDef{
		Cpu: cpu.CPU_8080,
		Ram: &memory.Flat{},
	}
	if d.undocumented {
		def.Cpu = cpu.CPU_8080_UNDOCUMENTED
	}
	if d.cpm {
		def.Ports = cpm.NewConsole(d.console)
	}
	p, err := cpu.Init(def)
	if err != nil {
		return nil, err
	}
	if d.cpm {
		if err := cpm.Load(p.Ram, b); err != nil {
			return nil, fmt.Errorf("can't load %q: %w", d.image, err)
		}
		cpm.Start(p)
		a.log.Debug("loaded CP/M program", "file", d.image, "bytes", len(b))
		return p, nil
	}
	if err := memory.Load(p.Ram, d.offset, b); err != nil {
		return nil, fmt.Errorf("can't load %q: %w", d.image, err)
	}
	p.PC = d.startPC
	p.SP = d.sp
	a.log.Debug("loaded image", "file", d.image, "bytes", len(b), "offset", fmt.Sprintf("0x%.4X", d.offset))
	return p, nil
}

// execute steps p until it halts, faults or has run at least maxCycles (0 for no limit).
// A halt isn't an error.
func (a *app) execute(p *cpu.Processor, maxCycles uint64, trace bool) error {
	for maxCycles == 0 || p.Clocks() < maxCycles {
		var dis string
		pc := p.PC
		if trace {
			dis, _ = disassemble.Step(pc, p.Ram)
		}
		cycles, err := p.Step()
		if trace {
			a.log.Debug("step", "pc", fmt.Sprintf("0x%.4X", pc), "op", fmt.Sprintf("0x%.2X", p.Ram.Read(pc)), "insn", dis, "cycles", cycles, "regs", p.Debug())
		}
		if err != nil {
			var h cpu.HaltOpcode
			if errors.As(err, &h) {
				a.log.Info("halted", "addr", fmt.Sprintf("0x%.4X", h.Addr), "cycles", p.Clocks())
				return nil
			}
			return fmt.Errorf("cpu stopped after %d cycles: %w", p.Clocks(), err)
		}
	}
	a.log.Info("cycle limit reached", "cycles", p.Clocks(), "pc", fmt.Sprintf("0x%.4X", p.PC))
	return nil
}
