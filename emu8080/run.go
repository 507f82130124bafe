package main

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func (a *app) runCmd() *cobra.Command {
	d := &machineDef{}
	var maxCycles uint64
	var trace, dump bool
	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Run an image until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if trace {
				a.level.Set(slog.LevelDebug)
			}
			d.image = args[0]
			d.console = cmd.OutOrStdout()
			p, err := a.newMachine(d)
			if err != nil {
				return err
			}
			err = a.execute(p, maxCycles, trace)
			if dump {
				fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(p.Registers()))
			}
			return err
		},
	}
	f := cmd.Flags()
	f.Uint16Var(&d.offset, "offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored with --cpm.")
	f.Uint16Var(&d.startPC, "start_pc", 0x0000, "PC value to start execution. Ignored with --cpm.")
	f.Uint16Var(&d.sp, "sp", 0x0000, "Initial stack pointer. Ignored with --cpm.")
	f.BoolVar(&d.cpm, "cpm", false, "Treat the image as a CP/M .COM file and send console output to stdout")
	f.BoolVar(&d.undocumented, "undocumented", false, "Execute the undocumented JMP/RET/CALL aliases instead of faulting")
	f.Uint64Var(&maxCycles, "max_cycles", 0, "Stop after this many cycles. 0 runs until halt.")
	f.BoolVar(&trace, "trace", false, "Log every instruction before it executes")
	f.BoolVar(&dump, "dump", false, "Print the registers when execution stops")
	return cmd
}
