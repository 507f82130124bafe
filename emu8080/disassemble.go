package main

import (
	"fmt"
	"os"

	"github.com/jmchacon/8080/disassemble"
	"github.com/jmchacon/8080/memory"
	"github.com/spf13/cobra"
)

func (a *app) disassembleCmd() *cobra.Command {
	var offset, startPC uint16
	var count int
	cmd := &cobra.Command{
		Use:   "disassemble <image>",
		Short: "Disassemble an image to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("can't read image: %w", err)
			}
			r := &memory.Flat{}
			if err := memory.Load(r, offset, b); err != nil {
				return err
			}
			a.log.Debug("disassembling", "bytes", len(b), "pc", fmt.Sprintf("0x%.4X", startPC))
			pc := startPC
			// Can't base it on PC since it may rollover so count bytes (or instructions) instead.
			end := int(offset) + len(b) - int(startPC)
			for cnt, n := 0, 0; ; n++ {
				if count > 0 && n >= count {
					break
				}
				if count == 0 && cnt >= end {
					break
				}
				dis, off := disassemble.Step(pc, r)
				pc += uint16(off)
				cnt += off
				fmt.Fprintln(cmd.OutOrStdout(), dis)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint16Var(&offset, "offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out.")
	f.Uint16Var(&startPC, "start_pc", 0x0000, "PC value to start disassembling")
	f.IntVar(&count, "count", 0, "Number of instructions to disassemble. 0 disassembles to the end of the image.")
	return cmd
}
