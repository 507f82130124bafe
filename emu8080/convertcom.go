package main

import (
	"fmt"
	"os"

	"github.com/jmchacon/8080/cpm"
	"github.com/spf13/cobra"
)

func (a *app) convertComCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convertcom <file.com>",
		Short: "Convert a CP/M .COM file into a 64k image",
		Long: `Convert a CP/M .COM file into a 64k image loaded at 0x0100 with a minimal
BDOS for console output. Execution should start at 0x0100.
The output file is named after the input with .bin appended onto the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn := args[0]
			b, err := os.ReadFile(fn)
			if err != nil {
				return err
			}
			out, err := cpm.Image(b)
			if err != nil {
				return fmt.Errorf("can't convert %q: %w", fn, err)
			}
			outfn := fn + ".bin"
			if err := os.WriteFile(outfn, out, 0644); err != nil {
				return fmt.Errorf("can't write %q: %w", outfn, err)
			}
			a.log.Info("converted", "input", fn, "output", outfn)
			return nil
		},
	}
}
