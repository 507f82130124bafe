package main

import (
	"fmt"
	"os"

	"github.com/jmchacon/8080/handasm"
	"github.com/spf13/cobra"
)

func (a *app) assembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assemble <listing> <output>",
		Short: "Turn a hand assembled listing into a binary image",
		Long:  "Turn a hand assembled listing into a binary image. Everything before the first address is zero filled.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			p, err := handasm.Assemble(in)
			if err != nil {
				return fmt.Errorf("can't assemble %q: %w", args[0], err)
			}
			if err := os.WriteFile(args[1], p.Binary(), 0644); err != nil {
				return fmt.Errorf("can't write output: %w", err)
			}
			a.log.Info("assembled", "origin", fmt.Sprintf("0x%.4X", p.Origin), "end", fmt.Sprintf("0x%.4X", p.End()), "output", args[1])
			return nil
		},
	}
}
