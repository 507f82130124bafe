package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/jmchacon/8080/video"
	"github.com/spf13/cobra"
)

func (a *app) snapshotCmd() *cobra.Command {
	d := &machineDef{}
	var cycles uint64
	def := &video.Def{}
	var layout string
	var scale int
	cmd := &cobra.Command{
		Use:   "snapshot <image> <output.png>",
		Short: "Run an image and save its 1 bit framebuffer as a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := video.ParseLayout(layout)
			if err != nil {
				return err
			}
			def.Layout = l
			frame, err := video.Init(def)
			if err != nil {
				return err
			}
			d.image = args[0]
			d.console = cmd.OutOrStdout()
			p, err := a.newMachine(d)
			if err != nil {
				return err
			}
			if err := a.execute(p, cycles, false); err != nil {
				return err
			}
			o, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := png.Encode(o, video.Scale(frame.Render(p.Ram), scale)); err != nil {
				o.Close()
				return fmt.Errorf("can't encode %q: %w", args[1], err)
			}
			a.log.Info("wrote snapshot", "output", args[1], "cycles", p.Clocks())
			return o.Close()
		},
	}
	f := cmd.Flags()
	f.Uint16Var(&d.offset, "offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out.")
	f.Uint16Var(&d.startPC, "start_pc", 0x0000, "PC value to start execution")
	f.Uint16Var(&d.sp, "sp", 0x0000, "Initial stack pointer")
	f.BoolVar(&d.undocumented, "undocumented", false, "Execute the undocumented JMP/RET/CALL aliases instead of faulting")
	f.Uint64Var(&cycles, "cycles", 1000000, "Cycles to run before taking the snapshot. 0 runs until halt.")
	f.Uint16Var(&def.Base, "base", 0x2400, "Address of the framebuffer")
	f.IntVar(&def.Width, "width", 256, "Pixels per framebuffer line")
	f.IntVar(&def.Height, "height", 224, "Framebuffer lines")
	f.StringVar(&layout, "layout", "rotated", "Framebuffer layout (row or rotated)")
	f.IntVar(&scale, "scale", 1, "Integer scale factor for the output")
	return cmd
}
