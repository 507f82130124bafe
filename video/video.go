// Package video renders 1 bit per pixel framebuffers held in 8080 memory
// into images. It's meant for snapshots while debugging programs which draw
// to memory mapped video (such as arcade boards) rather than real time display.
package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/jmchacon/8080/memory"
	"golang.org/x/image/draw"
)

// Layout is the enumeration for how framebuffer bytes map to the screen.
type Layout int

const (
	LAYOUT_UNIMPLEMENTED Layout = iota
	LAYOUT_ROW                  // Row major, least significant bit is the leftmost pixel.
	LAYOUT_ROTATED              // As LAYOUT_ROW but the monitor is rotated 90 degrees counter clockwise.
	LAYOUT_MAX
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case LAYOUT_ROW:
		return "row"
	case LAYOUT_ROTATED:
		return "rotated"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout returns the Layout for the given String form.
func ParseLayout(s string) (Layout, error) {
	for l := LAYOUT_UNIMPLEMENTED + 1; l < LAYOUT_MAX; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return LAYOUT_UNIMPLEMENTED, fmt.Errorf("unknown layout %q", s)
}

var (
	kOff = color.Gray{Y: 0x00}
	kOn  = color.Gray{Y: 0xFF}
)

type Def struct {
	// Base is the address of the first framebuffer byte.
	Base uint16
	// Width is the number of pixels in each framebuffer line. Must be a multiple of 8.
	Width int
	// Height is the number of framebuffer lines.
	Height int
	// Layout defines how lines appear on screen.
	Layout Layout
}

// Frame renders a framebuffer described by a Def.
type Frame struct {
	base   uint16
	w      int
	h      int
	layout Layout
}

// Init returns a Frame for the given definition.
func Init(def *Def) (*Frame, error) {
	if def == nil {
		return nil, errors.New("nil Def")
	}
	if def.Layout <= LAYOUT_UNIMPLEMENTED || def.Layout >= LAYOUT_MAX {
		return nil, fmt.Errorf("layout is invalid: %d", def.Layout)
	}
	if def.Width <= 0 || def.Width%8 != 0 {
		return nil, fmt.Errorf("width %d must be a positive multiple of 8", def.Width)
	}
	if def.Height <= 0 {
		return nil, fmt.Errorf("height %d must be positive", def.Height)
	}
	if l := int(def.Base) + def.Width/8*def.Height; l > memory.Size {
		return nil, fmt.Errorf("framebuffer at 0x%.4X runs %d bytes past the end of memory", def.Base, l-memory.Size)
	}
	return &Frame{
		base:   def.Base,
		w:      def.Width,
		h:      def.Height,
		layout: def.Layout,
	}, nil
}

// Bounds returns the size of the rendered image.
func (f *Frame) Bounds() image.Rectangle {
	if f.layout == LAYOUT_ROTATED {
		return image.Rect(0, 0, f.h, f.w)
	}
	return image.Rect(0, 0, f.w, f.h)
}

// Render returns the current framebuffer contents as an image.
func (f *Frame) Render(r memory.Bank) *image.Gray {
	out := image.NewGray(f.Bounds())
	addr := f.base
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x += 8 {
			b := r.Read(addr)
			addr++
			for bit := 0; bit < 8; bit++ {
				c := kOff
				if b&(1<<bit) != 0 {
					c = kOn
				}
				px, py := x+bit, y
				if f.layout == LAYOUT_ROTATED {
					px, py = y, f.w-1-(x+bit)
				}
				out.SetGray(px, py, c)
			}
		}
	}
	return out
}

// Scale returns i enlarged by factor using nearest neighbor so pixels stay sharp.
func Scale(i image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := i.Bounds()
	d := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(d, d.Bounds(), i, b, draw.Src, nil)
	return d
}
