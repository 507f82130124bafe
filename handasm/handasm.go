// Package handasm turns hand assembled listings into binary images.
// A listing is made of lines of the form:
//
// AAAA OP A1 A2 MNEMONIC ; comment
//
// Where AAAA is the address field and OP is the opcode.
// A1,A2 are then optional params as needed. Lines which don't start
// with a 4 digit hex address are ignored so listings can carry
// headers and blank lines.
//
// Byte tokens end at the first token which isn't 2 hex digits (the mnemonic).
// Without a ';' at most 3 byte tokens are taken from a line. With a ';'
// there's no limit so data tables can be written one row per line.
package handasm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmchacon/8080/memory"
)

var (
	// ErrAddressOrder is returned when a line starts before the end of the previous one.
	ErrAddressOrder = errors.New("address goes backwards")
	// ErrOverflow is returned when a line runs past the top of the address space.
	ErrOverflow = errors.New("line runs past 0xFFFF")
)

// SyntaxError reports a line which couldn't be parsed.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

// Error implements the interface for error types.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying parse error.
func (e SyntaxError) Unwrap() error {
	return e.Err
}

// Program is an assembled listing. Data[0] belongs at Origin and any gaps
// between lines are zero filled.
type Program struct {
	Origin uint16
	Data   []uint8
}

// Assemble reads a listing and returns the bytes it describes.
func Assemble(r io.Reader) (*Program, error) {
	p := &Program{}
	next := -1 // First free address after the previous line.
	scanner := bufio.NewScanner(r)
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		body, comment := t, false
		if i := strings.Index(t, ";"); i >= 0 {
			body, comment = t[:i], true
		}
		toks := strings.Fields(body)
		if len(toks) == 0 || !isAddr(toks[0]) {
			continue
		}
		a, _ := strconv.ParseUint(toks[0], 16, 16)
		addr := int(a)

		b, err := lineBytes(toks[1:], comment)
		if err != nil {
			return nil, SyntaxError{Line: l, Text: t, Err: err}
		}
		if next == -1 {
			p.Origin = uint16(addr)
			next = addr
		}
		if addr < next {
			return nil, fmt.Errorf("line %d: 0x%.4X before 0x%.4X: %w", l, addr, next, ErrAddressOrder)
		}
		if addr+len(b) > memory.Size {
			return nil, fmt.Errorf("line %d: %w", l, ErrOverflow)
		}
		for ; next < addr; next++ {
			p.Data = append(p.Data, 0x00)
		}
		p.Data = append(p.Data, b...)
		next += len(b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load copies the program into r at its origin.
func (p *Program) Load(r memory.Bank) error {
	return memory.Load(r, p.Origin, p.Data)
}

// Binary returns the program as an image starting at 0x0000 with
// everything before the origin zero filled.
func (p *Program) Binary() []uint8 {
	out := make([]uint8, int(p.Origin)+len(p.Data))
	copy(out[p.Origin:], p.Data)
	return out
}

// End returns the first address after the program.
func (p *Program) End() int {
	return int(p.Origin) + len(p.Data)
}

func isAddr(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 16)
	return err == nil
}

func isByte(s string) bool {
	if len(s) != 2 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 8)
	return err == nil
}

// lineBytes parses the byte tokens following the address.
func lineBytes(toks []string, comment bool) ([]uint8, error) {
	var out []uint8
	for _, v := range toks {
		if !comment && len(out) == 3 {
			break
		}
		if !isByte(v) {
			if len(out) == 0 {
				return nil, fmt.Errorf("invalid byte %q", v)
			}
			break
		}
		b, _ := strconv.ParseUint(v, 16, 8)
		out = append(out, uint8(b))
	}
	if len(out) == 0 {
		return nil, errors.New("no bytes")
	}
	return out, nil
}
