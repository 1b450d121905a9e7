package chip8

import "fmt"

// Op represents a 16-bit CHIP-8 instruction word, fetched big-endian.
type Op uint16

// Addr returns the low 12 bits (the nnn address operand).
func (o Op) Addr() uint16 { return uint16(o) & 0x0fff }

// X returns the first register operand (bits 8-11).
func (o Op) X() byte { return byte(o>>8) & 0x0f }

// Y returns the second register operand (bits 4-7).
func (o Op) Y() byte { return byte(o>>4) & 0x0f }

// N returns the low nibble (the small immediate operand).
func (o Op) N() byte { return byte(o) & 0x0f }

// Byte returns the low byte (the kk immediate operand).
func (o Op) Byte() byte { return byte(o) }

// String returns the conventional assembler mnemonic for the instruction,
// or the raw word for an unrecognized bit pattern.
func (o Op) String() string {
	x, y := o.X(), o.Y()
	switch o >> 12 {
	case 0x0:
		switch o {
		case 0x00e0:
			return "CLS"
		case 0x00ee:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%.3x", o.Addr())
	case 0x1:
		return fmt.Sprintf("JP 0x%.3x", o.Addr())
	case 0x2:
		return fmt.Sprintf("CALL 0x%.3x", o.Addr())
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%.2x", x, o.Byte())
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%.2x", x, o.Byte())
	case 0x5:
		if o.N() == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%.2x", x, o.Byte())
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%.2x", x, o.Byte())
	case 0x8:
		if s, ok := map[byte]string{
			0x0: "LD", 0x1: "OR", 0x2: "AND", 0x3: "XOR",
			0x4: "ADD", 0x5: "SUB", 0x6: "SHR", 0x7: "SUBN",
			0xe: "SHL",
		}[o.N()]; ok {
			return fmt.Sprintf("%s V%X, V%X", s, x, y)
		}
	case 0x9:
		if o.N() == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xa:
		return fmt.Sprintf("LD I, 0x%.3x", o.Addr())
	case 0xb:
		return fmt.Sprintf("JP V0, 0x%.3x", o.Addr())
	case 0xc:
		return fmt.Sprintf("RND V%X, 0x%.2x", x, o.Byte())
	case 0xd:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, o.N())
	case 0xe:
		switch o.Byte() {
		case 0x9e:
			return fmt.Sprintf("SKP V%X", x)
		case 0xa1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xf:
		if s, ok := map[byte]string{
			0x07: "LD V%X, DT",
			0x0a: "LD V%X, K",
			0x15: "LD DT, V%X",
			0x18: "LD ST, V%X",
			0x1e: "ADD I, V%X",
			0x29: "LD F, V%X",
			0x33: "LD B, V%X",
			0x55: "LD [I], V%X",
			0x65: "LD V%X, [I]",
		}[o.Byte()]; ok {
			return fmt.Sprintf(s, x)
		}
	}
	return fmt.Sprintf("0x%.4x", uint16(o))
}
