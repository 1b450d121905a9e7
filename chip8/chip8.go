// Package chip8 provides an implementation of a CHIP-8 virtual machine,
// called Machine, that can be used to execute CHIP-8 bytecode.
package chip8

import (
	"fmt"
	"math/rand/v2"
)

const (
	// MemSize is the size of the machine's addressable memory in bytes.
	MemSize = 4096
	// ROMAddr is the address at which programs are loaded and begin
	// execution.
	ROMAddr = 0x200
	// FontAddr is the address of the built-in hexadecimal glyph table.
	FontAddr = 0x000
	// GlyphSize is the size of each built-in glyph in bytes.
	GlyphSize = 5

	// DisplayWidth and DisplayHeight are the dimensions of the
	// monochrome display in pixels.
	DisplayWidth  = 64
	DisplayHeight = 32

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16
)

// Mode is the execution mode of a Machine.
type Mode byte

const (
	// Running means the next Step fetches the instruction at PC.
	Running Mode = iota
	// AwaitingKey means execution is suspended by a key-wait
	// instruction; Step does nothing until a key is pressed, then
	// stores its index in V[KeyReg] and returns to Running.
	AwaitingKey
)

// Quirks selects between documented points of divergence among historical
// CHIP-8 interpreters. The zero value is the modern baseline behavior.
type Quirks struct {
	// ShiftUsesVY makes the shift instructions copy Vy into Vx before
	// shifting, as the original COSMAC VIP interpreter did.
	ShiftUsesVY bool
	// IncrementIndex makes the bulk register transfer instructions
	// leave I pointing past the transferred range (I+x+1), as the
	// original interpreter did.
	IncrementIndex bool
}

// Machine is an implementation of a CHIP-8 virtual machine.
// All state is exported so that hosts may render the display and set key
// state, but only Step and TickTimers should mutate it.
type Machine struct {
	Mem     [MemSize]byte
	V       [16]byte // VF doubles as the carry/borrow/collision flag.
	I       uint16
	PC      uint16
	Stack   [StackDepth]uint16
	SP      byte
	Display [DisplayWidth * DisplayHeight]byte // row-major, each 0 or 1
	Keys    [16]bool
	DT, ST  byte // delay and sound timers
	Mode    Mode
	KeyReg  byte // register awaiting a key while Mode is AwaitingKey
	Quirks  Quirks

	rand func() byte
}

// NewMachine returns a zeroed Machine with PC set to the program origin.
// Its memory is empty until Load installs a program.
func NewMachine() *Machine {
	return &Machine{
		PC:   ROMAddr,
		rand: func() byte { return byte(rand.UintN(256)) },
	}
}

// fontSet is the built-in 4x5 pixel glyph table for the hex digits 0-F,
// each glyph occupying five bytes with the pixels in the high nibble.
var fontSet = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Load installs the glyph table at FontAddr and copies rom into memory
// starting at ROMAddr. It returns an error, leaving the machine untouched,
// if the rom does not fit in the program window.
func (m *Machine) Load(rom []byte) error {
	if max := MemSize - ROMAddr; len(rom) > max {
		return fmt.Errorf("rom is %d bytes, larger than the %d byte program window", len(rom), max)
	}
	copy(m.Mem[FontAddr:], fontSet[:])
	copy(m.Mem[ROMAddr:], rom)
	return nil
}

// SetKey records the pressed state of keypad key k (0-F).
// It is the host adapter's half of the input matrix; the interpreter
// only ever reads Keys.
func (m *Machine) SetKey(k byte, pressed bool) {
	m.Keys[k&0xf] = pressed
}

// TickTimers decrements the delay and sound timers toward zero.
// The host must call it at 60Hz of wall-clock time, independent of how
// often it calls Step.
func (m *Machine) TickTimers() {
	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
	}
}

// Tone reports whether the buzzer should be audible.
func (m *Machine) Tone() bool { return m.ST > 0 }

// Pixel reports the display pixel at column x, row y.
func (m *Machine) Pixel(x, y int) byte {
	return m.Display[y*DisplayWidth+x]
}
