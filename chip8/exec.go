package chip8

import "fmt"

// Nopf is a logf that discards its arguments.
func Nopf(string, ...any) {}

// Step executes one fetch/decode/execute cycle, or resumes a suspended
// key-wait. Non-fatal diagnostics (unrecognized instructions) are reported
// through logf, which must be non-nil; use Nopf to discard them.
// It returns a FaultError if the instruction hits a halt condition, leaving
// PC at the faulting instruction.
func (m *Machine) Step(logf func(string, ...any)) error {
	if m.Mode == AwaitingKey {
		if k, ok := m.firstKey(); ok {
			m.V[m.KeyReg] = k
			m.Mode = Running
		}
		return nil
	}

	opPC := m.PC
	if int(opPC)+1 >= MemSize {
		return FaultError{FaultCode: MemoryRange, Addr: opPC}
	}
	op := Op(m.Mem[opPC])<<8 | Op(m.Mem[opPC+1])
	fault := func(code FaultCode) error {
		return FaultError{FaultCode: code, Op: op, Addr: opPC}
	}

	// Ordinary instructions fall through to here having already advanced;
	// jump, call and return overwrite PC below instead.
	m.PC += 2

	x, y := op.X(), op.Y()
	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00e0: // CLS
			clear(m.Display[:])
		case 0x00ee: // RET
			if m.SP == 0 {
				m.PC = opPC
				return fault(StackUnderflow)
			}
			m.SP--
			m.PC = m.Stack[m.SP]
		default:
			// SYS: legacy machine-code call, ignored.
		}
	case 0x1: // JP nnn
		m.PC = op.Addr()
	case 0x2: // CALL nnn
		if m.SP == StackDepth {
			m.PC = opPC
			return fault(StackOverflow)
		}
		m.Stack[m.SP] = m.PC
		m.SP++
		m.PC = op.Addr()
	case 0x3: // SE Vx, kk
		if m.V[x] == op.Byte() {
			m.PC += 2
		}
	case 0x4: // SNE Vx, kk
		if m.V[x] != op.Byte() {
			m.PC += 2
		}
	case 0x5: // SE Vx, Vy
		if op.N() != 0 {
			return m.unknown(op, opPC, logf)
		}
		if m.V[x] == m.V[y] {
			m.PC += 2
		}
	case 0x6: // LD Vx, kk
		m.V[x] = op.Byte()
	case 0x7: // ADD Vx, kk
		m.V[x] += op.Byte()
	case 0x8:
		return m.alu(op, opPC, logf)
	case 0x9: // SNE Vx, Vy
		if op.N() != 0 {
			return m.unknown(op, opPC, logf)
		}
		if m.V[x] != m.V[y] {
			m.PC += 2
		}
	case 0xa: // LD I, nnn
		m.I = op.Addr()
	case 0xb: // JP V0, nnn
		m.PC = op.Addr() + uint16(m.V[0])
	case 0xc: // RND Vx, kk
		m.V[x] = m.rand() & op.Byte()
	case 0xd: // DRW Vx, Vy, n
		if n := op.N(); n > 0 {
			if int(m.I)+int(n) > MemSize {
				m.PC = opPC
				return fault(MemoryRange)
			}
			m.draw(x, y, n)
		}
	case 0xe:
		key := m.V[x] & 0xf
		switch op.Byte() {
		case 0x9e: // SKP Vx
			if m.Keys[key] {
				m.PC += 2
			}
		case 0xa1: // SKNP Vx
			if !m.Keys[key] {
				m.PC += 2
			}
		default:
			return m.unknown(op, opPC, logf)
		}
	case 0xf:
		switch op.Byte() {
		case 0x07: // LD Vx, DT
			m.V[x] = m.DT
		case 0x0a: // LD Vx, K
			if k, ok := m.firstKey(); ok {
				m.V[x] = k
				break
			}
			m.Mode = AwaitingKey
			m.KeyReg = x
			// PC already points past this instruction; the Step
			// that observes a key resumes from there.
		case 0x15: // LD DT, Vx
			m.DT = m.V[x]
		case 0x18: // LD ST, Vx
			m.ST = m.V[x]
		case 0x1e: // ADD I, Vx
			m.I += uint16(m.V[x])
		case 0x29: // LD F, Vx
			m.I = FontAddr + uint16(m.V[x]&0xf)*GlyphSize
		case 0x33: // LD B, Vx
			if int(m.I)+2 >= MemSize {
				m.PC = opPC
				return fault(MemoryRange)
			}
			m.Mem[m.I] = m.V[x] / 100
			m.Mem[m.I+1] = m.V[x] / 10 % 10
			m.Mem[m.I+2] = m.V[x] % 10
		case 0x55: // LD [I], Vx
			if int(m.I)+int(x) >= MemSize {
				m.PC = opPC
				return fault(MemoryRange)
			}
			copy(m.Mem[m.I:], m.V[:x+1])
			if m.Quirks.IncrementIndex {
				m.I += uint16(x) + 1
			}
		case 0x65: // LD Vx, [I]
			if int(m.I)+int(x) >= MemSize {
				m.PC = opPC
				return fault(MemoryRange)
			}
			copy(m.V[:x+1], m.Mem[m.I:])
			if m.Quirks.IncrementIndex {
				m.I += uint16(x) + 1
			}
		default:
			return m.unknown(op, opPC, logf)
		}
	}
	return nil
}

// alu executes the 8xyn register-register operations.
func (m *Machine) alu(op Op, opPC uint16, logf func(string, ...any)) error {
	x, y := op.X(), op.Y()
	switch op.N() {
	case 0x0: // LD
		m.V[x] = m.V[y]
	case 0x1: // OR
		m.V[x] |= m.V[y]
	case 0x2: // AND
		m.V[x] &= m.V[y]
	case 0x3: // XOR
		m.V[x] ^= m.V[y]
	case 0x4: // ADD, VF = carry
		sum := uint16(m.V[x]) + uint16(m.V[y])
		m.V[x] = byte(sum)
		m.V[0xf] = byte(sum >> 8)
	case 0x5: // SUB, VF = not borrow
		vx, vy := m.V[x], m.V[y]
		m.V[x] = vx - vy
		m.V[0xf] = b2i(vx >= vy)
	case 0x6: // SHR, VF = bit shifted out
		if m.Quirks.ShiftUsesVY {
			m.V[x] = m.V[y]
		}
		lsb := m.V[x] & 0x01
		m.V[x] >>= 1
		m.V[0xf] = lsb
	case 0x7: // SUBN, VF = not borrow
		vx, vy := m.V[x], m.V[y]
		m.V[x] = vy - vx
		m.V[0xf] = b2i(vy >= vx)
	case 0xe: // SHL, VF = bit shifted out
		if m.Quirks.ShiftUsesVY {
			m.V[x] = m.V[y]
		}
		msb := m.V[x] >> 7
		m.V[x] <<= 1
		m.V[0xf] = msb
	default:
		return m.unknown(op, opPC, logf)
	}
	return nil
}

// draw XORs the n-row sprite at I onto the display at (Vx, Vy).
// The origin wraps once at draw start; individual pixels wrap around each
// display edge independently. VF reports whether any set pixel was cleared.
func (m *Machine) draw(x, y, n byte) {
	ox, oy := int(m.V[x])%DisplayWidth, int(m.V[y])%DisplayHeight
	m.V[0xf] = 0
	for row := 0; row < int(n); row++ {
		sprite := m.Mem[int(m.I)+row]
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (ox + col) % DisplayWidth
			py := (oy + row) % DisplayHeight
			i := py*DisplayWidth + px
			if m.Display[i] == 1 {
				m.V[0xf] = 1
			}
			m.Display[i] ^= 1
		}
	}
}

// unknown reports an unrecognized bit pattern and treats it as a no-op.
// PC has already advanced, so execution continues at the next instruction.
func (m *Machine) unknown(op Op, opPC uint16, logf func(string, ...any)) error {
	logf("unrecognized instruction %s at 0x%.3x", op, opPC)
	return nil
}

// firstKey returns the lowest-numbered pressed key, if any.
func (m *Machine) firstKey() (byte, bool) {
	for k, pressed := range m.Keys {
		if pressed {
			return byte(k), true
		}
	}
	return 0, false
}

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// FaultError is returned by Step if execution hits a halt condition.
type FaultError struct {
	FaultCode
	Op   Op
	Addr uint16
}

func (e FaultError) Error() string {
	return fmt.Sprintf("%s executing %s at 0x%.3x", e.FaultCode, e.Op, e.Addr)
}

// FaultCode signifies the type of condition that halted execution.
type FaultCode byte

const (
	StackUnderflow FaultCode = iota
	StackOverflow
	MemoryRange
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		StackUnderflow: "stack underflow",
		StackOverflow:  "stack overflow",
		MemoryRange:    "memory access out of range",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown fault (%.2x)", byte(c))
}
