package chip8

import (
	"bytes"
	"fmt"
	"testing"
)

func TestNewMachine(t *testing.T) {
	m := NewMachine()
	if m.PC != ROMAddr {
		t.Errorf("PC is %.3x, want %.3x", m.PC, ROMAddr)
	}
	for i, b := range m.Mem {
		if b != 0 {
			t.Errorf("Mem[%.3x] == %.2x, want 00", i, b)
		}
	}
	if m.Mode != Running {
		t.Errorf("mode is %d, want %d", m.Mode, Running)
	}
	if m.Tone() {
		t.Error("tone is audible on a fresh machine")
	}
}

func TestLoad(t *testing.T) {
	for _, c := range []struct {
		romSize int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MemSize - ROMAddr, false},
		{MemSize - ROMAddr + 1, true},
		{MemSize, true},
	} {
		t.Run(fmt.Sprintf("%d", c.romSize), func(t *testing.T) {
			m := NewMachine()
			err := m.Load(bytes.Repeat([]byte{0xab}, c.romSize))
			if (err != nil) != c.wantErr {
				t.Fatalf("Load returned %v, wantErr %v", err, c.wantErr)
			}
			if c.wantErr {
				// A rejected rom must leave the machine untouched.
				for i, b := range m.Mem {
					if b != 0 {
						t.Fatalf("Mem[%.3x] == %.2x after failed load, want 00", i, b)
					}
				}
				if m.PC != ROMAddr {
					t.Errorf("PC is %.3x after failed load, want %.3x", m.PC, ROMAddr)
				}
				return
			}
			for i := range m.Mem {
				w := byte(0)
				switch {
				case i < len(fontSet):
					w = fontSet[i]
				case i >= ROMAddr && i < ROMAddr+c.romSize:
					w = 0xab
				}
				if g := m.Mem[i]; g != w {
					t.Errorf("Mem[%.3x] == %.2x, want %.2x", i, g, w)
				}
			}
		})
	}
}

func TestFontGlyphs(t *testing.T) {
	m := NewMachine()
	if err := m.Load(nil); err != nil {
		t.Fatal(err)
	}
	// Spot-check the "0" and "F" glyphs at the addresses Fx29 computes.
	zero := [GlyphSize]byte{0xF0, 0x90, 0x90, 0x90, 0xF0}
	if got := [GlyphSize]byte(m.Mem[FontAddr : FontAddr+GlyphSize]); got != zero {
		t.Errorf("glyph 0 is % x, want % x", got, zero)
	}
	f := [GlyphSize]byte{0xF0, 0x80, 0xF0, 0x80, 0x80}
	addr := FontAddr + 0xf*GlyphSize
	if got := [GlyphSize]byte(m.Mem[addr : addr+GlyphSize]); got != f {
		t.Errorf("glyph F is % x, want % x", got, f)
	}
}

func TestTickTimers(t *testing.T) {
	m := NewMachine()
	m.DT, m.ST = 2, 1
	if !m.Tone() {
		t.Error("tone is silent with ST == 1")
	}
	m.TickTimers()
	if m.DT != 1 || m.ST != 0 {
		t.Errorf("timers are %d/%d after one tick, want 1/0", m.DT, m.ST)
	}
	if m.Tone() {
		t.Error("tone is audible with ST == 0")
	}
	m.TickTimers()
	m.TickTimers()
	if m.DT != 0 || m.ST != 0 {
		t.Errorf("timers are %d/%d, want 0/0; they must not wrap below zero", m.DT, m.ST)
	}
}

// TestTimerRate checks that timer decrement is coupled to TickTimers alone,
// not to how many instructions execute between ticks.
func TestTimerRate(t *testing.T) {
	m := NewMachine()
	if err := m.Load([]byte{0x12, 0x00}); err != nil { // jump-to-self
		t.Fatal(err)
	}
	m.DT, m.ST = 5, 5
	for i := 0; i < 10000; i++ {
		if err := m.Step(Nopf); err != nil {
			t.Fatal(err)
		}
	}
	if m.DT != 5 || m.ST != 5 {
		t.Fatalf("timers are %d/%d after 10000 steps, want 5/5", m.DT, m.ST)
	}
	m.TickTimers()
	if m.DT != 4 || m.ST != 4 {
		t.Errorf("timers are %d/%d after one tick, want 4/4", m.DT, m.ST)
	}
}

func TestSetKey(t *testing.T) {
	m := NewMachine()
	m.SetKey(0xa, true)
	if !m.Keys[0xa] {
		t.Error("key A not pressed after SetKey")
	}
	m.SetKey(0xa, false)
	if m.Keys[0xa] {
		t.Error("key A still pressed after release")
	}
}
