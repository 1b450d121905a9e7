package chip8

import "testing"

func TestOpFields(t *testing.T) {
	op := Op(0xd123)
	if g, w := op.Addr(), uint16(0x123); g != w {
		t.Errorf("Addr() returned %.3x, want %.3x", g, w)
	}
	if g, w := op.X(), byte(0x1); g != w {
		t.Errorf("X() returned %x, want %x", g, w)
	}
	if g, w := op.Y(), byte(0x2); g != w {
		t.Errorf("Y() returned %x, want %x", g, w)
	}
	if g, w := op.N(), byte(0x3); g != w {
		t.Errorf("N() returned %x, want %x", g, w)
	}
	if g, w := op.Byte(), byte(0x23); g != w {
		t.Errorf("Byte() returned %.2x, want %.2x", g, w)
	}
}

func TestOpString(t *testing.T) {
	for _, c := range []struct {
		op   Op
		want string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1234, "JP 0x234"},
		{0x2345, "CALL 0x345"},
		{0x3142, "SE V1, 0x42"},
		{0x4142, "SNE V1, 0x42"},
		{0x5120, "SE V1, V2"},
		{0x6a42, "LD VA, 0x42"},
		{0x7a42, "ADD VA, 0x42"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812e, "SHL V1, V2"},
		{0x9120, "SNE V1, V2"},
		{0xa345, "LD I, 0x345"},
		{0xb345, "JP V0, 0x345"},
		{0xc142, "RND V1, 0x42"},
		{0xd125, "DRW V1, V2, 5"},
		{0xe19e, "SKP V1"},
		{0xe1a1, "SKNP V1"},
		{0xf107, "LD V1, DT"},
		{0xf10a, "LD V1, K"},
		{0xf115, "LD DT, V1"},
		{0xf118, "LD ST, V1"},
		{0xf11e, "ADD I, V1"},
		{0xf129, "LD F, V1"},
		{0xf133, "LD B, V1"},
		{0xf155, "LD [I], V1"},
		{0xf165, "LD V1, [I]"},
		{0x5121, "0x5121"},
		{0x8128, "0x8128"},
		{0xe1ff, "0xe1ff"},
		{0xf1ff, "0xf1ff"},
	} {
		if got := c.op.String(); got != c.want {
			t.Errorf("Op(%.4x).String() returned %q, want %q", uint16(c.op), got, c.want)
		}
	}
}
