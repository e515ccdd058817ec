package cartridge

import "testing"

func TestMapper3CHRBankSwitch(t *testing.T) {
	chr := make([]uint8, 4*0x2000)
	chr[0*0x2000] = 0x10
	chr[3*0x2000] = 0x30

	m := NewMapper3(make([]uint8, 0x4000), chr, false, MirrorHorizontal)
	if got := m.ReadCHR(0x0000); got != 0x10 {
		t.Fatalf("ReadCHR(0x0000) = %#02x, want bank 0's 0x10", got)
	}

	m.WritePRG(0x8000, 3)
	if got := m.ReadCHR(0x0000); got != 0x30 {
		t.Fatalf("ReadCHR(0x0000) after bank switch = %#02x, want bank 3's 0x30", got)
	}
}

func TestMapper3PRGMirrorsSingleBank(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0] = 0x11
	m := NewMapper3(prg, make([]uint8, 0x2000), false, MirrorHorizontal)

	if got := m.ReadPRG(0x8000); got != 0x11 {
		t.Fatalf("ReadPRG(0x8000) = %#02x, want 0x11", got)
	}
	if got := m.ReadPRG(0xC000); got != 0x11 {
		t.Fatalf("ReadPRG(0xC000) = %#02x, want mirrored 0x11", got)
	}
}

func TestMapper3CHRIsReadOnly(t *testing.T) {
	m := NewMapper3(make([]uint8, 0x4000), make([]uint8, 0x2000), false, MirrorHorizontal)
	m.WriteCHR(0x0000, 0xAB)
	if got := m.ReadCHR(0x0000); got != 0 {
		t.Fatalf("expected CHR-ROM write to be ignored, got %#02x", got)
	}
}
