package cartridge

import "testing"

func TestMapper2BankSwitchAndFixedLast(t *testing.T) {
	prg := make([]uint8, 4*0x4000)
	prg[0*0x4000] = 0x01
	prg[2*0x4000] = 0x03
	prg[3*0x4000] = 0xFF

	m := NewMapper2(prg, nil, true, MirrorVertical)
	if got := m.ReadPRG(0xC000); got != 0xFF {
		t.Fatalf("ReadPRG(0xC000) = %#02x, want fixed last bank 0xFF", got)
	}

	m.WritePRG(0x8000, 2)
	if got := m.ReadPRG(0x8000); got != 0x03 {
		t.Fatalf("ReadPRG(0x8000) after bank switch = %#02x, want 0x03", got)
	}
	if got := m.ReadPRG(0xC000); got != 0xFF {
		t.Fatalf("fixed last bank should be unaffected by switch, got %#02x", got)
	}
}

func TestMapper2CHRIsAlwaysRAM(t *testing.T) {
	m := NewMapper2(make([]uint8, 0x4000), nil, true, MirrorVertical)
	m.WriteCHR(0x0010, 0x42)
	if got := m.ReadCHR(0x0010); got != 0x42 {
		t.Fatalf("CHR-RAM roundtrip failed: got %#02x", got)
	}
}

func TestMapper2MirroringIsStatic(t *testing.T) {
	m := NewMapper2(make([]uint8, 0x4000), nil, true, MirrorVertical)
	if got := m.Mirroring(); got != MirrorVertical {
		t.Fatalf("Mirroring() = %v, want MirrorVertical", got)
	}
	m.WritePRG(0x8000, 1) // bank switches never affect mirroring
	if got := m.Mirroring(); got != MirrorVertical {
		t.Fatalf("Mirroring() changed after bank switch, got %v", got)
	}
}
