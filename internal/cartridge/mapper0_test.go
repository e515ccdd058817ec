package cartridge

import "testing"

func newTestCartridgeMapper0(prgBanks int, chrRAM bool) *Cartridge {
	c := &Cartridge{
		prgROM:    make([]uint8, prgBanks*0x4000),
		chrROM:    make([]uint8, 0x2000),
		hasCHRRAM: chrRAM,
		mirror:    MirrorHorizontal,
	}
	c.mapper = NewMapper0(c)
	return c
}

func TestMapper0MirrorsSingleBank(t *testing.T) {
	c := newTestCartridgeMapper0(1, false)
	c.prgROM[0] = 0x11
	c.prgROM[0x3FFF] = 0x22

	if got := c.ReadPRG(0x8000); got != 0x11 {
		t.Fatalf("ReadPRG(0x8000) = %#02x, want 0x11", got)
	}
	if got := c.ReadPRG(0xC000); got != 0x11 {
		t.Fatalf("ReadPRG(0xC000) = %#02x, want mirrored 0x11", got)
	}
	if got := c.ReadPRG(0xFFFF); got != 0x22 {
		t.Fatalf("ReadPRG(0xFFFF) = %#02x, want 0x22", got)
	}
}

func TestMapper0DirectMaps32KB(t *testing.T) {
	c := newTestCartridgeMapper0(2, false)
	c.prgROM[0] = 0xAA
	c.prgROM[0x4000] = 0xBB

	if got := c.ReadPRG(0x8000); got != 0xAA {
		t.Fatalf("ReadPRG(0x8000) = %#02x, want 0xAA", got)
	}
	if got := c.ReadPRG(0xC000); got != 0xBB {
		t.Fatalf("ReadPRG(0xC000) = %#02x, want 0xBB (no mirroring for 32KB)", got)
	}
}

func TestMapper0PRGRAM(t *testing.T) {
	c := newTestCartridgeMapper0(1, false)
	c.WritePRG(0x6000, 0x55)
	if got := c.ReadPRG(0x6000); got != 0x55 {
		t.Fatalf("PRG-RAM roundtrip failed: got %#02x", got)
	}
}

func TestMapper0CHRWriteRequiresRAM(t *testing.T) {
	rom := newTestCartridgeMapper0(1, false)
	rom.WriteCHR(0x0000, 0x99)
	if got := rom.ReadCHR(0x0000); got != 0 {
		t.Fatalf("CHR-ROM write should be ignored, got %#02x", got)
	}

	ram := newTestCartridgeMapper0(1, true)
	ram.WriteCHR(0x0000, 0x99)
	if got := ram.ReadCHR(0x0000); got != 0x99 {
		t.Fatalf("CHR-RAM write should hold, got %#02x", got)
	}
}
