package memory

import "testing"

func newTestPPUMemory(mirror MirrorMode) (*PPUMemory, *mockCartridge) {
	cart := &mockCartridge{}
	return NewPPUMemory(cart, mirror), cart
}

func TestPaletteDefaultsBackgroundBlack(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorHorizontal)
	for _, addr := range []uint16{0x3F00, 0x3F04, 0x3F08, 0x3F0C} {
		if got := pm.Read(addr); got != 0x0F {
			t.Fatalf("Read(%#04x) = %#02x, want 0x0F (background black)", addr, got)
		}
	}
}

func TestPatternTableReadsRouteToCartridge(t *testing.T) {
	pm, cart := newTestPPUMemory(MirrorHorizontal)
	cart.chrMem[0x0010] = 0x5A
	if got := pm.Read(0x0010); got != 0x5A {
		t.Fatalf("Read($0010) = %#02x, want 0x5A from cartridge CHR", got)
	}

	pm.Write(0x0020, 0x77)
	if cart.chrMem[0x0020] != 0x77 {
		t.Fatalf("expected CHR write to reach cartridge")
	}
}

func TestHorizontalMirroring(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorHorizontal)
	pm.Write(0x2000, 0x11) // nametable 0
	pm.Write(0x2800, 0x22) // nametable 2

	if got := pm.Read(0x2400); got != 0x11 {
		t.Fatalf("horizontal mirror: nametable 1 should mirror nametable 0, got %#02x", got)
	}
	if got := pm.Read(0x2C00); got != 0x22 {
		t.Fatalf("horizontal mirror: nametable 3 should mirror nametable 2, got %#02x", got)
	}
}

func TestVerticalMirroring(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorVertical)
	pm.Write(0x2000, 0x11) // nametable 0
	pm.Write(0x2400, 0x22) // nametable 1

	if got := pm.Read(0x2800); got != 0x11 {
		t.Fatalf("vertical mirror: nametable 2 should mirror nametable 0, got %#02x", got)
	}
	if got := pm.Read(0x2C00); got != 0x22 {
		t.Fatalf("vertical mirror: nametable 3 should mirror nametable 1, got %#02x", got)
	}
}

func TestSingleScreenMirroring(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorSingleScreen0)
	pm.Write(0x2000, 0x33)
	if got := pm.Read(0x2C00); got != 0x33 {
		t.Fatalf("single-screen-0: all nametables should alias bank 0, got %#02x", got)
	}

	pm.SetMirroring(MirrorSingleScreen1)
	pm.Write(0x2400, 0x44)
	if got := pm.Read(0x2000); got != 0x44 {
		t.Fatalf("single-screen-1: all nametables should alias bank 1, got %#02x", got)
	}
}

func TestFourScreenMirroring(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorFourScreen)
	pm.Write(0x2000, 0x01)
	pm.Write(0x2400, 0x02)
	pm.Write(0x2800, 0x03)
	pm.Write(0x2C00, 0x04)

	cases := map[uint16]uint8{0x2000: 0x01, 0x2400: 0x02, 0x2800: 0x03, 0x2C00: 0x04}
	for addr, want := range cases {
		if got := pm.Read(addr); got != want {
			t.Fatalf("four-screen: Read(%#04x) = %#02x, want %#02x", addr, got, want)
		}
	}
}

func TestNametableMirrorRange(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorVertical)
	pm.Write(0x2000, 0x55)
	if got := pm.Read(0x3000); got != 0x55 {
		t.Fatalf("Read($3000) should mirror $2000, got %#02x", got)
	}
}

func TestPaletteMirroringTransparentEntries(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorHorizontal)
	pm.Write(0x3F10, 0x20)
	if got := pm.Read(0x3F00); got != 0x20 {
		t.Fatalf("palette: $3F10 should alias $3F00, got %#02x", got)
	}
}

func TestPaletteAddressWraparound(t *testing.T) {
	pm, _ := newTestPPUMemory(MirrorHorizontal)
	pm.Write(0x3F05, 0x66)
	if got := pm.Read(0x3F25); got != 0x66 {
		t.Fatalf("Read($3F25) should mirror $3F05, got %#02x", got)
	}
}
