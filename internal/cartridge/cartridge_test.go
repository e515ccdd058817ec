package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nesgo/nesemu/internal/emuerr"
)

// buildINES assembles a minimal iNES file in memory: header, optional
// trainer, PRG-ROM, and CHR-ROM. prgBanks/chrBanks are counted in
// 16KB/8KB units respectively.
func buildINES(mapperID uint8, prgBanks, chrBanks uint8, vertical, fourScreen, trainer bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)

	flags6 := (mapperID & 0x0F) << 4
	if vertical {
		flags6 |= 0x01
	}
	if fourScreen {
		flags6 |= 0x08
	}
	if trainer {
		flags6 |= 0x04
	}
	buf.WriteByte(flags6)
	buf.WriteByte((mapperID & 0xF0))
	buf.Write(make([]byte, 6)) // PRGRAMSize, TVSystem1, TVSystem2, padding[3]
	buf.Write(make([]byte, 2))

	if trainer {
		buf.Write(make([]byte, 512))
	}
	buf.Write(make([]byte, int(prgBanks)*16384))
	buf.Write(make([]byte, int(chrBanks)*8192))

	return buf.Bytes()
}

func TestLoadFromReaderRejectsBadSignature(t *testing.T) {
	data := buildINES(0, 1, 1, false, false, false)
	data[0] = 'X'

	_, err := LoadFromReader(bytes.NewReader(data))
	if !errors.Is(err, emuerr.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestLoadFromReaderRejectsZeroPRG(t *testing.T) {
	data := buildINES(0, 0, 1, false, false, false)

	_, err := LoadFromReader(bytes.NewReader(data))
	if !errors.Is(err, emuerr.ErrZeroPRG) {
		t.Fatalf("expected ErrZeroPRG, got %v", err)
	}
}

func TestLoadFromReaderRejectsUnsupportedMapper(t *testing.T) {
	data := buildINES(200, 1, 1, false, false, false)

	_, err := LoadFromReader(bytes.NewReader(data))
	if !errors.Is(err, emuerr.ErrUnsupportedMapper) {
		t.Fatalf("expected ErrUnsupportedMapper, got %v", err)
	}
}

func TestLoadFromReaderSkipsTrainer(t *testing.T) {
	data := buildINES(0, 1, 1, false, false, true)

	cart, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.prgROM) != 16384 {
		t.Fatalf("expected 16KB PRG-ROM, got %d bytes", len(cart.prgROM))
	}
}

func TestLoadFromReaderMirroringFromHeader(t *testing.T) {
	cases := []struct {
		name       string
		vertical   bool
		fourScreen bool
		want       MirrorMode
	}{
		{"horizontal", false, false, MirrorHorizontal},
		{"vertical", true, false, MirrorVertical},
		{"four-screen", false, true, MirrorFourScreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildINES(0, 1, 1, tc.vertical, tc.fourScreen, false)
			cart, err := LoadFromReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cart.GetMirrorMode(); got != tc.want {
				t.Fatalf("mirror mode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadFromReaderCHRRAMWhenNoCHRROM(t *testing.T) {
	data := buildINES(0, 1, 0, false, false, false)

	cart, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.hasCHRRAM {
		t.Fatalf("expected hasCHRRAM true for zero CHR-ROM banks")
	}

	cart.WriteCHR(0x0000, 0x42)
	if got := cart.ReadCHR(0x0000); got != 0x42 {
		t.Fatalf("CHR-RAM roundtrip failed: got %#02x", got)
	}
}

func TestMockCartridgeTracksAccesses(t *testing.T) {
	mock := NewMockCartridge()
	mock.WritePRG(0x6000, 0xAB)
	if got := mock.ReadPRG(0x6000); got != 0xAB {
		t.Fatalf("PRG-RAM roundtrip failed: got %#02x", got)
	}
	if len(mock.prgWrites) != 1 || len(mock.prgReads) != 1 {
		t.Fatalf("expected one tracked read and write, got %d/%d", len(mock.prgReads), len(mock.prgWrites))
	}
	if mock.IRQPending() {
		t.Fatalf("mock cartridge should never assert IRQ")
	}
}
