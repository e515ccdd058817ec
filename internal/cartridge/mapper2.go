package cartridge

// Mapper2 implements UxROM (mapper 2): a switchable 16KB PRG bank at
// $8000-$BFFF selected by any write to $8000-$FFFF, with a fixed-last
// 16KB bank at $C000-$FFFF. CHR is always 8KB RAM.
type Mapper2 struct {
	prgROM []uint8
	chrRAM [0x2000]uint8

	prgBanks uint8
	prgBank  uint8
	mirror   MirrorMode
}

// NewMapper2 creates a new UxROM mapper.
func NewMapper2(prgROM, chrROM []uint8, hasCHRRAM bool, headerMirror MirrorMode) *Mapper2 {
	return &Mapper2{
		prgROM:   append([]uint8(nil), prgROM...),
		prgBanks: uint8(len(prgROM) / 0x4000),
		mirror:   headerMirror,
	}
}

// ReadPRG reads the switchable bank at $8000-$BFFF or the fixed last
// bank at $C000-$FFFF.
func (m *Mapper2) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xC000:
		offset := uint32(m.prgBank)*0x4000 + uint32(addr-0x8000)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	case addr >= 0xC000:
		last := m.prgBanks - 1
		offset := uint32(last)*0x4000 + uint32(addr-0xC000)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	}
	return 0
}

// WritePRG selects the PRG bank visible at $8000-$BFFF.
func (m *Mapper2) WritePRG(addr uint16, value uint8) {
	if addr >= 0x8000 && m.prgBanks > 0 {
		m.prgBank = value % m.prgBanks
	}
}

// ReadCHR reads from CHR-RAM.
func (m *Mapper2) ReadCHR(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.chrRAM[addr]
	}
	return 0
}

// WriteCHR writes to CHR-RAM.
func (m *Mapper2) WriteCHR(addr uint16, value uint8) {
	if addr < 0x2000 {
		m.chrRAM[addr] = value
	}
}

// Mirroring returns the header-declared mirroring mode; UxROM has no
// runtime mirroring control.
func (m *Mapper2) Mirroring() MirrorMode { return m.mirror }

// NotifyAddress is a no-op; UxROM has no IRQ source.
func (m *Mapper2) NotifyAddress(addr uint16) {}

// IRQPending is always false; UxROM has no IRQ source.
func (m *Mapper2) IRQPending() bool { return false }

// AcknowledgeIRQ is a no-op; UxROM has no IRQ source.
func (m *Mapper2) AcknowledgeIRQ() {}
