package cartridge

// Mapper4 implements MMC3 (mapper 4): eight bank registers selected by a
// bank-select/data register pair, independent PRG and CHR layout-swap
// mode bits, runtime-switchable mirroring, and a scanline IRQ counter
// clocked by the PPU VRAM address's A12 rising edge rather than by a
// coarse once-per-scanline callback.
type Mapper4 struct {
	prgROM []uint8
	chrMem []uint8
	prgRAM [0x2000]uint8
	chrIsRAM bool

	prgBanks uint8
	chrBanks uint8

	bankSelect uint8
	registers  [8]uint8

	prgBank [4]uint8
	chrBank [8]uint8

	mirror     MirrorMode
	fourScreen bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool

	lastA12 bool
}

// NewMapper4 creates a new MMC3 mapper.
func NewMapper4(prgROM, chrROM []uint8, hasCHRRAM bool, headerMirror MirrorMode) *Mapper4 {
	m := &Mapper4{
		prgROM:     append([]uint8(nil), prgROM...),
		prgBanks:   uint8(len(prgROM) / 0x2000),
		mirror:     headerMirror,
		fourScreen: headerMirror == MirrorFourScreen,
	}

	if hasCHRRAM {
		m.chrMem = make([]uint8, 0x2000)
		m.chrIsRAM = true
	} else {
		m.chrMem = append([]uint8(nil), chrROM...)
	}
	m.chrBanks = uint8(len(m.chrMem) / 0x400)

	m.prgBank[2] = m.lastPRGBank() - 1
	m.prgBank[3] = m.lastPRGBank()

	return m
}

func (m *Mapper4) lastPRGBank() uint8 {
	if m.prgBanks == 0 {
		return 0
	}
	return m.prgBanks - 1
}

// ReadPRG reads PRG-RAM or one of the four 8KB PRG windows.
func (m *Mapper4) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		window := (addr - 0x8000) / 0x2000
		bank := m.prgBank[window]
		offset := uint32(bank)*0x2000 + uint32(addr&0x1FFF)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	}
	return 0
}

// WritePRG handles PRG-RAM writes and the MMC3 register writes at
// $8000-$FFFF (even/odd addresses in each $2000 quadrant select
// different registers).
func (m *Mapper4) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = value

	case addr >= 0x8000 && addr < 0xA000:
		if addr%2 == 0 {
			m.bankSelect = value
		} else {
			m.registers[m.bankSelect&0x07] = value
		}
		m.updateBanks()

	case addr >= 0xA000 && addr < 0xC000:
		if addr%2 == 0 {
			if !m.fourScreen {
				if value&0x01 != 0 {
					m.mirror = MirrorHorizontal
				} else {
					m.mirror = MirrorVertical
				}
			}
		}
		// Odd address: PRG-RAM protect, not modeled.

	case addr >= 0xC000 && addr < 0xE000:
		if addr%2 == 0 {
			m.irqLatch = value
		} else {
			m.irqReload = true
		}

	case addr >= 0xE000:
		if addr%2 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *Mapper4) updateBanks() {
	if m.bankSelect&0x40 == 0 {
		m.prgBank[0] = m.registers[6]
		m.prgBank[2] = m.lastPRGBank() - 1
	} else {
		m.prgBank[0] = m.lastPRGBank() - 1
		m.prgBank[2] = m.registers[6]
	}
	m.prgBank[1] = m.registers[7]
	m.prgBank[3] = m.lastPRGBank()

	if m.bankSelect&0x80 == 0 {
		m.chrBank[0] = m.registers[0] &^ 1
		m.chrBank[1] = m.registers[0] | 1
		m.chrBank[2] = m.registers[1] &^ 1
		m.chrBank[3] = m.registers[1] | 1
		m.chrBank[4] = m.registers[2]
		m.chrBank[5] = m.registers[3]
		m.chrBank[6] = m.registers[4]
		m.chrBank[7] = m.registers[5]
	} else {
		m.chrBank[0] = m.registers[2]
		m.chrBank[1] = m.registers[3]
		m.chrBank[2] = m.registers[4]
		m.chrBank[3] = m.registers[5]
		m.chrBank[4] = m.registers[0] &^ 1
		m.chrBank[5] = m.registers[0] | 1
		m.chrBank[6] = m.registers[1] &^ 1
		m.chrBank[7] = m.registers[1] | 1
	}
}

// ReadCHR reads one of the eight 1KB CHR windows.
func (m *Mapper4) ReadCHR(addr uint16) uint8 {
	offset := m.chrOffset(addr)
	if int(offset) < len(m.chrMem) {
		return m.chrMem[offset]
	}
	return 0
}

// WriteCHR writes to CHR-RAM only; CHR-ROM is read-only.
func (m *Mapper4) WriteCHR(addr uint16, value uint8) {
	if !m.chrIsRAM {
		return
	}
	offset := m.chrOffset(addr)
	if int(offset) < len(m.chrMem) {
		m.chrMem[offset] = value
	}
}

func (m *Mapper4) chrOffset(addr uint16) uint32 {
	window := addr / 0x400
	bank := m.chrBank[window&0x07]
	return uint32(bank)*0x400 + uint32(addr&0x3FF)
}

// Mirroring returns MMC3's runtime-controlled mirroring mode.
func (m *Mapper4) Mirroring() MirrorMode { return m.mirror }

// NotifyAddress clocks the IRQ counter on the rising edge of VRAM
// address bit 12 (A12), the real hardware's IRQ source: the PPU toggles
// A12 low during sprite/background pattern-table fetches within a
// scanline, and MMC3 watches every such rise.
func (m *Mapper4) NotifyAddress(addr uint16) {
	a12 := addr&0x1000 != 0
	if a12 && !m.lastA12 {
		m.clockIRQ()
	}
	m.lastA12 = a12
}

func (m *Mapper4) clockIRQ() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}

	m.irqReload = false
}

// IRQPending reports whether the scanline counter has reached zero
// while enabled.
func (m *Mapper4) IRQPending() bool { return m.irqPending }

// AcknowledgeIRQ clears the pending IRQ line.
func (m *Mapper4) AcknowledgeIRQ() { m.irqPending = false }
