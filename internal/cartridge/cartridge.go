// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nesgo/nesemu/internal/emuerr"
)

// Cartridge represents a NES cartridge
type Cartridge struct {
	// ROM data
	prgROM []uint8
	chrROM []uint8

	// Mapper information
	mapperID uint8
	mapper   Mapper

	// Mirroring mode declared by the header; mappers that can change
	// mirroring at runtime consult their own state instead.
	mirror MirrorMode

	// Battery-backed RAM
	hasBattery bool
	sram       [0x2000]uint8

	// CHR memory type
	hasCHRRAM bool
}

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// iNES header structure
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8 // in 16KB units
	CHRROMSize uint8 // in 8KB units
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

// LoadFromFile loads a cartridge from an iNES file
func LoadFromFile(filename string) (*Cartridge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads a cartridge from an io.Reader
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	if string(header.Magic[:]) != "NES\x1A" {
		return nil, emuerr.ErrInvalidSignature
	}

	if header.PRGROMSize == 0 {
		return nil, emuerr.ErrZeroPRG
	}

	cart := &Cartridge{
		mapperID:   (header.Flags6 >> 4) | (header.Flags7 & 0xF0),
		hasBattery: (header.Flags6 & 0x02) != 0,
	}

	switch {
	case header.Flags6&0x08 != 0:
		cart.mirror = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		cart.mirror = MirrorVertical
	default:
		cart.mirror = MirrorHorizontal
	}

	// Trainer, if present, precedes PRG-ROM and is not used by the core.
	if header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, err
		}
	}

	prgSize := int(header.PRGROMSize) * 16384
	cart.prgROM = make([]uint8, prgSize)
	if _, err := io.ReadFull(r, cart.prgROM); err != nil {
		return nil, err
	}

	chrSize := int(header.CHRROMSize) * 8192
	if chrSize > 0 {
		cart.chrROM = make([]uint8, chrSize)
		if _, err := io.ReadFull(r, cart.chrROM); err != nil {
			return nil, err
		}
	} else {
		cart.chrROM = make([]uint8, 8192)
		cart.hasCHRRAM = true
	}

	mapper, err := createMapper(cart.mapperID, cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	slog.Info("cartridge loaded",
		"mapper", cart.mapperID,
		"prg_bytes", len(cart.prgROM),
		"chr_bytes", len(cart.chrROM),
		"chr_ram", cart.hasCHRRAM,
		"mirror", cart.mirror,
		"battery", cart.hasBattery,
	)

	return cart, nil
}

// ReadPRG reads from PRG ROM/RAM
func (c *Cartridge) ReadPRG(address uint16) uint8 {
	return c.mapper.ReadPRG(address)
}

// WritePRG writes to PRG ROM/RAM
func (c *Cartridge) WritePRG(address uint16, value uint8) {
	c.mapper.WritePRG(address, value)
}

// ReadCHR reads from CHR ROM/RAM
func (c *Cartridge) ReadCHR(address uint16) uint8 {
	return c.mapper.ReadCHR(address)
}

// WriteCHR writes to CHR ROM/RAM
func (c *Cartridge) WriteCHR(address uint16, value uint8) {
	c.mapper.WriteCHR(address, value)
}

// GetMirrorMode returns the cartridge's current nametable mirroring mode,
// consulting the mapper first since MMC1/MMC3 can change it at runtime.
func (c *Cartridge) GetMirrorMode() MirrorMode {
	return c.mapper.Mirroring()
}

// NotifyAddress forwards a PPU VRAM address change to the mapper, for
// mappers (MMC3) that clock an IRQ counter on the A12 rising edge.
func (c *Cartridge) NotifyAddress(address uint16) {
	c.mapper.NotifyAddress(address)
}

// IRQPending reports whether the mapper is asserting its IRQ line.
func (c *Cartridge) IRQPending() bool {
	return c.mapper.IRQPending()
}

// AcknowledgeIRQ clears the mapper's IRQ line.
func (c *Cartridge) AcknowledgeIRQ() {
	c.mapper.AcknowledgeIRQ()
}

// createMapper constructs the mapper implementation for the cartridge's
// header-declared mapper ID, surfacing unsupported IDs as an error per
// the core's error-handling design rather than silently defaulting.
func createMapper(id uint8, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0:
		return NewMapper0(cart), nil
	case 1:
		return NewMapper1(cart.prgROM, cart.chrROM, cart.hasCHRRAM, cart.mirror), nil
	case 2:
		return NewMapper2(cart.prgROM, cart.chrROM, cart.hasCHRRAM, cart.mirror), nil
	case 3:
		return NewMapper3(cart.prgROM, cart.chrROM, cart.hasCHRRAM, cart.mirror), nil
	case 4:
		return NewMapper4(cart.prgROM, cart.chrROM, cart.hasCHRRAM, cart.mirror), nil
	default:
		return nil, fmt.Errorf("%w: %d", emuerr.ErrUnsupportedMapper, id)
	}
}

// MockCartridge implements CartridgeInterface for testing
type MockCartridge struct {
	prgROM [0x8000]uint8 // 32KB PRG ROM
	chrROM [0x2000]uint8 // 8KB CHR ROM
	prgRAM [0x2000]uint8 // 8KB PRG RAM
	chrRAM [0x2000]uint8 // 8KB CHR RAM

	mirroring MirrorMode

	prgReads  []uint16
	prgWrites []uint16
	chrReads  []uint16
	chrWrites []uint16
}

// NewMockCartridge creates a new mock cartridge for testing
func NewMockCartridge() *MockCartridge {
	return &MockCartridge{mirroring: MirrorHorizontal}
}

func (c *MockCartridge) ReadPRG(address uint16) uint8 {
	c.prgReads = append(c.prgReads, address)
	if address >= 0x6000 && address < 0x8000 {
		return c.prgRAM[address-0x6000]
	}
	if address < 0x8000 {
		return 0
	}
	index := address - 0x8000
	if int(index) >= len(c.prgROM) {
		return 0
	}
	return c.prgROM[index]
}

func (c *MockCartridge) WritePRG(address uint16, value uint8) {
	c.prgWrites = append(c.prgWrites, address)
	if address >= 0x6000 && address < 0x8000 {
		c.prgRAM[address-0x6000] = value
	}
}

func (c *MockCartridge) ReadCHR(address uint16) uint8 {
	c.chrReads = append(c.chrReads, address)
	if address < 0x2000 {
		return c.chrROM[address]
	}
	return 0
}

func (c *MockCartridge) WriteCHR(address uint16, value uint8) {
	c.chrWrites = append(c.chrWrites, address)
	if address < 0x2000 {
		c.chrRAM[address] = value
	}
}

func (c *MockCartridge) Mirroring() MirrorMode     { return c.mirroring }
func (c *MockCartridge) NotifyAddress(addr uint16) {}
func (c *MockCartridge) IRQPending() bool          { return false }
func (c *MockCartridge) AcknowledgeIRQ()           {}

func (c *MockCartridge) LoadPRG(data []uint8) { copy(c.prgROM[:], data) }
func (c *MockCartridge) LoadCHR(data []uint8) { copy(c.chrROM[:], data) }

func (c *MockCartridge) SetMirroring(mode MirrorMode) { c.mirroring = mode }
func (c *MockCartridge) GetMirroring() MirrorMode     { return c.mirroring }

func (c *MockCartridge) ClearLogs() {
	c.prgReads = c.prgReads[:0]
	c.prgWrites = c.prgWrites[:0]
	c.chrReads = c.chrReads[:0]
	c.chrWrites = c.chrWrites[:0]
}
