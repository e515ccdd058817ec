// Package app provides save state functionality for the NES emulator.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nesgo/nesemu/internal/bus"
)

// StateManager persists and restores emulator save states to disk.
type StateManager struct {
	saveDirectory string
	maxSlots      int
	initialized   bool
}

// SaveState is the on-disk representation of one saved emulator snapshot.
type SaveState struct {
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	ROMPath     string    `json:"rom_path"`
	ROMChecksum string    `json:"rom_checksum"`
	SlotNumber  int       `json:"slot_number"`
	Description string    `json:"description"`

	CPUState CPUStateData `json:"cpu_state"`
	PPUState PPUStateData `json:"ppu_state"`

	FrameCount uint64 `json:"frame_count"`
	CycleCount uint64 `json:"cycle_count"`
}

// CPUStateData is the serializable form of bus.CPUState.
type CPUStateData struct {
	PC     uint16       `json:"pc"`
	A      uint8        `json:"a"`
	X      uint8        `json:"x"`
	Y      uint8        `json:"y"`
	SP     uint8        `json:"sp"`
	Cycles uint64       `json:"cycles"`
	Flags  CPUFlagsData `json:"flags"`
}

// CPUFlagsData is the serializable form of the CPU status flags.
type CPUFlagsData struct {
	N bool `json:"n"`
	V bool `json:"v"`
	B bool `json:"b"`
	D bool `json:"d"`
	I bool `json:"i"`
	Z bool `json:"z"`
	C bool `json:"c"`
}

// PPUStateData is the serializable form of bus.PPUState.
type PPUStateData struct {
	Scanline    int    `json:"scanline"`
	Cycle       int    `json:"cycle"`
	FrameCount  uint64 `json:"frame_count"`
	VBlankFlag  bool   `json:"vblank_flag"`
	RenderingOn bool   `json:"rendering_on"`
}

// NewStateManager creates a state manager rooted at saveDirectory.
func NewStateManager(saveDirectory string) *StateManager {
	manager := &StateManager{
		saveDirectory: saveDirectory,
		maxSlots:      10,
	}

	if err := manager.initialize(); err != nil {
		fmt.Printf("Warning: state manager initialization failed: %v\n", err)
	}

	return manager
}

func (sm *StateManager) initialize() error {
	if err := os.MkdirAll(sm.saveDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %v", err)
	}
	sm.initialized = true
	return nil
}

// SaveState captures the bus's CPU/PPU register state and frame position to
// the given slot. It does not yet snapshot RAM, VRAM, OAM, or mapper state,
// so a loaded state resumes timing but not in-memory game state.
func (sm *StateManager) SaveState(bus *bus.Bus, slot int, romPath string) error {
	if !sm.initialized {
		return fmt.Errorf("state manager not initialized")
	}
	if slot < 0 || slot >= sm.maxSlots {
		return fmt.Errorf("invalid save slot: %d (must be 0-%d)", slot, sm.maxSlots-1)
	}
	if bus == nil {
		return fmt.Errorf("bus cannot be nil")
	}

	cpuState := bus.GetCPUState()
	ppuState := bus.GetPPUState()

	state := &SaveState{
		Version:     "1.0",
		Timestamp:   time.Now(),
		ROMPath:     romPath,
		ROMChecksum: sm.calculateROMChecksum(romPath),
		SlotNumber:  slot,
		Description: fmt.Sprintf("Auto-save %s", time.Now().Format("2006-01-02 15:04:05")),
		FrameCount:  bus.GetFrameCount(),
		CycleCount:  bus.GetCycleCount(),
		CPUState: CPUStateData{
			PC: cpuState.PC, A: cpuState.A, X: cpuState.X, Y: cpuState.Y,
			SP: cpuState.SP, Cycles: cpuState.Cycles,
			Flags: CPUFlagsData{
				N: cpuState.Flags.N, V: cpuState.Flags.V, B: cpuState.Flags.B,
				D: cpuState.Flags.D, I: cpuState.Flags.I, Z: cpuState.Flags.Z,
				C: cpuState.Flags.C,
			},
		},
		PPUState: PPUStateData{
			Scanline: ppuState.Scanline, Cycle: ppuState.Cycle,
			FrameCount: ppuState.FrameCount, VBlankFlag: ppuState.VBlankFlag,
			RenderingOn: ppuState.RenderingOn,
		},
	}

	return sm.saveToFile(state, sm.getSlotFilePath(slot, romPath))
}

// LoadState reads and validates the save in a slot and passes it to
// restoreState, which resets the bus; registers, memory and frame position
// are not restored from the save.
func (sm *StateManager) LoadState(bus *bus.Bus, slot int, romPath string) error {
	if !sm.initialized {
		return fmt.Errorf("state manager not initialized")
	}
	if slot < 0 || slot >= sm.maxSlots {
		return fmt.Errorf("invalid save slot: %d (must be 0-%d)", slot, sm.maxSlots-1)
	}
	if bus == nil {
		return fmt.Errorf("bus cannot be nil")
	}

	filePath := sm.getSlotFilePath(slot, romPath)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("save state not found in slot %d", slot)
	}

	state, err := sm.loadFromFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to load state: %v", err)
	}

	if err := sm.validateSaveState(state, romPath); err != nil {
		return fmt.Errorf("invalid save state: %v", err)
	}

	return sm.restoreState(bus, state)
}

func (sm *StateManager) saveToFile(state *SaveState, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %v", err)
	}

	return nil
}

func (sm *StateManager) loadFromFile(filePath string) (*SaveState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	var state SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %v", err)
	}

	return &state, nil
}

func (sm *StateManager) validateSaveState(state *SaveState, currentROMPath string) error {
	if state.Version == "" {
		return fmt.Errorf("missing version information")
	}
	if state.ROMPath != currentROMPath {
		return fmt.Errorf("save state is for a different ROM")
	}
	return nil
}

// restoreState resets the bus and logs the target frame/cycle position.
// TODO: extend bus.Bus with register/memory setters so this can restore the
// full machine state instead of just timing metadata.
func (sm *StateManager) restoreState(bus *bus.Bus, state *SaveState) error {
	bus.Reset()
	fmt.Printf("State restore not fully implemented - would restore frame %d, cycle %d\n",
		state.FrameCount, state.CycleCount)
	return nil
}

func (sm *StateManager) getSlotFilePath(slot int, romPath string) string {
	romName := filepath.Base(romPath)
	romNameWithoutExt := romName[:len(romName)-len(filepath.Ext(romName))]
	fileName := fmt.Sprintf("%s_slot_%d.save", romNameWithoutExt, slot)
	return filepath.Join(sm.saveDirectory, fileName)
}

// calculateROMChecksum is a placeholder identity derived from the ROM's file
// name; a real checksum would hash the ROM contents.
func (sm *StateManager) calculateROMChecksum(romPath string) string {
	return fmt.Sprintf("checksum_%s", filepath.Base(romPath))
}

// Cleanup releases state manager resources.
func (sm *StateManager) Cleanup() error {
	sm.initialized = false
	return nil
}
