// Package app provides emulator integration for the main application.
package app

import (
	"fmt"
	"time"

	"github.com/nesgo/nesemu/internal/bus"
)

// Emulator drives the system one fixed-length frame at a time and hands
// the resulting frame buffer and audio samples to the host.
type Emulator struct {
	bus    *bus.Bus
	config *Config

	targetFrameTime time.Duration
	cyclesPerFrame  uint64

	frameBuffer  []uint32
	audioSamples []float32

	cycleCount       uint64
	frameCount       uint64
	emulationTime    time.Duration
	actualFrameTime  time.Duration
	averageFrameTime time.Duration

	isRunning     bool
	lastResetTime time.Time
}

// NewEmulator creates a new emulator instance with fixed timing for accuracy
func NewEmulator(bus *bus.Bus, config *Config) *Emulator {
	emulator := &Emulator{
		bus:             bus,
		config:          config,
		targetFrameTime: time.Duration(16666667) * time.Nanosecond, // Precise 60 FPS (16.666ms)
		cyclesPerFrame:  29781,                                     // NTSC: 89,342 PPU dots / 3 = 29,780.67, rounded up
		frameBuffer:     make([]uint32, 256*240),
		audioSamples:    make([]float32, 0, 1024),
	}

	emulator.Reset()
	return emulator
}

// Reset resets the emulator's frame/timing state.
func (e *Emulator) Reset() {
	e.frameCount = 0
	e.cycleCount = 0
	e.emulationTime = 0
	e.actualFrameTime = 0
	e.averageFrameTime = 0
	e.lastResetTime = time.Now()

	for i := range e.frameBuffer {
		e.frameBuffer[i] = 0
	}
	e.audioSamples = e.audioSamples[:0]
}

// Start starts the emulator
func (e *Emulator) Start() {
	e.isRunning = true
}

// Stop stops the emulator
func (e *Emulator) Stop() {
	e.isRunning = false
}

// Update runs exactly one frame of emulation, matching the 60Hz cadence the
// host calls this at.
func (e *Emulator) Update() error {
	if !e.isRunning {
		return nil
	}

	frameStartTime := time.Now()

	if err := e.runFrame(); err != nil {
		return fmt.Errorf("frame execution error: %v", err)
	}

	e.actualFrameTime = time.Since(frameStartTime)
	if e.averageFrameTime == 0 {
		e.averageFrameTime = e.actualFrameTime
	} else {
		e.averageFrameTime = time.Duration(
			float64(e.averageFrameTime)*0.95 + float64(e.actualFrameTime)*0.05,
		)
	}

	return nil
}

// runFrame executes exactly one frame's worth of cycles and copies out the
// resulting frame buffer and audio samples.
func (e *Emulator) runFrame() error {
	emulationStart := time.Now()

	startCycles := e.bus.GetCycleCount()
	targetCycles := startCycles + e.cyclesPerFrame
	for e.bus.GetCycleCount() < targetCycles {
		e.bus.Step()
	}
	e.frameCount++

	frameBuffer := e.bus.GetFrameBuffer()
	if len(frameBuffer) == len(e.frameBuffer) {
		copy(e.frameBuffer, frameBuffer)
	}

	if samples := e.bus.GetAudioSamples(); len(samples) > 0 {
		if cap(e.audioSamples) < len(samples) {
			e.audioSamples = make([]float32, len(samples))
		} else {
			e.audioSamples = e.audioSamples[:len(samples)]
		}
		copy(e.audioSamples, samples)
	}

	e.emulationTime = time.Since(emulationStart)
	e.cycleCount = e.bus.GetCycleCount()

	return nil
}

// StepInstruction executes a single CPU instruction, used by step-debugging.
func (e *Emulator) StepInstruction() error {
	if e.bus == nil {
		return fmt.Errorf("bus not initialized")
	}
	e.bus.Step()
	e.cycleCount = e.bus.GetCycleCount()
	return nil
}

// GetFrameBuffer returns the current frame buffer
func (e *Emulator) GetFrameBuffer() []uint32 {
	return e.frameBuffer
}

// GetAudioSamples returns the current audio samples
func (e *Emulator) GetAudioSamples() []float32 {
	return e.audioSamples
}

// GetFrameCount returns the current frame count
func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}

// GetCycleCount returns the current CPU cycle count
func (e *Emulator) GetCycleCount() uint64 {
	return e.cycleCount
}

// GetEmulationTime returns the time spent in emulation for the last frame
func (e *Emulator) GetEmulationTime() time.Duration {
	return e.emulationTime
}

// GetActualFrameTime returns the actual frame time including rendering
func (e *Emulator) GetActualFrameTime() time.Duration {
	return e.actualFrameTime
}

// GetAverageFrameTime returns the average frame time
func (e *Emulator) GetAverageFrameTime() time.Duration {
	return e.averageFrameTime
}

// IsRunning returns whether the emulator is running
func (e *Emulator) IsRunning() bool {
	return e.isRunning
}

// GetUptime returns the emulator uptime since last reset
func (e *Emulator) GetUptime() time.Duration {
	return time.Since(e.lastResetTime)
}

// GetCPUState returns the current CPU state for debugging
func (e *Emulator) GetCPUState() bus.CPUState {
	if e.bus == nil {
		return bus.CPUState{}
	}
	return e.bus.GetCPUState()
}

// GetPPUState returns the current PPU state for debugging
func (e *Emulator) GetPPUState() bus.PPUState {
	if e.bus == nil {
		return bus.PPUState{}
	}
	return e.bus.GetPPUState()
}

// Cleanup releases emulator-owned buffers.
func (e *Emulator) Cleanup() error {
	e.Stop()
	e.frameBuffer = nil
	e.audioSamples = nil
	return nil
}
