package graphics

import (
	"fmt"
	"os"
)

// dumpInterval controls how often RenderFrame writes a PPM snapshot to disk
// when debug dumping is enabled; every 60th frame gives roughly one dump per
// second of emulated time.
const dumpInterval = 60

// HeadlessBackend implements Backend without opening any window, used for
// automated playback, CI smoke runs, and frame-accuracy test harnesses.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements Window for headless operation.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	dumpFrames bool
}

// NewHeadlessBackend creates a new headless graphics backend.
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend.
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a headless window; no actual window is opened.
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	return &HeadlessWindow{
		title:      title,
		width:      width,
		height:     height,
		running:    true,
		dumpFrames: b.config.Debug,
	}, nil
}

// Cleanup releases all headless resources.
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless always returns true.
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name.
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle records the window title for logging purposes.
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions.
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if the window should close.
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running
}

// SwapBuffers is a no-op in headless mode.
func (w *HeadlessWindow) SwapBuffers() {}

// PollEvents always returns no events; there is no input source in headless mode.
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame counts the rendered frame and, when debug dumping is enabled,
// periodically saves it to disk as a PPM image.
func (w *HeadlessWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	w.frameCount++

	if w.dumpFrames && w.frameCount%dumpInterval == 0 {
		filename := fmt.Sprintf("frame_%05d.ppm", w.frameCount)
		return w.saveFrameAsPPM(frameBuffer, filename)
	}

	return nil
}

// saveFrameAsPPM saves the frame buffer as a plain-text PPM image file.
func (w *HeadlessWindow) saveFrameAsPPM(frameBuffer [256 * 240]uint32, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %v", filename, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")

	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(file, "%d %d %d ", r, g, b)
		}
		fmt.Fprintf(file, "\n")
	}

	return nil
}

// Cleanup releases window resources.
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}
