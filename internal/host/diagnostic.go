package host

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nesdeck/internal/bus"
	"nesdeck/internal/input"
)

// keyBinding pairs an Ebitengine key with the NES button it drives on
// controller 1.
type keyBinding struct {
	key    ebiten.Key
	button input.Button
	valid  bool
}

// DiagnosticWindow is an ebiten.Game that drives the bus and renders a
// zero-page memory visualizer in place of the out-of-scope pixel pipeline:
// each of RAM's first 256 bytes is drawn as one grayscale cell in a 16x16
// grid, giving a live view of CPU activity without implementing PPU
// rendering.
type DiagnosticWindow struct {
	bus      *bus.Bus
	cfg      *Config
	bindings []keyBinding
	cellImg  *ebiten.Image
	frame    int
	halted   error
}

// NewDiagnosticWindow creates a diagnostic window driving the given bus
// according to cfg.
func NewDiagnosticWindow(b *bus.Bus, cfg *Config) *DiagnosticWindow {
	w := &DiagnosticWindow{
		bus:     b,
		cfg:     cfg,
		cellImg: ebiten.NewImage(1, 1),
	}
	w.bindings = []keyBinding{
		newBinding(cfg.Input.Up, input.ButtonUp),
		newBinding(cfg.Input.Down, input.ButtonDown),
		newBinding(cfg.Input.Left, input.ButtonLeft),
		newBinding(cfg.Input.Right, input.ButtonRight),
		newBinding(cfg.Input.A, input.ButtonA),
		newBinding(cfg.Input.B, input.ButtonB),
		newBinding(cfg.Input.Start, input.ButtonStart),
		newBinding(cfg.Input.Select, input.ButtonSelect),
	}
	w.cellImg.Fill(color.White)
	return w
}

// Update advances the emulated machine by one frame's worth of cycles and
// applies the current keyboard state to controller 1.
func (w *DiagnosticWindow) Update() error {
	if w.halted != nil {
		return nil
	}

	for _, binding := range w.bindings {
		if !binding.valid {
			continue
		}
		w.bus.SetControllerButton(1, binding.button, ebiten.IsKeyPressed(binding.key))
	}

	if err := w.bus.Frame(); err != nil {
		w.halted = err
		bus.LogIllegalOpcode(err)
		return nil
	}

	w.frame++
	if w.cfg.Debug.LogState && w.frame%w.cfg.Debug.LogInterval == 0 {
		state := w.bus.GetCPUState()
		log.Printf("frame=%d pc=%04X a=%02X x=%02X y=%02X sp=%02X cycles=%d",
			w.frame, state.PC, state.A, state.X, state.Y, state.SP, state.Cycles)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the zero-page memory visualizer.
func (w *DiagnosticWindow) Draw(screen *ebiten.Image) {
	if !w.cfg.Debug.ShowMemoryView || w.bus.Mem == nil {
		screen.Fill(color.Black)
		return
	}

	cell := memoryViewCellPixels * w.cfg.Window.Scale
	for row := 0; row < 16; row++ {
		for col := 0; col < 16; col++ {
			value := w.bus.Mem.Read(uint16(row*16 + col))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(cell), float64(cell))
			op.GeoM.Translate(float64(col*cell), float64(row*cell))
			op.ColorScale.Scale(float32(value)/255, float32(value)/255, float32(value)/255, 1)
			screen.DrawImage(w.cellImg, op)
		}
	}
}

// Layout reports the window's fixed logical size.
func (w *DiagnosticWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.cfg.WindowSize()
}

// newBinding resolves a config key name to a keyBinding. Unrecognized names
// produce an invalid binding that Update skips.
func newBinding(name string, button input.Button) keyBinding {
	key, ok := parseKey(name)
	return keyBinding{key: key, button: button, valid: ok}
}

// parseKey maps the handful of key names the config accepts to ebiten
// key codes.
func parseKey(name string) (ebiten.Key, bool) {
	switch name {
	case "W":
		return ebiten.KeyW, true
	case "A":
		return ebiten.KeyA, true
	case "S":
		return ebiten.KeyS, true
	case "D":
		return ebiten.KeyD, true
	case "J":
		return ebiten.KeyJ, true
	case "K":
		return ebiten.KeyK, true
	case "Enter":
		return ebiten.KeyEnter, true
	case "Space":
		return ebiten.KeySpace, true
	case "Up":
		return ebiten.KeyArrowUp, true
	case "Down":
		return ebiten.KeyArrowDown, true
	case "Left":
		return ebiten.KeyArrowLeft, true
	case "Right":
		return ebiten.KeyArrowRight, true
	default:
		return 0, false
	}
}
