// Package input implements the NES controller shift-register protocol.
package input

// Button identifies one of the eight NES controller buttons.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// buttonOrder is the order buttons shift out of $4016/$4017: A, B, Select,
// Start, Up, Down, Left, Right.
var buttonOrder = [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}

// Controller is one NES controller's shift-register latch state.
type Controller struct {
	buttons [8]bool
	index   uint8
	strobe  bool
}

// New creates a controller with no buttons held.
func New() *Controller {
	return &Controller{}
}

// SetButton sets or clears a single button's held state.
func (c *Controller) SetButton(button Button, pressed bool) {
	for i, b := range buttonOrder {
		if b == button {
			c.buttons[i] = pressed
			return
		}
	}
}

// SetButtons replaces all eight button states at once, ordered
// A, B, Select, Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = buttons
}

// IsPressed reports whether the given button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	for i, b := range buttonOrder {
		if b == button {
			return c.buttons[i]
		}
	}
	return false
}

// Write handles a write to the controller's strobe register. A
// high-to-low transition resets the read index to zero; going strobe-high
// also keeps the index pinned at zero for as long as it is held.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.index = 0
	}
}

// Read emits the next button in the shift sequence. While strobe is held
// high, reads keep returning button 0 (A) and the index stays at zero.
// Once all eight buttons have been read, the index wraps and a ninth read
// emits button 0 again.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return boolToBit(c.buttons[0])
	}

	bit := boolToBit(c.buttons[c.index])
	c.index = (c.index + 1) % 8
	return bit
}

func boolToBit(pressed bool) uint8 {
	if pressed {
		return 1
	}
	return 0
}

// Reset clears all latch and button state.
func (c *Controller) Reset() {
	c.buttons = [8]bool{}
	c.index = 0
	c.strobe = false
}

// InputState holds both NES controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates an InputState with two fresh controllers.
func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

// Reset clears both controllers.
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets controller 1's button states.
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets controller 2's button states.
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// Read services a CPU read of $4016 or $4017. Controller 2's reads carry
// the open-bus quirk bit (0x40) real NES hardware exhibits.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write services a CPU write to $4016; the strobe line is wired to both
// controllers simultaneously.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
