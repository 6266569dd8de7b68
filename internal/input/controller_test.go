package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, false, false, false, false, false})
	c.Write(1) // strobe high
	assert.EqualValues(t, 1, c.Read(), "button A held, strobe high")
	assert.EqualValues(t, 1, c.Read(), "strobe high keeps returning button 0")
}

func TestStrobeLowShiftsThroughAllEightButtons(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, true, false, false, false, false, false, false})
	c.Write(1)
	c.Write(0) // strobe low, begin shifting
	want := []uint8{1, 1, 0, 0, 0, 0, 0, 0}
	for i, w := range want {
		assert.Equal(t, w, c.Read(), "Read() #%d", i)
	}
}

func TestReadPastEighthButtonWrapsToButtonA(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, false, false, false, false, false})
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	assert.EqualValues(t, 1, c.Read(), "a ninth read should wrap the index and emit button 0 again")
}

func TestHighToLowTransitionResetsIndex(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, false, false, false, false})
	c.Write(1)
	c.Write(0)
	c.Read() // consume button 0
	c.Write(1)
	c.Write(0) // index resets to 0
	assert.EqualValues(t, 1, c.Read(), "button 0 again after strobe reset")
}

func TestController2ReadCarriesOpenBusQuirkBit(t *testing.T) {
	is := NewInputState()
	assert.NotZero(t, is.Read(0x4017)&0x40, "controller 2 read should carry the 0x40 quirk bit")
}

func TestWriteTo4016LatchesBothControllers(t *testing.T) {
	is := NewInputState()
	is.Controller1.SetButtons([8]bool{true, false, false, false, false, false, false, false})
	is.Controller2.SetButtons([8]bool{true, false, false, false, false, false, false, false})
	is.Write(0x4016, 1)
	is.Write(0x4016, 0)
	assert.EqualValues(t, 1, is.Controller1.Read())
	assert.EqualValues(t, 1, is.Controller2.Read()&1)
}
