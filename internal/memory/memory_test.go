package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePPU struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newFakePPU() *fakePPU {
	return &fakePPU{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (p *fakePPU) ReadRegister(address uint16) uint8          { return p.reads[address] }
func (p *fakePPU) WriteRegister(address uint16, value uint8) { p.writes[address] = value }

type fakeCart struct {
	prg [0x10000]uint8
	chr [0x2000]uint8
}

func (c *fakeCart) ReadPRG(address uint16) uint8         { return c.prg[address] }
func (c *fakeCart) WritePRG(address uint16, value uint8) { c.prg[address] = value }
func (c *fakeCart) ReadCHR(address uint16) uint8         { return c.chr[address] }
func (c *fakeCart) WriteCHR(address uint16, value uint8) { c.chr[address] = value }

func TestRAMMirroring(t *testing.T) {
	m := New(newFakePPU(), &fakeCart{})
	m.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		assert.Equal(t, uint8(0x42), m.Read(mirror), "Read(%04X) should mirror RAM", mirror)
	}
}

func TestPPURegisterMirroringRoutesEvery8Bytes(t *testing.T) {
	ppu := newFakePPU()
	m := New(ppu, &fakeCart{})
	m.Write(0x2000, 0x11)
	m.Write(0x2008, 0x22) // mirrors register 0 again
	assert.Equal(t, uint8(0x22), ppu.writes[0x2000], "0x2008 should mirror 0x2000")
}

func TestOAMDMATriggersCallbackWithPage(t *testing.T) {
	var gotPage uint8 = 0xFF
	m := New(newFakePPU(), &fakeCart{})
	m.SetDMACallback(func(page uint8) { gotPage = page })
	m.Write(0x4014, 0x03)
	assert.Equal(t, uint8(0x03), gotPage)
}

type fakeInput struct {
	lastWrite uint8
	readValue uint8
}

func (f *fakeInput) Read(address uint16) uint8         { return f.readValue }
func (f *fakeInput) Write(address uint16, value uint8) { f.lastWrite = value }

func TestControllerPortsRouteThroughInputInterface(t *testing.T) {
	m := New(newFakePPU(), &fakeCart{})
	input := &fakeInput{readValue: 0x01}
	m.SetInputSystem(input)
	m.Write(0x4016, 0x01)
	assert.Equal(t, uint8(0x01), input.lastWrite)
	assert.Equal(t, uint8(0x01), m.Read(0x4016))
}

func TestAPUTestRegistersReadZeroAndIgnoreWrites(t *testing.T) {
	m := New(newFakePPU(), &fakeCart{})
	m.Write(0x4000, 0x42) // populate APU storage so aliasing would be visible
	for address := uint16(0x4018); address <= 0x401F; address++ {
		m.Write(address, 0xFF)
		assert.Zero(t, m.Read(address), "address %#x should read 0", address)
	}
	assert.Equal(t, uint8(0x42), m.Read(0x4000), "0x4018-0x401F writes must not alias onto 0x4000-0x4007")
}

func TestCartridgeSpaceRoutesAboveAndBelow0x8000(t *testing.T) {
	cart := &fakeCart{}
	m := New(newFakePPU(), cart)
	m.Write(0x6000, 0xAB) // PRG RAM
	m.Write(0x8000, 0xCD) // PRG ROM (writes ignored by a real mapper, accepted here by the fake)
	assert.Equal(t, uint8(0xAB), m.Read(0x6000), "PRG RAM byte should be routed correctly")
	assert.Equal(t, uint8(0xCD), m.Read(0x8000), "PRG ROM space byte should be routed correctly")
}

func TestPPUMemoryHorizontalMirroring(t *testing.T) {
	pm := NewPPUMemory(&fakeCart{}, MirrorHorizontal)
	pm.Write(0x2000, 0x77)
	assert.Equal(t, uint8(0x77), pm.Read(0x2400), "nametable 1 should mirror nametable 0 under horizontal mirroring")
	assert.NotEqual(t, uint8(0x77), pm.Read(0x2800), "nametable 2 should not mirror nametable 0 under horizontal mirroring")
}

func TestPPUMemoryPaletteBackgroundMirroring(t *testing.T) {
	pm := NewPPUMemory(&fakeCart{}, MirrorHorizontal)
	pm.Write(0x3F00, 0x0A)
	assert.Equal(t, uint8(0x0A), pm.Read(0x3F10), "$3F10 should mirror the universal background color $3F00")
}
