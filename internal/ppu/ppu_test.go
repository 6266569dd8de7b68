package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nesdeck/internal/memory"
)

type fakeCart struct {
	chr [0x2000]uint8
}

func (c *fakeCart) ReadPRG(uint16) uint8                 { return 0 }
func (c *fakeCart) WritePRG(uint16, uint8)               {}
func (c *fakeCart) ReadCHR(address uint16) uint8         { return c.chr[address] }
func (c *fakeCart) WriteCHR(address uint16, value uint8) { c.chr[address] = value }

func newTestPPU() *PPU {
	p := New()
	p.Reset()
	p.SetMemory(memory.NewPPUMemory(&fakeCart{}, memory.MirrorHorizontal))
	return p
}

func TestPPUDATAReadIsBufferedOneAccessBehind(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2006, 0x20) // high byte
	p.WriteRegister(0x2006, 0x00) // low byte -> v = 0x2000
	p.memory.Write(0x2000, 0x55)
	p.memory.Write(0x2001, 0x66)
	p.v = 0x2000

	first := p.ReadRegister(0x2007) // returns stale buffer (0), refills with 0x55
	assert.Equal(t, uint8(0), first, "first PPUDATA read should return the stale buffer")
	second := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x55), second)
}

func TestPPUADDRIncrementsBy32WhenPPUCTRLBit2Set(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, 0x04) // increment mode = 32
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x11)
	assert.Equal(t, uint16(0x2020), p.v)
}

func TestPPUSTATUSReadClearsVBlankAndWriteLatch(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80
	p.w = true
	status := p.ReadRegister(0x2002)
	assert.NotZero(t, status&0x80, "PPUSTATUS read should return the vblank bit before clearing it")
	assert.Zero(t, p.ppuStatus&0x80, "vblank flag should be cleared after PPUSTATUS read")
	assert.False(t, p.w, "write latch should be cleared after PPUSTATUS read")
}

func TestNMIFiresAtVBlankStartWhenEnabled(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus &= 0x7F // Reset leaves vblank set; clear it so enabling NMI does not fire at once
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // enable NMI
	assert.False(t, fired, "NMI should not fire on enable outside vblank")
	p.scanline, p.cycle = 241, 0
	p.Step() // advances to scanline 241, cycle 1
	assert.True(t, fired, "NMI callback should fire at scanline 241 cycle 1 with NMI enabled")
}

func TestNMIFiresImmediatelyOnEnableDuringVBlank(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80 // already in vblank
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // 0 -> 1 edge on NMI-enable bit while vblank is set
	assert.True(t, fired, "NMI should fire immediately when NMI-enable is set while vblank is already asserted")
}

func TestOAMWriteAndReadRoundTrip(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2003, 0x10) // OAMADDR
	p.WriteRegister(0x2004, 0x99) // OAMDATA, also post-increments OAMADDR
	p.WriteRegister(0x2003, 0x10)
	assert.Equal(t, uint8(0x99), p.ReadRegister(0x2004))
}

func TestOAMAddrAccessorReflectsWrites(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2003, 0x42)
	assert.Equal(t, uint8(0x42), p.OAMAddr())
}
