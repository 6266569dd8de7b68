// Package ppu implements the NES Picture Processing Unit's CPU-visible
// register facade: the eight memory-mapped registers, their latch state,
// and the scanline/cycle timer that drives vblank and NMI. The pixel
// generation pipeline — turning pattern tables and nametables into a
// frame of RGB pixels — is a separate concern this package does not
// implement.
package ppu

import "nesdeck/internal/memory"

// PPU is the 2C02's register bank and timing state.
type PPU struct {
	ppuCtrl   uint8
	ppuMask   uint8
	ppuStatus uint8
	oamAddr   uint8

	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / address latch
	x uint8  // fine X scroll
	w bool   // shared write-toggle latch for PPUSCROLL/PPUADDR

	readBuffer uint8 // buffered PPUDATA read

	memory *memory.PPUMemory
	oam    [256]uint8

	scanline int
	cycle    int
	frame    uint64
	oddFrame bool

	renderingEnabled bool

	nmiCallback           func()
	frameCompleteCallback func()
}

// New creates a PPU facade with the pre-render scanline as its initial
// timing state.
func New() *PPU {
	return &PPU{scanline: -1}
}

// Reset restores power-up register and timing state.
func (p *PPU) Reset() {
	p.ppuCtrl = 0
	p.ppuMask = 0
	p.ppuStatus = 0xA0
	p.oamAddr = 0
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.readBuffer = 0
	p.scanline = -1
	p.cycle = 0
	p.frame = 0
	p.oddFrame = false
	p.renderingEnabled = false
	for i := range p.oam {
		p.oam[i] = 0
	}
}

// SetMemory wires the PPU's own VRAM/palette/CHR address space.
func (p *PPU) SetMemory(mem *memory.PPUMemory) {
	p.memory = mem
}

// SetNMICallback installs the interrupt-unit hook invoked on NMI assertion
// (either an immediate PPUCTRL-write-during-vblank edge, or vblank start
// with NMI already enabled).
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// SetFrameCompleteCallback installs a hook invoked once per completed frame.
func (p *PPU) SetFrameCompleteCallback(callback func()) {
	p.frameCompleteCallback = callback
}

// ReadRegister reads one of the eight CPU-visible PPU registers, mirrored
// across $2000-$3FFF by the bus before this call.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		status := p.ppuStatus
		p.ppuStatus &= 0x7F // clear VBL flag (bit 7)
		p.w = false
		return status
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readPPUData()
	default:
		// PPUCTRL/PPUMASK/OAMADDR/PPUSCROLL/PPUADDR are write-only; reading
		// them returns the low five bits of PPUSTATUS.
		return p.ppuStatus & 0x1F
	}
}

// WriteRegister writes one of the eight CPU-visible PPU registers.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		previousNMIEnable := p.ppuCtrl&0x80 != 0
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		p.updateRenderingFlags()
		if !previousNMIEnable && value&0x80 != 0 {
			p.checkNMI()
		}
	case 0x2001:
		p.ppuMask = value
		p.updateRenderingFlags()
	case 0x2002:
		// read-only
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writePPUScroll(value)
	case 0x2006:
		p.writePPUAddr(value)
	case 0x2007:
		p.writePPUData(value)
	}
}

// WriteOAM writes directly into OAM, used by the OAM-DMA engine.
func (p *PPU) WriteOAM(address uint8, value uint8) {
	p.oam[address] = value
}

// OAMAddr returns the current OAMADDR register, the index the OAM-DMA
// engine starts its 256-byte transfer at.
func (p *PPU) OAMAddr() uint8 { return p.oamAddr }

// Step advances the PPU timer by one PPU cycle (called three times per CPU
// cycle by the system orchestrator), asserting vblank and firing NMI at the
// documented scanline/cycle.
func (p *PPU) Step() {
	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.ppuStatus |= 0x80
		p.checkNMI()
	}

	if p.scanline == -1 && p.cycle == 1 {
		p.ppuStatus &= 0x7F
	}

	if p.scanline == 0 && p.cycle == 0 && p.renderingEnabled {
		p.v = p.t
	}
}

func (p *PPU) updateRenderingFlags() {
	backgroundEnabled := p.ppuMask&0x08 != 0
	spritesEnabled := p.ppuMask&0x10 != 0
	p.renderingEnabled = backgroundEnabled || spritesEnabled
}

// checkNMI fires the NMI callback when both PPUCTRL's NMI-enable bit and the
// vblank flag are set.
func (p *PPU) checkNMI() {
	if p.ppuCtrl&0x80 != 0 && p.ppuStatus&0x80 != 0 && p.nmiCallback != nil {
		p.nmiCallback()
	}
}

func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.memory == nil {
		data = 0
	} else if p.v >= 0x3F00 {
		data = p.memory.Read(p.v)
		p.readBuffer = p.memory.Read(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.memory.Read(p.v)
	}
	p.advanceVRAMAddress()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	if p.memory != nil {
		p.memory.Write(p.v, value)
	}
	p.advanceVRAMAddress()
}

func (p *PPU) advanceVRAMAddress() {
	if p.ppuCtrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

// FrameCount returns the number of frames completed since reset.
func (p *PPU) FrameCount() uint64 { return p.frame }

// Scanline returns the current scanline (-1 for pre-render, 0-239 visible,
// 240 post-render, 241-260 vblank).
func (p *PPU) Scanline() int { return p.scanline }

// Cycle returns the current PPU cycle within the scanline (0-340).
func (p *PPU) Cycle() int { return p.cycle }

// InVBlank reports whether the vblank status flag is currently set.
func (p *PPU) InVBlank() bool { return p.ppuStatus&0x80 != 0 }
