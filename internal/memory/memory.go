// Package memory implements the NES CPU address space: the memory-mapped
// bus that routes every CPU read and write to RAM, the PPU register
// facade, APU/IO registers, controller ports, and cartridge space.
package memory

// MirrorMode identifies how the four logical nametables fold onto the
// PPU's 2KB of physical nametable VRAM.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// PPUInterface is the bus's view of the PPU register facade.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// InputInterface is the bus's view of the controller latch.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the bus's view of the cartridge mapper.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// Memory is the CPU-side bus: the single choke point for all CPU memory
// accesses, several of which carry side effects delegated to the PPU
// facade, the controller latch, and the OAM-DMA trigger.
type Memory struct {
	ram [0x800]uint8

	ppu   PPUInterface
	input InputInterface
	cart  CartridgeInterface

	// apuIO holds the APU/IO register bytes this bus does not interpret.
	// Sound synthesis is out of scope; these bytes are retained as plain
	// storage so writes are not silently lost and reads return the last
	// written value, per the bus's routing rules for addresses with no
	// side effect.
	apuIO [0x18]uint8

	dmaCallback func(page uint8)

	openBusValue uint8
}

// New creates a bus wired to the given PPU register facade and cartridge.
// The controller ports and OAMDMA trigger are wired afterwards with
// SetInputSystem and SetDMACallback; until then controller reads return 0,
// controller writes are dropped, and OAMDMA uses the inline copy.
func New(ppu PPUInterface, cart CartridgeInterface) *Memory {
	return &Memory{ppu: ppu, cart: cart}
}

// SetInputSystem wires the controller latch into the bus.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.input = input
}

// SetDMACallback wires the OAM-DMA engine's trigger into the bus. When unset,
// OAMDMA writes fall back to an inline synchronous copy.
func (m *Memory) SetDMACallback(callback func(page uint8)) {
	m.dmaCallback = callback
}

// Read returns the byte at address, routed and mirrored per the NES address
// map. Reads of $2002 and $2007 have side effects delegated to the PPU
// facade; reads of $4016/$4017 clock the controller shift registers.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		value = m.ppu.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4016 || address == 0x4017:
			if m.input != nil {
				value = m.input.Read(address)
			}
		case address >= 0x4018:
			// unmapped APU/IO test registers, always read open bus 0
		default:
			value = m.apuIO[(address-0x4000)%0x18]
		}

	case address < 0x6000:
		value = m.openBusValue

	case address < 0x8000:
		if m.cart != nil {
			value = m.cart.ReadPRG(address)
		}

	default:
		if m.cart != nil {
			value = m.cart.ReadPRG(address)
		}
	}

	m.openBusValue = value
	return value
}

// Read16 reads a little-endian word. The high byte's address wraps at 16
// bits only (a read at $FFFF takes its high byte from $0000); there is no
// page wrap.
func (m *Memory) Read16(address uint16) uint16 {
	low := uint16(m.Read(address))
	high := uint16(m.Read(address + 1))
	return (high << 8) | low
}

// Write stores value at address, routed and mirrored per the NES address
// map. A write to $4014 (OAMDMA) triggers a 256-byte transfer into OAM; a
// write to $4016 latches the controller strobe.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppu.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			} else {
				m.performOAMDMA(value)
			}
		case address == 0x4016:
			if m.input != nil {
				m.input.Write(address, value)
			}
		case address >= 0x4018:
			// unmapped APU/IO test registers, writes ignored
		default:
			m.apuIO[(address-0x4000)%0x18] = value
		}

	case address < 0x6000:
		// cartridge expansion area, unmapped for NROM

	case address < 0x8000:
		if m.cart != nil {
			m.cart.WritePRG(address, value)
		}

	default:
		if m.cart != nil {
			m.cart.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the fallback synchronous 256-byte copy used when no
// DMA-engine callback is registered; it does not account for CPU stall
// cycles, which is the orchestrator's responsibility.
func (m *Memory) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		m.ppu.WriteRegister(0x2004, m.Read(base+i))
	}
}

// PPUMemory is the PPU's own address space: pattern tables (delegated to
// the cartridge's CHR ROM/RAM), mirrored nametables, and palette RAM.
type PPUMemory struct {
	vram       [0x1000]uint8
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
	mirroring  MirrorMode
}

// NewPPUMemory creates a PPU memory space backed by the given cartridge's
// CHR data and nametable mirroring mode.
func NewPPUMemory(cart CartridgeInterface, mirroring MirrorMode) *PPUMemory {
	pm := &PPUMemory{cartridge: cart, mirroring: mirroring}
	for i := 0; i < 32; i += 4 {
		pm.paletteRAM[i] = 0x0F
	}
	return pm
}

// Read returns the byte at a 14-bit PPU address.
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.vram[pm.nametableIndex(address)]
	case address < 0x3F00:
		return pm.vram[pm.nametableIndex(address-0x1000)]
	default:
		return pm.paletteRAM[pm.paletteIndex(address)]
	}
}

// Write stores value at a 14-bit PPU address.
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.vram[pm.nametableIndex(address)] = value
	case address < 0x3F00:
		pm.vram[pm.nametableIndex(address-0x1000)] = value
	default:
		pm.paletteRAM[pm.paletteIndex(address)] = value
	}
}

func (pm *PPUMemory) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case MirrorHorizontal:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset
	case MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset
	case MirrorSingleScreen0:
		return offset
	case MirrorSingleScreen1:
		return 0x400 + offset
	case MirrorFourScreen:
		return nametable*0x400 + offset
	default:
		return offset
	}
}

func (pm *PPUMemory) paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	if index == 0x10 || index == 0x14 || index == 0x18 || index == 0x1C {
		index &= 0x0F
	}
	return index
}
