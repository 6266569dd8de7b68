// Package bus implements the system orchestrator: it wires the CPU, the
// memory-mapped bus, the PPU register facade, the controller latch, the
// OAM-DMA engine, and the cartridge together, and drives the master clock
// that steps the PPU three cycles for every CPU cycle.
package bus

import (
	"log"

	"nesdeck/internal/cartridge"
	"nesdeck/internal/cpu"
	"nesdeck/internal/dma"
	"nesdeck/internal/input"
	"nesdeck/internal/memory"
	"nesdeck/internal/ppu"
)

// Bus owns every emulated component and their wiring.
type Bus struct {
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	Mem   *memory.Memory
	Input *input.InputState
	DMA   *dma.Engine

	dmaStallCycles uint64

	// illegalOpcode, when non-nil, records the last IllegalOpcodeError the
	// CPU produced. The orchestrator halts the clock on this condition
	// rather than panicking, so a host can report it and stop cleanly.
	illegalOpcode error
}

// cartridgeAdapter narrows *cartridge.Cartridge (or the mock) to the
// read/write surface the memory and PPU packages need, without either
// package importing the cartridge package directly.
type cartridgeAdapter interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// New creates an unreset bus holding only the PPU and controller state; the
// memory, CPU, and DMA engine are built by LoadCartridge. Call
// LoadCartridge before Reset.
func New() *Bus {
	return &Bus{
		PPU:   ppu.New(),
		Input: input.NewInputState(),
	}
}

// LoadCartridge wires a cartridge into the CPU and PPU address spaces and
// (re)builds the memory, CPU, and DMA engine around it.
func (b *Bus) LoadCartridge(cart cartridgeAdapter) {
	b.Mem = memory.New(b.PPU, cart)
	b.Mem.SetInputSystem(b.Input)

	mirror := memory.MirrorHorizontal
	if mc, ok := cart.(interface{ GetMirroring() cartridge.MirrorMode }); ok {
		mirror = mapMirrorMode(mc.GetMirroring())
	} else if c, ok := cart.(interface{ GetMirrorMode() cartridge.MirrorMode }); ok {
		mirror = mapMirrorMode(c.GetMirrorMode())
	}
	b.PPU.SetMemory(memory.NewPPUMemory(cart, mirror))
	b.PPU.SetNMICallback(func() { b.CPU.TriggerNMI() })

	b.CPU = cpu.New(b.Mem)
	b.DMA = dma.New(b.Mem, b.PPU)
	b.Mem.SetDMACallback(b.triggerOAMDMA)
}

func mapMirrorMode(m cartridge.MirrorMode) memory.MirrorMode {
	switch m {
	case cartridge.MirrorVertical:
		return memory.MirrorVertical
	case cartridge.MirrorSingleScreen0:
		return memory.MirrorSingleScreen0
	case cartridge.MirrorSingleScreen1:
		return memory.MirrorSingleScreen1
	case cartridge.MirrorFourScreen:
		return memory.MirrorFourScreen
	default:
		return memory.MirrorHorizontal
	}
}

// Reset performs the power-on/reset sequence for the CPU and PPU.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.CPU.Reset()
	b.Input.Reset()
	b.dmaStallCycles = 0
	b.illegalOpcode = nil
}

// triggerOAMDMA is wired into the memory bus's $4014 handler. It performs
// the transfer synchronously (the PPU's OAM write has no externally
// observable timing of its own) and records the CPU stall the next Step
// calls must account for.
func (b *Bus) triggerOAMDMA(page uint8) {
	b.DMA.Transfer(page)
	b.dmaStallCycles += b.DMA.StallCycles(b.CPU.Cycles())
}

// Step runs one CPU instruction (or burns one stalled cycle if an OAM-DMA
// transfer is in flight) and advances the PPU three cycles for every CPU
// cycle consumed. It returns the number of CPU cycles consumed. Once the
// CPU has decoded an opcode this implementation does not support, Step
// stops advancing the clock and keeps returning the recorded error.
func (b *Bus) Step() (uint64, error) {
	if b.illegalOpcode != nil {
		return 0, b.illegalOpcode
	}

	var cpuCycles uint64
	if b.dmaStallCycles > 0 {
		b.dmaStallCycles--
		cpuCycles = 1
		b.CPU.AddStallCycles(1)
	} else {
		n, err := b.CPU.Step()
		if err != nil {
			b.illegalOpcode = err
			return 0, err
		}
		cpuCycles = n
	}

	for i := uint64(0); i < cpuCycles*3; i++ {
		b.PPU.Step()
	}

	return cpuCycles, nil
}

// Frame runs the bus until the PPU completes one more frame than it has
// currently, or until an illegal opcode halts the clock.
func (b *Bus) Frame() error {
	target := b.PPU.FrameCount() + 1
	for b.PPU.FrameCount() < target {
		if _, err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run steps the bus until at least minCycles CPU cycles have elapsed, or
// until an illegal opcode halts the clock.
func (b *Bus) Run(minCycles uint64) error {
	start := b.CPU.Cycles()
	for b.CPU.Cycles()-start < minCycles {
		if _, err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SetControllerButton sets one button's held state on the given
// controller (1 or 2).
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons replaces all eight button states on the given
// controller at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// CPUState is a read-only snapshot of the CPU's architectural state, used
// by hosts and tests that need to inspect execution without reaching into
// the cpu package's internals.
type CPUState struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  uint8
	Cycles  uint64
}

// GetCPUState snapshots the current CPU register file and status byte.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		PC:     b.CPU.PC,
		Status: b.CPU.GetStatusByte(),
		Cycles: b.CPU.Cycles(),
	}
}

// PPUState is a read-only snapshot of the PPU's timing state.
type PPUState struct {
	Scanline int
	Cycle    int
	Frame    uint64
	InVBlank bool
}

// GetPPUState snapshots the current PPU timing counters.
func (b *Bus) GetPPUState() PPUState {
	return PPUState{
		Scanline: b.PPU.Scanline(),
		Cycle:    b.PPU.Cycle(),
		Frame:    b.PPU.FrameCount(),
		InVBlank: b.PPU.InVBlank(),
	}
}

// LogIllegalOpcode reports a halted CPU to the standard logger. Hosts call
// this once after Step/Run/Frame return a non-nil error.
func LogIllegalOpcode(err error) {
	if ioErr, ok := err.(*cpu.IllegalOpcodeError); ok {
		log.Printf("cpu halted: %v", ioErr)
		return
	}
	log.Printf("cpu halted: %v", err)
}
