// Package cpu implements the MOS 6502 CPU interpreter used by the NES.
package cpu

import "fmt"

// AddressingMode identifies how an instruction's operand address is formed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	zeroPageMask = 0xFF
	pageMask     = 0xFF00

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// pageCrossPenalty classifies whether an instruction's indexed addressing
// mode adds a cycle when the effective address crosses a page boundary.
// Store instructions always pay the indexed-mode cost up front (folded into
// their base Cycles) and so carry noPageCrossPenalty even though they use
// AbsoluteX/AbsoluteY/IndirectIndexed.
type pageCrossPenalty uint8

const (
	noPageCrossPenalty pageCrossPenalty = iota
	readPageCrossPenalty
)

// Instruction is one row of the 256-entry opcode table.
type Instruction struct {
	Name      string
	Mode      AddressingMode
	Bytes     uint8
	Cycles    uint8
	PageCross pageCrossPenalty
	valid     bool
}

// IllegalOpcodeError reports a fetch of a byte this interpreter does not
// decode — either a true reserved opcode or one of the unofficial/undocumented
// opcodes this implementation deliberately does not support.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// MemoryInterface is the CPU's view of the system bus.
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the MOS 6502 register file, status flags, and decode-dispatch loop.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal (unused on the NES 2A03, carried for status-byte fidelity)
	B bool // Break (transient, only meaningful in the pushed status byte)
	V bool // Overflow
	N bool // Negative

	memory MemoryInterface
	cycles uint64

	instructions [256]Instruction

	nmiPending bool
	irqPending bool
}

// New creates a CPU wired to the given bus. Call Reset before Step.
func New(memory MemoryInterface) *CPU {
	cpu := &CPU{memory: memory, SP: 0xFD}
	cpu.initInstructions()
	return cpu
}

// Cycles returns the running cycle counter.
func (cpu *CPU) Cycles() uint64 { return cpu.cycles }

// AddStallCycles advances the cycle counter without fetching or executing an
// instruction, for callers (the system orchestrator's OAM-DMA handling)
// that suspend the CPU for cycles it does not itself account for.
func (cpu *CPU) AddStallCycles(n uint64) { cpu.cycles += n }

// Reset performs the 6502 reset sequence: registers to their power-up state,
// five dummy bus reads, then PC loaded from the reset vector.
func (cpu *CPU) Reset() {
	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.SP = 0xFD
	cpu.C, cpu.Z, cpu.D, cpu.V, cpu.N = false, false, false, false, false
	cpu.I = true
	cpu.B = true

	for i := 0; i < 5; i++ {
		cpu.memory.Read(cpu.PC)
		cpu.cycles++
	}

	low := uint16(cpu.memory.Read(resetVector))
	high := uint16(cpu.memory.Read(resetVector + 1))
	cpu.PC = (high << 8) | low
	cpu.cycles += 2
}

// Step fetches, decodes, and executes one instruction, returning the total
// cycles it consumed, including those of an interrupt serviced after it.
// Pending interrupts are serviced after the instruction completes, matching
// real 6502 interrupt-polling timing.
func (cpu *CPU) Step() (uint64, error) {
	pc := cpu.PC
	opcode := cpu.memory.Read(cpu.PC)
	instr := &cpu.instructions[opcode]
	if !instr.valid {
		return 0, &IllegalOpcodeError{Opcode: opcode, PC: pc}
	}

	address, pageCrossed := cpu.getOperandAddress(instr.Mode)
	extra := cpu.executeInstruction(opcode, address, pageCrossed)

	if pageCrossed && instr.PageCross == readPageCrossPenalty {
		extra++
	}

	total := uint64(instr.Cycles) + uint64(extra)
	cpu.cycles += total

	beforeInterrupt := cpu.cycles
	cpu.ProcessPendingInterrupts()
	total += cpu.cycles - beforeInterrupt
	return total, nil
}

// getOperandAddress advances PC past the instruction and returns the
// effective operand address together with whether an indexed access crossed
// a page boundary.
func (cpu *CPU) getOperandAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		cpu.PC++
		return 0, false

	case Immediate:
		address := cpu.PC + 1
		cpu.PC += 2
		return address, false

	case ZeroPage:
		address := uint16(cpu.memory.Read(cpu.PC + 1))
		cpu.PC += 2
		return address, false

	case ZeroPageX:
		base := cpu.memory.Read(cpu.PC + 1)
		address := uint16((base + cpu.X) & zeroPageMask)
		cpu.PC += 2
		return address, false

	case ZeroPageY:
		base := cpu.memory.Read(cpu.PC + 1)
		address := uint16((base + cpu.Y) & zeroPageMask)
		cpu.PC += 2
		return address, false

	case Relative:
		offset := int8(cpu.memory.Read(cpu.PC + 1))
		oldPC := cpu.PC + 2
		newPC := uint16(int32(oldPC) + int32(offset))
		cpu.PC = oldPC
		return newPC, (oldPC & pageMask) != (newPC & pageMask)

	case Absolute:
		low := uint16(cpu.memory.Read(cpu.PC + 1))
		high := uint16(cpu.memory.Read(cpu.PC + 2))
		cpu.PC += 3
		return (high << 8) | low, false

	case AbsoluteX:
		low := uint16(cpu.memory.Read(cpu.PC + 1))
		high := uint16(cpu.memory.Read(cpu.PC + 2))
		base := (high << 8) | low
		address := base + uint16(cpu.X)
		cpu.PC += 3
		return address, (base & pageMask) != (address & pageMask)

	case AbsoluteY:
		low := uint16(cpu.memory.Read(cpu.PC + 1))
		high := uint16(cpu.memory.Read(cpu.PC + 2))
		base := (high << 8) | low
		address := base + uint16(cpu.Y)
		cpu.PC += 3
		return address, (base & pageMask) != (address & pageMask)

	case Indirect: // JMP only
		lowPtr := uint16(cpu.memory.Read(cpu.PC + 1))
		highPtr := uint16(cpu.memory.Read(cpu.PC + 2))
		ptr := (highPtr << 8) | lowPtr

		var address uint16
		if (ptr & zeroPageMask) == zeroPageMask {
			// Hardware bug: high byte wraps to the start of the same page.
			low := uint16(cpu.memory.Read(ptr))
			high := uint16(cpu.memory.Read(ptr & pageMask))
			address = (high << 8) | low
		} else {
			low := uint16(cpu.memory.Read(ptr))
			high := uint16(cpu.memory.Read(ptr + 1))
			address = (high << 8) | low
		}
		cpu.PC += 3
		return address, false

	case IndexedIndirect: // (zp,X)
		base := cpu.memory.Read(cpu.PC + 1)
		ptr := (base + cpu.X) & zeroPageMask
		low := uint16(cpu.memory.Read(uint16(ptr)))
		high := uint16(cpu.memory.Read(uint16((ptr + 1) & zeroPageMask)))
		cpu.PC += 2
		return (high << 8) | low, false

	case IndirectIndexed: // (zp),Y
		ptr := uint16(cpu.memory.Read(cpu.PC + 1))
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read((ptr + 1) & zeroPageMask))
		base := (high << 8) | low
		address := base + uint16(cpu.Y)
		cpu.PC += 2
		return address, (base & pageMask) != (address & pageMask)

	default:
		return 0, false
	}
}

func (cpu *CPU) push(value uint8) {
	cpu.memory.Write(stackBase+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pop() uint8 {
	cpu.SP++
	return cpu.memory.Read(stackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushWord(value uint16) {
	cpu.push(uint8(value >> 8))
	cpu.push(uint8(value & 0xFF))
}

func (cpu *CPU) popWord() uint16 {
	low := uint16(cpu.pop())
	high := uint16(cpu.pop())
	return (high << 8) | low
}

func (cpu *CPU) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = (value & nFlagMask) != 0
}

func (cpu *CPU) handleNMI() {
	cpu.pushWord(cpu.PC)
	status := (cpu.GetStatusByte() &^ bFlagMask) | unusedMask
	cpu.push(status)
	cpu.I = true
	low := uint16(cpu.memory.Read(nmiVector))
	high := uint16(cpu.memory.Read(nmiVector + 1))
	cpu.PC = (high << 8) | low
	cpu.cycles += 7
}

func (cpu *CPU) handleIRQ() {
	cpu.pushWord(cpu.PC)
	status := (cpu.GetStatusByte() &^ bFlagMask) | unusedMask
	cpu.push(status)
	cpu.I = true
	low := uint16(cpu.memory.Read(irqVector))
	high := uint16(cpu.memory.Read(irqVector + 1))
	cpu.PC = (high << 8) | low
	cpu.cycles += 7
}

// TriggerNMI latches an edge-triggered, non-maskable interrupt request. It is
// serviced after the current instruction completes.
func (cpu *CPU) TriggerNMI() {
	cpu.nmiPending = true
}

// SetIRQ sets the level-triggered IRQ line state.
func (cpu *CPU) SetIRQ(state bool) {
	cpu.irqPending = state
}

// ProcessPendingInterrupts services a latched NMI (highest priority, always
// serviced) or a held IRQ line (serviced only while I is clear).
func (cpu *CPU) ProcessPendingInterrupts() {
	if cpu.nmiPending {
		cpu.nmiPending = false
		cpu.handleNMI()
		return
	}
	if cpu.irqPending && !cpu.I {
		cpu.handleIRQ()
	}
}

// GetStatusByte packs the flags into the conventional 6502 status byte,
// with the unused bit 5 always set.
func (cpu *CPU) GetStatusByte() uint8 {
	var status uint8
	if cpu.N {
		status |= nFlagMask
	}
	if cpu.V {
		status |= vFlagMask
	}
	status |= unusedMask
	if cpu.B {
		status |= bFlagMask
	}
	if cpu.D {
		status |= dFlagMask
	}
	if cpu.I {
		status |= iFlagMask
	}
	if cpu.Z {
		status |= zFlagMask
	}
	if cpu.C {
		status |= cFlagMask
	}
	return status
}

// SetStatusByte unpacks a status byte (as popped by PLP/RTI) into the flags.
func (cpu *CPU) SetStatusByte(status uint8) {
	cpu.N = status&nFlagMask != 0
	cpu.V = status&vFlagMask != 0
	cpu.B = status&bFlagMask != 0
	cpu.D = status&dFlagMask != 0
	cpu.I = status&iFlagMask != 0
	cpu.Z = status&zFlagMask != 0
	cpu.C = status&cFlagMask != 0
}

// --- instruction bodies ---

func (cpu *CPU) lda(address uint16) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ldx(address uint16) uint8 {
	cpu.X = cpu.memory.Read(address)
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) ldy(address uint16) uint8 {
	cpu.Y = cpu.memory.Read(address)
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) sta(address uint16) uint8 {
	cpu.memory.Write(address, cpu.A)
	return 0
}

func (cpu *CPU) stx(address uint16) uint8 {
	cpu.memory.Write(address, cpu.X)
	return 0
}

func (cpu *CPU) sty(address uint16) uint8 {
	cpu.memory.Write(address, cpu.Y)
	return 0
}

func (cpu *CPU) adc(address uint16) uint8 {
	value := cpu.memory.Read(address)
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + carry
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sbc(address uint16) uint8 {
	value := cpu.memory.Read(address) ^ 0xFF
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + carry
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) and(address uint16) uint8 {
	cpu.A &= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ora(address uint16) uint8 {
	cpu.A |= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) eor(address uint16) uint8 {
	cpu.A ^= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) asl(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) lsr(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) rol(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) ror(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) cmp(address uint16) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpx(address uint16) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.X - value
	cpu.C = cpu.X >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpy(address uint16) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.Y - value
	cpu.C = cpu.Y >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) inc(address uint16) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) dec(address uint16) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) inx(uint16) uint8 { cpu.X++; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) dex(uint16) uint8 { cpu.X--; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) iny(uint16) uint8 { cpu.Y++; cpu.setZN(cpu.Y); return 0 }
func (cpu *CPU) dey(uint16) uint8 { cpu.Y--; cpu.setZN(cpu.Y); return 0 }

func (cpu *CPU) tax(uint16) uint8 { cpu.X = cpu.A; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) txa(uint16) uint8 { cpu.A = cpu.X; cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) tay(uint16) uint8 { cpu.Y = cpu.A; cpu.setZN(cpu.Y); return 0 }
func (cpu *CPU) tya(uint16) uint8 { cpu.A = cpu.Y; cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) tsx(uint16) uint8 { cpu.X = cpu.SP; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) txs(uint16) uint8 { cpu.SP = cpu.X; return 0 }

func (cpu *CPU) pha(uint16) uint8 { cpu.push(cpu.A); return 0 }
func (cpu *CPU) pla(uint16) uint8 { cpu.A = cpu.pop(); cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) php(uint16) uint8 { cpu.push(cpu.GetStatusByte() | bFlagMask); return 0 }
func (cpu *CPU) plp(uint16) uint8 { cpu.SetStatusByte(cpu.pop()); return 0 }

func (cpu *CPU) clc(uint16) uint8 { cpu.C = false; return 0 }
func (cpu *CPU) sec(uint16) uint8 { cpu.C = true; return 0 }
func (cpu *CPU) cli(uint16) uint8 { cpu.I = false; return 0 }
func (cpu *CPU) sei(uint16) uint8 { cpu.I = true; return 0 }
func (cpu *CPU) clv(uint16) uint8 { cpu.V = false; return 0 }
func (cpu *CPU) cld(uint16) uint8 { cpu.D = false; return 0 }
func (cpu *CPU) sed(uint16) uint8 { cpu.D = true; return 0 }

func (cpu *CPU) jmp(address uint16) uint8 { cpu.PC = address; return 0 }

func (cpu *CPU) jsr(address uint16) uint8 {
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = address
	return 0
}

func (cpu *CPU) rts(uint16) uint8 { cpu.PC = cpu.popWord() + 1; return 0 }

func (cpu *CPU) rti(uint16) uint8 {
	cpu.SetStatusByte(cpu.pop())
	cpu.PC = cpu.popWord()
	return 0
}

func (cpu *CPU) branch(taken bool, address uint16, pageCrossed bool) uint8 {
	if !taken {
		return 0
	}
	cpu.PC = address
	if pageCrossed {
		return 2
	}
	return 1
}

func (cpu *CPU) bcc(address uint16, pageCrossed bool) uint8 { return cpu.branch(!cpu.C, address, pageCrossed) }
func (cpu *CPU) bcs(address uint16, pageCrossed bool) uint8 { return cpu.branch(cpu.C, address, pageCrossed) }
func (cpu *CPU) bne(address uint16, pageCrossed bool) uint8 { return cpu.branch(!cpu.Z, address, pageCrossed) }
func (cpu *CPU) beq(address uint16, pageCrossed bool) uint8 { return cpu.branch(cpu.Z, address, pageCrossed) }
func (cpu *CPU) bpl(address uint16, pageCrossed bool) uint8 { return cpu.branch(!cpu.N, address, pageCrossed) }
func (cpu *CPU) bmi(address uint16, pageCrossed bool) uint8 { return cpu.branch(cpu.N, address, pageCrossed) }
func (cpu *CPU) bvc(address uint16, pageCrossed bool) uint8 { return cpu.branch(!cpu.V, address, pageCrossed) }
func (cpu *CPU) bvs(address uint16, pageCrossed bool) uint8 { return cpu.branch(cpu.V, address, pageCrossed) }

func (cpu *CPU) bit(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.N = value&nFlagMask != 0
	cpu.V = value&vFlagMask != 0
	cpu.Z = (cpu.A & value) == 0
	return 0
}

func (cpu *CPU) nop(uint16) uint8 { return 0 }

func (cpu *CPU) brk(uint16) uint8 {
	cpu.PC++ // BRK's operand byte is padding, skipped
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	cpu.I = true
	low := uint16(cpu.memory.Read(irqVector))
	high := uint16(cpu.memory.Read(irqVector + 1))
	cpu.PC = (high << 8) | low
	return 0
}

// executeInstruction dispatches opcode to its instruction body. Returns the
// instruction's own extra-cycle contribution (branches only); the read-type
// page-cross bonus is added by the caller from the opcode table.
func (cpu *CPU) executeInstruction(opcode uint8, address uint16, pageCrossed bool) uint8 {
	switch opcode {
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
		return cpu.lda(address)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
		return cpu.ldx(address)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
		return cpu.ldy(address)
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
		return cpu.sta(address)
	case 0x86, 0x96, 0x8E:
		return cpu.stx(address)
	case 0x84, 0x94, 0x8C:
		return cpu.sty(address)

	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
		return cpu.adc(address)
	case 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1:
		return cpu.sbc(address)

	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
		return cpu.and(address)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
		return cpu.ora(address)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
		return cpu.eor(address)

	case 0x0A:
		cpu.C = cpu.A&0x80 != 0
		cpu.A <<= 1
		cpu.setZN(cpu.A)
		return 0
	case 0x06, 0x16, 0x0E, 0x1E:
		return cpu.asl(address)
	case 0x4A:
		cpu.C = cpu.A&0x01 != 0
		cpu.A >>= 1
		cpu.setZN(cpu.A)
		return 0
	case 0x46, 0x56, 0x4E, 0x5E:
		return cpu.lsr(address)
	case 0x2A:
		oldCarry := cpu.C
		cpu.C = cpu.A&0x80 != 0
		cpu.A <<= 1
		if oldCarry {
			cpu.A |= 0x01
		}
		cpu.setZN(cpu.A)
		return 0
	case 0x26, 0x36, 0x2E, 0x3E:
		return cpu.rol(address)
	case 0x6A:
		oldCarry := cpu.C
		cpu.C = cpu.A&0x01 != 0
		cpu.A >>= 1
		if oldCarry {
			cpu.A |= 0x80
		}
		cpu.setZN(cpu.A)
		return 0
	case 0x66, 0x76, 0x6E, 0x7E:
		return cpu.ror(address)

	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
		return cpu.cmp(address)
	case 0xE0, 0xE4, 0xEC:
		return cpu.cpx(address)
	case 0xC0, 0xC4, 0xCC:
		return cpu.cpy(address)

	case 0xE6, 0xF6, 0xEE, 0xFE:
		return cpu.inc(address)
	case 0xC6, 0xD6, 0xCE, 0xDE:
		return cpu.dec(address)
	case 0xE8:
		return cpu.inx(address)
	case 0xCA:
		return cpu.dex(address)
	case 0xC8:
		return cpu.iny(address)
	case 0x88:
		return cpu.dey(address)

	case 0xAA:
		return cpu.tax(address)
	case 0x8A:
		return cpu.txa(address)
	case 0xA8:
		return cpu.tay(address)
	case 0x98:
		return cpu.tya(address)
	case 0xBA:
		return cpu.tsx(address)
	case 0x9A:
		return cpu.txs(address)

	case 0x48:
		return cpu.pha(address)
	case 0x68:
		return cpu.pla(address)
	case 0x08:
		return cpu.php(address)
	case 0x28:
		return cpu.plp(address)

	case 0x18:
		return cpu.clc(address)
	case 0x38:
		return cpu.sec(address)
	case 0x58:
		return cpu.cli(address)
	case 0x78:
		return cpu.sei(address)
	case 0xB8:
		return cpu.clv(address)
	case 0xD8:
		return cpu.cld(address)
	case 0xF8:
		return cpu.sed(address)

	case 0x4C, 0x6C:
		return cpu.jmp(address)
	case 0x20:
		return cpu.jsr(address)
	case 0x60:
		return cpu.rts(address)
	case 0x40:
		return cpu.rti(address)

	case 0x90:
		return cpu.bcc(address, pageCrossed)
	case 0xB0:
		return cpu.bcs(address, pageCrossed)
	case 0xD0:
		return cpu.bne(address, pageCrossed)
	case 0xF0:
		return cpu.beq(address, pageCrossed)
	case 0x10:
		return cpu.bpl(address, pageCrossed)
	case 0x30:
		return cpu.bmi(address, pageCrossed)
	case 0x50:
		return cpu.bvc(address, pageCrossed)
	case 0x70:
		return cpu.bvs(address, pageCrossed)

	case 0x24, 0x2C:
		return cpu.bit(address)
	case 0x00:
		return cpu.brk(address)
	case 0xEA:
		return cpu.nop(address)

	default:
		return 0
	}
}

func (cpu *CPU) define(opcode uint8, name string, mode AddressingMode, bytes, cycles uint8, pageCross pageCrossPenalty) {
	cpu.instructions[opcode] = Instruction{Name: name, Mode: mode, Bytes: bytes, Cycles: cycles, PageCross: pageCross, valid: true}
}

// initInstructions populates the 256-entry opcode table with every
// documented 6502 opcode's addressing mode, size, base cycle count, and
// page-cross class. Entries left zero-valued (valid=false) decode as
// IllegalOpcodeError — this covers both truly reserved opcodes and the
// unofficial/undocumented opcodes this interpreter does not emulate.
func (cpu *CPU) initInstructions() {
	d := cpu.define
	const (
		none = noPageCrossPenalty
		read = readPageCrossPenalty
	)

	d(0xA9, "LDA", Immediate, 2, 2, none)
	d(0xA5, "LDA", ZeroPage, 2, 3, none)
	d(0xB5, "LDA", ZeroPageX, 2, 4, none)
	d(0xAD, "LDA", Absolute, 3, 4, none)
	d(0xBD, "LDA", AbsoluteX, 3, 4, read)
	d(0xB9, "LDA", AbsoluteY, 3, 4, read)
	d(0xA1, "LDA", IndexedIndirect, 2, 6, none)
	d(0xB1, "LDA", IndirectIndexed, 2, 5, read)

	d(0xA2, "LDX", Immediate, 2, 2, none)
	d(0xA6, "LDX", ZeroPage, 2, 3, none)
	d(0xB6, "LDX", ZeroPageY, 2, 4, none)
	d(0xAE, "LDX", Absolute, 3, 4, none)
	d(0xBE, "LDX", AbsoluteY, 3, 4, read)

	d(0xA0, "LDY", Immediate, 2, 2, none)
	d(0xA4, "LDY", ZeroPage, 2, 3, none)
	d(0xB4, "LDY", ZeroPageX, 2, 4, none)
	d(0xAC, "LDY", Absolute, 3, 4, none)
	d(0xBC, "LDY", AbsoluteX, 3, 4, read)

	d(0x85, "STA", ZeroPage, 2, 3, none)
	d(0x95, "STA", ZeroPageX, 2, 4, none)
	d(0x8D, "STA", Absolute, 3, 4, none)
	d(0x9D, "STA", AbsoluteX, 3, 5, none)
	d(0x99, "STA", AbsoluteY, 3, 5, none)
	d(0x81, "STA", IndexedIndirect, 2, 6, none)
	d(0x91, "STA", IndirectIndexed, 2, 6, none)

	d(0x86, "STX", ZeroPage, 2, 3, none)
	d(0x96, "STX", ZeroPageY, 2, 4, none)
	d(0x8E, "STX", Absolute, 3, 4, none)

	d(0x84, "STY", ZeroPage, 2, 3, none)
	d(0x94, "STY", ZeroPageX, 2, 4, none)
	d(0x8C, "STY", Absolute, 3, 4, none)

	d(0x69, "ADC", Immediate, 2, 2, none)
	d(0x65, "ADC", ZeroPage, 2, 3, none)
	d(0x75, "ADC", ZeroPageX, 2, 4, none)
	d(0x6D, "ADC", Absolute, 3, 4, none)
	d(0x7D, "ADC", AbsoluteX, 3, 4, read)
	d(0x79, "ADC", AbsoluteY, 3, 4, read)
	d(0x61, "ADC", IndexedIndirect, 2, 6, none)
	d(0x71, "ADC", IndirectIndexed, 2, 5, read)

	d(0xE9, "SBC", Immediate, 2, 2, none)
	d(0xE5, "SBC", ZeroPage, 2, 3, none)
	d(0xF5, "SBC", ZeroPageX, 2, 4, none)
	d(0xED, "SBC", Absolute, 3, 4, none)
	d(0xFD, "SBC", AbsoluteX, 3, 4, read)
	d(0xF9, "SBC", AbsoluteY, 3, 4, read)
	d(0xE1, "SBC", IndexedIndirect, 2, 6, none)
	d(0xF1, "SBC", IndirectIndexed, 2, 5, read)

	d(0x29, "AND", Immediate, 2, 2, none)
	d(0x25, "AND", ZeroPage, 2, 3, none)
	d(0x35, "AND", ZeroPageX, 2, 4, none)
	d(0x2D, "AND", Absolute, 3, 4, none)
	d(0x3D, "AND", AbsoluteX, 3, 4, read)
	d(0x39, "AND", AbsoluteY, 3, 4, read)
	d(0x21, "AND", IndexedIndirect, 2, 6, none)
	d(0x31, "AND", IndirectIndexed, 2, 5, read)

	d(0x09, "ORA", Immediate, 2, 2, none)
	d(0x05, "ORA", ZeroPage, 2, 3, none)
	d(0x15, "ORA", ZeroPageX, 2, 4, none)
	d(0x0D, "ORA", Absolute, 3, 4, none)
	d(0x1D, "ORA", AbsoluteX, 3, 4, read)
	d(0x19, "ORA", AbsoluteY, 3, 4, read)
	d(0x01, "ORA", IndexedIndirect, 2, 6, none)
	d(0x11, "ORA", IndirectIndexed, 2, 5, read)

	d(0x49, "EOR", Immediate, 2, 2, none)
	d(0x45, "EOR", ZeroPage, 2, 3, none)
	d(0x55, "EOR", ZeroPageX, 2, 4, none)
	d(0x4D, "EOR", Absolute, 3, 4, none)
	d(0x5D, "EOR", AbsoluteX, 3, 4, read)
	d(0x59, "EOR", AbsoluteY, 3, 4, read)
	d(0x41, "EOR", IndexedIndirect, 2, 6, none)
	d(0x51, "EOR", IndirectIndexed, 2, 5, read)

	d(0x0A, "ASL", Accumulator, 1, 2, none)
	d(0x06, "ASL", ZeroPage, 2, 5, none)
	d(0x16, "ASL", ZeroPageX, 2, 6, none)
	d(0x0E, "ASL", Absolute, 3, 6, none)
	d(0x1E, "ASL", AbsoluteX, 3, 7, none)

	d(0x4A, "LSR", Accumulator, 1, 2, none)
	d(0x46, "LSR", ZeroPage, 2, 5, none)
	d(0x56, "LSR", ZeroPageX, 2, 6, none)
	d(0x4E, "LSR", Absolute, 3, 6, none)
	d(0x5E, "LSR", AbsoluteX, 3, 7, none)

	d(0x2A, "ROL", Accumulator, 1, 2, none)
	d(0x26, "ROL", ZeroPage, 2, 5, none)
	d(0x36, "ROL", ZeroPageX, 2, 6, none)
	d(0x2E, "ROL", Absolute, 3, 6, none)
	d(0x3E, "ROL", AbsoluteX, 3, 7, none)

	d(0x6A, "ROR", Accumulator, 1, 2, none)
	d(0x66, "ROR", ZeroPage, 2, 5, none)
	d(0x76, "ROR", ZeroPageX, 2, 6, none)
	d(0x6E, "ROR", Absolute, 3, 6, none)
	d(0x7E, "ROR", AbsoluteX, 3, 7, none)

	d(0xC9, "CMP", Immediate, 2, 2, none)
	d(0xC5, "CMP", ZeroPage, 2, 3, none)
	d(0xD5, "CMP", ZeroPageX, 2, 4, none)
	d(0xCD, "CMP", Absolute, 3, 4, none)
	d(0xDD, "CMP", AbsoluteX, 3, 4, read)
	d(0xD9, "CMP", AbsoluteY, 3, 4, read)
	d(0xC1, "CMP", IndexedIndirect, 2, 6, none)
	d(0xD1, "CMP", IndirectIndexed, 2, 5, read)

	d(0xE0, "CPX", Immediate, 2, 2, none)
	d(0xE4, "CPX", ZeroPage, 2, 3, none)
	d(0xEC, "CPX", Absolute, 3, 4, none)

	d(0xC0, "CPY", Immediate, 2, 2, none)
	d(0xC4, "CPY", ZeroPage, 2, 3, none)
	d(0xCC, "CPY", Absolute, 3, 4, none)

	d(0xE6, "INC", ZeroPage, 2, 5, none)
	d(0xF6, "INC", ZeroPageX, 2, 6, none)
	d(0xEE, "INC", Absolute, 3, 6, none)
	d(0xFE, "INC", AbsoluteX, 3, 7, none)

	d(0xC6, "DEC", ZeroPage, 2, 5, none)
	d(0xD6, "DEC", ZeroPageX, 2, 6, none)
	d(0xCE, "DEC", Absolute, 3, 6, none)
	d(0xDE, "DEC", AbsoluteX, 3, 7, none)

	d(0xE8, "INX", Implied, 1, 2, none)
	d(0xCA, "DEX", Implied, 1, 2, none)
	d(0xC8, "INY", Implied, 1, 2, none)
	d(0x88, "DEY", Implied, 1, 2, none)

	d(0xAA, "TAX", Implied, 1, 2, none)
	d(0x8A, "TXA", Implied, 1, 2, none)
	d(0xA8, "TAY", Implied, 1, 2, none)
	d(0x98, "TYA", Implied, 1, 2, none)
	d(0xBA, "TSX", Implied, 1, 2, none)
	d(0x9A, "TXS", Implied, 1, 2, none)

	d(0x48, "PHA", Implied, 1, 3, none)
	d(0x68, "PLA", Implied, 1, 4, none)
	d(0x08, "PHP", Implied, 1, 3, none)
	d(0x28, "PLP", Implied, 1, 4, none)

	d(0x18, "CLC", Implied, 1, 2, none)
	d(0x38, "SEC", Implied, 1, 2, none)
	d(0x58, "CLI", Implied, 1, 2, none)
	d(0x78, "SEI", Implied, 1, 2, none)
	d(0xB8, "CLV", Implied, 1, 2, none)
	d(0xD8, "CLD", Implied, 1, 2, none)
	d(0xF8, "SED", Implied, 1, 2, none)

	d(0x4C, "JMP", Absolute, 3, 3, none)
	d(0x6C, "JMP", Indirect, 3, 5, none)
	d(0x20, "JSR", Absolute, 3, 6, none)
	d(0x60, "RTS", Implied, 1, 6, none)
	d(0x40, "RTI", Implied, 1, 6, none)

	d(0x90, "BCC", Relative, 2, 2, none)
	d(0xB0, "BCS", Relative, 2, 2, none)
	d(0xD0, "BNE", Relative, 2, 2, none)
	d(0xF0, "BEQ", Relative, 2, 2, none)
	d(0x10, "BPL", Relative, 2, 2, none)
	d(0x30, "BMI", Relative, 2, 2, none)
	d(0x50, "BVC", Relative, 2, 2, none)
	d(0x70, "BVS", Relative, 2, 2, none)

	d(0x24, "BIT", ZeroPage, 2, 3, none)
	d(0x2C, "BIT", Absolute, 3, 4, none)

	d(0x00, "BRK", Implied, 2, 7, none)
	d(0xEA, "NOP", Implied, 1, 2, none)
}
