package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMemory is a flat 64KB address space satisfying MemoryInterface, used
// to drive the CPU without any bus routing logic.
type fakeMemory struct {
	bytes [0x10000]uint8
}

func (m *fakeMemory) Read(address uint16) uint8         { return m.bytes[address] }
func (m *fakeMemory) Write(address uint16, value uint8) { m.bytes[address] = value }

func (m *fakeMemory) loadProgram(address uint16, program ...uint8) {
	copy(m.bytes[address:], program)
}

func (m *fakeMemory) setResetVector(address uint16) {
	m.bytes[resetVector] = uint8(address)
	m.bytes[resetVector+1] = uint8(address >> 8)
}

func newTestCPU() (*CPU, *fakeMemory) {
	mem := &fakeMemory{}
	mem.setResetVector(0x8000)
	c := New(mem)
	c.Reset()
	return c, mem
}

func TestResetLoadsVectorAndPowerUpState(t *testing.T) {
	c, _ := newTestCPU()
	assert.Equal(t, uint16(0x8000), c.PC)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.True(t, c.I, "I flag should be set after reset")
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0xA9, 0x00)
	_, err := c.Step()
	require.NoError(t, err)
	assert.True(t, c.Z, "zero load should set Z")
	assert.False(t, c.N, "zero load should clear N")

	c, mem = newTestCPU()
	mem.loadProgram(0x8000, 0xA9, 0x80)
	_, err = c.Step()
	require.NoError(t, err)
	assert.False(t, c.Z, "negative load should clear Z")
	assert.True(t, c.N, "negative load should set N")
}

func TestADCSetsOverflowOnSignedWraparound(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0x69, 0x10) // ADC #$10
	c.A = 0x7F
	c.C = false
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x8F), c.A)
	assert.True(t, c.V, "V flag should be set: 0x7F + 0x10 overflows signed range")
	assert.False(t, c.C, "C flag should be clear: no unsigned carry out")
}

func TestADCThenSBCWithSameOperandAndCarryRestoresAccumulator(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0x69, 0x37, 0xE9, 0x37) // ADC #$37; SBC #$37
	c.A = 0x42
	c.C = true
	_, err := c.Step()
	require.NoError(t, err)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), c.A, "ADC/SBC of the same operand with carry held should be an identity")
}

func TestJSRThenRTSReturnsToInstructionAfterCall(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	mem.loadProgram(0x9000, 0x60)             // RTS
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8003), c.PC)
}

func TestBranchTakenAcrossPageBoundaryAddsTwoCycles(t *testing.T) {
	mem := &fakeMemory{}
	mem.setResetVector(0x80FD)
	c := New(mem)
	c.Reset()
	mem.loadProgram(0x80FD, 0xF0, 0x02) // BEQ +2; oldPC=0x80FF, newPC=0x8101
	c.Z = true
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.EqualValues(t, 4, cycles, "base 2 + taken 1 + page-cross 1")
	assert.Equal(t, uint16(0x8101), c.PC)
}

func TestStackPushPopRoundTrips(t *testing.T) {
	c, _ := newTestCPU()
	startSP := c.SP
	c.push(0x42)
	c.push(0x24)
	assert.Equal(t, uint8(0x24), c.pop())
	assert.Equal(t, uint8(0x42), c.pop())
	assert.Equal(t, startSP, c.SP)
}

func TestIllegalOpcodeReturnsTypedError(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0x02) // no documented opcode uses 0x02
	_, err := c.Step()
	require.Error(t, err)
	illegalErr, ok := err.(*IllegalOpcodeError)
	require.True(t, ok, "err should be *IllegalOpcodeError, got %T", err)
	assert.Equal(t, uint8(0x02), illegalErr.Opcode)
}

func TestIndirectJMPPageBoundaryBug(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadProgram(0x8000, 0x6C, 0xFF, 0x30) // JMP ($30FF)
	mem.bytes[0x30FF] = 0x00
	mem.bytes[0x3000] = 0x40 // high byte reads from $3000, not $3100
	mem.bytes[0x3100] = 0x99
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), c.PC, "hardware page-wrap bug")
}

func TestASLShiftsAndSetsCarryFromBit7(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x81
	c.executeInstruction(0x0A, 0, false)
	assert.Equal(t, uint8(0x02), c.A)
	assert.True(t, c.C, "C should be set from bit 7 of the original value")
}

func TestNMIIsServicedAfterCurrentInstructionCompletes(t *testing.T) {
	c, mem := newTestCPU()
	mem.bytes[nmiVector] = 0x00
	mem.bytes[nmiVector+1] = 0x91
	mem.loadProgram(0x8000, 0xEA) // NOP
	c.TriggerNMI()
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9100), c.PC, "PC after NMI vector dispatch")
	assert.True(t, c.I, "I flag should be set after servicing NMI")
}

func TestBRKPushesPCPlusTwoAndStatusWithBSet(t *testing.T) {
	c, mem := newTestCPU()
	mem.bytes[irqVector] = 0x00
	mem.bytes[irqVector+1] = 0x95
	mem.loadProgram(0x8000, 0x00, 0xEA) // BRK; NOP (padding byte)
	startSP := c.SP
	_, err := c.Step()
	require.NoError(t, err)

	assert.Equal(t, uint16(0x9500), c.PC)
	assert.True(t, c.I)
	assert.Equal(t, startSP-3, c.SP, "BRK pushes a 3-byte frame: PC high, PC low, status")

	assert.Equal(t, uint8(0x02), mem.bytes[stackBase+uint16(c.SP)+2], "pushed PC low byte should be that of 0x8002")
	assert.Equal(t, uint8(0x80), mem.bytes[stackBase+uint16(c.SP)+3], "pushed PC high byte should be that of 0x8002")

	pushedStatus := mem.bytes[stackBase+uint16(c.SP)+1]
	assert.NotZero(t, pushedStatus&bFlagMask, "pushed status should have B set")
	assert.NotZero(t, pushedStatus&unusedMask, "pushed status should have unused bit 5 set")
}
