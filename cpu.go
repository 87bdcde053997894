package main

import "io"

// PCStart is the reset value of the program counter, the base of user space.
const PCStart = 0x3000

// State is the execution status of the engine. It is one of Running,
// Stopped, or Trapped; Trapped carries the vector of the requested trap.
type State interface {
	isState()
}

// Running means the engine can execute instructions.
type Running struct{}

// Stopped means the engine has halted. It stays halted until Reset.
type Stopped struct{}

// Trapped means the engine has requested a host service and will not
// continue until the trap is fulfilled.
type Trapped struct {
	Vector uint16
}

func (Running) isState() {}
func (Stopped) isState() {}
func (Trapped) isState() {}

// Bus is the capability the engine requires from its host: word-addressed
// memory access. The host may intercept addresses, which is how the
// memory-mapped keyboard registers work (see machine.go).
type Bus interface {
	read16(addr uint16) uint16
	write16(addr uint16, v uint16)
}

// Condition flags. Exactly one is set after a flag-updating instruction.
const (
	flagP = 1 << 0
	flagZ = 1 << 1
	flagN = 1 << 2
)

// Opcodes, in encoding order (bits 15-12 of the instruction).
const (
	opBR   = iota // branch
	opADD         // add
	opLD          // load
	opST          // store
	opJSR         // jump to subroutine
	opAND         // bitwise and
	opLDR         // load register
	opSTR         // store register
	opRTI         // return from interrupt (not implemented)
	opNOT         // bitwise not
	opLDI         // load indirect
	opSTI         // store indirect
	opJMP         // jump
	opRES         // reserved
	opLEA         // load effective address
	opTRAP        // invoke a trap
)

// LC3 executes LC-3 instructions against a host-supplied bus.
type LC3 struct {
	bus Bus

	R     [8]uint16 // R0-R7. R7 doubles as the link register.
	pc    uint16
	cond  uint16
	state State

	trace io.Writer // if set, the engine dumps its state before each step
}

// Reset performs a warm reset: registers and flags cleared, PC back to the
// start of user space, state Running.
func (c *LC3) Reset() {
	c.pc = PCStart
	c.cond = 0
	for i := range c.R {
		c.R[i] = 0
	}
	c.state = Running{}
}

// Run executes instructions while the engine is Running, for at most ticks
// instructions. A negative budget runs until the engine stops or traps.
// The instruction that causes a stop or trap spends a tick like any other.
func (c *LC3) Run(ticks int) State {
	for ticks != 0 {
		if _, running := c.state.(Running); !running {
			break
		}
		if ticks > 0 {
			ticks--
		}
		c.step()
	}
	return c.state
}

func (c *LC3) step() {
	if c.trace != nil {
		c.printstate(c.trace)
	}

	instr := c.fetch16()

	switch instr >> 12 {
	case opADD:
		c.ADD(instr)
	case opAND:
		c.AND(instr)
	case opNOT:
		c.NOT(instr)
	case opBR:
		c.BR(instr)
	case opJMP:
		c.JMP(instr)
	case opJSR:
		c.JSR(instr)
	case opLD:
		c.LD(instr)
	case opLDI:
		c.LDI(instr)
	case opLDR:
		c.LDR(instr)
	case opLEA:
		c.LEA(instr)
	case opST:
		c.ST(instr)
	case opSTI:
		c.STI(instr)
	case opSTR:
		c.STR(instr)
	case opTRAP:
		c.state = Trapped{Vector: instr & 0xff}
	default:
		// RTI and the reserved opcode are not implemented on this machine.
		c.state = Stopped{}
	}
}

func (c *LC3) fetch16() uint16 {
	instr := c.bus.read16(c.pc)
	c.pc++
	return instr
}

// setFlags records the sign of the value just written to R[r].
func (c *LC3) setFlags(r uint16) {
	switch {
	case c.R[r] == 0:
		c.cond = flagZ
	case c.R[r]>>15 != 0:
		c.cond = flagN
	default:
		c.cond = flagP
	}
}

func (c *LC3) n() bool { return c.cond&flagN > 0 }
func (c *LC3) z() bool { return c.cond&flagZ > 0 }
func (c *LC3) p() bool { return c.cond&flagP > 0 }

// Instruction field decoding.

func signExtend(x uint16, bits uint) uint16 {
	if (x>>(bits-1))&1 != 0 {
		x |= 0xffff << bits
	}
	return x
}

func isImmediate(instr uint16) bool  { return (instr>>5)&1 != 0 }
func isLong(instr uint16) bool       { return (instr>>11)&1 != 0 }
func cond(instr uint16) uint16       { return (instr >> 9) & 7 }
func dr(instr uint16) uint16         { return (instr >> 9) & 7 }
func sr(instr uint16) uint16         { return (instr >> 9) & 7 }
func sr1(instr uint16) uint16        { return (instr >> 6) & 7 }
func sr2(instr uint16) uint16        { return instr & 7 }
func baser(instr uint16) uint16      { return (instr >> 6) & 7 }
func imm5(instr uint16) uint16       { return signExtend(instr&0x1f, 5) }
func offset6(instr uint16) uint16    { return signExtend(instr&0x3f, 6) }
func pcoffset9(instr uint16) uint16  { return signExtend(instr&0x1ff, 9) }
func pcoffset11(instr uint16) uint16 { return signExtend(instr&0x7ff, 11) }

// ADD 0001
func (c *LC3) ADD(instr uint16) {
	d := dr(instr)
	if isImmediate(instr) {
		c.R[d] = c.R[sr1(instr)] + imm5(instr)
	} else {
		c.R[d] = c.R[sr1(instr)] + c.R[sr2(instr)]
	}
	c.setFlags(d)
}

// AND 0101
func (c *LC3) AND(instr uint16) {
	d := dr(instr)
	if isImmediate(instr) {
		c.R[d] = c.R[sr1(instr)] & imm5(instr)
	} else {
		c.R[d] = c.R[sr1(instr)] & c.R[sr2(instr)]
	}
	c.setFlags(d)
}

// NOT 1001
func (c *LC3) NOT(instr uint16) {
	d := dr(instr)
	c.R[d] = ^c.R[sr1(instr)]
	c.setFlags(d)
}

// BR 0000. An empty condition mask branches unconditionally.
func (c *LC3) BR(instr uint16) {
	if mask := cond(instr); mask == 0 || mask&c.cond != 0 {
		c.pc += pcoffset9(instr)
	}
}

// JMP 1100
func (c *LC3) JMP(instr uint16) {
	c.pc = c.R[baser(instr)]
}

// JSR/JSRR 0100. The return address lands in R7.
func (c *LC3) JSR(instr uint16) {
	c.R[7] = c.pc
	if isLong(instr) {
		c.pc += pcoffset11(instr) // JSR
	} else {
		c.pc = c.R[baser(instr)] // JSRR
	}
}

// LD 0010
func (c *LC3) LD(instr uint16) {
	d := dr(instr)
	c.R[d] = c.bus.read16(c.pc + pcoffset9(instr))
	c.setFlags(d)
}

// LDI 1010
func (c *LC3) LDI(instr uint16) {
	d := dr(instr)
	c.R[d] = c.bus.read16(c.bus.read16(c.pc + pcoffset9(instr)))
	c.setFlags(d)
}

// LDR 0110
func (c *LC3) LDR(instr uint16) {
	d := dr(instr)
	c.R[d] = c.bus.read16(c.R[baser(instr)] + offset6(instr))
	c.setFlags(d)
}

// LEA 1110
func (c *LC3) LEA(instr uint16) {
	d := dr(instr)
	c.R[d] = c.pc + pcoffset9(instr)
	c.setFlags(d)
}

// ST 0011
func (c *LC3) ST(instr uint16) {
	c.bus.write16(c.pc+pcoffset9(instr), c.R[sr(instr)])
}

// STI 1011
func (c *LC3) STI(instr uint16) {
	c.bus.write16(c.bus.read16(c.pc+pcoffset9(instr)), c.R[sr(instr)])
}

// STR 0111
func (c *LC3) STR(instr uint16) {
	c.bus.write16(c.R[baser(instr)]+offset6(instr), c.R[sr(instr)])
}
