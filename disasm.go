package main

import (
	"fmt"
	"io"
)

var rs = [...]string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7"}

var trapnames = map[uint16]string{
	TrapGETC:  "GETC",
	TrapOUT:   "OUT",
	TrapPUTS:  "PUTS",
	TrapIN:    "IN",
	TrapPUTSP: "PUTSP",
	TrapHALT:  "HALT",
}

// disasm renders one LC-3 instruction as assembly.
func disasm(instr uint16) string {
	switch instr >> 12 {
	case opBR:
		mnem := "BR"
		if instr&0x0800 != 0 {
			mnem += "n"
		}
		if instr&0x0400 != 0 {
			mnem += "z"
		}
		if instr&0x0200 != 0 {
			mnem += "p"
		}
		return fmt.Sprintf("%s #%d", mnem, int16(pcoffset9(instr)))
	case opADD, opAND:
		mnem := "ADD"
		if instr>>12 == opAND {
			mnem = "AND"
		}
		if isImmediate(instr) {
			return fmt.Sprintf("%s %s,%s,#%d", mnem, rs[dr(instr)], rs[sr1(instr)], int16(imm5(instr)))
		}
		return fmt.Sprintf("%s %s,%s,%s", mnem, rs[dr(instr)], rs[sr1(instr)], rs[sr2(instr)])
	case opNOT:
		return fmt.Sprintf("NOT %s,%s", rs[dr(instr)], rs[sr1(instr)])
	case opJMP:
		if baser(instr) == 7 {
			return "RET"
		}
		return fmt.Sprintf("JMP %s", rs[baser(instr)])
	case opJSR:
		if isLong(instr) {
			return fmt.Sprintf("JSR #%d", int16(pcoffset11(instr)))
		}
		return fmt.Sprintf("JSRR %s", rs[baser(instr)])
	case opLD:
		return fmt.Sprintf("LD %s,#%d", rs[dr(instr)], int16(pcoffset9(instr)))
	case opLDI:
		return fmt.Sprintf("LDI %s,#%d", rs[dr(instr)], int16(pcoffset9(instr)))
	case opLDR:
		return fmt.Sprintf("LDR %s,%s,#%d", rs[dr(instr)], rs[baser(instr)], int16(offset6(instr)))
	case opLEA:
		return fmt.Sprintf("LEA %s,#%d", rs[dr(instr)], int16(pcoffset9(instr)))
	case opST:
		return fmt.Sprintf("ST %s,#%d", rs[sr(instr)], int16(pcoffset9(instr)))
	case opSTI:
		return fmt.Sprintf("STI %s,#%d", rs[sr(instr)], int16(pcoffset9(instr)))
	case opSTR:
		return fmt.Sprintf("STR %s,%s,#%d", rs[sr(instr)], rs[baser(instr)], int16(offset6(instr)))
	case opRTI:
		return "RTI"
	case opTRAP:
		if name, ok := trapnames[instr&0xff]; ok {
			return name
		}
		return fmt.Sprintf("TRAP x%02X", instr&0xff)
	default:
		return fmt.Sprintf(".FILL x%04X", instr)
	}
}

// printstate dumps the registers, flags, and next instruction to w.
func (c *LC3) printstate(w io.Writer) {
	flag := func(set bool, ch string) string {
		if set {
			return ch
		}
		return " "
	}

	fmt.Fprintf(w, "R0 %04x R1 %04x R2 %04x R3 %04x R4 %04x R5 %04x R6 %04x R7 %04x\n",
		c.R[0], c.R[1], c.R[2], c.R[3], c.R[4], c.R[5], c.R[6], c.R[7])
	instr := c.bus.read16(c.pc)
	fmt.Fprintf(w, "[%s%s%s]  instr %04x: %04x\t%s\n",
		flag(c.n(), "N"), flag(c.z(), "Z"), flag(c.p(), "P"), c.pc, instr, disasm(instr))
}
