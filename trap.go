package main

import "fmt"

// LC-3 trap vectors.
const (
	TrapGETC  = 0x20 // get character from keyboard, no echo
	TrapOUT   = 0x21 // output a character
	TrapPUTS  = 0x22 // output a word string
	TrapIN    = 0x23 // get character from keyboard, echoed
	TrapPUTSP = 0x24 // output a byte string
	TrapHALT  = 0x25 // halt the program
)

// trap fulfils a trap request and returns the resulting state. The machine
// goes back to Running except for HALT, which stops it. Vectors outside the
// table are ignored.
func (m *Machine) trap(vector uint16) State {
	m.cpu.state = Running{}

	switch vector {
	case TrapGETC:
		m.cpu.R[0] = m.getKey()

	case TrapOUT:
		m.putc(byte(m.cpu.R[0]))

	case TrapPUTS:
		// One character per word, terminated by a zero word.
		for p := m.cpu.R[0]; m.mem[p] != 0; p++ {
			m.putc(byte(m.mem[p]))
		}

	case TrapIN:
		fmt.Fprint(m.cons, "Enter a character: ")
		key := m.getKey()
		m.putc(byte(key))
		m.cpu.R[0] = key

	case TrapPUTSP:
		// Two packed characters per word, low byte first.
		for p := m.cpu.R[0]; m.mem[p] != 0; p++ {
			m.putc(byte(m.mem[p]))
			if c := byte(m.mem[p] >> 8); c != 0 {
				m.putc(c)
			}
		}

	case TrapHALT:
		fmt.Fprintln(m.cons, "HALT")
		m.cpu.state = Stopped{}
	}

	return m.cpu.state
}

func (m *Machine) putc(c byte) {
	m.cons.Write([]byte{c})
}
