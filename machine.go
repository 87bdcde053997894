package main

import "io"

// Memory-mapped device registers.
const (
	MRKBSR = 0xFE00 // keyboard status
	MRKBDR = 0xFE02 // keyboard data
)

// Machine couples an LC3 engine with 64KW of word-addressed memory, a
// single pending-key slot, and a console writer. It implements Bus for its
// own engine, intercepting reads of the keyboard status register so that a
// program polling for input observes keys delivered by the host.
type Machine struct {
	cpu  LC3
	mem  [1 << 16]uint16
	key  uint16 // pending key; 0 means none
	cons io.Writer
}

// NewMachine returns a machine whose console output goes to cons.
func NewMachine(cons io.Writer) *Machine {
	m := &Machine{cons: cons}
	m.cpu.bus = m
	return m
}

// Reset warm-resets the engine. Memory is left alone.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

// Run drives the engine for at most ticks instructions.
func (m *Machine) Run(ticks int) State {
	return m.cpu.Run(ticks)
}

// State reports the engine's current state.
func (m *Machine) State() State {
	return m.cpu.state
}

// SetKey makes a key available to the machine. The slot holds one key; a
// second delivery before the first is consumed replaces it. Key code 0 is
// not representable, it means "no key".
func (m *Machine) SetKey(key uint16) {
	m.key = key
}

func (m *Machine) hasKey() bool {
	return m.key != 0
}

func (m *Machine) getKey() uint16 {
	key := m.key
	m.key = 0
	return key
}

// read16 implements Bus. Reading the keyboard status register refreshes the
// status and data registers from the pending-key slot before the read is
// satisfied, consuming the key if one is waiting.
func (m *Machine) read16(addr uint16) uint16 {
	if addr == MRKBSR {
		if m.hasKey() {
			m.mem[MRKBSR] = 1 << 15
			m.mem[MRKBDR] = m.getKey()
		} else {
			m.mem[MRKBSR] = 0
		}
	}
	return m.mem[addr]
}

// write16 implements Bus.
func (m *Machine) write16(addr uint16, v uint16) {
	m.mem[addr] = v
}

// copyIn copies words into memory starting at origin, truncating at the end
// of memory. It returns the number of words copied. Byte-order correction
// is the loader's concern, not the copy's.
func (m *Machine) copyIn(origin uint16, words []uint16) int {
	return copy(m.mem[origin:], words)
}

// copyOut returns a copy of count words starting at origin, truncated at
// the end of memory.
func (m *Machine) copyOut(origin uint16, count int) []uint16 {
	end := int(origin) + count
	if end > len(m.mem) {
		end = len(m.mem)
	}
	out := make([]uint16, end-int(origin))
	copy(out, m.mem[origin:end])
	return out
}
