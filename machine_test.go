package main

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestKeyboardStatusInterception(t *testing.T) {
	is := is.New(t)

	m := NewMachine(&bytes.Buffer{})

	// No key pending: status reads as not-ready.
	is.Equal(m.read16(MRKBSR), uint16(0))

	// A pending key surfaces in the status and data registers as a side
	// effect of reading the status register.
	m.SetKey('a')
	is.Equal(m.read16(MRKBSR), uint16(1<<15))
	is.Equal(m.read16(MRKBDR), uint16('a'))

	// The slot holds one key, and it was consumed.
	is.Equal(m.read16(MRKBSR), uint16(0))
}

func TestCopyInTruncates(t *testing.T) {
	is := is.New(t)

	m := NewMachine(&bytes.Buffer{})
	n := m.copyIn(0xfffe, []uint16{1, 2, 3, 4})
	is.Equal(n, 2)
	is.Equal(m.mem[0xfffe], uint16(1))
	is.Equal(m.mem[0xffff], uint16(2))
}

func TestCopyOutRoundTrip(t *testing.T) {
	is := is.New(t)

	m := NewMachine(&bytes.Buffer{})
	words := []uint16{0x1234, 0xbeef, 0x0042}
	m.copyIn(0x3000, words)
	is.Equal(m.copyOut(0x3000, len(words)), words)

	is.Equal(len(m.copyOut(0xffff, 4)), 1)
}

func TestTrapGETC(t *testing.T) {
	is := is.New(t)

	m := NewMachine(&bytes.Buffer{})
	m.SetKey('x')
	is.Equal(m.trap(TrapGETC), State(Running{}))
	is.Equal(m.cpu.R[0], uint16('x'))
	is.True(!m.hasKey())
}

func TestTrapOUT(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)
	m.cpu.R[0] = 'A'
	is.Equal(m.trap(TrapOUT), State(Running{}))
	is.Equal(console.String(), "A")
}

func TestTrapPUTS(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)
	m.copyIn(0x4000, []uint16{'H', 'i', '!', 0})
	m.cpu.R[0] = 0x4000
	is.Equal(m.trap(TrapPUTS), State(Running{}))
	is.Equal(console.String(), "Hi!")
}

func TestTrapIN(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)
	m.SetKey('q')
	is.Equal(m.trap(TrapIN), State(Running{}))
	is.Equal(m.cpu.R[0], uint16('q'))
	is.Equal(console.String(), "Enter a character: q")
}

func TestTrapPUTSP(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)

	// Two packed characters per word, low byte first; a zero high byte is
	// skipped.
	m.copyIn(0x4000, []uint16{0x6548, 0x006c, 0})
	m.cpu.R[0] = 0x4000
	is.Equal(m.trap(TrapPUTSP), State(Running{}))
	is.Equal(console.String(), "Hel")
}

func TestTrapHALT(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)
	is.Equal(m.trap(TrapHALT), State(Stopped{}))
	is.Equal(console.String(), "HALT\n")
}

func TestTrapUnknownVectorIgnored(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)
	m.cpu.state = Trapped{Vector: 0x80}
	is.Equal(m.trap(0x80), State(Running{}))
	is.Equal(console.Len(), 0)
}

func TestLEAThenOUT(t *testing.T) {
	is := is.New(t)

	var console bytes.Buffer
	m := NewMachine(&console)

	// LEA R0, #0x44 leaves 0x3045 in R0; OUT emits its low byte, 'E'.
	m.copyIn(PCStart, []uint16{0xe044, 0xf021})
	m.Reset()

	state := m.Run(-1)
	is.Equal(state, State(Trapped{Vector: TrapOUT}))
	is.Equal(console.Len(), 0)

	is.Equal(m.trap(TrapOUT), State(Running{}))
	is.Equal(console.String(), "E")
}
