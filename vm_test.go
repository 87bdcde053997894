package main

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

// testVM builds a VM over a machine running the given program, with its
// console captured in the returned buffer.
func testVM(words ...uint16) (*VM, *bytes.Buffer) {
	var console bytes.Buffer
	m := NewMachine(&console)
	m.copyIn(PCStart, words)
	m.Reset()
	return NewVM(m), &console
}

func TestVMBlocksOnInput(t *testing.T) {
	is := is.New(t)

	vm, _ := testVM(
		0xf020, // TRAP GETC
		0xf025, // TRAP HALT
	)

	// The GETC trap parks the VM with its registers untouched.
	is.True(vm.Step())
	is.Equal(vm.blocked, uint32(blockedOnInput))
	is.Equal(vm.m.cpu.R[0], uint16(0))

	// While parked, further turns make no progress.
	pc := vm.m.cpu.pc
	is.True(vm.Step())
	is.Equal(vm.m.cpu.pc, pc)
	is.Equal(vm.m.State(), State(Trapped{Vector: TrapGETC}))

	// A delivered key unparks it; the next turn consumes the key and runs
	// on to the halt trap.
	vm.SetKey('k')
	vm.clearBlocked(blockedOnInput)
	is.True(vm.Step())
	is.Equal(vm.m.cpu.R[0], uint16('k'))
	is.Equal(vm.m.State(), State(Trapped{Vector: TrapHALT}))
	is.Equal(vm.blocked, uint32(0)) // a halt trap doesn't block

	// The halt trap stops the VM, and stopped is terminal.
	is.True(!vm.Step())
	is.True(!vm.Step())
}

func TestVMBlocksOnOutput(t *testing.T) {
	is := is.New(t)

	vm, console := testVM(
		0x102f, // ADD R0, R0, #15
		0xf021, // TRAP OUT
		0xf025, // TRAP HALT
	)

	// The OUT trap parks the VM before anything reaches the console.
	is.True(vm.Step())
	is.Equal(vm.blocked, uint32(blockedOnOutput))
	is.Equal(console.Len(), 0)

	is.True(vm.Step())
	is.Equal(console.Len(), 0)

	// Unblocked, the trap is fulfilled on the next turn.
	vm.clearBlocked(blockedOnOutput)
	is.True(vm.Step())
	is.Equal(console.Bytes(), []byte{15})
	is.Equal(vm.m.State(), State(Trapped{Vector: TrapHALT}))

	is.True(!vm.Step())
	is.Equal(console.String(), string([]byte{15})+"HALT\n")
}

func TestVMReset(t *testing.T) {
	is := is.New(t)

	vm, _ := testVM(0xf020) // TRAP GETC
	is.True(vm.Step())
	is.True(vm.isBlocked())

	vm.Reset()
	is.True(!vm.isBlocked())
	is.Equal(vm.m.State(), State(Running{}))
	is.Equal(vm.m.cpu.pc, uint16(PCStart))
}
