package main

// Reasons a VM cannot make progress. Both bits can be set at once only
// transiently, between a trap and the next scheduling round.
const (
	blockedOnInput  = 1 << 0
	blockedOnOutput = 1 << 1
)

// turnTicks bounds how many instructions one scheduling turn may execute.
const turnTicks = 1000

// VM wraps a machine and tracks why it cannot make progress. The scheduler
// drives it one turn at a time: a turn fulfils a pending trap if the VM is
// unblocked, then runs the engine for a bounded number of steps.
type VM struct {
	m       *Machine
	blocked uint32
}

// NewVM wraps m in a fresh, unblocked VM.
func NewVM(m *Machine) *VM {
	return &VM{m: m}
}

// Reset warm-resets the machine and clears the blocked flags.
func (vm *VM) Reset() {
	vm.m.Reset()
	vm.blocked = 0
}

// SetKey delivers a key to the machine's pending-key slot.
func (vm *VM) SetKey(key uint16) {
	vm.m.SetKey(key)
}

func (vm *VM) isBlocked() bool           { return vm.blocked != 0 }
func (vm *VM) setBlocked(flags uint32)   { vm.blocked |= flags }
func (vm *VM) clearBlocked(flags uint32) { vm.blocked &^= flags }

// Step drives the VM one scheduling turn and reports whether it is still
// running.
func (vm *VM) Step() bool {
	state := vm.m.State()
	if _, stopped := state.(Stopped); stopped {
		return false
	}

	// A trapped VM that isn't waiting on the console can have its trap
	// fulfilled now.
	if trapped, ok := state.(Trapped); ok && !vm.isBlocked() {
		state = vm.m.trap(trapped.Vector)
	}

	if _, ok := state.(Running); ok {
		state = vm.m.Run(turnTicks)
		if trapped, ok := state.(Trapped); ok {
			// The VM has become trapped. Work out what it needs to fulfil
			// the trap and park it until the scheduler provides it.
			switch trapped.Vector {
			case TrapGETC, TrapIN:
				vm.setBlocked(blockedOnInput)
			case TrapOUT, TrapPUTS, TrapPUTSP:
				vm.setBlocked(blockedOnOutput)
			}
		}
	}

	_, stopped := state.(Stopped)
	return !stopped
}
