package main

// KeySource supplies key presses without blocking.
type KeySource interface {
	// Poll returns the next key press, if one is waiting.
	Poll() (uint16, bool)
}

// DefaultSwitchKey is Ctrl-], the key code that cycles console ownership.
const DefaultSwitchKey = 0x1d

// Scheduler round-robins a set of VMs over one shared console. Exactly one
// VM owns the console at a time: it alone receives keys and is never parked
// on output. The switch key rotates ownership and is never delivered to a
// VM. Ownership only moves on a keypress, so a non-owner blocked on output
// starves until the user cycles the console.
type Scheduler struct {
	vms       []*VM
	alive     []bool
	keys      KeySource
	owner     int
	switchKey uint16
}

// NewScheduler builds a scheduler over vms, reading keys from keys.
func NewScheduler(keys KeySource, switchKey uint16, vms ...*VM) *Scheduler {
	alive := make([]bool, len(vms))
	for i := range alive {
		alive[i] = true
	}
	return &Scheduler{vms: vms, alive: alive, keys: keys, switchKey: switchKey}
}

// Owner reports which VM currently owns the console.
func (s *Scheduler) Owner() int {
	return s.owner
}

// Run drives all VMs until none of them is running.
func (s *Scheduler) Run() {
	for live := len(s.vms); live > 0; {
		live -= s.round()
	}
}

// round performs one scheduling round and returns how many VMs stopped
// during it.
func (s *Scheduler) round() int {
	if key, ok := s.keys.Poll(); ok {
		if key == s.switchKey {
			// Ownership moves on; nobody receives the key.
			s.owner = (s.owner + 1) % len(s.vms)
		} else {
			s.vms[s.owner].SetKey(key)
			s.vms[s.owner].clearBlocked(blockedOnInput)
		}
	}

	// The owner is never throttled on output. Everybody else accumulates a
	// standing output block until they gain the console.
	s.vms[s.owner].clearBlocked(blockedOnOutput)

	stopped := 0
	for i, vm := range s.vms {
		if !s.alive[i] {
			continue
		}
		if !vm.Step() {
			s.alive[i] = false
			stopped++
		}
	}
	return stopped
}
