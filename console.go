package main

import "io"

// Keyboard reads single key presses from a reader (normally stdin in raw
// mode) on a background goroutine and hands them out without blocking.
type Keyboard struct {
	keys chan uint16
}

// NewKeyboard starts reading key presses from r.
func NewKeyboard(r io.Reader) *Keyboard {
	k := &Keyboard{keys: make(chan uint16, 1)}
	go k.poll(r)
	return k
}

func (k *Keyboard) poll(r io.Reader) {
	var buf [1]byte
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			k.keys <- uint16(buf[0])
		}
		if err != nil {
			close(k.keys)
			return
		}
	}
}

// Poll implements KeySource. After end of input it reports no key, forever.
func (k *Keyboard) Poll() (uint16, bool) {
	select {
	case key, ok := <-k.keys:
		if !ok {
			return 0, false
		}
		return key, true
	default:
		return 0, false
	}
}
