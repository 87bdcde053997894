package main

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// rawMode puts f into raw mode (no echo, no line buffering) so that key
// presses arrive one at a time. It returns the previous settings for
// restoreMode. On a non-terminal it does nothing and returns nil.
func rawMode(f *os.File) (*unix.Termios, error) {
	if !term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}
	var old unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &old); err != nil {
		return nil, err
	}
	raw := old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(f.Fd(), termios.TCSANOW, &raw); err != nil {
		return nil, err
	}
	return &old, nil
}

// restoreMode undoes rawMode.
func restoreMode(f *os.File, old *unix.Termios) error {
	if old == nil {
		return nil
	}
	return termios.Tcsetattr(f.Fd(), termios.TCSANOW, old)
}
