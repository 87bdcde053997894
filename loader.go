package main

import (
	"encoding/binary"
	"io"
	"os"
)

// LoadImage reads an LC-3 program image from r into machine memory. The
// image is big-endian: the first word is the load origin, the rest is the
// payload, stored from the origin up. Payload beyond the end of memory is
// discarded. It returns the origin and the number of words loaded.
func (m *Machine) LoadImage(r io.Reader) (origin uint16, n int, err error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, err
	}
	origin = binary.BigEndian.Uint16(hdr[:])

	raw, err := io.ReadAll(r)
	if err != nil {
		return origin, 0, err
	}

	// Swap to native order as the words stream into memory.
	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[2*i:])
	}
	return origin, m.copyIn(origin, words), nil
}

// LoadImageFile loads the program image at path into machine memory.
func (m *Machine) LoadImageFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, _, err = m.LoadImage(f)
	return err
}
