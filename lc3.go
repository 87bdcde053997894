// lc3 emulator.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
)

func main() {
	var cli struct {
		Run runCmd `cmd:"" default:"1" help:"run LC3 program images, one machine per image"`
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(&kong.Context{})
	ctx.FatalIfErrorf(err)
}

type runCmd struct {
	Images    []string `arg:"" name:"image" type:"existingfile" help:"LC3 program images to run"`
	SwitchKey uint16   `name:"switchkey" default:"29" help:"key code that cycles console ownership between machines"`
	Trace     bool     `name:"trace" help:"trace each instruction to stderr"`
	Profile   bool     `name:"profile" help:"write a CPU profile to the current directory"`
}

func (r *runCmd) Run(ctx *kong.Context) error {
	if r.Profile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	vms := make([]*VM, 0, len(r.Images))
	for _, image := range r.Images {
		m := NewMachine(os.Stdout)
		if err := m.LoadImageFile(image); err != nil {
			return fmt.Errorf("failed to load image %s: %w", image, err)
		}
		if r.Trace {
			m.cpu.trace = os.Stderr
		}
		m.Reset()
		vms = append(vms, NewVM(m))
	}

	old, err := rawMode(os.Stdin)
	if err != nil {
		return err
	}
	defer restoreMode(os.Stdin, old)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	go func() {
		<-interrupted
		restoreMode(os.Stdin, old)
		fmt.Println()
		os.Exit(2)
	}()

	keys := NewKeyboard(os.Stdin)
	NewScheduler(keys, r.SwitchKey, vms...).Run()
	return nil
}
