package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/pattrns/relay"
	"github.com/pattrns/relay/pattrns"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Usage = "pattrns shared library checker"
	app.Action = check
	app.Name = "Check"
	app.Description = "verifies that a pattrns shared library exports every entry point this relay expects"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
	}
	app.Args = true
	app.Commands = []*cli.Command{
		{Name: "symbols", Action: symbols, Usage: "display the entry points a library must export"},
		{Name: "check",
			Action: check,
			Usage:  "load each given library, resolve all entry points, unload",
			Args:   true,
		},
		{Name: "play",
			Action: play,
			Usage:  "compile and run a pattern script against a library",
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: "bpm", Value: 120, Usage: "beats per minute"},
				&cli.UintFlag{Name: "bpb", Value: 4, Usage: "beats per bar"},
				&cli.UintFlag{Name: "rate", Value: 44100, Usage: "sample rate"},
				&cli.Uint64Flag{Name: "until", Value: 44100 * 4, Usage: "run until sample time"},
			},
			Args:      true,
			ArgsUsage: "LIBRARY SCRIPT",
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func symbols(ctx *cli.Context) error {
	for _, name := range pattrns.EntryPoints() {
		fmt.Println(name)
	}
	return nil
}

func check(ctx *cli.Context) (err error) {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("missing library path")
	}
	for _, path := range ctx.Args().Slice() {
		if err = pattrns.LoadLibrary(path); err != nil {
			var missing *relay.SymbolError
			if errors.As(err, &missing) {
				return fmt.Errorf("%s: missing entry point %q, library implements another API version", path, missing.Name)
			}
			return err
		}
		fmt.Printf("%s: ok, %d entry points resolved\n", path, len(pattrns.EntryPoints()))
		if err = pattrns.UnloadLibrary(); err != nil {
			return err
		}
	}
	return
}

func play(ctx *cli.Context) (err error) {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("want LIBRARY and SCRIPT arguments")
	}
	lib, script := ctx.Args().Get(0), ctx.Args().Get(1)
	d := ctx.Bool("debug")
	if err = pattrns.LoadLibrary(lib); err != nil {
		return
	}
	defer func() {
		if e := pattrns.UnloadLibrary(); err == nil {
			err = e
		}
	}()
	if err = pattrns.Initialize(); err != nil {
		return
	}
	defer func() {
		if e := pattrns.Finalize(); err == nil {
			err = e
		}
	}()
	tb := pattrns.Timebase{
		BPM:        float32(ctx.Float64("bpm")),
		BPB:        uint32(ctx.Uint("bpb")),
		SampleRate: uint32(ctx.Uint("rate")),
	}
	var p pattrns.Pattern
	if p, err = pattrns.NewPatternFromFile(tb, nil, script); err != nil {
		return
	}
	defer p.Drop()
	if d {
		var steps uint32
		var samples float64
		if steps, err = p.StepCount(); err != nil {
			return
		}
		if samples, err = p.SamplesPerStep(); err != nil {
			return
		}
		log.Printf("%s: %d steps, %.2f samples per step", script, steps, samples)
		var params []pattrns.Parameter
		if params, err = p.Parameters(); err != nil {
			return
		}
		for _, param := range params {
			log.Printf("parameter %s (%s): %v in [%v, %v]", param.ID, param.Name, param.Value, param.Min, param.Max)
		}
	}
	return p.RunUntilTime(ctx.Uint64("until"), func(ev *pattrns.Event) {
		fmt.Printf("%10d +%-8d", ev.SampleTime, ev.Duration)
		for _, n := range ev.Notes {
			fmt.Printf(" note=%#02x instr=%d vol=%.2f", n.Note, n.Instrument, n.Volume)
		}
		for _, c := range ev.Parameters {
			fmt.Printf(" param=%d value=%.3f", c.Parameter, c.Value)
		}
		fmt.Println()
	})
}
