package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/GriffinCanCode/iconoglott"
)

func check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Emit errors as a JSON array")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: iconoglott check [source file] [options]

Parse and evaluate a source file, reporting every structured error.
Exits non-zero when any error was recorded.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := readSource(fs.Args())
	if err != nil {
		return err
	}

	state, errs := iconoglott.Evaluate(source)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(errs.ToResponse()); err != nil {
			return fmt.Errorf("encode errors: %w", err)
		}
	} else {
		for _, info := range errs {
			fmt.Println(info.String())
		}
		fmt.Printf("%d shapes, canvas %s (%dpx), %s\n",
			len(state.Shapes), state.Canvas.Tier, state.Canvas.Width(), errs.Summary())
	}

	if len(errs) > 0 {
		os.Exit(1)
	}
	return nil
}
