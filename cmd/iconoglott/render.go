package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GriffinCanCode/iconoglott"
)

func render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	output := fs.String("output", "", "Output SVG file (default: stdout)")
	quiet := fs.Bool("quiet", false, "Suppress error listing on stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: iconoglott render [source file] [options]

Compile iconoglott source to SVG. Reads stdin when no file is given.
Errors are recovered; the output is always a well-formed document.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  iconoglott render scene.icg --output scene.svg
  echo 'circle 32,32 16 #f00' | iconoglott render
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := readSource(fs.Args())
	if err != nil {
		return err
	}

	svg, errs := iconoglott.Compile(source)

	if !*quiet {
		for _, info := range errs {
			fmt.Fprintln(os.Stderr, info.String())
		}
	}

	if *output == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(*output, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Rendered to %s (%d bytes, %d errors)\n", *output, len(svg), len(errs))
	return nil
}

// readSource loads the first positional argument, or stdin when there
// is none.
func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
