package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GriffinCanCode/iconoglott/dsl"
)

func tokens(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: iconoglott tokens [source file]

Dump the token stream, one token per line, for lexer debugging.
Reads stdin when no file is given.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := readSource(fs.Args())
	if err != nil {
		return err
	}

	for _, tok := range dsl.Tokenize(source) {
		switch tok.Type {
		case dsl.TokenNumber:
			fmt.Printf("%3d:%-3d %-10v %v\n", tok.Line+1, tok.Col, tok.Type, tok.Num)
		case dsl.TokenPair:
			fmt.Printf("%3d:%-3d %-10v %v,%v\n", tok.Line+1, tok.Col, tok.Type, tok.X, tok.Y)
		case dsl.TokenIndent, dsl.TokenDedent, dsl.TokenNewline, dsl.TokenEOF:
			fmt.Printf("%3d:%-3d %v\n", tok.Line+1, tok.Col, tok.Type)
		default:
			fmt.Printf("%3d:%-3d %-10v %q\n", tok.Line+1, tok.Col, tok.Type, tok.Text)
		}
	}
	return nil
}
