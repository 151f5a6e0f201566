// Package term emits the correct control sequences for the current
// terminal (colors, text attributes, cursor operations) by consulting its
// terminfo capability database, so programs never hard-code escape codes
// per terminal type.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	term/            Root package: Terminal abstraction over an io.Writer
//	├── terminfo/    Compiled database decoder, record type, discovery
//	├── parm/        Parameter-expansion interpreter for capability templates
//	├── console/     Window size and tty detection helpers
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Write colored output to stdout:
//
//	t, err := term.New(os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	t.Fg(term.Green)
//	fmt.Fprint(t, "hello, ")
//	t.Fg(term.Red)
//	fmt.Fprintln(t, "world!")
//	t.Reset()
//
// # Working with raw capabilities
//
// The lower layers are usable on their own. Decode a database entry and
// expand one of its templates:
//
//	ti, _ := terminfo.FromName("xterm-256color")
//	out, _ := parm.Expand(ti.Strings["setaf"], []parm.Param{parm.Number(208)}, nil)
//	os.Stdout.Write(out)
//
// Unsupported optional capabilities are a normal outcome: lookups report
// absence and the Terminal methods return false rather than failing.
package term
