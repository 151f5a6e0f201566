// Package parm expands parameterized capability templates (terminfo(5)
// parameter strings).
//
// A template mixes literal bytes with %-directives executed against a
// small stack machine:
//
//	out, err := parm.Expand([]byte("\x1b[3%p1%dm"), []parm.Param{parm.Number(2)}, vars)
//	// out == "\x1b[32m"
//
// The directive set is fixed: positional arguments (%p1-%p9), variable
// load/store (%g, %P), character and integer constants (%'c', %{nn}),
// arithmetic, bitwise and logical operators, printf-style output
// conversions (%d %o %x %X %c %s), the %i cursor-addressing adjustment,
// and non-looping conditionals (%? %t %e %;). Execution is a single
// forward pass, linear in the template length.
//
// Expansion is all-or-nothing: any stack underflow, unknown directive,
// unsupplied argument reference, malformed format clause, or unbalanced
// conditional fails the whole call and discards partial output.
package parm
