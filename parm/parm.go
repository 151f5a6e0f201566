package parm

import (
	"fmt"
	"strings"

	"github.com/mistwood/term/errors"
)

// ParamKind discriminates the Param union.
type ParamKind byte

const (
	ParamNumber ParamKind = iota
	ParamString
)

// Param is one typed value: a positional argument, a stack slot, or a
// variable slot. The zero value is Number(0), which is what uninitialized
// variable slots read as.
type Param struct {
	Str  []byte
	Num  int
	Kind ParamKind
}

// Number returns a numeric Param.
func Number(n int) Param {
	return Param{Kind: ParamNumber, Num: n}
}

// Str returns a string Param.
func Str(s []byte) Param {
	return Param{Kind: ParamString, Str: s}
}

// Variables holds the interpreter's variable store: 26 dynamic slots
// (cleared before each expansion) and 26 static slots (persist for the
// life of the store), each addressed by a single letter. One store belongs
// to one terminal session; concurrent expansions sharing a store must be
// serialized by the caller.
type Variables struct {
	static  [26]Param
	dynamic [26]Param
}

// NewVariables returns an empty variable store.
func NewVariables() *Variables {
	return &Variables{}
}

// Expand interprets a capability template against the supplied positional
// arguments and variable store, returning the output bytes. The template
// mixes literal bytes with %-directives executed on an internal stack; see
// terminfo(5) for the directive language. A nil vars behaves as a fresh
// store. On error no partial output is returned.
func Expand(template []byte, params []Param, vars *Variables) ([]byte, error) {
	if vars == nil {
		vars = NewVariables()
	}
	vars.dynamic = [26]Param{}

	in := interp{
		tmpl:   template,
		params: append([]Param(nil), params...),
		vars:   vars,
		out:    make([]byte, 0, len(template)),
	}
	if err := in.run(); err != nil {
		return nil, err
	}
	return in.out, nil
}

type interp struct {
	tmpl        []byte
	out         []byte
	stack       []Param
	params      []Param
	vars        *Variables
	pos         int
	incremented bool
}

func (in *interp) run() error {
	for in.pos < len(in.tmpl) {
		c := in.tmpl[in.pos]
		in.pos++
		if c != '%' {
			in.out = append(in.out, c)
			continue
		}
		if err := in.directive(); err != nil {
			return err
		}
	}
	return nil
}

// directive executes one %-directive. The leading % has been consumed.
func (in *interp) directive() error {
	c, ok := in.next()
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("template ends with a bare %%").
			Build()
	}

	switch c {
	case '%':
		in.out = append(in.out, '%')

	case 'p':
		return in.pushParam()

	case 'P':
		return in.setVar()

	case 'g':
		return in.getVar()

	case '\'':
		return in.charConstant()

	case '{':
		return in.intConstant()

	case 'i':
		return in.incrementArgs()

	case '+', '-', '*', '/', 'm', '&', '|', '^', '=', '>', '<', 'A', 'O':
		return in.binaryOp(c)

	case '!', '~':
		return in.unaryOp(c)

	case 'd', 'o', 'x', 'X':
		return in.formatNumber(formatSpec{verb: c})

	case 'c':
		return in.outputChar()

	case 's':
		return in.formatString(formatSpec{verb: 's'})

	case ':', '#', ' ', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return in.formatClause(c)

	case '?':
		// Predicate directives execute inline; nothing to do here.

	case 't':
		return in.conditionalThen()

	case 'e':
		// The then-branch ran, so the else-branch is dead. Skip it.
		return in.skipBranch(false)

	case ';':
		// End of a conditional whose branch executed inline.

	default:
		return errors.BadDirective(c)
	}
	return nil
}

func (in *interp) next() (byte, bool) {
	if in.pos >= len(in.tmpl) {
		return 0, false
	}
	c := in.tmpl[in.pos]
	in.pos++
	return c, true
}

func (in *interp) push(p Param) {
	in.stack = append(in.stack, p)
}

func (in *interp) pop(directive byte) (Param, error) {
	if len(in.stack) == 0 {
		return Param{}, errors.StackUnderflow(directive)
	}
	p := in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
	return p, nil
}

func (in *interp) popNumber(directive byte) (int, error) {
	p, err := in.pop(directive)
	if err != nil {
		return 0, err
	}
	if p.Kind != ParamNumber {
		return 0, errors.New(errors.PhaseExpand, errors.KindTypeMismatch).
			Detail("directive %%%c requires a number, stack holds a string", directive).
			Build()
	}
	return p.Num, nil
}

// pushParam handles %p1 through %p9. Referencing an argument beyond those
// supplied is an error, never a zero default.
func (in *interp) pushParam() error {
	c, ok := in.next()
	if !ok || c < '1' || c > '9' {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%p must be followed by a digit 1-9").
			Build()
	}
	idx := int(c - '1')
	if idx >= len(in.params) {
		return errors.MissingArg(idx+1, len(in.params))
	}
	in.push(in.params[idx])
	return nil
}

func (in *interp) varSlot(c byte) (*Param, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return &in.vars.dynamic[c-'a'], true
	case c >= 'A' && c <= 'Z':
		return &in.vars.static[c-'A'], true
	}
	return nil, false
}

func (in *interp) setVar() error {
	c, ok := in.next()
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%P must be followed by a letter").
			Build()
	}
	slot, ok := in.varSlot(c)
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%P%c is not a variable slot", c).
			Build()
	}
	p, err := in.pop('P')
	if err != nil {
		return err
	}
	*slot = p
	return nil
}

func (in *interp) getVar() error {
	c, ok := in.next()
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%g must be followed by a letter").
			Build()
	}
	slot, ok := in.varSlot(c)
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%g%c is not a variable slot", c).
			Build()
	}
	in.push(*slot)
	return nil
}

// charConstant handles %'c', pushing the character's numeric code.
func (in *interp) charConstant() error {
	c, ok := in.next()
	if !ok {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("unterminated %%' character constant").
			Build()
	}
	quote, ok := in.next()
	if !ok || quote != '\'' {
		return errors.New(errors.PhaseExpand, errors.KindBadDirective).
			Detail("%%' character constant missing closing quote").
			Build()
	}
	in.push(Number(int(c)))
	return nil
}

// intConstant handles %{nn}.
func (in *interp) intConstant() error {
	n := 0
	seen := false
	for {
		c, ok := in.next()
		if !ok {
			return errors.New(errors.PhaseExpand, errors.KindBadDirective).
				Detail("unterminated %%{ integer constant").
				Build()
		}
		if c == '}' {
			if !seen {
				return errors.New(errors.PhaseExpand, errors.KindBadDirective).
					Detail("empty %%{} integer constant").
					Build()
			}
			in.push(Number(n))
			return nil
		}
		if c < '0' || c > '9' {
			return errors.New(errors.PhaseExpand, errors.KindBadDirective).
				Detail("non-digit %q in %%{} integer constant", c).
				Build()
		}
		n = n*10 + int(c-'0')
		seen = true
	}
}

// incrementArgs handles %i, the 1-based cursor addressing accommodation.
// The first two supplied arguments are incremented once per expansion,
// regardless of how many times the directive appears.
func (in *interp) incrementArgs() error {
	if in.incremented {
		return nil
	}
	in.incremented = true
	for i := 0; i < len(in.params) && i < 2; i++ {
		if in.params[i].Kind != ParamNumber {
			return errors.New(errors.PhaseExpand, errors.KindTypeMismatch).
				Detail("%%i applied to string argument %d", i+1).
				Build()
		}
		in.params[i].Num++
	}
	return nil
}

func (in *interp) binaryOp(op byte) error {
	right, err := in.popNumber(op)
	if err != nil {
		return err
	}
	left, err := in.popNumber(op)
	if err != nil {
		return err
	}

	var v int
	switch op {
	case '+':
		v = left + right
	case '-':
		v = left - right
	case '*':
		v = left * right
	case '/', 'm':
		if right == 0 {
			return errors.New(errors.PhaseExpand, errors.KindBadDirective).
				Detail("division by zero in %%%c", op).
				Build()
		}
		if op == '/' {
			v = left / right
		} else {
			v = left % right
		}
	case '&':
		v = left & right
	case '|':
		v = left | right
	case '^':
		v = left ^ right
	case '=':
		v = b2i(left == right)
	case '>':
		v = b2i(left > right)
	case '<':
		v = b2i(left < right)
	case 'A':
		v = b2i(left != 0 && right != 0)
	case 'O':
		v = b2i(left != 0 || right != 0)
	}
	in.push(Number(v))
	return nil
}

func (in *interp) unaryOp(op byte) error {
	n, err := in.popNumber(op)
	if err != nil {
		return err
	}
	switch op {
	case '!':
		in.push(Number(b2i(n == 0)))
	case '~':
		in.push(Number(^n))
	}
	return nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (in *interp) outputChar() error {
	n, err := in.popNumber('c')
	if err != nil {
		return err
	}
	in.out = append(in.out, byte(n))
	return nil
}

// formatSpec is one parsed printf-style clause: optional flags, width and
// precision, then a conversion verb.
type formatSpec struct {
	flags     string
	width     int
	precision int
	hasWidth  bool
	hasPrec   bool
	verb      byte
}

// formatClause parses the flag/width/precision clause between % and the
// conversion letter, e.g. %03d or %:-8s. The first character has already
// been consumed. Any clause not matching the grammar is fatal.
func (in *interp) formatClause(first byte) error {
	var spec formatSpec
	c := first

	if c == ':' {
		var ok bool
		c, ok = in.next()
		if !ok {
			return badFormat("clause ends after %%:")
		}
	}

	for strings.IndexByte("-+# 0", c) >= 0 {
		// '0' is a flag only before any width digits.
		if c == '0' {
			spec.flags += "0"
			var ok bool
			c, ok = in.next()
			if !ok {
				return badFormat("clause has no conversion letter")
			}
			break
		}
		spec.flags += string(c)
		var ok bool
		c, ok = in.next()
		if !ok {
			return badFormat("clause has no conversion letter")
		}
	}

	for c >= '0' && c <= '9' {
		spec.width = spec.width*10 + int(c-'0')
		spec.hasWidth = true
		var ok bool
		c, ok = in.next()
		if !ok {
			return badFormat("clause has no conversion letter")
		}
	}

	if c == '.' {
		spec.hasPrec = true
		var ok bool
		for {
			c, ok = in.next()
			if !ok {
				return badFormat("clause has no conversion letter")
			}
			if c < '0' || c > '9' {
				break
			}
			spec.precision = spec.precision*10 + int(c-'0')
		}
	}

	spec.verb = c
	switch c {
	case 'd', 'o', 'x', 'X':
		return in.formatNumber(spec)
	case 's':
		return in.formatString(spec)
	default:
		return badFormat("clause ends with %q, want one of d o x X s", c)
	}
}

func badFormat(msg string, args ...any) error {
	return errors.New(errors.PhaseExpand, errors.KindBadFormat).
		Detail(msg, args...).
		Build()
}

func (spec formatSpec) fmtString() string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(spec.flags)
	if spec.hasWidth {
		fmt.Fprintf(&b, "%d", spec.width)
	}
	if spec.hasPrec {
		fmt.Fprintf(&b, ".%d", spec.precision)
	}
	b.WriteByte(spec.verb)
	return b.String()
}

func (in *interp) formatNumber(spec formatSpec) error {
	n, err := in.popNumber(spec.verb)
	if err != nil {
		return err
	}
	in.out = fmt.Appendf(in.out, spec.fmtString(), n)
	return nil
}

func (in *interp) formatString(spec formatSpec) error {
	p, err := in.pop(spec.verb)
	if err != nil {
		return err
	}
	if p.Kind != ParamString {
		return errors.New(errors.PhaseExpand, errors.KindTypeMismatch).
			Detail("%%s requires a string, stack holds a number").
			Build()
	}
	if spec.flags == "" && !spec.hasWidth && !spec.hasPrec {
		in.out = append(in.out, p.Str...)
		return nil
	}
	in.out = fmt.Appendf(in.out, spec.fmtString(), p.Str)
	return nil
}

// conditionalThen handles %t: pop the predicate result and either keep
// executing the then-branch or skip ahead to the else-branch.
func (in *interp) conditionalThen() error {
	n, err := in.popNumber('t')
	if err != nil {
		return err
	}
	if n != 0 {
		return nil
	}
	return in.skipBranch(true)
}

// skipBranch scans forward without executing directives. With stopAtElse
// set it resumes after a %e at the current nesting depth (the predicate
// was false); otherwise it resumes after the closing %; (the then-branch
// ran and the else-branch is skipped whole). Conditionals nest, so inner
// %?/%; pairs are counted.
func (in *interp) skipBranch(stopAtElse bool) error {
	depth := 0
	for {
		c, ok := in.next()
		if !ok {
			return errors.New(errors.PhaseExpand, errors.KindUnbalancedCond).
				Detail("conditional not terminated by %%;").
				Build()
		}
		if c != '%' {
			continue
		}
		c, ok = in.next()
		if !ok {
			return errors.New(errors.PhaseExpand, errors.KindUnbalancedCond).
				Detail("conditional not terminated by %%;").
				Build()
		}
		switch c {
		case '?':
			depth++
		case ';':
			if depth == 0 {
				return nil
			}
			depth--
		case 'e':
			if depth == 0 && stopAtElse {
				return nil
			}
		}
	}
}
