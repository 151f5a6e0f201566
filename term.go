package term

import (
	"io"

	"github.com/mistwood/term/parm"
	"github.com/mistwood/term/terminfo"
)

// Color is a terminal palette index.
type Color uint32

// The standard 16-color palette. The bright variants map onto 0-7 on
// terminals that only advertise 8 colors.
const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Attr is a terminal display attribute.
type Attr int

const (
	Bold Attr = iota
	Dim
	ItalicOn
	ItalicOff
	UnderlineOn
	UnderlineOff
	Blink
	StandoutOn
	StandoutOff
	Reverse
	Secure
)

// capName maps an attribute onto its capability short code. The mapping is
// a fixed table; the short codes are the wire contract with the database.
func (a Attr) capName() string {
	switch a {
	case Bold:
		return "bold"
	case Dim:
		return "dim"
	case ItalicOn:
		return "sitm"
	case ItalicOff:
		return "ritm"
	case UnderlineOn:
		return "smul"
	case UnderlineOff:
		return "rmul"
	case Blink:
		return "blink"
	case StandoutOn:
		return "smso"
	case StandoutOff:
		return "rmso"
	case Reverse:
		return "rev"
	case Secure:
		return "invis"
	}
	return ""
}

// Terminal emits capability-driven control sequences to an output stream.
// It knows how many colors the terminal supports and owns the variable
// store for one terminal session, so static %P slots persist across
// capability applications on the same Terminal.
type Terminal struct {
	out       io.Writer
	ti        *terminfo.TermInfo
	vars      *parm.Variables
	numColors uint32
}

// NewTerminal wraps out with the given capability record.
func NewTerminal(out io.Writer, ti *terminfo.TermInfo) *Terminal {
	var nc uint32
	_, haveFg := ti.Strings["setaf"]
	_, haveBg := ti.Strings["setab"]
	if haveFg && haveBg {
		nc = ti.Numbers["colors"]
	}
	return &Terminal{
		out:       out,
		ti:        ti,
		vars:      parm.NewVariables(),
		numColors: nc,
	}
}

// New wraps out with the capability record resolved from the environment.
func New(out io.Writer) (*Terminal, error) {
	ti, err := terminfo.FromEnv()
	if err != nil {
		return nil, err
	}
	return NewTerminal(out, ti), nil
}

// TermInfo returns the terminal's capability record.
func (t *Terminal) TermInfo() *terminfo.TermInfo {
	return t.ti
}

// NumColors reports how many colors the terminal supports; zero means no
// color support.
func (t *Terminal) NumColors() uint32 {
	return t.numColors
}

// Fg sets the foreground color. It reports false when the terminal cannot
// represent the color.
func (t *Terminal) Fg(c Color) (bool, error) {
	c = t.dimIfNecessary(c)
	if t.numColors > uint32(c) {
		return t.applyCap("setaf", parm.Number(int(c)))
	}
	return false, nil
}

// Bg sets the background color.
func (t *Terminal) Bg(c Color) (bool, error) {
	c = t.dimIfNecessary(c)
	if t.numColors > uint32(c) {
		return t.applyCap("setab", parm.Number(int(c)))
	}
	return false, nil
}

// SetAttr applies a display attribute. It reports false when the terminal
// does not support it, which callers treat as "proceed without".
func (t *Terminal) SetAttr(a Attr) (bool, error) {
	return t.applyCap(a.capName())
}

// SupportsAttr reports whether the terminal advertises the attribute.
func (t *Terminal) SupportsAttr(a Attr) bool {
	_, ok := t.ti.Strings[a.capName()]
	return ok
}

// Reset clears color and attribute state, trying sgr0, then sgr, then op.
func (t *Terminal) Reset() (bool, error) {
	for _, name := range [...]string{"sgr0", "sgr", "op"} {
		tmpl, ok := t.ti.Strings[name]
		if !ok {
			continue
		}
		cmd, err := parm.Expand(tmpl, nil, t.vars)
		if err != nil {
			return false, nil
		}
		if _, err := t.out.Write(cmd); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Write passes bytes through to the underlying stream.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// dimIfNecessary folds bright colors onto the base palette when the
// terminal advertises fewer than 16 colors.
func (t *Terminal) dimIfNecessary(c Color) Color {
	if uint32(c) >= t.numColors && c >= 8 && c < 16 {
		return c - 8
	}
	return c
}

func (t *Terminal) applyCap(name string, params ...parm.Param) (bool, error) {
	tmpl, ok := t.ti.Strings[name]
	if !ok {
		return false, nil
	}
	cmd, err := parm.Expand(tmpl, params, t.vars)
	if err != nil {
		return false, nil
	}
	if _, err := t.out.Write(cmd); err != nil {
		return false, err
	}
	return true, nil
}
