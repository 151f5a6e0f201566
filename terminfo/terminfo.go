package terminfo

import (
	"os"

	"github.com/mistwood/term/errors"
)

// TermInfo is a decoded terminfo database entry.
type TermInfo struct {
	// Names holds the terminal's aliases. The first entry is canonical.
	Names []string
	// Bools maps capability short codes to boolean flags. An absent key
	// means the capability is not advertised.
	Bools map[string]bool
	// Numbers maps capability short codes to numeric values. Absent and
	// cancelled entries are excluded during decoding.
	Numbers map[string]uint32
	// Strings maps capability short codes to raw, unexpanded templates.
	Strings map[string][]byte
}

// Name returns the canonical terminal name.
func (ti *TermInfo) Name() string {
	if len(ti.Names) == 0 {
		return ""
	}
	return ti.Names[0]
}

// FromPath decodes the compiled database entry at the given path.
func FromPath(path string) (*TermInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseSearch, errors.KindNotFound).
			Cause(err).
			Detail("reading %s", path).
			Build()
	}
	return Decode(data)
}

// FromName locates and decodes the database entry for the named terminal.
func FromName(name string) (*TermInfo, error) {
	path, ok := DBPath(name)
	if !ok {
		return nil, errors.NotFound(name)
	}
	return FromPath(path)
}

// FromEnv resolves the entry for $TERM. When no database entry exists but
// the environment reports a mintty console ($MSYSCON), the built-in msys
// record is substituted.
func FromEnv() (*TermInfo, error) {
	name := os.Getenv("TERM")
	if name == "" {
		return nil, errors.New(errors.PhaseSearch, errors.KindNotFound).
			Detail("TERM is not set").
			Build()
	}

	ti, err := FromName(name)
	if err != nil {
		if os.Getenv("MSYSCON") == "mintty.exe" {
			return Msys(), nil
		}
		return nil, err
	}
	return ti, nil
}
