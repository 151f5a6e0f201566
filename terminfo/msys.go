package terminfo

// Msys returns a hard-coded record for msys/cygwin-style consoles. These
// report terminal types the filesystem search cannot resolve, so the record
// is built from literals rather than decoded bytes.
func Msys() *TermInfo {
	return &TermInfo{
		Names: []string{"cygwin"},
		Bools: map[string]bool{},
		Numbers: map[string]uint32{
			"colors": 8,
		},
		Strings: map[string][]byte{
			"sgr0":  []byte("\x1b[0m"),
			"bold":  []byte("\x1b[1m"),
			"setaf": []byte("\x1b[3%p1%dm"),
			"setab": []byte("\x1b[4%p1%dm"),
		},
	}
}
