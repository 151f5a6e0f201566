package terminfo

import (
	"bytes"
	"strings"

	"github.com/mistwood/term/errors"
	"github.com/mistwood/term/terminfo/internal/binary"
)

// Magic numbers accepted in the compiled header. The magic selects the
// width of the numeric-capability section.
const (
	MagicLegacy   uint16 = 0x011a // 16-bit numbers (octal 0432)
	MagicExtended uint16 = 0x021e // 32-bit numbers (octal 01036)
)

// numberFormat is the numeric-section width, resolved once from the magic
// number before any section is decoded.
type numberFormat int

const (
	numbers16 numberFormat = iota
	numbers32
)

// headerLen is the fixed size of the six 16-bit header fields.
const headerLen = 12

// Decode parses a compiled terminfo entry. It is a pure function of the
// input bytes: no I/O, no environment access. Trailing bytes after the
// fixed sections (the extended capability block) are ignored.
func Decode(data []byte) (*TermInfo, error) {
	r := binary.NewReader(data)
	if r.Remaining() < headerLen {
		return nil, errors.Truncated("header", headerLen, r.Remaining())
	}

	magic, _ := r.ReadU16()
	var format numberFormat
	switch magic {
	case MagicLegacy:
		format = numbers16
	case MagicExtended:
		format = numbers32
	default:
		return nil, errors.BadMagic(magic)
	}

	namesLen, _ := r.ReadU16()
	boolCount, _ := r.ReadU16()
	numCount, _ := r.ReadU16()
	strCount, _ := r.ReadU16()
	tableLen, _ := r.ReadU16()

	if int(boolCount) > len(boolNames) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfRange).
			Section("header").
			Detail("%d boolean capabilities exceeds the known table of %d", boolCount, len(boolNames)).
			Build()
	}
	if int(numCount) > len(numNames) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfRange).
			Section("header").
			Detail("%d numeric capabilities exceeds the known table of %d", numCount, len(numNames)).
			Build()
	}
	if int(strCount) > len(strNames) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfRange).
			Section("header").
			Detail("%d string capabilities exceeds the known table of %d", strCount, len(strNames)).
			Build()
	}

	names, err := decodeNames(r, int(namesLen))
	if err != nil {
		return nil, err
	}

	ti := &TermInfo{
		Names:   names,
		Bools:   make(map[string]bool),
		Numbers: make(map[string]uint32),
		Strings: make(map[string][]byte),
	}

	if err := decodeBools(r, ti, int(boolCount)); err != nil {
		return nil, err
	}

	// The numeric section must start on a 2-byte boundary. The header is
	// even, so parity depends on the names and boolean sections alone.
	if (int(namesLen)+int(boolCount))%2 == 1 {
		if err := r.Skip(1); err != nil {
			return nil, errors.Truncated("alignment padding", 1, 0)
		}
	}

	if err := decodeNumbers(r, ti, int(numCount), format); err != nil {
		return nil, err
	}

	offsets, err := decodeStringOffsets(r, int(strCount))
	if err != nil {
		return nil, err
	}

	table, err := r.ReadBytes(int(tableLen))
	if err != nil {
		return nil, errors.Truncated("string table", int(tableLen), r.Remaining())
	}

	if err := resolveStrings(ti, offsets, table); err != nil {
		return nil, err
	}

	return ti, nil
}

func decodeNames(r *binary.Reader, namesLen int) ([]string, error) {
	raw, err := r.ReadBytes(namesLen)
	if err != nil {
		return nil, errors.Truncated("names", namesLen, r.Remaining())
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	var names []string
	for _, name := range strings.Split(string(raw), "|") {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindEmptyNames).
			Section("names").
			Detail("entry has no terminal names").
			Build()
	}
	return names, nil
}

func decodeBools(r *binary.Reader, ti *TermInfo, count int) error {
	for i := 0; i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return errors.Truncated("booleans", count, i)
		}
		if b != 0 {
			ti.Bools[boolNames[i]] = true
		}
	}
	return nil
}

func decodeNumbers(r *binary.Reader, ti *TermInfo, count int, format numberFormat) error {
	for i := 0; i < count; i++ {
		var v uint32
		switch format {
		case numbers16:
			n, err := r.ReadU16()
			if err != nil {
				return errors.Truncated("numbers", count*2, r.Remaining())
			}
			// Sign-extend so the two sentinels share one representation
			// with the 32-bit format.
			v = uint32(int32(int16(n)))
		case numbers32:
			n, err := r.ReadU32()
			if err != nil {
				return errors.Truncated("numbers", count*4, r.Remaining())
			}
			v = n
		}
		switch v {
		case 0xffffffff, 0xfffffffe: // absent, cancelled
			continue
		}
		ti.Numbers[numNames[i]] = v
	}
	return nil
}

func decodeStringOffsets(r *binary.Reader, count int) ([]int16, error) {
	offsets := make([]int16, count)
	for i := 0; i < count; i++ {
		off, err := r.ReadI16()
		if err != nil {
			return nil, errors.Truncated("string offsets", count*2, r.Remaining())
		}
		offsets[i] = off
	}
	return offsets, nil
}

func resolveStrings(ti *TermInfo, offsets []int16, table []byte) error {
	for i, off := range offsets {
		name := strNames[i]
		switch {
		case off == -1 || off == -2: // absent, cancelled
			continue
		case off < 0:
			return errors.OutOfRange(name, int(off), len(table))
		case int(off) >= len(table):
			return errors.OutOfRange(name, int(off), len(table))
		}

		end := bytes.IndexByte(table[off:], 0)
		if end < 0 {
			return errors.New(errors.PhaseDecode, errors.KindTruncated).
				Section("string table").
				Capability(name).
				Detail("capability value is not NUL-terminated").
				Build()
		}
		ti.Strings[name] = table[int(off) : int(off)+end]
	}
	return nil
}
