package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadU16(t *testing.T) {
	r := NewReader([]byte{0x1a, 0x01, 0xff, 0xff})
	v, err := r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16: %v", err)
	}
	if v != 0x011a {
		t.Errorf("got 0x%04x, want 0x011a", v)
	}
	v, err = r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16: %v", err)
	}
	if v != 0xffff {
		t.Errorf("got 0x%04x, want 0xffff", v)
	}
	if _, err := r.ReadU16(); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}

func TestReadI16Sentinels(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff, 0xfe, 0xff})
	v, err := r.ReadI16()
	if err != nil || v != -1 {
		t.Errorf("got %d, %v; want -1", v, err)
	}
	v, err = r.ReadI16()
	if err != nil || v != -2 {
		t.Errorf("got %d, %v; want -2", v, err)
	}
}

func TestReadU32(t *testing.T) {
	r := NewReader([]byte{0x78, 0x56, 0x34, 0x12})
	v, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("got 0x%08x", v)
	}
}

func TestReadCString(t *testing.T) {
	r := NewReader([]byte("xterm|X11 terminal\x00rest"))
	s, err := r.ReadCString()
	if err != nil {
		t.Fatalf("ReadCString: %v", err)
	}
	if !bytes.Equal(s, []byte("xterm|X11 terminal")) {
		t.Errorf("got %q", s)
	}
	if r.Remaining() != 4 {
		t.Errorf("remaining = %d, want 4", r.Remaining())
	}
}

func TestReadCStringMissingNUL(t *testing.T) {
	r := NewReader([]byte("no terminator"))
	if _, err := r.ReadCString(); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}

func TestSkipAndPosition(t *testing.T) {
	r := NewReader(make([]byte, 10))
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Position() != 3 || r.Remaining() != 7 {
		t.Errorf("pos=%d remaining=%d", r.Position(), r.Remaining())
	}
	if err := r.Skip(8); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}

func TestReadBytesAliases(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(b) != 2 || b[0] != 1 || b[1] != 2 {
		t.Errorf("got %v", b)
	}
	if _, err := r.ReadBytes(3); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}
