package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseDecode,
				Kind:       KindOutOfRange,
				Section:    "string table",
				Capability: "setaf",
				Detail:     "offset 9999 out of range",
			},
			contains: []string{"[decode]", "out_of_range", "string table section", "setaf", "offset 9999"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseExpand,
				Kind:  KindStackUnderflow,
			},
			contains: []string{"[expand]", "stack_underflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSearch,
				Kind:   KindNotFound,
				Detail: "no entry",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[search]", "not_found", "no entry", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindTruncated,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Truncated("numbers", 78, 12)
	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindTruncated}) {
		t.Error("expected match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseExpand, Kind: KindTruncated}) {
		t.Error("unexpected match across phases")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindBadMagic}) {
		t.Error("unexpected match across kinds")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("short read")
	err := New(PhaseDecode, KindTruncated).
		Section("booleans").
		Capability("am").
		Value(44).
		Cause(cause).
		Detail("need %d bytes", 44).
		Build()

	if err.Section != "booleans" || err.Capability != "am" {
		t.Errorf("builder fields not set: %+v", err)
	}
	if err.Detail != "need 44 bytes" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Unwrap() != cause {
		t.Error("cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"bad magic", BadMagic(0x1234), PhaseDecode, KindBadMagic, "0x1234"},
		{"truncated", Truncated("names", 10, 3), PhaseDecode, KindTruncated, "names section"},
		{"out of range", OutOfRange("cup", 5000, 100), PhaseDecode, KindOutOfRange, "cup"},
		{"stack underflow", StackUnderflow('d'), PhaseExpand, KindStackUnderflow, "%d"},
		{"missing arg", MissingArg(2, 0), PhaseExpand, KindMissingArg, "%p2"},
		{"bad directive", BadDirective('z'), PhaseExpand, KindBadDirective, "'z'"},
		{"not found", NotFound("vt52"), PhaseSearch, KindNotFound, "vt52"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
				t.Errorf("got phase=%s kind=%s", tt.err.Phase, tt.err.Kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q missing %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
