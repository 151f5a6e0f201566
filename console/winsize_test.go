package console_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mistwood/term/console"
)

func TestWinsizeOnRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, _, err := console.Winsize(f.Fd()); err == nil {
		t.Error("expected error for a regular file")
	}
	if console.IsTerminal(f.Fd()) {
		t.Error("regular file reported as terminal")
	}
}

func TestWinsizeOnTerminal(t *testing.T) {
	if !console.IsTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is not a terminal")
	}
	rows, cols, err := console.Winsize(os.Stdout.Fd())
	if err != nil {
		t.Fatalf("Winsize: %v", err)
	}
	if rows <= 0 || cols <= 0 {
		t.Errorf("rows=%d cols=%d", rows, cols)
	}
}
