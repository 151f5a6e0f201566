//go:build unix

package console

import "golang.org/x/sys/unix"

// Winsize returns the terminal dimensions of the given file descriptor.
// It fails when fd does not refer to a terminal.
func Winsize(fd uintptr) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
