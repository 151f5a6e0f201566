//go:build windows

package console

import "golang.org/x/sys/windows"

// Winsize returns the console window dimensions of the given handle.
func Winsize(fd uintptr) (rows, cols int, err error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return 0, 0, err
	}
	rows = int(info.Window.Bottom-info.Window.Top) + 1
	cols = int(info.Window.Right-info.Window.Left) + 1
	return rows, cols, nil
}
