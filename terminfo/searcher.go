package terminfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// defaultDirs are the platform locations searched when the environment
// names none. The order follows ncurses: /etc/terminfo, /lib/terminfo,
// /usr/share/terminfo.
var defaultDirs = []string{"/etc/terminfo", "/lib/terminfo", "/usr/share/terminfo"}

// DBPath returns the filesystem path of the compiled database entry for
// the named terminal, searching in precedence order: $TERMINFO, then
// ~/.terminfo, then each entry of $TERMINFO_DIRS (empty entries substitute
// the platform defaults), then the platform defaults. Within a candidate
// directory the entry is looked up under the terminal's first character,
// then under that character's lowercase hex code (for case-insensitive
// filesystems). The second return is false when nothing matched.
func DBPath(term string) (string, bool) {
	if term == "" {
		return "", false
	}

	var dirs []string
	if dir := os.Getenv("TERMINFO"); dir != "" {
		dirs = append(dirs, dir)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".terminfo"))
		}
		if extra := os.Getenv("TERMINFO_DIRS"); extra != "" {
			for _, d := range strings.Split(extra, ":") {
				if d == "" {
					dirs = append(dirs, defaultDirs...)
				} else {
					dirs = append(dirs, d)
				}
			}
		} else {
			dirs = append(dirs, defaultDirs...)
		}
	}

	first := term[0]
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		candidates := []string{
			filepath.Join(dir, string(first), term),
			filepath.Join(dir, fmt.Sprintf("%x", first), term),
		}
		for _, p := range candidates {
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				Logger().Debug("terminfo entry resolved",
					zap.String("term", term),
					zap.String("path", p))
				return p, true
			}
		}
	}

	Logger().Debug("terminfo entry not found",
		zap.String("term", term),
		zap.Strings("searched", dirs))
	return "", false
}
