package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mistwood/term/parm"
	"github.com/mistwood/term/terminfo"
)

func main() {
	var (
		termName    = flag.String("term", os.Getenv("TERM"), "Terminal type (defaults to $TERM)")
		showPath    = flag.Bool("path", false, "Print the resolved database path and exit")
		list        = flag.Bool("list", false, "List all capabilities in the entry")
		capName     = flag.String("cap", "", "Capability to print, expanding string templates")
		argList     = flag.String("args", "", "Expansion arguments (comma-separated numbers or strings)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log database discovery steps")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			terminfo.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if *termName == "" {
		fmt.Fprintln(os.Stderr, "Usage: tinfo -term <name> [-list] [-cap name [-args a,b]] [-path]")
		fmt.Fprintln(os.Stderr, "       tinfo -term <name> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*termName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*termName, *capName, *argList, *showPath, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(termName, capName, argList string, showPath, list bool) error {
	if showPath {
		path, ok := terminfo.DBPath(termName)
		if !ok {
			return fmt.Errorf("no terminfo entry for %q", termName)
		}
		fmt.Println(path)
		return nil
	}

	ti, err := terminfo.FromName(termName)
	if err != nil {
		return err
	}

	if list {
		dump(ti)
		return nil
	}

	if capName != "" {
		return printCap(ti, capName, argList)
	}

	fmt.Printf("Terminal: %s\n", strings.Join(ti.Names, " | "))
	fmt.Printf("Booleans: %d\n", len(ti.Bools))
	fmt.Printf("Numbers:  %d\n", len(ti.Numbers))
	fmt.Printf("Strings:  %d\n", len(ti.Strings))
	return nil
}

func dump(ti *terminfo.TermInfo) {
	fmt.Println(strings.Join(ti.Names, " | "))

	for _, name := range sortedKeys(ti.Bools) {
		fmt.Printf("\t%s\n", name)
	}
	for _, name := range sortedKeys(ti.Numbers) {
		fmt.Printf("\t%s#%d\n", name, ti.Numbers[name])
	}
	for _, name := range sortedKeys(ti.Strings) {
		fmt.Printf("\t%s=%s\n", name, escape(ti.Strings[name]))
	}
}

func printCap(ti *terminfo.TermInfo, name, argList string) error {
	if v, ok := ti.Bools[name]; ok {
		fmt.Println(v)
		return nil
	}
	if v, ok := ti.Numbers[name]; ok {
		fmt.Println(v)
		return nil
	}
	tmpl, ok := ti.Strings[name]
	if !ok {
		return fmt.Errorf("terminal %s has no capability %q", ti.Name(), name)
	}

	if argList == "" {
		fmt.Println(escape(tmpl))
		return nil
	}

	out, err := parm.Expand(tmpl, parseArgs(argList), nil)
	if err != nil {
		return err
	}
	fmt.Println(escape(out))
	return nil
}

// parseArgs turns "3,7,hello" into typed expansion arguments: decimal
// fields become numbers, everything else a string.
func parseArgs(s string) []parm.Param {
	if s == "" {
		return nil
	}
	var params []parm.Param
	for _, field := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(field); err == nil {
			params = append(params, parm.Number(n))
		} else {
			params = append(params, parm.Str([]byte(field)))
		}
	}
	return params
}

// escape renders capability bytes with control characters visible.
func escape(b []byte) string {
	q := strconv.Quote(string(b))
	return q[1 : len(q)-1]
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
