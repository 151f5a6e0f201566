// Package terminfo decodes compiled terminfo database entries (term(5)).
//
// The decoder is a pure function over a byte slice:
//
//	data, _ := os.ReadFile("/lib/terminfo/x/xterm")
//	ti, err := terminfo.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ti.Names[0], ti.Numbers["colors"])
//
// Both the legacy format (magic 0x011a, 16-bit numbers) and the extended
// number format (magic 0x021e, 32-bit numbers) are supported. Hashed
// databases and termcap sources are not.
//
// FromName and FromEnv resolve an entry through the standard filesystem
// search ($TERMINFO, ~/.terminfo, $TERMINFO_DIRS, then the platform
// defaults). Capability values keep their short codes verbatim ("setaf",
// "cols", "am"); string capabilities are raw templates for the parm
// package to expand.
package terminfo
