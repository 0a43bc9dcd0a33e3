package models

import (
	"flag"
	"fmt"
	"strings"
)

// PrintFlags prints a flag list with aligned names and defaults.
func PrintFlags(flags []*flag.Flag) {
	wname := 0
	wdef := 0
	for _, f := range flags {
		if len(f.Name) > wname {
			wname = len(f.Name)
		}
		if len(f.DefValue) > wdef {
			wdef = len(f.DefValue)
		}
	}
	namefmt := fmt.Sprintf("%%-%ds", wname)
	for _, f := range flags {
		fmt.Printf("  -"+namefmt, f.Name)
		if f.DefValue != "" && f.DefValue != "false" {
			def := "(" + f.DefValue + ")"
			fmt.Printf(" %s%s", def, strings.Repeat(" ", wdef+2-len(def)))
		} else {
			fmt.Printf(" %s", strings.Repeat(" ", wdef+2))
		}
		fmt.Printf(" %s\n", f.Usage)
	}
}
