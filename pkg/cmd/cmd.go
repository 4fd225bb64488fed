package cmd

import (
	"flag"
	"fmt"
	"os"
)

// DieWithUsage is a utility that assumes usage of the flag library. It prints
// a usage line, the flag arguments, and then exits.
func DieWithUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

// DieWithMessage prints the message to stderr and then dies with usage.
func DieWithMessage(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	DieWithUsage()
}
