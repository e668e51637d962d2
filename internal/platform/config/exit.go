package config

import (
	"fmt"
	"os"
)

// ExitCodef writes a formatted error message to stderr and exits with code.
// It provides a consistent fatal-exit pattern for CLI entry points.
func ExitCodef(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
