package logger

import (
	"fmt"
	"strings"
)

// ANSI color codes. Kept as plain constants so output degrades gracefully
// when piped to a file.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Banner prints the startup banner with the given version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s%sed-tradepair%s %s%s%s\n", bold, cyan, reset, dim, version, reset)
	fmt.Printf("%sElite: Dangerous trade pair finder%s\n\n", dim, reset)
}

// Info prints an informational message with a tag.
func Info(tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", cyan, tag, reset, msg)
}

// Success prints a success message with a tag.
func Success(tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", green, tag, reset, msg)
}

// Warn prints a warning message with a tag.
func Warn(tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", yellow, tag, reset, msg)
}

// Error prints an error message with a tag.
func Error(tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", red, tag, reset, msg)
}

// Section prints a section divider with a title.
func Section(title string) {
	fmt.Printf("\n%s%s%s\n%s%s%s\n", bold, title, reset, dim, strings.Repeat("─", len(title)+4), reset)
}

// Stats prints an aligned key/count line, used after loading data tables.
func Stats(label string, n int) {
	fmt.Printf("  %-14s %s%d%s\n", label, bold, n, reset)
}
