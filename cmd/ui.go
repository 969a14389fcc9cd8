package cmd

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

// stat prints one aligned "name  value" line.
func stat(name string, value any) {
	fmt.Printf("  %s  %v\n", brand.Sprintf("%-12s", name), value)
}
