// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"sever/internal/cir"
	"sever/internal/diag"
	"sever/internal/sirs"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sever <file.sirs>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	prog, err := sirs.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.New(color.FgRed, color.Bold).Sprint("error"), err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	reporter := diag.NewReporter()
	module, err := cir.NewLowering(reporter).Lower(prog, moduleName(path))

	if reporter.HasErrors() || err != nil {
		fmt.Print(reporter.Format(path))
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	fmt.Println(cir.Print(module))
	color.Green("Successfully lowered %s in %s", path, formatDuration(time.Since(startTime)))
}

// moduleName derives the CIR module name from the input file name.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
