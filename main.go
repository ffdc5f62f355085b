// This is the main-driver for our compiler.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/chrislewisdev/tugboat/compiler"
)

func main() {
	output := flag.String("o", "", "The path to write generated assembly to (default: input path with .asm).")
	flag.StringVar(output, "output", "", "Alias for -o.")
	verbose := flag.Bool("v", false, "Echo the generated assembly to standard output.")
	flag.BoolVar(verbose, "verbose", false, "Alias for -v.")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Println("Usage: tugboat [-o output.asm] [-v] <file>")
		os.Exit(1)
	}

	path := flag.Args()[0]
	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Unable to open %s: %s\n", path, err)
		os.Exit(1)
	}

	asm, diags := compiler.Compile(string(source))
	if len(diags) > 0 {
		red := color.New(color.FgRed)
		for _, d := range diags {
			red.Println(d.String())
		}
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(asm), 0644); err != nil {
		fmt.Printf("Failed to write %s: %s\n", outPath, err)
		os.Exit(1)
	}

	if *verbose {
		color.New(color.FgCyan).Println(asm)
	}
}

// defaultOutputPath replaces path's extension with ".asm", per §6.
func defaultOutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".asm"
}
