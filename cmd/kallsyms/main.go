// Command kallsyms recovers a Linux kernel symbol table from a raw
// .rodata dump, a vmlinux-style ELF image, or a gzip/zstd-compressed image.
//
// Usage:
//
//	kallsyms [flags] <input-file>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/kallsyms-go/kallsyms"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs()))
}

func run(args []string, out, errOut io.Writer, fs afero.Fs) int {
	flagSet := flag.NewFlagSet("kallsyms", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	format := flagSet.String("format", formatPlain, "output format: plain or json")
	configPath := flagSet.String("config", "", "path to a HuJSON config file")
	outPath := flagSet.String("out", "", "write output to this file instead of stdout")
	noColor := flagSet.Bool("no-color", false, "disable ANSI highlighting of the address column")
	maxSweep := flagSet.Int("max-markers-sweep", 0, "override the markers_end_offset sweep bound (0 keeps the config file's value or the built-in default)")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	remaining := flagSet.Args()
	if len(remaining) != 1 {
		fmt.Fprintln(errOut, "usage: kallsyms [flags] <rodata-or-vmlinux-or-compressed-image>")
		return 2
	}

	cfg, err := loadConfig(fs, *configPath)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if *maxSweep > 0 {
		cfg.MaxMarkersSweep = *maxSweep
	}
	if flagSet.Changed("format") {
		cfg.Format = *format
	}
	if cfg.Format != formatPlain && cfg.Format != formatJSON {
		fmt.Fprintf(errOut, "error: %v: %s\n", errUnsupportedFormat, cfg.Format)
		return 2
	}

	rodata, err := extractRodata(fs, remaining[0])
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	opts := kallsyms.Options{MaxMarkersSweep: cfg.MaxMarkersSweep}

	var symbols []kallsyms.Symbol
	for s := range kallsyms.Search(rodata, opts) {
		symbols = append(symbols, s)
	}

	if *outPath != "" {
		if err := writeSymbolsToFile(fs, *outPath, cfg.Format, symbols); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		return 0
	}

	if err := printSymbols(out, cfg.Format, symbols, *noColor); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}
