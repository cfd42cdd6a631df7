package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/afero"

	"github.com/kallsyms-go/kallsyms"
)

type jsonSymbol struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func renderPlain(symbols []kallsyms.Symbol) string {
	var b strings.Builder
	for _, s := range symbols {
		fmt.Fprintf(&b, "%016x %s\n", s.Address, s.Name)
	}
	return b.String()
}

func renderJSON(symbols []kallsyms.Symbol) ([]byte, error) {
	out := make([]jsonSymbol, len(symbols))
	for i, s := range symbols {
		out[i] = jsonSymbol{Address: fmt.Sprintf("%016x", s.Address), Name: s.Name}
	}
	return json.MarshalIndent(out, "", "  ")
}

// printSymbols writes symbols to w in the requested format. For plain
// output the address column is highlighted via fatih/color unless noColor
// is set or color.NoColor is set (fatih/color sets it when os.Stdout, not
// necessarily w, isn't a terminal).
func printSymbols(w io.Writer, format string, symbols []kallsyms.Symbol, noColor bool) error {
	if format == formatJSON {
		data, err := renderJSON(symbols)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	addr := color.New(color.FgCyan)
	if noColor {
		addr.DisableColor()
	}
	for _, s := range symbols {
		if _, err := addr.Fprintf(w, "%016x", s.Address); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s\n", s.Name); err != nil {
			return err
		}
	}
	return nil
}

// writeSymbolsToFile renders symbols and writes them to path. On a real
// filesystem the write is atomic (natefinch/atomic), so a crash or a
// concurrent reader never observes a half-written file; in-memory test
// filesystems don't support the rename-based swap atomic.WriteFile needs,
// so they get a plain write instead.
func writeSymbolsToFile(fs afero.Fs, path, format string, symbols []kallsyms.Symbol) error {
	var content []byte
	switch format {
	case formatJSON:
		data, err := renderJSON(symbols)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		content = data
	default:
		content = []byte(renderPlain(symbols))
	}

	if _, ok := fs.(*afero.OsFs); ok {
		if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
