package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/kallsyms-go/kallsyms"
)

var testSymbols = []kallsyms.Symbol{
	{Address: 0xffffffff81000000, Name: "startup_64"},
	{Address: 0xffffffff81000100, Name: "secondary_startup_64"},
}

func TestPrintSymbolsPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printSymbols(&buf, formatPlain, testSymbols, true))

	want := "ffffffff81000000 startup_64\nffffffff81000100 secondary_startup_64\n"
	require.Equal(t, want, buf.String())
}

func TestPrintSymbolsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printSymbols(&buf, formatJSON, testSymbols, true))

	var got []jsonSymbol
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	want := []jsonSymbol{
		{Address: "ffffffff81000000", Name: "startup_64"},
		{Address: "ffffffff81000100", Name: "secondary_startup_64"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSymbolsToFilePlain(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, writeSymbolsToFile(fs, "/out.txt", formatPlain, testSymbols))

	content, err := afero.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	require.Equal(t, renderPlain(testSymbols), string(content))
}

func TestWriteSymbolsToFileJSON(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, writeSymbolsToFile(fs, "/out.json", formatJSON, testSymbols))

	content, err := afero.ReadFile(fs, "/out.json")
	require.NoError(t, err)

	want, err := renderJSON(testSymbols)
	require.NoError(t, err)
	require.Equal(t, want, content)
}
