package kallsyms

import (
	"encoding/binary"
	"testing"
)

func TestFindNamesSingleEntry(t *testing.T) {
	tt := newTokenTable(makeTestTokens())
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[16:], 1) // kallsyms_num_syms = 1
	buf[20] = 1                                // n_tokens
	buf[21] = 0                                // token id 0 -> "a"
	log := discardLogger()

	got, ok := findNames(buf, 22, tt, LittleEndian, log)
	if !ok {
		t.Fatalf("expected a names result")
	}
	if got.numSymsOffset != 16 {
		t.Fatalf("numSymsOffset = %d, want 16", got.numSymsOffset)
	}
	if len(got.names) != 1 || string(got.names[0]) != "a" {
		t.Fatalf("names = %v, want [\"a\"]", got.names)
	}
}

func TestFindNamesTwoEntries(t *testing.T) {
	tt := newTokenTable(makeTestTokens())
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[16:], 2) // kallsyms_num_syms = 2
	buf[20] = 1                                // "a"
	buf[21] = 0
	buf[22] = 1 // "b"
	buf[23] = 1
	log := discardLogger()

	got, ok := findNames(buf, 24, tt, LittleEndian, log)
	if !ok {
		t.Fatalf("expected a names result")
	}
	if got.numSymsOffset != 16 {
		t.Fatalf("numSymsOffset = %d, want 16", got.numSymsOffset)
	}
	want := []string{"a", "b"}
	if len(got.names) != len(want) {
		t.Fatalf("names = %v, want %v", got.names, want)
	}
	for i := range want {
		if string(got.names[i]) != want[i] {
			t.Fatalf("names = %v, want %v", got.names, want)
		}
	}
}

func TestFindNamesNoCandidate(t *testing.T) {
	tt := newTokenTable(makeTestTokens())
	buf := make([]byte, 64) // all zero: n_tokens == 0 everywhere, never valid
	log := discardLogger()

	if _, ok := findNames(buf, 24, tt, LittleEndian, log); ok {
		t.Fatalf("expected no names result from an all-zero region")
	}
}
