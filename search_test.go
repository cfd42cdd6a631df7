package kallsyms

import (
	"encoding/binary"
	"testing"
)

// buildRoundTrip assembles a minimal, self-consistent rodata blob: a prefix
// holding addresses, kallsyms_num_syms, kallsyms_names and kallsyms_markers
// (caller-supplied, in whichever encoding the scenario exercises), followed
// immediately by a full kallsyms_token_table/kallsyms_token_index pair built
// from makeTestTokens, with the token index stored in byte order bo.
func buildRoundTrip(prefix []byte, bo binary.ByteOrder) []byte {
	table, index := encodeTokenTable(makeTestTokens())
	buf := make([]byte, len(prefix)+len(table)+512)
	copy(buf, prefix)
	indexOffset := len(prefix) + len(table)
	copy(buf[len(prefix):], table)
	for i := 0; i < 256; i++ {
		bo.PutUint16(buf[indexOffset+i*2:], index[i])
	}
	return buf
}

func TestSearchLittleEndian64AbsoluteAddressesFirst(t *testing.T) {
	const addr0 = uint64(0xffffffff80001234)
	const addr1 = uint64(0xffffffff80005678)

	prefix := make([]byte, 36)
	binary.LittleEndian.PutUint64(prefix[0:], addr0)
	binary.LittleEndian.PutUint64(prefix[8:], addr1)
	binary.LittleEndian.PutUint32(prefix[16:], 2) // kallsyms_num_syms
	prefix[20], prefix[21] = 1, 0                 // "a"
	prefix[22], prefix[23] = 1, 1                 // "b"
	binary.LittleEndian.PutUint32(prefix[24:], 0)
	binary.LittleEndian.PutUint32(prefix[28:], 2)
	binary.LittleEndian.PutUint32(prefix[32:], 10)

	buf := buildRoundTrip(prefix, binary.LittleEndian)

	var got []Symbol
	for s := range Search(buf, Options{Logger: discardLogger()}) {
		got = append(got, s)
	}
	if len(got) != 2 {
		t.Fatalf("got %d symbols, want 2: %+v", len(got), got)
	}
	if got[0].Address != addr0 || got[0].Name != "a" {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Address != addr1 || got[1].Name != "b" {
		t.Fatalf("got[1] = %+v", got[1])
	}
}

func TestSearchBigEndian32AbsoluteAddressesFirst(t *testing.T) {
	const addr0 = uint64(0x80001234)
	const addr1 = uint64(0x80005678)

	prefix := make([]byte, 28)
	binary.BigEndian.PutUint32(prefix[0:], uint32(addr0))
	binary.BigEndian.PutUint32(prefix[4:], uint32(addr1))
	binary.BigEndian.PutUint32(prefix[8:], 2) // kallsyms_num_syms
	prefix[12], prefix[13] = 1, 0             // "a"
	prefix[14], prefix[15] = 1, 1             // "b"
	binary.BigEndian.PutUint32(prefix[16:], 0)
	binary.BigEndian.PutUint32(prefix[20:], 2)
	binary.BigEndian.PutUint32(prefix[24:], 10)

	buf := buildRoundTrip(prefix, binary.BigEndian)

	var got []Symbol
	for s := range Search(buf, Options{Logger: discardLogger()}) {
		got = append(got, s)
	}
	if len(got) != 2 {
		t.Fatalf("got %d symbols, want 2: %+v", len(got), got)
	}
	if got[0].Address != addr0 || got[0].Name != "a" {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Address != addr1 || got[1].Name != "b" {
		t.Fatalf("got[1] = %+v", got[1])
	}
}

func TestSearchTooSmallReturnsEmpty(t *testing.T) {
	buf := make([]byte, minRodataSize-1)
	for s := range Search(buf, Options{Logger: discardLogger()}) {
		t.Fatalf("unexpected symbol from an undersized buffer: %+v", s)
	}
}

func TestSearchGarbageReturnsEmpty(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i*7 + 13)
	}
	for s := range Search(buf, Options{Logger: discardLogger(), MaxMarkersSweep: 4096}) {
		t.Fatalf("unexpected symbol from a garbage buffer: %+v", s)
	}
}
