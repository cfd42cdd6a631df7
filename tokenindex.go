package kallsyms

import (
	"bytes"
	"fmt"
	"iter"
	"log/slog"
)

// tokenIndexCandidate is one candidate location of kallsyms_token_index:
// 256 monotonically increasing 16-bit offsets into kallsyms_token_table,
// starting at 0.
type tokenIndexCandidate struct {
	offset int
	index  [256]uint16
}

// findTokenIndices scans data for every offset at which a valid
// kallsyms_token_index could start, in the given endianness.
//
// kallsyms_token_table immediately precedes kallsyms_token_index and is a
// run of null-terminated strings, so the byte just before the index is a
// null, and index[0] == 0 contributes two more null bytes (one in each
// endianness, since 0 is 0 regardless of byte order). The index is
// therefore always preceded by three consecutive null bytes; scanning for
// that triple is far cheaper than trying every offset.
func findTokenIndices(data []byte, order Endianness, log *slog.Logger) iter.Seq[tokenIndexCandidate] {
	return func(yield func(tokenIndexCandidate) bool) {
		search := data
		base := 0
		for {
			rel := bytes.Index(search, []byte{0, 0, 0})
			if rel < 0 {
				return
			}
			offset := base + rel + 1
			if !inBounds(data, offset, 512) {
				return
			}
			if idx, ok := tryParseTokenIndex(data, order, offset); ok {
				log.Debug("kallsyms_token_index", "offset", hexOffset(offset), "endian", order.String())
				if !yield(tokenIndexCandidate{offset: offset, index: idx}) {
					return
				}
			}
			// Advance one byte past the first null of this triple, so
			// overlapping triples (e.g. four nulls in a row) are not missed.
			base += rel + 1
			search = data[base:]
		}
	}
}

func tryParseTokenIndex(data []byte, order Endianness, offset int) ([256]uint16, bool) {
	var idx [256]uint16
	prev := order.uint16(data[offset : offset+2])
	if prev != 0 {
		return idx, false
	}
	idx[0] = 0
	for i := 1; i < 256; i++ {
		off := offset + i*2
		v := order.uint16(data[off : off+2])
		if v <= prev {
			return idx, false
		}
		idx[i] = v
		prev = v
	}
	return idx, true
}

// hexOffset formats an offset for trace-level log fields.
func hexOffset(n int) string { return fmt.Sprintf("0x%08x", n) }
