package kallsyms

import (
	"bytes"
	"iter"
	"log/slog"
)

// tokenTableCandidate is one candidate location of kallsyms_token_table:
// 256 distinct, null-terminated byte strings, anchored by a token index.
type tokenTableCandidate struct {
	offset int
	table  tokenTable
}

// findTokenTables locates the kallsyms_token_table that precedes the given
// token index candidate.
//
// The table may be followed by zero-padding before the index starts (the
// index is 512 bytes and the kernel aligns surrounding data, not the table
// itself). Walk backward over that padding first, then find the last
// token's null terminator, then use index[255] — the byte offset of the
// last token within the table — to recover the table's own origin.
func findTokenTables(data []byte, cand tokenIndexCandidate, log *slog.Logger) iter.Seq[tokenTableCandidate] {
	return func(yield func(tokenTableCandidate) bool) {
		end := cand.offset
		for end-2 >= 0 && data[end-2] == 0 {
			end--
		}
		if end-1 < 0 || data[end-1] != 0 {
			return
		}
		lastNull := bytes.LastIndexByte(data[:end-1], 0)
		lastTokenOffset := lastNull + 1
		if lastTokenOffset == 0 {
			return
		}
		offset := lastTokenOffset - int(cand.index[255])
		if offset < 0 {
			return
		}
		if tbl, ok := tryParseTokenTable(data, cand.index, offset, end); ok {
			log.Debug("kallsyms_token_table", "offset", hexOffset(offset))
			yield(tokenTableCandidate{offset: offset, table: tbl})
		}
	}
}

func tryParseTokenTable(data []byte, index [256]uint16, start, end int) (tokenTable, bool) {
	var tokens [256][]byte
	seen := make(map[string]bool, 256)
	for i := 0; i < 256; i++ {
		tokenStart := start + int(index[i])
		var tokenEnd int
		if i == 255 {
			tokenEnd = end
		} else {
			tokenEnd = start + int(index[i+1])
		}
		if !inBounds(data, tokenStart, tokenEnd-tokenStart) || tokenEnd <= tokenStart {
			return tokenTable{}, false
		}
		raw := data[tokenStart:tokenEnd]
		if raw[len(raw)-1] != 0 {
			return tokenTable{}, false
		}
		tok := raw[:len(raw)-1]
		if bytes.IndexByte(tok, 0) >= 0 {
			return tokenTable{}, false
		}
		key := string(tok)
		if seen[key] {
			return tokenTable{}, false
		}
		seen[key] = true
		tokens[i] = tok
	}
	return newTokenTable(tokens), true
}
