package kallsyms

import "log/slog"

// namesResult is the one reconstruction NamesFinder can produce for a
// given markers candidate: the offset of kallsyms_num_syms and the decoded
// names, in kallsyms_names order.
type namesResult struct {
	numSymsOffset int
	names         [][]byte
}

// dpEntry is the backward-DP's per-offset verdict: either "a valid chain
// of count name entries, this one included, runs from this offset up to
// markersOffset" (count 0 for trailing padding), or "invalid". A bare int cannot distinguish "zero valid entries follow"
// from "this offset is not a valid start" without conflating the two, so
// the tag is explicit.
type dpEntry struct {
	count int
	valid bool
}

// findNames walks kallsyms_names backward from markersOffset and forward-
// validates each candidate start against already-decided successors,
// exactly as described in spec section 4.4. It yields at most one result:
// the first (nearest-to-markers) position where both a self-consistent
// chain of name entries AND a plausible kallsyms_num_syms field line up.
func findNames(data []byte, markersOffset int, tt tokenTable, order Endianness, log *slog.Logger) (namesResult, bool) {
	if markersOffset < 9 {
		return namesResult{}, false
	}
	maxDist := markersOffset - 9
	counts := make([]dpEntry, maxDist+1)
	counts[0] = dpEntry{count: 0, valid: true}

	trailing := true
	for p := markersOffset - 1; p >= 9; p-- {
		d := markersOffset - p
		b := data[p]
		if b != 0 {
			trailing = false
		}
		q := p + int(b) + 1

		var entry dpEntry
		switch {
		case q > markersOffset:
			if trailing {
				entry = dpEntry{count: 0, valid: true}
			}
		default:
			succ := counts[markersOffset-q]
			if !succ.valid {
				break
			}
			if isNameOK(data, tt, p, b) {
				entry = dpEntry{count: succ.count + 1, valid: true}
				if off, found := probeNumSyms(data, order, p, entry.count); found {
					log.Debug("kallsyms_num_syms", "offset", hexOffset(off), "count", entry.count)
					names := expandNames(data, tt, p, entry.count)
					return namesResult{numSymsOffset: off, names: names}, true
				}
			} else if trailing {
				entry = dpEntry{count: 0, valid: true}
			}
		}
		counts[d] = entry
	}
	return namesResult{}, false
}

// isNameOK validates the candidate entry at p without expanding it:
// n_tokens must be nonzero and below KSYM_NAME_LEN, and the tokens'
// combined decoded length must stay below KSYM_NAME_LEN too.
func isNameOK(data []byte, tt tokenTable, p int, nTokens byte) bool {
	if nTokens == 0 || int(nTokens) >= ksymNameLen {
		return false
	}
	ids := data[p+1 : p+1+int(nTokens)]
	_, ok := tt.expandedLength(ids)
	return ok
}

// probeNumSyms looks for kallsyms_num_syms at the four offsets the kernel
// build is known to align it to, relative to a just-validated name entry
// at p. It stops at the first nonzero-but-mismatching value: a count field
// can't precede a nonzero value that isn't itself the count.
func probeNumSyms(data []byte, order Endianness, p, count int) (int, bool) {
	for _, delta := range [...]int{-4, -8, -12, -16} {
		off := p + delta
		if off < 0 {
			break
		}
		v := order.uint32(data[off : off+4])
		if int(v) == count {
			return off, true
		}
		if v != 0 {
			break
		}
	}
	return 0, false
}

// expandNames forward-scans n entries starting at p, decoding each via the
// token table. The caller has already validated the chain via the
// backward DP, so no further checks are needed here.
func expandNames(data []byte, tt tokenTable, p, n int) [][]byte {
	names := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		nTokens := int(data[p])
		ids := data[p+1 : p+1+nTokens]
		names = append(names, tt.expand(ids))
		p += nTokens + 1
	}
	return names
}
