package kallsyms

// tokenTable holds the 256 kallsyms_token_table entries: short byte
// strings, indexed by a single id byte stored in kallsyms_names. It plays
// exactly the role axiomhq/fsst's decode tables play for compression
// codes — a fixed code-to-bytes dictionary consulted on every decode — so
// the lookup shape here is carried over from that decoder: lengths are
// precomputed once per search branch rather than recomputed per name, since
// the backward DP in names.go consults them on every byte of the names
// region.
type tokenTable struct {
	tokens  [256][]byte
	lengths [256]int
}

func newTokenTable(tokens [256][]byte) tokenTable {
	tt := tokenTable{tokens: tokens}
	for i, t := range tokens {
		tt.lengths[i] = len(t)
	}
	return tt
}

// expandedLength returns the sum of token lengths for the n_tokens ids
// starting at ids[0], or 0 and false as soon as the running total reaches
// ksymNameLen (the caller need not look further).
func (tt tokenTable) expandedLength(ids []byte) (int, bool) {
	total := 0
	for _, id := range ids {
		total += tt.lengths[id]
		if total >= ksymNameLen {
			return 0, false
		}
	}
	return total, true
}

// expand concatenates the token bytes for each id into the decoded name.
func (tt tokenTable) expand(ids []byte) []byte {
	n, _ := tt.expandedLength(ids)
	out := make([]byte, 0, n)
	for _, id := range ids {
		out = append(out, tt.tokens[id]...)
	}
	return out
}

// ksymNameLen is KSYM_NAME_LEN: the kernel's maximum expanded symbol name
// length, inclusive of the null terminator the kernel itself stores but
// that never appears in our decoded byte strings.
const ksymNameLen = 512
