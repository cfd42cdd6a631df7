package kallsyms

import (
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeTestTokens builds 256 distinct, null-free token byte strings: "a" and
// "b" at codes 0 and 1 (so small hand-picked names are easy to reason
// about), and a two-byte filler at every other code.
func makeTestTokens() [256][]byte {
	var tokens [256][]byte
	tokens[0] = []byte("a")
	tokens[1] = []byte("b")
	for i := 2; i < 256; i++ {
		tokens[i] = []byte{1, byte(i)}
	}
	return tokens
}

// encodeTokenTable concatenates each token with a null terminator and
// returns the on-disk bytes plus the token_index offsets (index[i] is the
// byte offset of token i within the returned slice).
func encodeTokenTable(tokens [256][]byte) ([]byte, [256]uint16) {
	var buf []byte
	var index [256]uint16
	for i, tok := range tokens {
		index[i] = uint16(len(buf))
		buf = append(buf, tok...)
		buf = append(buf, 0)
	}
	return buf, index
}
