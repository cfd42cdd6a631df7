package kallsyms

import (
	"iter"
	"log/slog"
	"unicode/utf8"
)

// Symbol is one recovered kernel symbol: its address and its demangled-
// free, type-letter-free name, exactly as it would appear as the first
// and third columns of /proc/kallsyms.
type Symbol struct {
	Address uint64
	Name    string
}

// Valid reports whether Name decoded as valid UTF-8. The core never
// rejects or mangles a name on decode failure (spec section 7); callers
// that need UTF-8 guarantees should check this explicitly.
func (s Symbol) Valid() bool { return utf8.ValidString(s.Name) }

// Options tunes the search without affecting its correctness: every field
// has a safe, generous default.
type Options struct {
	// Logger receives one Debug record per successful layer match. Nil
	// means slog.Default().
	Logger *slog.Logger

	// MaxMarkersSweep bounds how many markers_end_offset positions are
	// tried per token-table candidate (spec section 4.3's backward sweep).
	// Zero or negative means defaultMaxMarkersSweep.
	MaxMarkersSweep int
}

const defaultMaxMarkersSweep = 1 << 20

// markerSizes are tried in this fixed order for every markers_end_offset:
// 8-byte markers are the original layout, 4-byte markers were introduced
// in kernel 4.20.
var markerSizes = [...]int{4, 8}

var wordSizes = [...]word{word64, word32}

// Search recovers the kallsyms symbol table from rodata, a raw .rodata
// byte buffer, and returns the recovered (address, name) pairs in kernel
// order. It returns an empty sequence if no self-consistent reconstruction
// exists anywhere in the configuration product described below.
//
// Enumeration order (outermost to innermost), matching spec section 4.6:
// endianness, token-index candidate, token-table candidate, markers-end
// sweep, marker size, markers candidate, names reconstruction, word size,
// base-relative flag, addresses-first flag, address-encoding variant. The
// first fully consistent reconstruction wins; Search returns immediately
// on the first success.
func Search(data []byte, opts Options) iter.Seq[Symbol] {
	symbols := search(data, opts)
	return func(yield func(Symbol) bool) {
		for _, s := range symbols {
			if !yield(s) {
				return
			}
		}
	}
}

func search(data []byte, opts Options) []Symbol {
	if len(data) < minRodataSize {
		return nil
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	maxSweep := opts.MaxMarkersSweep
	if maxSweep <= 0 {
		maxSweep = defaultMaxMarkersSweep
	}

	for _, order := range [...]Endianness{LittleEndian, BigEndian} {
		log.Debug("endianness", "value", order.String())
		for tiCand := range findTokenIndices(data, order, log) {
			for ttCand := range findTokenTables(data, tiCand, log) {
				if syms := searchMarkers(data, tiCand, ttCand, order, maxSweep, log); syms != nil {
					return syms
				}
			}
		}
	}
	return nil
}

func searchMarkers(data []byte, tiCand tokenIndexCandidate, ttCand tokenTableCandidate, order Endianness, maxSweep int, log *slog.Logger) []Symbol {
	sweep := 0
	for endOffset := ttCand.offset; endOffset > -4; endOffset -= 4 {
		sweep++
		if sweep > maxSweep {
			return nil
		}
		for _, markerSize := range markerSizes {
			for markersCand := range findMarkers(data, endOffset, markerSize, order, log) {
				namesRes, ok := findNames(data, markersCand.offset, ttCand.table, order, log)
				if !ok {
					continue
				}
				if syms := searchAddresses(data, tiCand, namesRes, order, log); syms != nil {
					return syms
				}
			}
		}
	}
	return nil
}

func searchAddresses(data []byte, tiCand tokenIndexCandidate, namesRes namesResult, order Endianness, log *slog.Logger) []Symbol {
	numSyms := len(namesRes.names)
	for _, w := range wordSizes {
		for _, baseRelative := range [...]bool{false, true} {
			for _, addressesFirst := range [...]bool{true, false} {
				layout := addressLayout{
					tokenIndexOffset: tiCand.offset,
					numSymsOffset:    namesRes.numSymsOffset,
					numSyms:          numSyms,
					w:                w,
					order:            order,
					addressesFirst:   addressesFirst,
				}
				seq := findAddressesAbsolute
				if baseRelative {
					seq = findAddressesBaseRelative
				}
				for addrRes := range seq(data, layout, log) {
					return zipSymbols(addrRes.addresses, namesRes.names)
				}
			}
		}
	}
	return nil
}

func zipSymbols(addresses []uint64, names [][]byte) []Symbol {
	symbols := make([]Symbol, len(addresses))
	for i, addr := range addresses {
		symbols[i] = Symbol{Address: addr, Name: string(names[i])}
	}
	return symbols
}
