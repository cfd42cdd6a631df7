package kallsyms

import (
	"iter"
	"log/slog"
)

// addressesResult is one decoded kallsyms_addresses array.
type addressesResult struct {
	offset    int
	end       int
	addresses []uint64
}

// addressLayout captures the two placement axes AddressesFinder must try:
// where the array starts, independent of how each element is encoded.
type addressLayout struct {
	tokenIndexOffset int // token_index_offset + 512, when addressesFirst is false
	numSymsOffset    int // anchor when addressesFirst is true
	numSyms          int
	w                word
	order            Endianness
	addressesFirst   bool
}

// absoluteOffset is the !KALLSYMS_BASE_RELATIVE placement: no alignment is
// applied up front, since find_addresses_no_kallsyms_base_relative corrects
// for an unaligned 8-byte array itself (see findAddressesAbsolute).
func (l addressLayout) absoluteOffset() int {
	if l.addressesFirst {
		return l.numSymsOffset - l.numSyms*l.w.size
	}
	return l.tokenIndexOffset + 512
}

// relativeOffset is the KALLSYMS_BASE_RELATIVE placement. Note the
// addressesFirst branch rounds *down* (align_up in find_kallsyms.py, which
// despite its name truncates) while the other branch rounds up, matching
// the reference implementation exactly.
func (l addressLayout) relativeOffset() int {
	if l.addressesFirst {
		return alignDown(alignDown(l.numSymsOffset, l.w.size)-l.w.size-l.numSyms*4, l.w.size)
	}
	return align(l.tokenIndexOffset+512, l.w.size)
}

// findAddressesAbsolute decodes a plain array of numSyms native-word
// unsigned integers (the !KALLSYMS_BASE_RELATIVE encoding).
func findAddressesAbsolute(data []byte, l addressLayout, log *slog.Logger) iter.Seq[addressesResult] {
	return func(yield func(addressesResult) bool) {
		offset := l.absoluteOffset()
		if l.w.size == 8 && offset%8 != 0 {
			offset -= 4
		}
		n := l.numSyms
		if !inBounds(data, offset, n*l.w.size) {
			return
		}
		addrs := make([]uint64, 0, n)
		pos := offset
		for i := 0; i < n; i++ {
			v := l.w.readUnsigned(data, pos, l.order)
			if i > 0 && v < addrs[i-1] {
				return
			}
			addrs = append(addrs, v)
			pos += l.w.size
		}
		log.Debug("kallsyms_addresses", "offset", hexOffset(offset), "word", l.w.name)
		yield(addressesResult{offset: offset, end: pos, addresses: addrs})
	}
}

// findAddressesBaseRelative decodes the KALLSYMS_BASE_RELATIVE encoding: a
// signed 32-bit offset array followed, after word-size alignment, by one
// native-word kallsyms_relative_base. Two independent interpretations of
// the raw offsets are tried and may each yield.
func findAddressesBaseRelative(data []byte, l addressLayout, log *slog.Logger) iter.Seq[addressesResult] {
	return func(yield func(addressesResult) bool) {
		offset := l.relativeOffset()
		if offset < 0 {
			return
		}
		n := l.numSyms
		end := offset + n*4
		baseOffset := align(end, l.w.size)
		baseEnd := baseOffset + l.w.size
		if !inBounds(data, offset, end-offset) || !inBounds(data, baseOffset, l.w.size) {
			return
		}
		raw := make([]int32, n)
		for i := 0; i < n; i++ {
			raw[i] = l.order.int32(data[offset+i*4 : offset+i*4+4])
		}
		base := l.w.readUnsigned(data, baseOffset, l.order)

		if addrs, ok := decodeNonPercpu(raw, base); ok {
			log.Debug("kallsyms_relative_base", "offset", hexOffset(baseOffset), "base", hexOffset(int(base)))
			if !yield(addressesResult{offset: offset, end: baseEnd, addresses: addrs}) {
				return
			}
		}
		if addrs, ok := decodePercpu(raw, base); ok {
			log.Debug("kallsyms_relative_base", "offset", hexOffset(baseOffset), "base", hexOffset(int(base)), "percpu", true)
			yield(addressesResult{offset: offset, end: baseEnd, addresses: addrs})
		}
	}
}

func decodeNonPercpu(raw []int32, base uint64) ([]uint64, bool) {
	addrs := make([]uint64, 0, len(raw))
	for i, r := range raw {
		addr := base + uint64(uint32(r))
		if i > 0 && addr < addrs[i-1] {
			return nil, false
		}
		addrs = append(addrs, addr)
	}
	return addrs, true
}

func decodePercpu(raw []int32, base uint64) ([]uint64, bool) {
	addrs := make([]uint64, 0, len(raw))
	for i, r := range raw {
		var addr uint64
		if r >= 0 {
			addr = uint64(r)
		} else {
			addr = base - 1 - uint64(r)
		}
		if i > 0 && addr < addrs[i-1] {
			return nil, false
		}
		addrs = append(addrs, addr)
	}
	return addrs, true
}
