package kallsyms

import "encoding/binary"

// Endianness selects the byte order used to decode every multi-byte field
// in a search branch. It is chosen once per branch and threaded through
// every layer; no layer branches on endianness itself.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endianness) uint16(b []byte) uint16 { return e.order().Uint16(b) }
func (e Endianness) uint32(b []byte) uint32 { return e.order().Uint32(b) }
func (e Endianness) uint64(b []byte) uint64 { return e.order().Uint64(b) }

func (e Endianness) int32(b []byte) int32 { return int32(e.uint32(b)) }

// word describes one of the two native integer widths kallsyms_addresses
// can be stored in.
type word struct {
	size int
	name string
}

var (
	word32 = word{size: 4, name: "u32"}
	word64 = word{size: 8, name: "u64"}
)

// readUnsigned reads a size-byte unsigned integer at off, zero-extended to
// uint64. Every caller is expected to have already rejected out-of-range
// offsets via inBounds as an ordinary "this candidate doesn't fit"
// outcome; reaching checkBounds here with a bad offset is a bug in this
// package, not a malformed-input condition, hence the panic.
func (w word) readUnsigned(data []byte, off int, order Endianness) uint64 {
	checkBounds("word.readUnsigned", data, off, w.size)
	if w.size == 4 {
		return uint64(order.uint32(data[off : off+4]))
	}
	return order.uint64(data[off : off+8])
}

// inBounds reports whether [off, off+n) is a valid slice of data.
func inBounds(data []byte, off, n int) bool {
	return off >= 0 && n >= 0 && off+n >= off && off+n <= len(data)
}

// alignDown rounds p down to the nearest multiple of a (a must be a power of
// two). Mirrors find_kallsyms.py's align_up, which despite its name rounds
// down: it is used to find the start of an aligned region that ends at p.
func alignDown(p, a int) int {
	return p &^ (a - 1)
}

// align rounds p up to the nearest multiple of a (a must be a power of two).
func align(p, a int) int {
	return (p + (a - 1)) &^ (a - 1)
}
