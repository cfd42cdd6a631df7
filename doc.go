// Package kallsyms recovers a Linux kernel symbol table from a raw,
// unrelocated .rodata blob.
//
// # Overview
//
// Given only the bytes of a kernel's .rodata section (no headers, no
// lengths, no magic numbers), Search locates five interdependent on-disk
// structures the kernel build process lays out — kallsyms_token_table,
// kallsyms_token_index, kallsyms_markers, kallsyms_names, and
// kallsyms_addresses — and reconstructs the ordered (address, name) pairs
// that /proc/kallsyms would expose on a running instance of that kernel.
//
// # When to Use
//
// Search applies to:
//   - Stripped kernel images where the standard symbol-resolution path
//     (System.map, /proc/kallsyms, debug info) is unavailable
//   - Forensic or security tooling that needs kernel symbols from a raw
//     firmware or image dump
//   - Any input that is exactly an unrelocated .rodata byte buffer
//
// # When NOT to Use
//
// Search does not:
//   - Extract .rodata from an ELF/vmlinuz/bzImage container (see
//     cmd/kallsyms for that front end)
//   - Decompress a compressed kernel image
//   - Decode symbol type letters, demangle names, resolve module symbols,
//     or validate that addresses land in a plausible kernel VA range
//
// # Basic Usage
//
//	rodata, _ := os.ReadFile("rodata.bin")
//	for sym := range kallsyms.Search(rodata, kallsyms.Options{}) {
//	    fmt.Printf("%016x %s\n", sym.Address, sym.Name)
//	}
//
// # Search Strategy
//
// Search enumerates a fixed configuration product (endianness, word size,
// base-relative flag, address placement, marker size, markers-end sweep)
// and returns the first fully self-consistent reconstruction. See the doc
// comment on Search for the exact enumeration order.
//
// # Performance Characteristics
//
// The dominant cost is the backward dynamic-program scan over
// kallsyms_names, which is linear in the distance between the markers and
// the start of the names region. Everything else is bounded by small
// constants (256 tokens, at most a few thousand markers). A full scan of a
// multi-megabyte .rodata blob with no valid structure completes in well
// under a second.
package kallsyms
