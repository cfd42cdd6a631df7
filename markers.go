package kallsyms

import (
	"iter"
	"log/slog"
)

// markersCandidate is one candidate location of kallsyms_markers: a
// strictly increasing array of name-block offsets, ending (at its first
// element) at 0.
type markersCandidate struct {
	offset  int
	markers []uint64
}

// findMarkers scans backward from endOffset-markerSize for a valid
// kallsyms_markers array, one marker-sized element at a time.
//
// Known limitation: the caller sweeps endOffset in 4-byte decrements
// regardless of markerSize, matching find_kallsyms.py's own
// range(token_table_offset, -4, -4). Whether that sweep step should instead
// depend on markerSize for every kallsyms_seqs_of_names layout is unclear
// from the reference implementation; this mirrors it exactly rather than
// guessing at a wider step.
func findMarkers(data []byte, endOffset, markerSize int, order Endianness, log *slog.Logger) iter.Seq[markersCandidate] {
	return func(yield func(markersCandidate) bool) {
		offset := endOffset - markerSize
		var markers []uint64
		first := true
		for {
			if !inBounds(data, offset, markerSize) {
				return
			}
			marker := readMarker(data, offset, markerSize, order)
			if first {
				first = false
				if marker == 0 && markerSize == 4 {
					// Upper half of a padded 8-byte final element.
					offset -= markerSize
					continue
				}
			} else if len(markers) > 0 && marker >= markers[len(markers)-1] {
				return
			}
			markers = append(markers, marker)
			if marker == 0 {
				break
			}
			offset -= markerSize
		}
		if markerSize == 4 && len(markers) == 2 {
			// The leading zero we found is padding above a single 8-byte
			// marker, not a genuine one-element array.
			return
		}
		reverse(markers)
		log.Debug("kallsyms_markers", "offset", hexOffset(offset), "count", len(markers))
		yield(markersCandidate{offset: offset, markers: markers})
	}
}

func readMarker(data []byte, offset, size int, order Endianness) uint64 {
	if size == 4 {
		return uint64(order.uint32(data[offset : offset+4]))
	}
	return order.uint64(data[offset : offset+8])
}

func reverse(s []uint64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
