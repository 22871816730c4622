package rules

import "sort"

// LRMEEntry is one encoded (LRMID, ANY_Flag, SrcPAI, DstPAI, bitmaps)
// row of the port table (C6, spec.md §3's LRME_Entry). PAI is the
// NoAny sentinel (0xFFFF) when the corresponding side is ANY, and the
// bitmap is all-zero in that case.
type LRMEEntry struct {
	LRMID              uint32
	AnyFlag            uint8
	SrcPAI, DstPAI     uint16
	SrcBitmap, DstBitmap uint32
}

// BuildLRME encodes every PortBlock_Subset entry into an LRMEEntry and
// deduplicates within each LRMID, per spec.md §4.6. Two entries are equal
// iff all six fields match; duplicates collapse to the first occurrence.
// The returned slice lists LRMIDs in ascending order, each LRMID's
// entries in first-occurrence insertion order, satisfying spec.md §8
// property 7 (determinism) and the ascending-LRMID requirement in §4.6.
func BuildLRME(blocks []PortBlock) []LRMEEntry {
	grouped := make(map[uint32][]LRMEEntry)
	order := make([]uint32, 0)
	seen := make(map[uint32]bool)

	for _, block := range blocks {
		entry := encodeBlock(block)
		if !seen[entry.LRMID] {
			seen[entry.LRMID] = true
			order = append(order, entry.LRMID)
		}

		existing := grouped[entry.LRMID]
		dup := false
		for _, e := range existing {
			if e == entry {
				dup = true
				break
			}
		}
		if !dup {
			grouped[entry.LRMID] = append(existing, entry)
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]LRMEEntry, 0, len(blocks))
	for _, lrmid := range order {
		out = append(out, grouped[lrmid]...)
	}
	return out
}

func encodeBlock(block PortBlock) LRMEEntry {
	entry := LRMEEntry{LRMID: block.LRMID, AnyFlag: block.AnyFlag}
	entry.SrcPAI, entry.SrcBitmap = encodeSide(block.SrcPortLo, block.SrcPortHi, block.AnyFlag == AnySrc || block.AnyFlag == AnyBoth)
	entry.DstPAI, entry.DstBitmap = encodeSide(block.DstPortLo, block.DstPortHi, block.AnyFlag == AnyDst || block.AnyFlag == AnyBoth)
	return entry
}

func encodeSide(lo, hi uint16, isAny bool) (pai uint16, bitmap uint32) {
	if isAny {
		return NoAny, 0
	}
	window := lo / 32
	base := uint32(window) * 32
	startBit := uint32(lo) - base
	endBit := uint32(hi) - base
	for bit := startBit; bit <= endBit; bit++ {
		bitmap |= 1 << bit
	}
	return window, bitmap
}
