package rules

import "sort"

// portRange is an inclusive [lo,hi] sub-range used while splitting a
// PortBlock's src/dst sides into 32-port windows.
type portRange struct{ lo, hi uint16 }

// splitSide breaks a concrete [lo,hi] range into windows aligned to
// multiples of 32, per spec.md §4.5: starting at lo, emit
// [start, min(hi, next_boundary-1)] where next_boundary = (start/32+1)*32,
// then advance start to next_boundary. An ANY side ([0,0] with the flag
// set) is represented by the singleton [0,0] and is not split further.
func splitSide(lo, hi uint16, isAny bool) []portRange {
	if isAny {
		return []portRange{{0, 0}}
	}

	var out []portRange
	start := lo
	for start <= hi {
		window := start / 32
		nextBoundary := uint32(window+1) * 32
		var blockEnd uint16
		if nextBoundary > uint32(hi)+1 {
			blockEnd = hi
		} else {
			blockEnd = uint16(nextBoundary - 1)
		}
		out = append(out, portRange{start, blockEnd})
		if blockEnd == hi {
			break
		}
		start = blockEnd + 1
	}
	return out
}

// SplitBlocks is C5: every non-ANY port range in a PortBlock is split at
// 32-port boundaries, and the cartesian product of the src/dst sub-ranges
// is emitted, preserving LRMID, RevFlag, AnyFlag and Action. If a block
// is ANY on both sides it is emitted unchanged (spec.md §4.5).
func SplitBlocks(optimal map[uint32][]PortBlock) []PortBlock {
	var out []PortBlock

	lrmids := make([]uint32, 0, len(optimal))
	for lrmid := range optimal {
		lrmids = append(lrmids, lrmid)
	}
	sort.Slice(lrmids, func(i, j int) bool { return lrmids[i] < lrmids[j] })

	for _, lrmid := range lrmids {
		blocks := optimal[lrmid]
		for _, block := range blocks {
			srcIsAny := block.AnyFlag == AnySrc || block.AnyFlag == AnyBoth
			dstIsAny := block.AnyFlag == AnyDst || block.AnyFlag == AnyBoth

			if srcIsAny && dstIsAny {
				out = append(out, block)
				continue
			}

			srcBlocks := splitSide(block.SrcPortLo, block.SrcPortHi, srcIsAny)
			dstBlocks := splitSide(block.DstPortLo, block.DstPortHi, dstIsAny)

			for _, sr := range srcBlocks {
				for _, dr := range dstBlocks {
					out = append(out, PortBlock{
						LRMID:     block.LRMID,
						SrcPortLo: sr.lo, SrcPortHi: sr.hi,
						DstPortLo: dr.lo, DstPortHi: dr.hi,
						RevFlag: block.RevFlag,
						AnyFlag: block.AnyFlag,
						Action:  block.Action,
					})
				}
			}
		}
	}

	return out
}
