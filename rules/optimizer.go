package rules

// PortBlock is a MergedItem after the ANY/REV canonicalizations of C4,
// and later (post C5) a 32-port-window sub-range of one (spec.md §3's
// PortBlock). AnyFlag follows the 0/1/2/3 encoding from §4.4: 0 none, 1
// src-ANY, 2 dst-ANY, 3 both.
type PortBlock struct {
	LRMID                uint32
	SrcPortLo, SrcPortHi uint16
	DstPortLo, DstPortHi uint16
	RevFlag              bool
	AnyFlag              uint8
	Action               uint16
}

const (
	AnyNone    uint8 = 0
	AnySrc     uint8 = 1
	AnyDst     uint8 = 2
	AnyBoth    uint8 = 3
)

// Optimize rewrites every MergedItem's ports per the two canonicalizations
// in spec.md §4.4's table: full-range [0,65535] collapses to the ANY
// sentinel [0,0], and the "ephemeral" range [1024,65535] collapses to
// [0,1023] with RevFlag set. The result is indexed by LRMID, matching the
// Optimal_for_Port_Table map the original tool threads through the rest
// of the pipeline.
func Optimize(metainfo map[uint32][]MergedItem) map[uint32][]PortBlock {
	optimal := make(map[uint32][]PortBlock, len(metainfo))

	for lrmid, items := range metainfo {
		blocks := make([]PortBlock, 0, len(items))
		for _, item := range items {
			block := PortBlock{LRMID: lrmid, Action: item.Action}

			srcLo, srcHi, srcAny, srcRev := rewritePortSide(item.SrcPortLo, item.SrcPortHi)
			dstLo, dstHi, dstAny, dstRev := rewritePortSide(item.DstPortLo, item.DstPortHi)

			block.SrcPortLo, block.SrcPortHi = srcLo, srcHi
			block.DstPortLo, block.DstPortHi = dstLo, dstHi
			// A single REV_Flag per block cannot distinguish src-REV from
			// dst-REV from both (spec.md §9 open question); we carry the
			// same structurally ambiguous OR the original does.
			block.RevFlag = srcRev || dstRev

			switch {
			case srcAny && dstAny:
				block.AnyFlag = AnyBoth
			case srcAny:
				block.AnyFlag = AnySrc
			case dstAny:
				block.AnyFlag = AnyDst
			default:
				block.AnyFlag = AnyNone
			}

			blocks = append(blocks, block)
		}
		optimal[lrmid] = blocks
	}

	return optimal
}

// rewritePortSide applies the two canonicalizations to a single port
// side, returning the rewritten range plus whether it is now ANY or a
// REV-marked ephemeral range.
func rewritePortSide(lo, hi uint16) (newLo, newHi uint16, isAny, isRev bool) {
	switch {
	case lo == 0 && hi == 65535:
		return 0, 0, true, false
	case lo == 1024 && hi == 65535:
		return 0, 1023, false, true
	default:
		return lo, hi, false, false
	}
}
