package rules

import "sort"

// IPTableEntry is the IP+protocol table row linking to the port table
// through up to three per-group slots (C7, spec.md §3/§4.7).
type IPTableEntry struct {
	SrcIPLo, SrcIPHi uint32
	DstIPLo, DstIPHi uint32
	Proto            uint8

	SrcAnyLRMID uint16
	SrcAnyRev   bool
	DstAnyLRMID uint16
	DstAnyRev   bool
	NoAnyLRMID  uint16
	NoAnyRev    bool

	DropFlag bool
}

// BuildIPTable emits one IPTableEntry per MergedGroup, in LRMID order,
// then projects that group's optimized (pre-C5-split) port blocks into
// its three slots by ANY category (spec.md §4.7). Multiple blocks
// mapping to the same slot overwrite in iteration order — the open
// question in spec.md §9 is resolved as "last write wins", matching the
// original create_final_IP_table's unconditional overwrite.
func BuildIPTable(groups []MergedGroup, optimal map[uint32][]PortBlock) []IPTableEntry {
	sorted := make([]MergedGroup, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LRMID < sorted[j].LRMID })

	out := make([]IPTableEntry, 0, len(sorted))
	for _, g := range sorted {
		entry := IPTableEntry{
			SrcIPLo: g.SrcIPLo, SrcIPHi: g.SrcIPHi,
			DstIPLo: g.DstIPLo, DstIPHi: g.DstIPHi,
			Proto:       g.Proto,
			SrcAnyLRMID: NoAny,
			DstAnyLRMID: NoAny,
			NoAnyLRMID:  NoAny,
		}

		for _, block := range optimal[g.LRMID] {
			switch block.AnyFlag {
			case AnyBoth:
				entry.DropFlag = true
			case AnySrc:
				entry.SrcAnyLRMID = uint16(g.LRMID)
				entry.SrcAnyRev = block.RevFlag
			case AnyDst:
				entry.DstAnyLRMID = uint16(g.LRMID)
				entry.DstAnyRev = block.RevFlag
			case AnyNone:
				entry.NoAnyLRMID = uint16(g.LRMID)
				entry.NoAnyRev = block.RevFlag
			}
		}

		out = append(out, entry)
	}

	return out
}
