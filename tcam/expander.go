package tcam

import "github.com/Moustachego/PortCatcher/rules"

// Entry is one ternary-matched row of the TCAM table (C9, spec.md §3's
// TCAM_Entry). IPs are carried verbatim as [lo,hi] ranges — unlike ports,
// they are not prefix-decomposed on this path.
type Entry struct {
	SrcIPLo, SrcIPHi uint32
	DstIPLo, DstIPHi uint32
	SrcPort          PrefixMask
	DstPort          PrefixMask
	Proto            uint8
	Action           uint16
	RuleID           uint32
}

// Expand is C9: for every rule, in load order, emit the cartesian
// product of its src-port prefixes x dst-port prefixes as TCAM entries,
// carrying IP ranges and Proto/Action verbatim and a sequential RuleID
// equal to the rule's original index (spec.md §4.9). Entries are
// delivered through emit rather than accumulated in memory, so a caller
// writing a report can stream rather than materialize the full
// (bounded but potentially large, spec.md §5) expansion.
func Expand(in []rules.Rule5D, emit func(Entry)) {
	for i, r := range in {
		srcPrefixes := PortRangeToPrefixes(r.SrcPortLo, r.SrcPortHi)
		dstPrefixes := PortRangeToPrefixes(r.DstPortLo, r.DstPortHi)

		for _, sp := range srcPrefixes {
			for _, dp := range dstPrefixes {
				emit(Entry{
					SrcIPLo: r.SrcIPLo, SrcIPHi: r.SrcIPHi,
					DstIPLo: r.DstIPLo, DstIPHi: r.DstIPHi,
					SrcPort: sp,
					DstPort: dp,
					Proto:   r.ProtoLo,
					Action:  r.Action,
					RuleID:  uint32(i),
				})
			}
		}
	}
}
