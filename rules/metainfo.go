package rules

import "github.com/Moustachego/PortCatcher/internal/logx"

// MergedItem is one original rule's port data, tagged with the LRMID of
// the group it belongs to (C3, spec.md §4.3).
type MergedItem struct {
	LRMID                uint32
	SrcPortLo, SrcPortHi uint16
	DstPortLo, DstPortHi uint16
	Action               uint16
}

// BuildMetaInfo produces metainfo[LRMID] by walking each group's Members
// in recorded order and looking up the corresponding PortRule. An
// out-of-range member index is a defensive skip-with-warning per spec.md
// §7 ("Invariant-violated in intermediates"); it should not occur if
// Split and Group are correct.
func BuildMetaInfo(groups []MergedGroup, port []PortRule, log *logx.Logger) map[uint32][]MergedItem {
	metainfo := make(map[uint32][]MergedItem, len(groups))

	for _, g := range groups {
		items := make([]MergedItem, 0, len(g.Members))
		for _, idx := range g.Members {
			if idx < 0 || idx >= len(port) {
				log.Warnf("LRMID %d: member index %d out of range (port table size %d), skipping", g.LRMID, idx, len(port))
				continue
			}
			pr := port[idx]
			items = append(items, MergedItem{
				LRMID:     g.LRMID,
				SrcPortLo: pr.SrcPortLo, SrcPortHi: pr.SrcPortHi,
				DstPortLo: pr.DstPortLo, DstPortHi: pr.DstPortHi,
				Action: pr.Action,
			})
		}
		metainfo[g.LRMID] = items
	}

	return metainfo
}
