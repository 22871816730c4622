package rules

import (
	"github.com/gaissmai/bart"

	"github.com/Moustachego/PortCatcher/internal/logx"
)

// MergedGroup collapses IPRules sharing (SrcIP range, DstIP range, Proto)
// into one group with a dense LRMID (C2, spec.md §4.2).
type MergedGroup struct {
	SrcIPLo, SrcIPHi uint32
	DstIPLo, DstIPHi uint32
	Proto            uint8
	LRMID            uint32
	Members          []int // original rule indices, in first-seen order
}

type groupKey struct {
	srcLo, srcHi uint32
	dstLo, dstHi uint32
	proto        uint8
}

// Group scans ip in order, keying on (SrcIP, DstIP, Proto); a key
// collision appends to the existing group, a miss creates a new group at
// the current tail. LRMIDs are assigned 0-based in first-occurrence
// order once the full pass completes, satisfying spec.md §8 property 2.
//
// As an advisory side effect (not used to alter any table), newly formed
// groups are checked against a bart.Table of previously seen SrcIP CIDR
// blocks: if a group's SrcIP range is a strict subnet of an
// already-grouped range under the same protocol, log warns about
// possible IP-level shadowing. This is a narrower, cheaper check than
// full 5-tuple rule shadowing, which spec.md explicitly leaves
// out-of-scope.
func Group(ip []IPRule, log *logx.Logger) []MergedGroup {
	var groups []MergedGroup
	index := make(map[groupKey]int, len(ip))
	shadow := &bart.Table[uint32]{}

	for i, rule := range ip {
		key := groupKey{rule.SrcIPLo, rule.SrcIPHi, rule.DstIPLo, rule.DstIPHi, rule.Proto}

		if gi, ok := index[key]; ok {
			groups[gi].Members = append(groups[gi].Members, i)
			continue
		}

		checkShadow(shadow, groups, rule, log)

		groups = append(groups, MergedGroup{
			SrcIPLo: rule.SrcIPLo, SrcIPHi: rule.SrcIPHi,
			DstIPLo: rule.DstIPLo, DstIPHi: rule.DstIPHi,
			Proto:   rule.Proto,
			Members: []int{i},
		})
		index[key] = len(groups) - 1

		for _, blk := range RangeToCIDRs(rule.SrcIPLo, rule.SrcIPHi) {
			shadow.Insert(blk, uint32(len(groups)-1))
		}
	}

	for i := range groups {
		groups[i].LRMID = uint32(i)
	}
	return groups
}

func checkShadow(shadow *bart.Table[uint32], groups []MergedGroup, rule IPRule, log *logx.Logger) {
	blocks := RangeToCIDRs(rule.SrcIPLo, rule.SrcIPHi)
	if len(blocks) != 1 {
		return // non-CIDR-aligned range; skip the advisory check
	}
	pfx := blocks[0]
	if pfx.Bits() == 0 {
		return // wildcard source, every range is its "supernet"
	}
	for covering, groupIdx := range shadow.Supernets(pfx) {
		if covering.Bits() == 0 || covering.Bits() >= pfx.Bits() {
			continue
		}
		if groups[groupIdx].Proto != rule.Proto {
			continue
		}
		log.Warnf("group for src %s proto 0x%02x is covered by an earlier group's src %s (LRMID %d); possible IP-level shadowing",
			pfx, rule.Proto, covering, groupIdx)
		return
	}
}
