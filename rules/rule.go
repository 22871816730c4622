// Package rules implements the core 5-tuple rule compiler: the split
// IP/port pipeline described as C1-C7 in the design (RuleSplitter through
// FinalIPTable). It consumes a validated list of Rule5D values and
// produces the intermediate and final lookup tables; it does not know how
// those tables are rendered to disk (see package report) or how the rule
// file is read (see Parse in this package, which is the pinned §6.1
// input-format adapter).
package rules

// Rule5D is a single parsed 5-tuple rule. All ranges are inclusive.
// Field names mirror the dimensions from the input line format: source
// and destination IP ranges, source and destination port ranges, and a
// protocol range (a single value, or [0,255] for the wildcard).
type Rule5D struct {
	SrcIPLo, SrcIPHi uint32
	DstIPLo, DstIPHi uint32
	SrcPortLo, SrcPortHi uint16
	DstPortLo, DstPortHi uint16
	ProtoLo, ProtoHi uint8
	Priority uint32 // 1-based, load order
	Action   uint16 // retained value half of the action/mask pair
}

// IPRule is the IP+protocol projection of a Rule5D, produced by C1.
type IPRule struct {
	SrcIPLo, SrcIPHi uint32
	DstIPLo, DstIPHi uint32
	Proto            uint8
}

// PortRule is the port projection of a Rule5D, produced by C1. RuleID
// links it back to the originating Rule5D's positional index, matching
// PortRule.rid in spec.md §3.
type PortRule struct {
	RuleID               int
	SrcPortLo, SrcPortHi uint16
	DstPortLo, DstPortHi uint16
	Action               uint16
}

// NoAny is the empty-slot / ANY sentinel used throughout the port and IP
// tables (0xFFFF in spec.md). It is kept as an explicit named constant
// rather than a bare literal so every comparison site documents intent.
const NoAny = 0xFFFF
