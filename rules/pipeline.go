package rules

import "github.com/Moustachego/PortCatcher/internal/logx"

// Result bundles every intermediate and final table the split IP/port
// pipeline (C1-C7) produces, so callers (the CLI, reporters, tests) can
// reach any stage without re-running it.
type Result struct {
	IPRules   []IPRule
	PortRules []PortRule
	Groups    []MergedGroup
	MetaInfo  map[uint32][]MergedItem
	Optimal   map[uint32][]PortBlock
	Blocks    []PortBlock
	LRME      []LRMEEntry
	IPTable   []IPTableEntry
}

// Run executes C1 through C7 over a validated rule list, in the order
// fixed by spec.md §2's data-flow diagram.
func Run(in []Rule5D, log *logx.Logger) Result {
	ip, port := Split(in)
	groups := Group(ip, log)
	metainfo := BuildMetaInfo(groups, port, log)
	optimal := Optimize(metainfo)
	blocks := SplitBlocks(optimal)
	lrme := BuildLRME(blocks)
	ipTable := BuildIPTable(groups, optimal)

	return Result{
		IPRules:   ip,
		PortRules: port,
		Groups:    groups,
		MetaInfo:  metainfo,
		Optimal:   optimal,
		Blocks:    blocks,
		LRME:      lrme,
		IPTable:   ipTable,
	}
}
