package rules

// Split projects every Rule5D into its IPRule and PortRule halves (C1,
// spec.md §4.1). Output order matches input order: ip[i] and port[i]
// describe the same source rule, and PortRule.RuleID == i.
func Split(in []Rule5D) (ip []IPRule, port []PortRule) {
	ip = make([]IPRule, len(in))
	port = make([]PortRule, len(in))

	for i, r := range in {
		ip[i] = IPRule{
			SrcIPLo: r.SrcIPLo, SrcIPHi: r.SrcIPHi,
			DstIPLo: r.DstIPLo, DstIPHi: r.DstIPHi,
			Proto: r.ProtoLo,
		}
		port[i] = PortRule{
			RuleID:    i,
			SrcPortLo: r.SrcPortLo, SrcPortHi: r.SrcPortHi,
			DstPortLo: r.DstPortLo, DstPortHi: r.DstPortHi,
			Action: r.Action,
		}
	}
	return ip, port
}
