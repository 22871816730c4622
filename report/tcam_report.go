package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/rules"
	"github.com/Moustachego/PortCatcher/tcam"
)

// WriteTCAMTable runs C9's expansion over in and streams each entry to w
// as it's produced (spec.md §5: "stream entries to disk in the reporter
// rather than materialising > N*900 entries needlessly"), returning the
// total entry count. Columns: SrcIP DstIP SrcPort(Prefix/Mask)
// DstPort(Prefix/Mask) Protocol Action RuleID. A wildcard port prefix
// (mask 0) renders as "*".
func WriteTCAMTable(w io.Writer, in []rules.Rule5D) int {
	fmt.Fprintf(w, "%-20s%-20s%-18s%-18s%-10s%-10s%-10s\n",
		"SrcIP", "DstIP", "SrcPort(Prefix/Mask)", "DstPort(Prefix/Mask)", "Protocol", "Action", "RuleID")

	count := 0
	tcam.Expand(in, func(e tcam.Entry) {
		count++
		srcIP := ipRangeToDisplay(e.SrcIPLo, e.SrcIPHi)
		dstIP := ipRangeToDisplay(e.DstIPLo, e.DstIPHi)
		fmt.Fprintf(w, "%-20s%-20s%-18s%-18s0x%02x      %-10d%-10d\n",
			srcIP, dstIP, renderPrefixMask(e.SrcPort), renderPrefixMask(e.DstPort), e.Proto, e.Action, e.RuleID)
	})
	return count
}

func renderPrefixMask(pm tcam.PrefixMask) string {
	if pm.Mask == 0 {
		return "*"
	}
	return fmt.Sprintf("%d/0x%04x", pm.Prefix, pm.Mask)
}

// WriteTCAMTableFile opens path, streams the TCAM table to it, and logs
// the expansion ratio (entries per rule), matching the original tool's
// own "Expansion ratio: Nx" summary line.
func WriteTCAMTableFile(path string, in []rules.Rule5D, log *logx.Logger) {
	f, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to open output file: %s: %v", path, err)
		return
	}
	defer f.Close()

	count := WriteTCAMTable(f, in)
	if len(in) > 0 {
		log.Infof("TCAM expansion: %s rules -> %s entries (%.2fx)",
			humanize.Comma(int64(len(in))), humanize.Comma(int64(count)), float64(count)/float64(len(in)))
	}
}
