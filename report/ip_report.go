package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/rules"
)

// WriteIPTable writes IP_table.txt's body to w, matching
// output_final_IP_table's two-line header (a category row, then a
// LRM-ID/REV sub-header) and 106-dash separator. IPs render as CIDR when
// the range aligns to a power-of-two block, else "A.B.C.D-E.F.G.H".
// Protocol renders as 0xNN hex. Empty slots render as "-"; drop_flag
// appends "[DROP]".
func WriteIPTable(w io.Writer, entries []rules.IPTableEntry) {
	fmt.Fprintf(w, "%-20s%-20s%-12s%-10s%-8s%-10s%-8s%-10s%-8s\n",
		"SrcIP", "DstIP", "Protocol", "Src ANY", "", "Dst ANY", "", "No ANY", "")
	fmt.Fprintf(w, "%-20s%-20s%-12s%-10s%-8s%-10s%-8s%-10s%-8s\n",
		"", "", "", "LRM-ID", "REV", "LRM-ID", "REV", "LRM-ID", "REV")
	fmt.Fprintln(w, strings.Repeat("-", 106))

	for _, e := range entries {
		srcIP := ipRangeToDisplay(e.SrcIPLo, e.SrcIPHi)
		dstIP := ipRangeToDisplay(e.DstIPLo, e.DstIPHi)
		proto := fmt.Sprintf("0x%02x", e.Proto)

		fmt.Fprintf(w, "%-20s%-20s%-12s", srcIP, dstIP, proto)
		writeSlot(w, e.SrcAnyLRMID, e.SrcAnyRev)
		writeSlot(w, e.DstAnyLRMID, e.DstAnyRev)
		writeSlot(w, e.NoAnyLRMID, e.NoAnyRev)

		if e.DropFlag {
			fmt.Fprint(w, " [DROP]")
		}
		fmt.Fprintln(w)
	}
}

func writeSlot(w io.Writer, lrmid uint16, rev bool) {
	if lrmid == rules.NoAny {
		fmt.Fprintf(w, "%-10s%-8s", "-", "-")
		return
	}
	revStr := "False"
	if rev {
		revStr = "True"
	}
	fmt.Fprintf(w, "%-10d%-8s", lrmid, revStr)
}

// ipRangeToDisplay renders an IP range as CIDR when it aligns to a
// power-of-two block, else as "A.B.C.D-E.F.G.H", per spec.md §6.3.
func ipRangeToDisplay(lo, hi uint32) string {
	blocks := rules.RangeToCIDRs(lo, hi)
	if len(blocks) == 1 {
		return blocks[0].String()
	}
	return fmt.Sprintf("%s-%s", ipToString(lo), ipToString(hi))
}

func ipToString(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ip>>24&0xFF, ip>>16&0xFF, ip>>8&0xFF, ip&0xFF)
}

// WriteIPTableFile opens path and writes the IP table report to it.
func WriteIPTableFile(path string, entries []rules.IPTableEntry, log *logx.Logger) {
	f, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to open output file: %s: %v", path, err)
		return
	}
	defer f.Close()
	WriteIPTable(f, entries)
}
