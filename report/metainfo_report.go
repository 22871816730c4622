// Package report renders the compiler's intermediate and final tables as
// the fixed-layout, diffable text files pinned by spec.md §6.3. Column
// widths and field renderings here are load-bearing: reimplementers must
// match them exactly for output to stay byte-identical across runs and
// comparable against the original tool's own dumps.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/rules"
)

// WriteMetaInfo writes metainfo.txt's body to w: columns LRM-ID Src_lo
// Src_hi Dst_lo Dst_hi Action, left-aligned width 10, one row per
// MergedItem, grouped by ascending LRMID.
func WriteMetaInfo(w io.Writer, metainfo map[uint32][]rules.MergedItem) {
	fmt.Fprintf(w, "%-10s%-10s%-10s%-10s%-10s%-10s\n", "LRM-ID", "Src_lo", "Src_hi", "Dst_lo", "Dst_hi", "Action")

	for _, lrmid := range sortedLRMIDs(metainfo) {
		for _, item := range metainfo[lrmid] {
			fmt.Fprintf(w, "%-10d%-10d%-10d%-10d%-10d%-10d\n",
				lrmid, item.SrcPortLo, item.SrcPortHi, item.DstPortLo, item.DstPortHi, item.Action)
		}
	}
}

// WriteMetaInfoFile opens path and writes the metainfo report to it. A
// failure to open the file is logged and the report is skipped (spec.md
// §7 "Output-unwritable"); it never aborts the pipeline.
func WriteMetaInfoFile(path string, metainfo map[uint32][]rules.MergedItem, log *logx.Logger) {
	f, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to open output file: %s: %v", path, err)
		return
	}
	defer f.Close()
	WriteMetaInfo(f, metainfo)
}

func sortedLRMIDs[T any](m map[uint32][]T) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
