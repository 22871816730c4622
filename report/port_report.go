package report

import (
	"fmt"
	"io"
	"os"

	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/rules"
)

// WritePortTable writes Port_table.txt's body to w: columns LRMID
// SrcPAI DstPAI Src_Bitmap Dst_Bitmap. Bitmaps render MSB-first as a
// 32-character 0/1 string; PAI renders as "ANY" when it is the NoAny
// sentinel.
func WritePortTable(w io.Writer, entries []rules.LRMEEntry) {
	fmt.Fprintf(w, "%-10s%-10s%-10s%-35s%-35s\n", "LRMID", "SrcPAI", "DstPAI", "Src_Bitmap", "Dst_Bitmap")

	for _, e := range entries {
		fmt.Fprintf(w, "%-10d%-10s%-10s%-35s%-35s\n",
			e.LRMID, renderPAI(e.SrcPAI), renderPAI(e.DstPAI), renderBitmap(e.SrcBitmap), renderBitmap(e.DstBitmap))
	}
}

func renderPAI(pai uint16) string {
	if pai == rules.NoAny {
		return "ANY"
	}
	return fmt.Sprintf("%d", pai)
}

// renderBitmap renders a 32-bit occupancy map MSB-first: bit 31 prints
// first, bit 0 last, matching std::bitset<32>::to_string()'s default
// high-to-low output that the original tool relies on.
func renderBitmap(bitmap uint32) string {
	buf := make([]byte, 32)
	for i := 0; i < 32; i++ {
		bit := (bitmap >> uint(31-i)) & 1
		if bit == 1 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// WritePortTableFile opens path and writes the port table report to it.
func WritePortTableFile(path string, entries []rules.LRMEEntry, log *logx.Logger) {
	f, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to open output file: %s: %v", path, err)
		return
	}
	defer f.Close()
	WritePortTable(f, entries)
}
