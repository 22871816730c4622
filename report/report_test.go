package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moustachego/PortCatcher/report"
	"github.com/Moustachego/PortCatcher/rules"
)

func TestWriteMetaInfo_ColumnsAndGrouping(t *testing.T) {
	metainfo := map[uint32][]rules.MergedItem{
		1: {{LRMID: 1, SrcPortLo: 1, SrcPortHi: 2, DstPortLo: 3, DstPortHi: 4, Action: 5}},
		0: {{LRMID: 0, SrcPortLo: 10, SrcPortHi: 20, DstPortLo: 30, DstPortHi: 40, Action: 50}},
	}

	var sb strings.Builder
	report.WriteMetaInfo(&sb, metainfo)
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "LRM-ID    Src_lo    Src_hi    Dst_lo    Dst_hi    Action    ", lines[0])
	// LRMID 0's row must come before LRMID 1's row (ascending order).
	assert.Contains(t, lines[1], "0         10        20        30        40        50")
	assert.Contains(t, lines[2], "1         1         2         3         4         5")
}

func TestWritePortTable_RendersANYAndBitmapMSBFirst(t *testing.T) {
	entries := []rules.LRMEEntry{
		{LRMID: 0, AnyFlag: rules.AnyBoth, SrcPAI: rules.NoAny, DstPAI: rules.NoAny, SrcBitmap: 0, DstBitmap: 0},
		{LRMID: 1, AnyFlag: rules.AnyNone, SrcPAI: 0, DstPAI: 2, SrcBitmap: 0xFFFFFFFF, DstBitmap: 0x00010000},
	}

	var sb strings.Builder
	report.WritePortTable(&sb, entries)
	out := sb.String()

	assert.Contains(t, out, "ANY")
	assert.Contains(t, out, strings.Repeat("1", 32)) // full bitmap
	// bit 16 set, MSB-first: 15 zeros, a 1, then 16 zeros
	assert.Contains(t, out, strings.Repeat("0", 15)+"1"+strings.Repeat("0", 16))
}

func TestWriteIPTable_DropFlagAndEmptySlots(t *testing.T) {
	entries := []rules.IPTableEntry{
		{
			SrcIPLo: 0x0A000000, SrcIPHi: 0x0A0000FF,
			DstIPLo: 0x14000000, DstIPHi: 0x140000FF,
			Proto:       6,
			SrcAnyLRMID: rules.NoAny, DstAnyLRMID: rules.NoAny, NoAnyLRMID: rules.NoAny,
			DropFlag: true,
		},
	}

	var sb strings.Builder
	report.WriteIPTable(&sb, entries)
	out := sb.String()

	assert.Contains(t, out, "10.0.0.0/24")
	assert.Contains(t, out, "20.0.0.0/24")
	assert.Contains(t, out, "0x06")
	assert.Contains(t, out, "[DROP]")
	assert.Contains(t, out, "-") // empty slots
}

func TestWriteTCAMTable_WildcardPortRendersAsStar(t *testing.T) {
	in := []rules.Rule5D{
		{SrcIPLo: 0, SrcIPHi: 0xFFFFFFFF, DstIPLo: 0, DstIPHi: 0xFFFFFFFF,
			SrcPortLo: 0, SrcPortHi: 65535, DstPortLo: 0, DstPortHi: 65535,
			ProtoLo: 0, ProtoHi: 255, Action: 1},
	}

	var sb strings.Builder
	count := report.WriteTCAMTable(&sb, in)
	assert.Equal(t, 1, count)
	assert.Contains(t, sb.String(), "*")
}
