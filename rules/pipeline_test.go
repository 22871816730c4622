package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/rules"
)

func run(t *testing.T, input string) rules.Result {
	t.Helper()
	parsed := rules.Parse(strings.NewReader(input), logx.New())
	return rules.Run(parsed, logx.New())
}

// S1 - identity port range: both sides ANY collapses to a single dropped
// group with one all-zero LRME entry.
func TestScenario_IdentityPortRangeDrops(t *testing.T) {
	result := run(t, "@10.0.0.0/8 20.0.0.0/8 0 : 65535 0 : 65535 0x06/0xFF 0x01/0xFFFF\n")

	require.Len(t, result.Groups, 1)
	assert.Equal(t, uint32(0), result.Groups[0].LRMID)

	items := result.MetaInfo[0]
	require.Len(t, items, 1)
	assert.Equal(t, uint16(0), items[0].SrcPortLo)
	assert.Equal(t, uint16(65535), items[0].SrcPortHi)
	assert.Equal(t, uint16(1), items[0].Action)

	optimal := result.Optimal[0]
	require.Len(t, optimal, 1)
	assert.Equal(t, rules.AnyBoth, optimal[0].AnyFlag)

	require.Len(t, result.LRME, 1)
	assert.Equal(t, uint16(rules.NoAny), result.LRME[0].SrcPAI)
	assert.Equal(t, uint16(rules.NoAny), result.LRME[0].DstPAI)
	assert.Equal(t, uint32(0), result.LRME[0].SrcBitmap)
	assert.Equal(t, uint32(0), result.LRME[0].DstBitmap)

	require.Len(t, result.IPTable, 1)
	entry := result.IPTable[0]
	assert.True(t, entry.DropFlag)
	assert.Equal(t, uint16(rules.NoAny), entry.SrcAnyLRMID)
	assert.Equal(t, uint16(rules.NoAny), entry.DstAnyLRMID)
	assert.Equal(t, uint16(rules.NoAny), entry.NoAnyLRMID)
}

// S2 - high-port REV: src [1024,65535] rewrites to [0,1023] with
// RevFlag, splitting into 32 sub-ranges; dst port 80 stays a single
// window/bit.
func TestScenario_HighPortReversal(t *testing.T) {
	result := run(t, "@1.2.3.4/32 5.6.7.8/32 1024 : 65535 80 : 80 0x11/0xFF 0x02/0xFFFF\n")

	require.Len(t, result.Groups, 1)
	optimal := result.Optimal[0]
	require.Len(t, optimal, 1)
	assert.True(t, optimal[0].RevFlag)
	assert.Equal(t, rules.AnyNone, optimal[0].AnyFlag)
	assert.Equal(t, uint16(0), optimal[0].SrcPortLo)
	assert.Equal(t, uint16(1023), optimal[0].SrcPortHi)

	// 32 src windows x 1 dst window = 32 LRME entries after split+dedup.
	require.Len(t, result.LRME, 32)
	for _, e := range result.LRME {
		assert.Equal(t, uint16(2), e.DstPAI)
		assert.Equal(t, uint32(0x00010000), e.DstBitmap)
		assert.Equal(t, uint32(0xFFFFFFFF), e.SrcBitmap)
	}

	entry := result.IPTable[0]
	assert.Equal(t, uint16(0), entry.NoAnyLRMID)
	assert.True(t, entry.NoAnyRev)
	assert.False(t, entry.DropFlag)
}

// S5 - identical IPs, two port rules: one MergedGroup with both member
// indices, and metainfo preserving each rule's own port ranges/actions.
func TestScenario_SameIPTwoPortRules(t *testing.T) {
	result := run(t, strings.Join([]string{
		"@10.0.0.0/24 20.0.0.0/24 80 : 80 0 : 65535 0x06/0xFF 0x01/0xFFFF",
		"@10.0.0.0/24 20.0.0.0/24 443 : 443 0 : 65535 0x06/0xFF 0x02/0xFFFF",
	}, "\n"))

	require.Len(t, result.Groups, 1)
	assert.Equal(t, []int{0, 1}, result.Groups[0].Members)

	items := result.MetaInfo[0]
	require.Len(t, items, 2)
	assert.Equal(t, uint16(80), items[0].SrcPortLo)
	assert.Equal(t, uint16(1), items[0].Action)
	assert.Equal(t, uint16(443), items[1].SrcPortLo)
	assert.Equal(t, uint16(2), items[1].Action)
}

// S6 - duplicate LRME collapse: two rules sharing IP/proto and the same
// src [0,31] but identical-after-optimization dst ANY ports collapse to
// one LRME entry.
func TestScenario_DuplicateLRMECollapses(t *testing.T) {
	result := run(t, strings.Join([]string{
		"@10.0.0.0/24 20.0.0.0/24 0 : 31 0 : 65535 0x06/0xFF 0x01/0xFFFF",
		"@10.0.0.0/24 20.0.0.0/24 0 : 31 0 : 65535 0x06/0xFF 0x02/0xFFFF",
	}, "\n"))

	require.Len(t, result.Groups, 1)
	require.Len(t, result.MetaInfo[0], 2)

	// Both optimized blocks have identical (LRMID,ANY,SrcPAI,DstPAI,bitmaps);
	// they differ only in Action, which LRME doesn't carry, so they dedup.
	require.Len(t, result.LRME, 1)
	assert.Equal(t, uint16(0), result.LRME[0].SrcPAI)
	assert.Equal(t, uint32(0xFFFFFFFF), result.LRME[0].SrcBitmap)
}

// S3 - 32-aligned block splits [0,63] into two full windows.
func TestScenario_32AlignedBlockSplit(t *testing.T) {
	result := run(t, "@10.0.0.0/24 20.0.0.0/24 0 : 63 1 : 1 0x06/0xFF 0x01/0xFFFF\n")

	require.Len(t, result.LRME, 2)
	assert.Equal(t, uint16(0), result.LRME[0].SrcPAI)
	assert.Equal(t, uint32(0xFFFFFFFF), result.LRME[0].SrcBitmap)
	assert.Equal(t, uint16(1), result.LRME[1].SrcPAI)
	assert.Equal(t, uint32(0xFFFFFFFF), result.LRME[1].SrcBitmap)
}

func TestDeterminism_SameInputSameOutput(t *testing.T) {
	input := strings.Join([]string{
		"@10.0.0.0/24 20.0.0.0/24 0 : 31 0 : 65535 0x06/0xFF 0x01/0xFFFF",
		"@1.2.3.4/32 5.6.7.8/32 1024 : 65535 80 : 80 0x11/0xFF 0x02/0xFFFF",
	}, "\n")

	a := run(t, input)
	b := run(t, input)
	assert.Equal(t, a.LRME, b.LRME)
	assert.Equal(t, a.IPTable, b.IPTable)
}
