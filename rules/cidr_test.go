package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeToCIDRs_SingleAlignedBlock(t *testing.T) {
	blocks := RangeToCIDRs(0x0A000000, 0x0A0000FF) // 10.0.0.0/24
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, "10.0.0.0/24", blocks[0].String())
	}
}

func TestRangeToCIDRs_SingleAddress(t *testing.T) {
	blocks := RangeToCIDRs(0x0A000001, 0x0A000001)
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, "10.0.0.1/32", blocks[0].String())
	}
}

func TestRangeToCIDRs_UnalignedRangeNeedsMultipleBlocks(t *testing.T) {
	// 10.0.0.0 - 10.0.0.2 is 3 addresses: not a single CIDR block.
	blocks := RangeToCIDRs(0x0A000000, 0x0A000002)
	assert.Greater(t, len(blocks), 1)
}
