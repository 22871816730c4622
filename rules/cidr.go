package rules

import (
	"net/netip"
)

// RangeToCIDRs decomposes an inclusive IP range into the minimum set of
// CIDR blocks covering it exactly, grounded on Loader.cpp's
// range_to_cidr (binary-indexed "largest aligned block" walk).
func RangeToCIDRs(lo, hi uint32) []netip.Prefix {
	var out []netip.Prefix
	start := uint64(lo)
	end := uint64(hi)

	for start <= end {
		maxSize := start & (-start & 0xFFFFFFFF)
		if start == 0 {
			maxSize = 1 << 32
		}
		remaining := end - start + 1

		prefix := 32
		for maxSize > 1 {
			maxSize >>= 1
			prefix--
		}
		for prefix < 32 && uint64(1)<<(32-uint(prefix)) > remaining {
			prefix++
		}
		if prefix > 32 {
			prefix = 32
		}

		addr := netip.AddrFrom4([4]byte{
			byte(start >> 24), byte(start >> 16), byte(start >> 8), byte(start),
		})
		out = append(out, netip.PrefixFrom(addr, prefix))

		step := uint64(1) << (32 - uint(prefix))
		next := start + step
		if next > 0xFFFFFFFF {
			break
		}
		start = next
	}
	return out
}
