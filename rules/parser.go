package rules

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/Moustachego/PortCatcher/internal/logx"
)

// line formats accepted by §6.1, tried in order: space-separated then
// tab-separated. Grounded on Loader.cpp's two sscanf attempts
// ("%u.%u.%u.%u/%u %u.%u.%u.%u/%u %u : %u %u : %u %x/%x %x/%x" and its
// tab-delimited twin).
var (
	spaceLineRE = regexp.MustCompile(
		`^@(\d+)\.(\d+)\.(\d+)\.(\d+)/(\d+) (\d+)\.(\d+)\.(\d+)\.(\d+)/(\d+) (\d+) : (\d+) (\d+) : (\d+) 0x([0-9a-fA-F]+)/0x([0-9a-fA-F]+) 0x([0-9a-fA-F]+)/0x([0-9a-fA-F]+)\s*$`)
	tabLineRE = regexp.MustCompile(
		`^@(\d+)\.(\d+)\.(\d+)\.(\d+)/(\d+)\t(\d+)\.(\d+)\.(\d+)\.(\d+)/(\d+)\t(\d+) : (\d+)\t(\d+) : (\d+)\t0x([0-9a-fA-F]+)/0x([0-9a-fA-F]+)\t0x([0-9a-fA-F]+)/0x([0-9a-fA-F]+)\s*$`)
)

// Parse reads the §6.1 rule-file format from r, returning the accepted
// rules in load order. Malformed lines are warned and skipped (never
// fatal); Priority is the 1-based count of accepted lines so far.
func Parse(r io.Reader, log *logx.Logger) []Rule5D {
	var out []Rule5D
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		m := spaceLineRE.FindStringSubmatch(line)
		if m == nil {
			m = tabLineRE.FindStringSubmatch(line)
		}
		if m == nil {
			log.Warnf("line %d: invalid format, skipping", lineNo)
			continue
		}

		rule, ok := parseMatch(m, lineNo, log)
		if !ok {
			continue
		}
		rule.Priority = uint32(len(out) + 1)
		out = append(out, rule)
	}

	return out
}

func parseMatch(m []string, lineNo int, log *logx.Logger) (Rule5D, bool) {
	nums := make([]int, 14)
	for i := 0; i < 14; i++ {
		v, _ := strconv.Atoi(m[i+1])
		nums[i] = v
	}
	proto, _ := strconv.ParseUint(m[15], 16, 8)
	protoMask, _ := strconv.ParseUint(m[16], 16, 8)
	action, _ := strconv.ParseUint(m[17], 16, 32)
	actionMask, _ := strconv.ParseUint(m[18], 16, 32)
	_ = actionMask // only the value half is retained, per spec.md §3

	sip := [4]int{nums[0], nums[1], nums[2], nums[3]}
	smask := nums[4]
	dip := [4]int{nums[5], nums[6], nums[7], nums[8]}
	dmask := nums[9]
	sportLo, sportHi := nums[10], nums[11]
	dportLo, dportHi := nums[12], nums[13]

	for _, octet := range append(append([]int{}, sip[:]...), dip[:]...) {
		if octet > 255 {
			log.Warnf("line %d: invalid IP octet (must be 0-255), skipping", lineNo)
			return Rule5D{}, false
		}
	}
	if sportLo > 65535 || sportHi > 65535 || dportLo > 65535 || dportHi > 65535 {
		log.Warnf("line %d: port out of range (must be 0-65535), skipping", lineNo)
		return Rule5D{}, false
	}
	if sportLo > sportHi || dportLo > dportHi {
		log.Warnf("line %d: invalid port range (lo > hi), skipping", lineNo)
		return Rule5D{}, false
	}
	if smask > 32 || dmask > 32 {
		log.Warnf("line %d: invalid mask length (must be 0-32), skipping", lineNo)
		return Rule5D{}, false
	}

	srcLo, srcHi := IPRangeFromParts(sip[0], sip[1], sip[2], sip[3], smask)
	dstLo, dstHi := IPRangeFromParts(dip[0], dip[1], dip[2], dip[3], dmask)

	var protoLo, protoHi uint8
	switch protoMask {
	case 0xFF:
		protoLo, protoHi = uint8(proto), uint8(proto)
	case 0x00:
		protoLo, protoHi = 0, 255
	default:
		// Open question §9: no evidence of intended semantics for masks
		// other than 0x00/0xFF; the original loader's fallback arm
		// treats them as wildcard, so we do too.
		protoLo, protoHi = 0, 255
	}

	return Rule5D{
		SrcIPLo: srcLo, SrcIPHi: srcHi,
		DstIPLo: dstLo, DstIPHi: dstHi,
		SrcPortLo: uint16(sportLo), SrcPortHi: uint16(sportHi),
		DstPortLo: uint16(dportLo), DstPortHi: uint16(dportHi),
		ProtoLo: protoLo, ProtoHi: protoHi,
		Action: uint16(action),
	}, true
}

// IPRangeFromParts expands a dotted-quad/masklen pair into an inclusive
// [lo,hi] range, per spec.md §8 property 1 and Loader.cpp's
// ip_range_from_parts.
func IPRangeFromParts(a, b, c, d, masklen int) (lo, hi uint32) {
	base := uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
	if masklen == 0 {
		return 0, 0xFFFFFFFF
	}
	if masklen >= 32 {
		return base, base
	}
	mask := ^uint32(0) << (32 - uint(masklen))
	low := base & mask
	return low, low | ^mask
}

// ErrUnreadable reports that the rule file itself could not be opened,
// the one fatal condition in the §6.1 contract (§7 "Input-unreadable").
func ErrUnreadable(path string, err error) error {
	return fmt.Errorf("cannot open rules file %q: %w", path, err)
}
