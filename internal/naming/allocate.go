package naming

import (
	"regexp"
	"strings"
)

const (
	minBaseSegment = 4
	minLineSegment = 3
)

// segmentSuffixPattern matches a line name ending in a line-type marker
// followed by exactly one alphanumeric segment suffix, e.g. BOGALUSA_LN_A.
var segmentSuffixPattern = regexp.MustCompile(`^(.*(?:LN|LINE))_*([A-Z0-9])$`)

// SplitLineSuffix normalizes a stripped line name and separates an optional
// one-character segment suffix that must survive verbatim.
func SplitLineSuffix(lineName string) (line, suffix string) {
	s := strings.ToUpper(strings.TrimSpace(lineName))
	if m := segmentSuffixPattern.FindStringSubmatch(s); m != nil {
		return alphanumeric(m[1]), m[2]
	}
	return alphanumeric(s), ""
}

// AllocateLine builds BASE_LINE or BASE_LINE_SUFFIX within MaxLength.
//
// The base segment is compressed before truncation, the line segment is
// compressed keeping its keyword marker. If the joined result is still too
// long only the base shrinks, never below its floor; in that case the
// over-length candidate is returned and the caller clamps it.
func AllocateLine(base, lineName string) string {
	base = Sanitize(base)
	line, suffix := SplitLineSuffix(lineName)
	if line == "" {
		line, suffix = suffix, ""
	}
	if base == "" || line == "" {
		return base
	}

	avail := MaxLength - 1
	if suffix != "" {
		avail -= 1 + len(suffix)
	}

	if len(base)+len(line) > avail {
		baseShare, lineShare := segmentShares(len(base), len(line), avail)
		if len(line) > lineShare {
			line = CompressKeyword(line)
		}
		if len(base) > baseShare {
			base = Compress(base)
		}
		baseShare, lineShare = segmentShares(len(base), len(line), avail)
		line = truncateKeyword(line, lineShare)
		base = strings.TrimRight(truncate(base, baseShare), "_")
	}

	id := joinSegments(base, line, suffix)
	for len(id) > MaxLength && len(base) > minBaseSegment {
		base = strings.TrimRight(base[:len(base)-1], "_")
		id = joinSegments(base, line, suffix)
	}
	return id
}

// segmentShares splits avail characters between base and line. Each side
// starts with half; a side shorter than its half hands the spare to the other.
func segmentShares(baseLen, lineLen, avail int) (baseShare, lineShare int) {
	lineShare = (avail + 1) / 2
	baseShare = avail - lineShare

	switch {
	case baseLen < baseShare:
		baseShare, lineShare = baseLen, avail-baseLen
	case lineLen < lineShare:
		lineShare, baseShare = lineLen, avail-lineLen
	}

	if baseShare < minBaseSegment && baseLen >= minBaseSegment {
		baseShare = minBaseSegment
		lineShare = avail - baseShare
	}
	if lineShare < minLineSegment && lineLen >= minLineSegment {
		lineShare = minLineSegment
		baseShare = avail - lineShare
	}
	return baseShare, lineShare
}

// truncateKeyword shortens line to n characters, cutting in front of a
// trailing keyword marker when there is room to keep it.
func truncateKeyword(line string, n int) string {
	if len(line) <= n {
		return line
	}
	if idx := keywordIndex(line); idx > 0 {
		tail := line[idx:]
		if len(tail) < n {
			return line[:n-len(tail)] + tail
		}
	}
	return truncate(line, n)
}

func joinSegments(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}

// PMUStationIdentifier derives the identifier of a single-line PMU from the
// station part of its device name. It returns "" for other devices.
func PMUStationIdentifier(device string) string {
	station := alphanumeric(pmuStation(device))
	if len(station) > MaxLength {
		station = truncate(Compress(station), MaxLength)
	}
	return station
}

// Sanitize upper-cases id and keeps only A-Z, 0-9 and underscores.
func Sanitize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range strings.ToUpper(strings.TrimSpace(id)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// Clamp enforces the MaxLength ceiling.
func Clamp(id string) string {
	return strings.TrimRight(truncate(id, MaxLength), "_")
}
