package naming

import "strings"

// prefixSeparators are tried in order when stripping a configured prefix.
var prefixSeparators = []string{"_", "-", ""}

// StripPrefixes upper-cases tag and removes each configured prefix from its
// head. For every prefix the first matching separator wins.
func StripPrefixes(tag string, prefixes []string) string {
	s := strings.ToUpper(strings.TrimSpace(tag))
	for _, p := range prefixes {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		for _, sep := range prefixSeparators {
			if strings.HasPrefix(s, p+sep) {
				s = s[len(p)+len(sep):]
				break
			}
		}
	}
	return s
}

// BuildBase derives the base identifier for a point tag. The boolean is false
// when the tag carries no name token, in which case the record gets no
// identifier at all.
func BuildBase(pointTag string, prefixes []string) (string, bool) {
	s := StripPrefixes(pointTag, prefixes)

	// The right side of the first dash carries type and phase hints only.
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}

	tokens := strings.Split(s, "_")
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t != "" && ClassifyToken(t) != TokenSystemPrefix {
			break
		}
		i++
	}

	var names []string
	unit := ""
scan:
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		switch ClassifyToken(tok) {
		case TokenStop:
			break scan
		case TokenUnit:
			if unit == "" {
				unit = tok
			}
		case TokenName:
			names = append(names, tok)
		}
	}

	if len(names) == 0 {
		return "", false
	}

	var b strings.Builder
	for j, name := range names {
		// The last token is the most distinguishing one; keep it readable.
		if j < len(names)-1 {
			b.WriteString(Compress(name))
		} else {
			b.WriteString(name)
		}
	}
	b.WriteString(unit)

	id := alphanumeric(b.String())
	if id == "" {
		return "", false
	}
	return truncate(id, MaxLength), true
}

// alphanumeric upper-cases s and keeps only A-Z and 0-9.
func alphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
