package naming

import "strings"

// keywordMarkers survive CompressKeyword verbatim.
var keywordMarkers = []string{"LINE", "LN", "KV"}

// Compress keeps the first character of word and drops every vowel after it.
// Words of two characters or fewer are returned unchanged.
func Compress(word string) string {
	if len(word) <= 2 {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	b.WriteByte(word[0])
	for i := 1; i < len(word); i++ {
		if !isVowel(word[i]) {
			b.WriteByte(word[i])
		}
	}
	return b.String()
}

// CompressKeyword compresses only the part of name in front of its last
// keyword marker, leaving the marker and whatever follows it untouched.
// Names of three characters or fewer are exempt.
func CompressKeyword(name string) string {
	if len(name) <= 3 {
		return name
	}
	if idx := keywordIndex(name); idx > 0 {
		return Compress(name[:idx]) + name[idx:]
	}
	return Compress(name)
}

// keywordIndex returns the position of the rightmost keyword marker, or -1.
func keywordIndex(name string) int {
	upper := strings.ToUpper(name)
	best := -1
	for _, m := range keywordMarkers {
		if i := strings.LastIndex(upper, m); i > best {
			best = i
		}
	}
	return best
}

func isVowel(c byte) bool {
	switch c {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
