package utils

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	reScript = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	reStyle  = regexp.MustCompile(`(?i)<style[^>]*>[\s\S]*?</style>`)
	// Block-level closers become spaces so "<p>one</p><p>two</p>" is two words
	reBlockEnd = regexp.MustCompile(`(?i)</(p|div|li|h[1-6])>|<br\s*/?>`)

	stripPolicy = bluemonday.StripTagsPolicy()
)

// SanitizeHTML strips HTML tags, script/style content, and decodes entities
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	s = ToValidUTF8(s)

	// 1. Decode HTML entities first (e.g. &lt; -> <) so tags are recognized
	s = html.UnescapeString(s)

	// 2. Remove script and style blocks content
	s = reScript.ReplaceAllString(s, "")
	s = reStyle.ReplaceAllString(s, "")
	s = reBlockEnd.ReplaceAllString(s, " ")

	// 3. Strip tags using bluemonday
	s = stripPolicy.Sanitize(s)

	// 4. Decode HTML entities AGAIN (bluemonday escapes them, and we want plain text)
	s = html.UnescapeString(s)

	// 5. Compose unicode so the same word always has the same bytes
	s = norm.NFC.String(s)

	// 6. Collapse extra whitespace
	return strings.Join(strings.Fields(s), " ")
}

// CountWords returns the number of whitespace-delimited tokens in the plain
// text of s. Empty or markup-only input counts as zero.
func CountWords(s string) int {
	return len(strings.Fields(SanitizeHTML(s)))
}

// Truncate cuts s to at most max runes, appending "..." when it had to cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// ToValidUTF8 cleans strings to ensure they are valid UTF-8
func ToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// ExtractJSON returns the outermost JSON object or array embedded in s.
// LLM replies often wrap the payload in prose or code fences.
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseJSON parses a JSON string into a target interface
func ParseJSON(jsonStr string, target interface{}) error {
	return json.Unmarshal([]byte(jsonStr), target)
}
