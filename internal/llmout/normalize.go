package llmout

import (
	"regexp"
	"strings"
)

// Models routinely wrap JSON payloads in a markdown code fence, optionally
// tagged with a language name ("```json"). The fence markers and the tag are
// formatting noise; everything between them is the payload.
var leadingJSONToken = regexp.MustCompile(`(?i)^\s*json\s*`)

// Normalize strips markdown artifacts from a raw model response: every
// triple-backtick fence marker, a single leading "json" language tag and
// surrounding whitespace. It is total — the result may still be invalid JSON,
// but Normalize itself never fails.
func Normalize(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```", "")
	cleaned = leadingJSONToken.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ExtractJSON returns the first balanced JSON object or array span found in
// text, so that chatty responses ("Here is the plan: {...} Let me know!")
// still decode. String literals and escapes are honored while matching
// brackets. When no balanced span exists the trimmed input is returned
// unchanged and the decoder reports the parse failure instead.
func ExtractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	objStart, objSpan, objOK := balancedSpan(trimmed, '{', '}')
	arrStart, arrSpan, arrOK := balancedSpan(trimmed, '[', ']')
	switch {
	case objOK && arrOK:
		if objStart < arrStart {
			return objSpan
		}
		return arrSpan
	case objOK:
		return objSpan
	case arrOK:
		return arrSpan
	}
	return trimmed
}

func balancedSpan(text string, open, close rune) (int, string, bool) {
	start := -1
	depth := 0
	inString := false
	escape := false
	for i, r := range text {
		if start == -1 {
			if r == open {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			if escape {
				escape = false
				continue
			}
			if r == '\\' {
				escape = true
				continue
			}
			if r == '"' {
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return start, strings.TrimSpace(text[start : i+1]), true
			}
		}
	}
	return -1, "", false
}
