package llm

import "strings"

// StripCodeFence removes a leading ``` or ```json marker and a trailing
// ``` marker from a completion. Fences elsewhere in the text are kept.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		// Drop an optional language tag on the opening fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			tag := strings.TrimSpace(rest[:nl])
			if tag == "" || isFenceTag(tag) {
				rest = rest[nl+1:]
			}
		} else if tag, ok := strings.CutPrefix(rest, "json"); ok {
			rest = tag
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
