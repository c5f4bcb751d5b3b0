package humanize

import "regexp"

// Disallowed-topic patterns checked before any external call.
var flaggedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(fraud|scam|phishing)\b`),
	regexp.MustCompile(`(?i)\b(hate|violence|harm)\b`),
	regexp.MustCompile(`(?i)\b(illegal|criminal)\b`),
}

// Flagged reports whether the text matches any disallowed-topic pattern.
func Flagged(text string) bool {
	for _, pattern := range flaggedPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
