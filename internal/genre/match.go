package genre

import "strings"

// MatchesAny reports whether any keyword is a substring of the lower-cased
// tags joined by spaces. "hip" matches "southern hip hop"; "rock" does not
// match "pop", and neither does it match "emo" or "indie".
func MatchesAny(tags, keywords []string) bool {
	lowered := make([]string, 0, len(tags))
	for _, t := range tags {
		lowered = append(lowered, strings.ToLower(t))
	}
	joined := strings.Join(lowered, " ")

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(joined, k) {
			return true
		}
	}
	return false
}
