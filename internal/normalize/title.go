package normalize

import (
	"regexp"
	"strings"
)

var (
	// "(feat. X)", "[ft. X]", "(featuring X)"
	bracketFeatRegex = regexp.MustCompile(`(?i)\s*[\(\[]\s*(?:feat\.?|ft\.?|featuring)\s[^\)\]]*[\)\]]`)
	// trailing "feat. X" without brackets
	trailingFeatRegex = regexp.MustCompile(`(?i)\s+(?:feat\.?|ft\.?|featuring)\s.*$`)
	// "(Deluxe Edition)", "[2014 Remaster]", "(3am Edition)", "(Expanded)"
	editionRegex = regexp.MustCompile(`(?i)\s*[\(\[][^\)\]]*\b(?:edition|deluxe|expanded|anniversary|remaster(?:ed)?|version|bonus)\b[^\)\]]*[\)\]]`)
	// "Vol. 2", "Volume II", "Pt. 1", "Part 3" with an optional leading separator
	numberingRegex = regexp.MustCompile(`(?i)[\s,:\-]*\b(?:vol(?:ume)?\.?|pt\.?|part)\s*(?:\d+|[ivx]+)\b\.?`)
	// " - Single", " - EP" store suffixes
	formatSuffixRegex = regexp.MustCompile(`(?i)\s+-\s+(?:single|ep)\s*$`)
	emptyBracketRegex = regexp.MustCompile(`[\(\[]\s*[\)\]]`)
	spaceRegex        = regexp.MustCompile(`\s+`)
)

// CleanTitle strips decorations that secondary catalog search handles badly:
// featuring clauses, volume and part numbering, edition parentheticals and
// store format suffixes. Trailing punctuation is trimmed and whitespace
// collapsed. If cleaning would leave nothing, the trimmed input is returned.
//
//	CleanTitle("Midnights (3am Edition)") == "Midnights"
func CleanTitle(title string) string {
	s := bracketFeatRegex.ReplaceAllString(title, "")
	s = editionRegex.ReplaceAllString(s, "")
	s = trailingFeatRegex.ReplaceAllString(s, "")
	s = numberingRegex.ReplaceAllString(s, "")
	s = formatSuffixRegex.ReplaceAllString(s, "")
	s = emptyBracketRegex.ReplaceAllString(s, "")
	s = spaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimRight(strings.TrimSpace(s), ",;:-– ")
	s = strings.TrimSpace(s)

	if s == "" {
		return strings.TrimSpace(spaceRegex.ReplaceAllString(title, " "))
	}
	return s
}
