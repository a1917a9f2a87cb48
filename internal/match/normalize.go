package match

import (
	"regexp"
	"strings"
)

var (
	// "(feat. X)" / "[feat. X]" annotations, removed entirely
	featPattern = regexp.MustCompile(`\s*[(\[]\s*feat[^)\]]*[)\]]`)

	// "(...remix...)" and " - ...remix..." suffixes, collapsed to " remix"
	remixBracketPattern = regexp.MustCompile(`\s*[(\[][^)\]]*remix[^)\]]*[)\]]`)
	remixSuffixPattern  = regexp.MustCompile(`\s+-\s+[^-]*remix.*$`)

	// anything that is not a lowercase letter, digit, whitespace, hyphen or apostrophe
	disallowedPattern = regexp.MustCompile(`[^a-z0-9\s'-]`)

	hyphenSpacingPattern = regexp.MustCompile(`\s*-\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)

	// "radio edit" marker with surrounding brackets/hyphens/spaces
	// (brackets have become hyphens by the time this runs)
	radioEditPattern = regexp.MustCompile(`[\s-]*radio edit[\s-]*`)

	apostropheReplacer = strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"ʼ", "'", // modifier letter apostrophe
		"´", "'", // acute accent
		"`", "'",
	)

	bracketReplacer = strings.NewReplacer(
		"(", "-", ")", "-",
		"[", "-", "]", "-",
		"{", "-", "}", "-",
	)
)

// Normalize converges a track title to a canonical comparison form.
//
// Catalog titles vary in punctuation, remix/feat annotations and edit markers
// across services. The pipeline lowercases, strips feat annotations, collapses
// remix suffixes to a bare " remix" token, unifies apostrophes, turns leftover
// brackets into hyphens, drops disallowed characters, tightens hyphen and
// whitespace runs, removes "radio edit" markers and trims.
//
// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = featPattern.ReplaceAllString(s, "")
	s = remixBracketPattern.ReplaceAllString(s, " remix")
	s = remixSuffixPattern.ReplaceAllString(s, " remix")
	s = apostropheReplacer.Replace(s)
	s = bracketReplacer.Replace(s)
	s = disallowedPattern.ReplaceAllString(s, "")
	s = hyphenSpacingPattern.ReplaceAllString(s, "-")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = radioEditPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
