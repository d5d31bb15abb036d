package attraction

import (
	"regexp"
	"strings"
)

// cjk is the ideograph range names are required to contain.
const cjk = `\x{4e00}-\x{9fa5}`

var (
	interpunctTailRe  = regexp.MustCompile(`·.*$`)
	latinInterpunctRe = regexp.MustCompile(`[a-zA-Z]+\s*·\s*[^·]+`)
	trailingLatinRe   = regexp.MustCompile(`\s+[a-zA-Z]+(?:\s+[a-zA-Z]+)*\s*$`)
	leadingLatinRe    = regexp.MustCompile(`^[a-zA-Z]+(?:\s+[a-zA-Z]+)*\s*`)
	disallowedRe      = regexp.MustCompile(`[^` + cjk + `a-zA-Z0-9\s]`)
	englishSuffixRe   = regexp.MustCompile(`(?i)(?:Tower|Park|Garden|Mall|Center|Square)$`)
	trailingNonCJKRe  = regexp.MustCompile(`[^` + cjk + `]+$`)
	leadingNonCJKRe   = regexp.MustCompile(`^[^` + cjk + `]+`)
	whitespaceRunRe   = regexp.MustCompile(`\s+`)
)

// cleanSteps run strictly in order; later steps assume the earlier ones
// already removed their noise.
var cleanSteps = []func(string) string{
	func(s string) string { return interpunctTailRe.ReplaceAllString(s, "") },
	func(s string) string { return replaceFirst(latinInterpunctRe, s) },
	func(s string) string { return trailingLatinRe.ReplaceAllString(s, "") },
	func(s string) string { return leadingLatinRe.ReplaceAllString(s, "") },
	func(s string) string { return disallowedRe.ReplaceAllString(s, "") },
	func(s string) string { return englishSuffixRe.ReplaceAllString(s, "") },
	func(s string) string { return trailingNonCJKRe.ReplaceAllString(s, "") },
	func(s string) string { return leadingNonCJKRe.ReplaceAllString(s, "") },
	func(s string) string { return strings.TrimSpace(whitespaceRunRe.ReplaceAllString(s, " ")) },
}

// Clean normalizes a scraped label into a canonical attraction name.
// The result may be empty; Validate rejects empty names downstream.
func Clean(raw string) string {
	s := raw
	for _, step := range cleanSteps {
		s = step(s)
	}
	return s
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
