package attraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLen = 2
	maxNameLen = 20
)

var invalidNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[äóöüß]`),
	regexp.MustCompile(`[^` + cjk + `a-zA-Z0-9\s]`),
	regexp.MustCompile(`^[a-zA-Z\s]+$`),
	regexp.MustCompile(`(?i)^(?:the|a|an)\s+`),
	regexp.MustCompile(`\d{4,}`),
	regexp.MustCompile(`(?i)(?:user|admin|test|demo)`),
	regexp.MustCompile(`(?i)(?:port[ae]|street|road|ave)`),
}

var hasCJKRe = regexp.MustCompile(`[` + cjk + `]`)

// MajorCities are the reference cities whose names must not appear in
// an attraction listed for a different city.
var MajorCities = []string{"北京", "上海", "广州", "深圳", "成都", "重庆", "西安", "杭州"}

// Validate reports whether name is a plausible attraction for city. It is
// a relevance heuristic, not a check that the place exists.
func Validate(name, city string) bool {
	for _, re := range invalidNamePatterns {
		if re.MatchString(name) {
			return false
		}
	}

	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return false
	}

	if !hasCJKRe.MatchString(name) {
		return false
	}

	cityName := strings.TrimSuffix(city, "市")
	for _, other := range MajorCities {
		if other == cityName {
			continue
		}
		if strings.Contains(name, other) {
			return false
		}
	}

	return true
}
