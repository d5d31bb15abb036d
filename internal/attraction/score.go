package attraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	keywordBonus   = 15
	keywordPenalty = 20
)

var nonDigitRe = regexp.MustCompile(`\D`)

// positiveKeywords mark landmark-class names.
var positiveKeywords = []string{
	"广场", "寺", "庙", "公园", "博物馆", "大厦", "古镇", "景区", "遗址",
	"陵", "宫", "园", "塔", "湖", "山", "长城", "故宫",
	"Square", "Temple", "Park", "Museum", "Palace", "Tower", "Lake", "Mountain",
}

// negativeKeywords mark commercial names (shops, malls, food).
var negativeKeywords = []string{
	"店", "超市", "商场", "小吃", "餐厅", "购物", "专卖",
	"Store", "Shop", "Mall", "Restaurant", "Cafe", "Market",
}

// reviewBands are checked highest first; the first band exceeded wins.
var reviewBands = []struct {
	over  int
	bonus int
}{
	{1000, 30},
	{500, 20},
	{100, 10},
}

// Score computes the heuristic quality score used for ranking. Keyword
// bonus and penalty are independent and may both apply.
func Score(name string, rating float64, reviews string) int {
	score := int(math.Round(rating * 10))

	count := ParseReviewCount(reviews)
	for _, band := range reviewBands {
		if count > band.over {
			score += band.bonus
			break
		}
	}

	if containsAny(name, positiveKeywords) {
		score += keywordBonus
	}
	if containsAny(name, negativeKeywords) {
		score -= keywordPenalty
	}

	return score
}

// ParseReviewCount keeps only the digits of a review-count label such as
// "1,234 条点评". An empty result counts as zero.
func ParseReviewCount(reviews string) int {
	digits := nonDigitRe.ReplaceAllString(reviews, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// only overflow is possible here
		return math.MaxInt
	}
	return n
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
