package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/attraction-scout/internal/attraction"
	"github.com/intelligrit/attraction-scout/internal/model"
)

const (
	// minRating is the bubble rating floor a listing must reach.
	minRating = 4.0
	// minQualityScore is exclusive: a record needs a score above it.
	minQualityScore = 30
)

var bubbleRe = regexp.MustCompile(`bubble_(\d+)`)

// ExtractListing parses one attraction listing page. Each listing element
// gets index offset+i, so indices keep counting across pages. It returns
// the kept records and the number of listing elements seen.
func ExtractListing(doc *goquery.Document, city string, offset int) ([]model.AttractionRecord, int) {
	var records []model.AttractionRecord

	elems := doc.Find(".attraction_element")
	elems.Each(func(i int, el *goquery.Selection) {
		name := attraction.Clean(strings.TrimSpace(el.Find(".listing_title a").Text()))

		class, _ := el.Find(".ui_bubble_rating").Attr("class")
		rating := ParseBubbleRating(class)

		reviews := strings.TrimSpace(el.Find(".review_count").Text())

		if name == "" || rating < minRating || !attraction.Validate(name, city) {
			return
		}

		score := attraction.Score(name, rating, reviews)
		if score <= minQualityScore {
			return
		}

		records = append(records, model.AttractionRecord{
			Name:          name,
			Rating:        rating,
			Reviews:       reviews,
			QualityScore:  score,
			OriginalIndex: offset + i,
		})
	})

	return records, elems.Length()
}

// ParseBubbleRating reads a "bubble_NN" class token as NN/10. Missing or
// malformed tokens give 0.
func ParseBubbleRating(class string) float64 {
	m := bubbleRe.FindStringSubmatch(class)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return float64(n) / 10
}

// NextPageURL returns the absolute URL of the page's "next" link.
func NextPageURL(doc *goquery.Document, base string) (string, bool) {
	href, ok := doc.Find(".nav.next").First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}
	next, err := resolve(base, href)
	if err != nil {
		return "", false
	}
	return next, true
}
