package scraper

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/attraction-scout/internal/attraction"
	"github.com/intelligrit/attraction-scout/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultVerifyAttempts   = 3
	DefaultVerifyRetryDelay = time.Second

	typeAttraction        = "ATTRACTION"
	typeAttractionProduct = "ATTRACTION_PRODUCT"
	exactMatchBonus       = 10
)

var commercialRe = regexp.MustCompile(`店|超市|商场|餐厅`)

// Verifier cross-checks a name against the site search. It never fails:
// when every attempt errors it falls back to the cleaned input name.
type Verifier struct {
	Fetcher PageFetcher
	BaseURL string
	// MaxAttempts counts every search request, the first included. Each
	// failed attempt is followed by one RetryDelay.
	MaxAttempts int
	RetryDelay  time.Duration
	// Sleep waits between attempts; tests replace it.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *zap.Logger
}

// Verify returns the best matching attraction name for name in city.
func (v *Verifier) Verify(ctx context.Context, name, city string) model.Verification {
	fallback := model.Verification{Exists: true, CorrectName: attraction.Clean(name)}

	attempts := v.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultVerifyAttempts
	}
	delay := v.RetryDelay
	if delay <= 0 {
		delay = DefaultVerifyRetryDelay
	}
	sleep := v.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	log := v.logger().With(zap.String("name", name), zap.String("city", city))

	target := SearchURL(v.BaseURL, city+" "+name)
	for attempt := 0; attempt < attempts; attempt++ {
		doc, err := v.Fetcher.Fetch(ctx, target)
		if err == nil {
			if correct, ok := MatchVerification(doc, name); ok {
				return model.Verification{Exists: true, CorrectName: correct}
			}
			return fallback
		}

		log.Warn("verification attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		if err := sleep(ctx, delay); err != nil {
			return fallback
		}
	}

	return fallback
}

// MatchVerification picks a corrected name from a search result page.
// Among attraction results whose cleaned text contains or is contained by
// name, it prefers an exact match, then the longest text. Without such a
// match it uses the first attraction result. ok is false when the page
// has no attraction results at all.
func MatchVerification(doc *goquery.Document, name string) (correct string, ok bool) {
	results := doc.Find(".result-title").FilterFunction(func(_ int, s *goquery.Selection) bool {
		typ, _ := s.Attr("data-type")
		text := strings.TrimSpace(s.Text())
		return (typ == typeAttraction || typ == typeAttractionProduct) && utf8.RuneCountInString(text) >= 2
	})
	if results.Length() == 0 {
		return "", false
	}

	var best string
	bestScore := 0
	results.Each(func(_ int, s *goquery.Selection) {
		text := attraction.Clean(strings.TrimSpace(s.Text()))
		typ, _ := s.Attr("data-type")
		if typ != typeAttraction || commercialRe.MatchString(text) {
			return
		}
		if !strings.Contains(text, name) && !strings.Contains(name, text) {
			return
		}

		score := utf8.RuneCountInString(text)
		if text == name {
			score += exactMatchBonus
		}
		if score > bestScore {
			best = text
			bestScore = score
		}
	})

	if best != "" {
		return best, true
	}
	return attraction.Clean(strings.TrimSpace(results.First().Text())), true
}

func (v *Verifier) logger() *zap.Logger {
	if v.Logger == nil {
		return zap.NewNop()
	}
	return v.Logger
}
