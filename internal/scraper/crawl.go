package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/attraction-scout/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultMaxPages is the listing page cap: the first page plus four more.
	DefaultMaxPages = 5
	// DefaultPageDelay is the fixed pause before each listing page after
	// the first.
	DefaultPageDelay = time.Second
)

// PageFetcher retrieves and parses one HTML page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Crawler walks a city's attraction listing. All fetches of one crawl are
// sequential and paced by a fresh Pacer; listing pages after the first
// are additionally preceded by a fixed PageDelay.
type Crawler struct {
	Fetcher   PageFetcher
	BaseURL   string
	MaxPages  int
	PageDelay time.Duration
	NewPacer  func() Pacer
	// Sleep waits out PageDelay; tests replace it.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *zap.Logger
}

// Crawl resolves city through the site search, then extracts candidate
// records from up to MaxPages listing pages. Failures on the search or
// first listing page are returned; a failure on a later page stops
// pagination and keeps what was already extracted.
func (c *Crawler) Crawl(ctx context.Context, city string) ([]model.AttractionRecord, error) {
	log := c.logger().With(zap.String("city", city))

	var pacer Pacer = NewRateLimiter(1)
	if c.NewPacer != nil {
		pacer = c.NewPacer()
	}
	fetch := func(url string) (*goquery.Document, error) {
		if err := pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting to fetch %s: %w", url, err)
		}
		return c.Fetcher.Fetch(ctx, url)
	}

	search, err := fetch(SearchURL(c.BaseURL, city))
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}

	cityPath, err := ParseCityURL(search)
	if err != nil {
		return nil, err
	}

	listURL, err := AttractionsURL(c.BaseURL, cityPath, city)
	if err != nil {
		return nil, err
	}

	doc, err := fetch(listURL)
	if err != nil {
		return nil, fmt.Errorf("fetching attraction list: %w", err)
	}

	records, seen := ExtractListing(doc, city, 0)
	pages := 1

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	delay := c.PageDelay
	if delay <= 0 {
		delay = DefaultPageDelay
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for pages < maxPages {
		next, ok := NextPageURL(doc, c.BaseURL)
		if !ok {
			break
		}

		if err := sleep(ctx, delay); err != nil {
			log.Warn("stopping pagination", zap.String("url", next), zap.Error(err))
			break
		}

		doc, err = fetch(next)
		if err != nil {
			log.Warn("stopping pagination", zap.String("url", next), zap.Error(err))
			break
		}

		pageRecords, n := ExtractListing(doc, city, seen)
		records = append(records, pageRecords...)
		seen += n
		pages++
	}

	log.Debug("crawl finished",
		zap.Int("pages", pages),
		zap.Int("listings", seen),
		zap.Int("candidates", len(records)))

	return records, nil
}

func (c *Crawler) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
