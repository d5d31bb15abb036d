package cmd

import (
	"github.com/intelligrit/attraction-scout/internal/cache"
	"github.com/intelligrit/attraction-scout/internal/config"
	"github.com/intelligrit/attraction-scout/internal/pipeline"
	"github.com/intelligrit/attraction-scout/internal/scraper"
	"go.uber.org/zap"
)

func newFetcher(sc config.ScrapeConfig) *scraper.Fetcher {
	f := scraper.NewFetcher(sc.FetchTimeout())
	if sc.UserAgent != "" {
		f.UserAgent = sc.UserAgent
	}
	if sc.Accept != "" {
		f.Accept = sc.Accept
	}
	if sc.AcceptLanguage != "" {
		f.AcceptLanguage = sc.AcceptLanguage
	}
	return f
}

func newVerifier(c *config.Config, log *zap.Logger) *scraper.Verifier {
	return &scraper.Verifier{
		Fetcher:     newFetcher(c.Scrape),
		BaseURL:     c.Scrape.BaseURL,
		MaxAttempts: c.Verify.MaxAttempts,
		RetryDelay:  c.Verify.Delay(),
		Logger:      log.Named("verify"),
	}
}

// newService wires the lookup pipeline from config. history may be nil.
func newService(c *config.Config, log *zap.Logger, history pipeline.Recorder) *pipeline.Service {
	rps := c.Scrape.RateLimit
	crawler := &scraper.Crawler{
		Fetcher:   newFetcher(c.Scrape),
		BaseURL:   c.Scrape.BaseURL,
		MaxPages:  c.Scrape.MaxPages,
		PageDelay: c.Scrape.Pause(),
		NewPacer:  func() scraper.Pacer { return scraper.NewRateLimiter(rps) },
		Logger:    log.Named("crawl"),
	}

	return &pipeline.Service{
		Cache:    cache.New(c.Cache.Expiry(), cache.WithMaxEntries(c.Cache.MaxEntries)),
		Crawler:  crawler,
		Verifier: newVerifier(c, log),
		History:  history,
		Logger:   log.Named("pipeline"),
	}
}
