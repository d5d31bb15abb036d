package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/intelligrit/attraction-scout/internal/attraction"
	"github.com/intelligrit/attraction-scout/internal/cache"
	"github.com/intelligrit/attraction-scout/internal/model"
	"go.uber.org/zap"
)

const verifiedKeySuffix = "|verified"

// Crawler produces unranked candidates for a city.
type Crawler interface {
	Crawl(ctx context.Context, city string) ([]model.AttractionRecord, error)
}

// Verifier corrects a single attraction name.
type Verifier interface {
	Verify(ctx context.Context, name, city string) model.Verification
}

// Recorder keeps completed runs.
type Recorder interface {
	WriteLookup(run *model.LookupRun) error
}

// Service answers attraction lookups.
type Service struct {
	Cache    *cache.Cache
	Crawler  Crawler
	Verifier Verifier
	History  Recorder
	Logger   *zap.Logger
	Now      func() time.Time
}

// Options tune a single lookup.
type Options struct {
	// Verify passes every ranked name through the Verifier.
	Verify bool
}

// Lookup returns up to attraction.MaxResults ranked attractions for city.
// Surrounding whitespace is dropped before the city reaches the cache or
// the crawler, so every request sharing a cache key crawls the same city.
// Concurrent misses for the same city each run the full crawl and the
// last one to finish wins the cache slot.
func (s *Service) Lookup(ctx context.Context, city string, opts Options) ([]model.Attraction, error) {
	city = strings.TrimSpace(city)
	cityKey := cache.Key(city)
	key := cityKey
	if opts.Verify {
		key += verifiedKeySuffix
	}
	log := s.logger().With(zap.String("city", city))

	if cached, ok := s.Cache.Get(key); ok {
		log.Debug("cache hit", zap.Int("attractions", len(cached)))
		return cached, nil
	}

	candidates, err := s.Crawler.Crawl(ctx, city)
	if err != nil {
		log.Error("lookup failed", zap.Error(err))
		return nil, fmt.Errorf("looking up attractions for %q: %w", city, err)
	}

	ranked := attraction.Rank(candidates)
	if opts.Verify {
		ranked = s.verifyAll(ctx, ranked, city)
	}

	s.Cache.Set(key, ranked)
	s.record(cityKey, city, ranked)

	log.Info("lookup complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("attractions", len(ranked)),
		zap.Bool("verified", opts.Verify))

	return ranked, nil
}

// Verify corrects one name; it never fails.
func (s *Service) Verify(ctx context.Context, name, city string) model.Verification {
	if s.Verifier == nil {
		return model.Verification{Exists: true, CorrectName: attraction.Clean(name)}
	}
	return s.Verifier.Verify(ctx, name, city)
}

// verifyAll replaces names with their corrected form, keeping rank order.
// A correction that collides with an earlier name drops the later record.
func (s *Service) verifyAll(ctx context.Context, ranked []model.Attraction, city string) []model.Attraction {
	seen := make(map[string]bool, len(ranked))
	out := make([]model.Attraction, 0, len(ranked))
	for _, a := range ranked {
		v := s.Verify(ctx, a.Name, city)
		if v.CorrectName != "" {
			a.Name = v.CorrectName
		}
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}

func (s *Service) record(cityKey, city string, ranked []model.Attraction) {
	if s.History == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	run := &model.LookupRun{CityKey: cityKey, City: city, FetchedAt: now(), Attractions: ranked}
	if err := s.History.WriteLookup(run); err != nil {
		s.logger().Warn("recording lookup", zap.String("city", city), zap.Error(err))
	}
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
