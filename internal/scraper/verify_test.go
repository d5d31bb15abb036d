package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type sleepRecorder struct {
	calls []time.Duration
	err   error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return s.err
}

func resultsPage(entries ...[2]string) string {
	html := "<html><body>"
	for _, e := range entries {
		html += fmt.Sprintf(`<a href="#"><span class="result-title" data-type="%s">%s</span></a>`, e[0], e[1])
	}
	return html + "</body></html>"
}

func TestMatchVerificationPrefersExact(t *testing.T) {
	doc := parseHTML(t, resultsPage(
		[2]string{"ATTRACTION", "武侯祠博物馆"},
		[2]string{"ATTRACTION", "武侯祠"},
	))

	got, ok := MatchVerification(doc, "武侯祠")
	if !ok || got != "武侯祠" {
		t.Errorf("expected exact match '武侯祠', got %q (ok=%v)", got, ok)
	}
}

func TestMatchVerificationPrefersLongest(t *testing.T) {
	doc := parseHTML(t, resultsPage(
		[2]string{"ATTRACTION", "宽窄巷子景区"},
		[2]string{"ATTRACTION", "宽窄巷子步行街"},
		[2]string{"ATTRACTION", "宽窄巷子特产店"},
	))

	got, ok := MatchVerification(doc, "宽窄巷子")
	if !ok || got != "宽窄巷子步行街" {
		t.Errorf("expected longest non-commercial match, got %q", got)
	}
}

func TestMatchVerificationFallsBackToFirst(t *testing.T) {
	doc := parseHTML(t, resultsPage(
		[2]string{"LODGING", "成都大酒店"},
		[2]string{"ATTRACTION_PRODUCT", "熊猫基地一日游"},
		[2]string{"ATTRACTION", "都江堰"},
	))

	got, ok := MatchVerification(doc, "宽窄巷子")
	if !ok || got != "熊猫基地一日游" {
		t.Errorf("expected first attraction result, got %q (ok=%v)", got, ok)
	}
}

func TestMatchVerificationNoResults(t *testing.T) {
	doc := parseHTML(t, resultsPage([2]string{"GEO", "成都"}))
	if _, ok := MatchVerification(doc, "宽窄巷子"); ok {
		t.Error("expected no match without attraction results")
	}
}

func TestVerifyExhaustsAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	v := &Verifier{Fetcher: NewFetcher(0), BaseURL: srv.URL, Sleep: rec.sleep}

	got := v.Verify(context.Background(), "锦里古街 Jinli Street", "成都")

	if !got.Exists || got.CorrectName != "锦里古街" {
		t.Errorf("expected fallback to cleaned name, got %+v", got)
	}
	if hits.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", hits.Load())
	}
	if len(rec.calls) != 3 {
		t.Fatalf("expected 3 waits, got %d", len(rec.calls))
	}
	for _, d := range rec.calls {
		if d != time.Second {
			t.Errorf("expected fixed 1s delay, got %v", d)
		}
	}
}

func TestVerifyMaxAttemptsCountsFirstRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	v := &Verifier{Fetcher: NewFetcher(0), BaseURL: srv.URL, MaxAttempts: 1, Sleep: rec.sleep}
	v.Verify(context.Background(), "武侯祠", "成都")

	if hits.Load() != 1 {
		t.Errorf("expected a single request, got %d", hits.Load())
	}
	if len(rec.calls) != 1 {
		t.Errorf("expected one wait after the failed attempt, got %d", len(rec.calls))
	}
}

func TestVerifyRecoversAfterFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		if q := r.URL.Query().Get("q"); q != "成都 武侯祠" {
			t.Errorf("unexpected query %q", q)
		}
		fmt.Fprint(w, resultsPage([2]string{"ATTRACTION", "武侯祠博物馆"}))
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	v := &Verifier{Fetcher: NewFetcher(0), BaseURL: srv.URL, Sleep: rec.sleep}

	got := v.Verify(context.Background(), "武侯祠", "成都")
	if got.CorrectName != "武侯祠博物馆" {
		t.Errorf("expected corrected name, got %+v", got)
	}
	if len(rec.calls) != 2 {
		t.Errorf("expected 2 waits, got %d", len(rec.calls))
	}
}

func TestVerifyStopsWhenContextDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &sleepRecorder{err: context.Canceled}
	v := &Verifier{Fetcher: NewFetcher(0), BaseURL: srv.URL, Sleep: rec.sleep}

	got := v.Verify(context.Background(), "杜甫草堂", "成都")
	if got.CorrectName != "杜甫草堂" || !got.Exists {
		t.Errorf("expected fallback, got %+v", got)
	}
	if len(rec.calls) != 1 {
		t.Errorf("expected to give up after the first wait, got %d waits", len(rec.calls))
	}
}
