package scraper

import (
	"errors"
	"strings"
	"testing"
)

const sampleSearchHTML = `<html><body>
<div class="results">
  <a href="/Hotel_Review-g297463-d1-Chengdu.html"><span class="result-title" data-type="LODGING">成都酒店</span></a>
  <a href="/Tourism-g297463-Chengdu_Sichuan-Vacations.html"><div><span class="result-title" data-type="GEO">成都</span></div></a>
  <a href="/Tourism-g1-Other-Vacations.html"><span class="result-title" data-type="GEO">成都县</span></a>
</div>
</body></html>`

func TestSearchURL(t *testing.T) {
	got := SearchURL("https://www.tripadvisor.cn/", "成都 武侯祠")
	if !strings.HasPrefix(got, "https://www.tripadvisor.cn/Search?q=") {
		t.Fatalf("unexpected search url %q", got)
	}
	if strings.Contains(got, " ") {
		t.Errorf("expected query to be escaped, got %q", got)
	}
}

func TestParseCityURL(t *testing.T) {
	href, err := ParseCityURL(parseHTML(t, sampleSearchHTML))
	if err != nil {
		t.Fatalf("ParseCityURL: %v", err)
	}
	if href != "/Tourism-g297463-Chengdu_Sichuan-Vacations.html" {
		t.Errorf("expected first GEO result, got %q", href)
	}
}

func TestParseCityURL_Missing(t *testing.T) {
	_, err := ParseCityURL(parseHTML(t, "<html><body></body></html>"))
	if !errors.Is(err, ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestAttractionsURL(t *testing.T) {
	got, err := AttractionsURL("https://www.tripadvisor.cn", "/Tourism-g297463-Chengdu_Sichuan-Vacations.html", "成都")
	if err != nil {
		t.Fatalf("AttractionsURL: %v", err)
	}
	want := "https://www.tripadvisor.cn/Attractions-g297463-Activities-Chengdu_Sichuan.html"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAttractionsURL_Fallback(t *testing.T) {
	got, err := AttractionsURL("https://www.tripadvisor.cn", "/Tourism-297463", "Chengdu")
	if err != nil {
		t.Fatalf("AttractionsURL: %v", err)
	}
	want := "https://www.tripadvisor.cn/Attractions-g-297463-Activities-Chengdu"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
