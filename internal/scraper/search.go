package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrCityNotFound means the search page had no city (GEO) result.
var ErrCityNotFound = errors.New("city page not found")

var tourismPathRe = regexp.MustCompile(`Tourism-(g\d+)-(.+?)-Vacations\.html`)

// SearchURL builds the site search URL for query.
func SearchURL(base, query string) string {
	return strings.TrimRight(base, "/") + "/Search?" + url.Values{"q": {query}}.Encode()
}

// ParseCityURL returns the href of the anchor enclosing the first GEO
// search result.
func ParseCityURL(doc *goquery.Document) (string, error) {
	href, ok := doc.Find(`.result-title[data-type="GEO"]`).First().Closest("a").Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", ErrCityNotFound
	}
	return href, nil
}

// AttractionsURL turns a city tourism path into the absolute URL of the
// city's attraction listing.
func AttractionsURL(base, cityPath, city string) (string, error) {
	var path string
	if m := tourismPathRe.FindStringSubmatch(cityPath); m != nil {
		path = "/Attractions-" + m[1] + "-Activities-" + m[2] + ".html"
	} else {
		path = strings.Replace(cityPath, "Tourism", "Attractions-g", 1) + "-Activities-" + city
	}
	return resolve(base, path)
}

// resolve makes href absolute against base.
func resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}
