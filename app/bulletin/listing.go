package bulletin

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"
)

// ListingParser turns a fetched listing page into ordered bulletin candidates.
type ListingParser struct {
	marker string
}

// NewListingParser creates a parser that keeps only links whose visible text
// contains the given series marker (e.g. "BGSDS").
func NewListingParser(marker string) *ListingParser {
	return &ListingParser{marker: marker}
}

// Run scans all hyperlinks in the page and returns the bulletin candidates
// sorted by publication date, most recent first. Ties keep document order.
// An empty result is valid; links without an extractable date or href are
// dropped silently.
func (p *ListingParser) Run(data []byte, baseURL *url.URL) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decode(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var candidates []Candidate
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !strings.Contains(text, p.marker) {
			return
		}

		date, ok := ExtractDate(text)
		if !ok {
			return
		}

		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		candidates = append(candidates, Candidate{
			Date:        date,
			Title:       text,
			DocumentURL: baseURL.ResolveReference(ref).String(),
		})
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.After(candidates[j].Date)
	})

	return candidates, nil
}

// decode falls back to Latin-1 when the page is not valid UTF-8; the source
// site has served both encodings over time.
func decode(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}
