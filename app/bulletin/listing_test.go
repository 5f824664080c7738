package bulletin

import (
	"net/url"
	"testing"
	"time"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Failed to parse URL %q: %v", raw, err)
	}
	return parsed
}

func TestListingParser_Run(t *testing.T) {
	page := []byte(`
		<html><body>
			<a href="/docs/248.pdf">248 BGSDS DE 13MAR2024</a>
			<a href="/docs/250.pdf">250 BGSDS DE 15MAR2024</a>
			<a href="/docs/249.pdf">249 BGSDS DE 14MAR2024</a>
			<a href="/outros/edital.pdf">Edital de convocação</a>
			<a href="https://example.org/nota">Nota sem data BGSDS</a>
		</body></html>
	`)

	parser := NewListingParser("BGSDS")
	candidates, err := parser.Run(page, mustParseURL(t, "https://www.sds.pe.gov.br/boletim-geral"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}

	// Sorted descending by date
	if candidates[0].Title != "250 BGSDS DE 15MAR2024" {
		t.Errorf("Expected newest bulletin first, got %q", candidates[0].Title)
	}
	if candidates[2].Title != "248 BGSDS DE 13MAR2024" {
		t.Errorf("Expected oldest bulletin last, got %q", candidates[2].Title)
	}

	// href resolved against the base URL
	expected := "https://www.sds.pe.gov.br/docs/250.pdf"
	if candidates[0].DocumentURL != expected {
		t.Errorf("Expected document URL %q, got %q", expected, candidates[0].DocumentURL)
	}

	wantDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !candidates[0].Date.Equal(wantDate) {
		t.Errorf("Expected date %v, got %v", wantDate, candidates[0].Date)
	}
}

func TestListingParser_Run_StableSortOnEqualDates(t *testing.T) {
	page := []byte(`
		<html><body>
			<a href="/a.pdf">250 BGSDS DE 15MAR2024 - Suplemento A</a>
			<a href="/b.pdf">250 BGSDS DE 15MAR2024 - Suplemento B</a>
		</body></html>
	`)

	parser := NewListingParser("BGSDS")
	candidates, err := parser.Run(page, mustParseURL(t, "https://www.sds.pe.gov.br/boletim-geral"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	// Equal dates keep original document order
	if candidates[0].DocumentURL != "https://www.sds.pe.gov.br/a.pdf" {
		t.Errorf("Stable sort violated: got %q first", candidates[0].DocumentURL)
	}
}

func TestListingParser_Run_EmptyPage(t *testing.T) {
	parser := NewListingParser("BGSDS")

	candidates, err := parser.Run([]byte("<html><body><p>Sem boletins</p></body></html>"),
		mustParseURL(t, "https://www.sds.pe.gov.br/boletim-geral"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(candidates) != 0 {
		t.Errorf("Expected empty result, got %d candidates", len(candidates))
	}
}

func TestListingParser_Run_DropsLinksWithoutHref(t *testing.T) {
	page := []byte(`
		<html><body>
			<a>250 BGSDS DE 15MAR2024</a>
			<a href="">249 BGSDS DE 14MAR2024</a>
		</body></html>
	`)

	parser := NewListingParser("BGSDS")
	candidates, err := parser.Run(page, mustParseURL(t, "https://www.sds.pe.gov.br/boletim-geral"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(candidates) != 0 {
		t.Errorf("Expected links without href to be dropped, got %d candidates", len(candidates))
	}
}

func TestListingParser_Run_Latin1Fallback(t *testing.T) {
	// "Publicação" encoded as Latin-1; the page is not valid UTF-8.
	page := append([]byte(`<html><body><a href="/p.pdf">250 BGSDS DE 15MAR2024 - Publica`),
		0xE7, 0xE3, 'o', '<', '/', 'a', '>', '<', '/', 'b', 'o', 'd', 'y', '>', '<', '/', 'h', 't', 'm', 'l', '>')

	parser := NewListingParser("BGSDS")
	candidates, err := parser.Run(page, mustParseURL(t, "https://www.sds.pe.gov.br/boletim-geral"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate from a Latin-1 page, got %d", len(candidates))
	}
	if candidates[0].Title != "250 BGSDS DE 15MAR2024 - Publicação" {
		t.Errorf("Expected decoded title, got %q", candidates[0].Title)
	}
}
