package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielpva/bgsds-watch/app/bulletin"
	"github.com/danielpva/bgsds-watch/app/document"
)

func testCandidate() bulletin.Candidate {
	return bulletin.Candidate{
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Title:       "250 BGSDS DE 15MAR2024",
		DocumentURL: "https://www.sds.pe.gov.br/docs/250.pdf",
	}
}

func TestNewBulletinMessage_WithKeywordReport(t *testing.T) {
	report := document.KeywordReport{
		{Keyword: "PORTARIA NORMATIVA", Found: true},
		{Keyword: "EXONERAÇÃO", Found: false},
	}

	message := NewBulletinMessage(testCandidate(), report, nil)

	if !strings.Contains(message, "<b>250 BGSDS DE 15MAR2024</b>") {
		t.Error("Message should contain the bold bulletin title")
	}
	if !strings.Contains(message, `<a href="https://www.sds.pe.gov.br/docs/250.pdf">`) {
		t.Error("Message should contain the document hyperlink")
	}
	if !strings.Contains(message, "✔️ PORTARIA NORMATIVA") {
		t.Error("Message should mark found keywords")
	}
	if !strings.Contains(message, "❌ EXONERAÇÃO") {
		t.Error("Message should mark missing keywords")
	}
}

func TestNewBulletinMessage_AnalysisFailed(t *testing.T) {
	message := NewBulletinMessage(testCandidate(), nil, errors.New("fetch failed"))

	if !strings.Contains(message, "Não foi possível analisar") {
		t.Error("Message should contain the analysis-failure note")
	}
	if strings.Contains(message, "Palavras-chave") {
		t.Error("Message should not contain a keyword section when analysis failed")
	}
	if !strings.Contains(message, "<b>250 BGSDS DE 15MAR2024</b>") {
		t.Error("Message should still contain the bulletin title")
	}
}

func TestNewBulletinMessage_EscapesTitle(t *testing.T) {
	candidate := testCandidate()
	candidate.Title = "250 BGSDS DE 15MAR2024 <extra>"

	message := NewBulletinMessage(candidate, nil, nil)

	if strings.Contains(message, "<extra>") {
		t.Error("Title markup should be escaped")
	}
	if !strings.Contains(message, "&lt;extra&gt;") {
		t.Error("Expected escaped title content")
	}
}

func TestDiagnosticMessage(t *testing.T) {
	message := DiagnosticMessage(errors.New("HTTP error: 503"))

	if !strings.Contains(message, "Falha ao consultar") {
		t.Error("Diagnostic message should describe the listing failure")
	}
	if !strings.Contains(message, "HTTP error: 503") {
		t.Error("Diagnostic message should include the cause")
	}
}
