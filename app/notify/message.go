package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/danielpva/bgsds-watch/app/bulletin"
	"github.com/danielpva/bgsds-watch/app/document"
)

// NewBulletinMessage formats the notification for a newly published
// bulletin. The keyword report is optional: when the document analysis
// failed, pass a nil report and the error in analysisErr and the message
// carries an explicit failure note instead of keyword results.
func NewBulletinMessage(candidate bulletin.Candidate, report document.KeywordReport, analysisErr error) string {
	var b strings.Builder

	b.WriteString("✅ <b>Novo Boletim Geral publicado!</b>\n\n")
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(candidate.Title))
	fmt.Fprintf(&b, "<a href=\"%s\">Abrir PDF</a>\n", candidate.DocumentURL)

	switch {
	case analysisErr != nil:
		b.WriteString("\n⚠️ Não foi possível analisar o conteúdo do boletim.\n")
	case len(report) > 0:
		b.WriteString("\n🔎 Palavras-chave:\n")
		for _, match := range report {
			marker := "❌"
			if match.Found {
				marker = "✔️"
			}
			fmt.Fprintf(&b, "%s %s\n", marker, html.EscapeString(match.Keyword))
		}
	}

	return b.String()
}

// DiagnosticMessage formats the operator alert sent when the listing page
// itself could not be checked.
func DiagnosticMessage(err error) string {
	return fmt.Sprintf("⚠️ <b>Falha ao consultar a página de boletins</b>\n<code>%s</code>",
		html.EscapeString(err.Error()))
}
