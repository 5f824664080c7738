package document

import (
	"strings"
)

// KeywordMatch is the presence result for a single configured keyword.
type KeywordMatch struct {
	Keyword string
	Found   bool
}

// KeywordReport holds one match per configured keyword, in configuration
// order.
type KeywordReport []KeywordMatch

// SearchKeywords tests each keyword for case-insensitive substring presence
// in the extracted document text. No tokenization, no stemming.
func SearchKeywords(text string, keywords []string) KeywordReport {
	lowered := strings.ToLower(text)

	report := make(KeywordReport, 0, len(keywords))
	for _, keyword := range keywords {
		report = append(report, KeywordMatch{
			Keyword: keyword,
			Found:   strings.Contains(lowered, strings.ToLower(keyword)),
		})
	}

	return report
}
