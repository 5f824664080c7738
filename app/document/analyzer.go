package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ledongthuc/pdf"
)

// Analyzer fetches a bulletin PDF and extracts its text. Extraction is
// best-effort per page: a page that fails is skipped and counted, and the
// result is an error only when the fetch fails or no page yields text.
type Analyzer struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewAnalyzer(httpClient *http.Client, userAgent string, timeout time.Duration) *Analyzer {
	return &Analyzer{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// ExtractText downloads the document and returns the concatenated text of
// all pages plus the number of pages whose extraction failed.
func (a *Analyzer) ExtractText(ctx context.Context, documentURL string) (string, int, error) {
	data, err := a.fetchDocument(ctx, documentURL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch document: %w", err)
	}

	reader, err := openPDF(data)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open document: %w", err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", 0, fmt.Errorf("document has no pages")
	}

	var text bytes.Buffer
	failedPages := 0
	for i := 1; i <= totalPages; i++ {
		pageText, err := extractPage(reader, i)
		if err != nil {
			failedPages++
			slog.Warn("Page extraction failed, skipping", "page", i, "error", err)
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	if failedPages == totalPages {
		return "", failedPages, fmt.Errorf("all %d pages failed to extract", totalPages)
	}

	return text.String(), failedPages, nil
}

func (a *Analyzer) fetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", documentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// openPDF wraps reader construction; the pdf package panics on some
// malformed documents instead of returning an error.
func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// extractPage extracts the plain text of a single page, converting the pdf
// package's panics into errors so one bad page cannot abort the document.
func extractPage(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is missing", pageNum)
	}

	return page.GetPlainText(nil)
}
