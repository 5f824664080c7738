package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielpva/bgsds-watch/app/bulletin"
	"github.com/danielpva/bgsds-watch/app/config"
	"github.com/danielpva/bgsds-watch/app/document"
	"github.com/danielpva/bgsds-watch/app/notify"
	"github.com/danielpva/bgsds-watch/app/state"
)

// Watcher runs the decide-and-notify workflow: fetch the listing, compare
// the newest bulletin against the watermark, analyze and notify on change.
type Watcher struct {
	watchConfig   *config.WatchConfig
	baseURL       *url.URL
	httpClient    *http.Client
	listingParser *bulletin.ListingParser
	analyzer      *document.Analyzer
	store         state.Store
	recorder      state.RunRecorder
	notifier      notify.Notifier
	userAgent     string
	notifyOnError bool
}

func New(watchConfig *config.WatchConfig, httpClient *http.Client, store state.Store,
	recorder state.RunRecorder, notifier notify.Notifier, userAgent string, notifyOnError bool) (*Watcher, error) {

	baseURL, err := url.Parse(watchConfig.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL: %w", err)
	}

	return &Watcher{
		watchConfig:   watchConfig,
		baseURL:       baseURL,
		httpClient:    httpClient,
		listingParser: bulletin.NewListingParser(watchConfig.Marker),
		analyzer:      document.NewAnalyzer(httpClient, userAgent, watchConfig.Settings.GetDocumentTimeout()),
		store:         store,
		recorder:      recorder,
		notifier:      notifier,
		userAgent:     userAgent,
		notifyOnError: notifyOnError,
	}, nil
}

// Run performs a single check. It never returns an error: every failure mode
// ends in a Report so repeated invocations stay independent.
func (w *Watcher) Run(ctx context.Context) Report {
	report := w.run(ctx)
	w.record(report)
	return report
}

func (w *Watcher) run(ctx context.Context) Report {
	report := Report{RanAt: time.Now(), Outcome: OutcomeError}

	data, err := w.fetchListing(ctx)
	if err != nil {
		slog.Error("Listing fetch failed", "url", w.watchConfig.URL, "error", err)
		w.sendDiagnostic(ctx, err)
		report.Err = err
		return report
	}

	candidates, err := w.listingParser.Run(data, w.baseURL)
	if err != nil {
		slog.Error("Listing parse failed", "url", w.watchConfig.URL, "error", err)
		w.sendDiagnostic(ctx, err)
		report.Err = err
		return report
	}

	if len(candidates) == 0 {
		slog.Info("No bulletins found on the listing page", "url", w.watchConfig.URL)
		report.Outcome = OutcomeNoCandidates
		return report
	}

	newest := candidates[0]
	report.Bulletin = &newest

	watermark, present := w.store.Load()
	slog.Info("Newest bulletin on page",
		"title", newest.Title,
		"date", newest.Date.Format(state.DateFormat),
		"watermark", formatWatermark(watermark, present))

	if present && !newest.Date.After(watermark) {
		slog.Info("No new bulletin since last notification")
		report.Outcome = OutcomeUnchanged
		return report
	}

	// Document analysis is best-effort: a failure here downgrades the
	// message but never suppresses the notification.
	keywordReport, failedPages, analysisErr := w.analyze(ctx, newest)
	report.FailedPages = failedPages

	message := notify.NewBulletinMessage(newest, keywordReport, analysisErr)
	if err := w.notifier.Send(ctx, message); err != nil {
		// Watermark untouched: the same bulletin fires again next run.
		slog.Error("Notification dispatch failed", "title", newest.Title, "error", err)
		report.Err = fmt.Errorf("failed to send notification: %w", err)
		return report
	}
	slog.Info("Notification sent", "title", newest.Title)

	if err := w.store.Save(newest.Date); err != nil {
		slog.Error("Failed to persist watermark", "error", err)
		report.Err = fmt.Errorf("failed to persist watermark: %w", err)
		return report
	}

	report.Outcome = OutcomeChanged
	return report
}

func (w *Watcher) fetchListing(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, w.watchConfig.Settings.GetListingTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", w.watchConfig.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
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

func (w *Watcher) analyze(ctx context.Context, candidate bulletin.Candidate) (document.KeywordReport, int, error) {
	text, failedPages, err := w.analyzer.ExtractText(ctx, candidate.DocumentURL)
	if err != nil {
		slog.Warn("Document analysis failed, notifying without keyword report",
			"url", candidate.DocumentURL, "error", err)
		return nil, failedPages, err
	}

	if failedPages > 0 {
		slog.Warn("Document extracted with failed pages",
			"url", candidate.DocumentURL, "failed_pages", failedPages)
	}

	return document.SearchKeywords(text, w.watchConfig.Keywords), failedPages, nil
}

func (w *Watcher) sendDiagnostic(ctx context.Context, cause error) {
	if !w.notifyOnError {
		return
	}

	if err := w.notifier.Send(ctx, notify.DiagnosticMessage(cause)); err != nil {
		slog.Error("Failed to send diagnostic notification", "error", err)
	}
}

func (w *Watcher) record(report Report) {
	if w.recorder == nil {
		return
	}

	record := state.RunRecord{
		RanAt:       report.RanAt,
		Outcome:     string(report.Outcome),
		FailedPages: report.FailedPages,
	}
	if report.Bulletin != nil {
		record.BulletinDate = &report.Bulletin.Date
		record.BulletinTitle = report.Bulletin.Title
	}
	if report.Err != nil {
		record.Error = report.Err.Error()
	}

	if err := w.recorder.RecordRun(record); err != nil {
		slog.Warn("Failed to record run history", "error", err)
	}
}

func formatWatermark(watermark time.Time, present bool) string {
	if !present {
		return "absent"
	}
	return watermark.Format(state.DateFormat)
}
