package watcher

import (
	"time"

	"github.com/danielpva/bgsds-watch/app/bulletin"
)

// Outcome is the terminal state of a single run.
type Outcome string

const (
	// OutcomeError: the listing could not be checked, or the notification
	// for a new bulletin could not be delivered. The watermark is untouched
	// so the next run retries.
	OutcomeError Outcome = "error"
	// OutcomeNoCandidates: the page had no recognizable bulletin links.
	OutcomeNoCandidates Outcome = "no_candidates"
	// OutcomeUnchanged: the newest bulletin was already notified.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeChanged: a new bulletin was notified and the watermark advanced.
	OutcomeChanged Outcome = "changed"
)

// Report summarizes one run for logging, run history and the status API.
type Report struct {
	RanAt       time.Time
	Outcome     Outcome
	Bulletin    *bulletin.Candidate
	FailedPages int
	Err         error
}
