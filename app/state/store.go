package state

import (
	"time"
)

// DateFormat is the canonical on-disk watermark representation. Earlier
// deployments stored a bare bulletin number; that format is no longer read
// and loads as absent.
const DateFormat = "2006-01-02"

// Store persists the publication date of the last bulletin already notified.
// It is read once at run start and written at most once at run end.
type Store interface {
	// Load returns the stored watermark date. The second value is false
	// when no watermark exists; unreadable or malformed content is treated
	// the same way, so a corrupted slot can never block notifications.
	Load() (time.Time, bool)

	// Save overwrites the watermark atomically.
	Save(date time.Time) error
}

// RunRecord captures the observable outcome of a single watcher run.
type RunRecord struct {
	RanAt         time.Time
	Outcome       string
	BulletinDate  *time.Time
	BulletinTitle string
	FailedPages   int
	Error         string
}

// RunRecorder appends run outcomes to durable history for observability.
// Only the sqlite backend implements it.
type RunRecorder interface {
	RecordRun(record RunRecord) error
}
