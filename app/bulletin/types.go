package bulletin

import (
	"time"
)

// Candidate is a bulletin entry discovered in the listing page. It lives
// only within a single run; on a detected change the publication date alone
// is persisted as the new watermark.
type Candidate struct {
	Date        time.Time // publication date embedded in the link text, day precision
	Title       string    // visible link text as found on the page
	DocumentURL string    // absolute URL of the bulletin PDF
}
