package bulletin

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bulletin titles embed their publication date as "DE 15MAR2024".
var datePattern = regexp.MustCompile(`(?i)\bDE\s*(\d{1,2})\s*([A-Za-z]{3})\s*(\d{4})`)

// Portuguese month abbreviations as used by the bulletin series.
var months = map[string]time.Month{
	"JAN": time.January,
	"FEV": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAI": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SET": time.September,
	"OUT": time.October,
	"NOV": time.November,
	"DEZ": time.December,
}

// ExtractDate locates a publication date in a bulletin label. The second
// return value is false when the label carries no recognizable date; callers
// treat that as "not a bulletin entry", not as a failure.
func ExtractDate(label string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	month, ok := months[strings.ToUpper(m[2])]
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range components (31ABR becomes 1MAI);
	// a date that does not round-trip is rejected for this candidate only.
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}

	return date, true
}
