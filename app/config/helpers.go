package config

import (
	"time"
)

// GetListingTimeout returns the listing fetch timeout as time.Duration
func (s *WatchSettings) GetListingTimeout() time.Duration {
	if s.ListingTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ListingTimeout) * time.Second
}

// GetDocumentTimeout returns the document fetch timeout as time.Duration
func (s *WatchSettings) GetDocumentTimeout() time.Duration {
	if s.DocumentTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(s.DocumentTimeout) * time.Second
}

// GetNotifyTimeout returns the notification dispatch timeout as time.Duration
func (s *WatchSettings) GetNotifyTimeout() time.Duration {
	if s.NotifyTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.NotifyTimeout) * time.Second
}
