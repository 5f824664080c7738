package scheduler

import (
	"sync"

	"github.com/danielpva/bgsds-watch/app/watcher"
)

// Status holds the last run report for the HTTP status endpoint.
type Status struct {
	mu         sync.RWMutex
	lastReport *watcher.Report
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) SetLastReport(report watcher.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReport = &report
}

func (s *Status) LastReport() *watcher.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}
