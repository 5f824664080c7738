package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danielpva/bgsds-watch/app/scheduler"
	"github.com/danielpva/bgsds-watch/app/state"
)

// RunHistory lists recent run records; only the sqlite backend provides it.
type RunHistory interface {
	RecentRuns(limit int) ([]state.RunRecord, error)
}

type Handler struct {
	status  *scheduler.Status
	store   state.Store
	history RunHistory
	version string
}

func NewHandler(status *scheduler.Status, store state.Store, history RunHistory, version string) *Handler {
	return &Handler{
		status:  status,
		store:   store,
		history: history,
		version: version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStatus(c *gin.Context) {
	status := map[string]interface{}{}

	if watermark, present := h.store.Load(); present {
		status["watermark"] = watermark.Format(state.DateFormat)
	} else {
		status["watermark"] = nil
	}

	if report := h.status.LastReport(); report != nil {
		lastRun := map[string]interface{}{
			"ran_at":       report.RanAt.Format(time.RFC3339),
			"outcome":      string(report.Outcome),
			"failed_pages": report.FailedPages,
		}
		if report.Bulletin != nil {
			lastRun["bulletin_title"] = report.Bulletin.Title
			lastRun["bulletin_date"] = report.Bulletin.Date.Format(state.DateFormat)
			lastRun["document_url"] = report.Bulletin.DocumentURL
		}
		if report.Err != nil {
			lastRun["error"] = report.Err.Error()
		}
		status["last_run"] = lastRun
	}

	if h.history != nil {
		if recent, err := h.history.RecentRuns(20); err != nil {
			slog.Warn("Failed to load run history", "error", err)
		} else {
			runs := make([]map[string]interface{}, 0, len(recent))
			for _, record := range recent {
				run := map[string]interface{}{
					"ran_at":       record.RanAt.Format(time.RFC3339),
					"outcome":      record.Outcome,
					"failed_pages": record.FailedPages,
				}
				if record.BulletinDate != nil {
					run["bulletin_date"] = record.BulletinDate.Format(state.DateFormat)
					run["bulletin_title"] = record.BulletinTitle
				}
				if record.Error != "" {
					run["error"] = record.Error
				}
				runs = append(runs, run)
			}
			status["recent_runs"] = runs
		}
	}

	c.JSON(http.StatusOK, status)
}
