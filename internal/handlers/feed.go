package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

const feedDays = 7

// FeedHandler serves the schedule as an iCalendar subscription, guarded by
// a shared token so calendar apps can poll it without a session.
type FeedHandler struct {
	feed  *services.FeedService
	token string
}

func NewFeedHandler(feed *services.FeedService, token string) *FeedHandler {
	return &FeedHandler{feed: feed, token: token}
}

func (handler *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if handler.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(handler.token)) != 1 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	calendar, err := handler.feed.Calendar(r.Context(), time.Now(), feedDays)
	if err != nil {
		slog.Error("building schedule feed", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=diet-schedule.ics")
	w.Write([]byte(calendar))
}
