package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
	"github.com/rishabhrd09/als-diet-tracker/internal/testutil"
)

func setupFeed(t *testing.T) (*services.FeedService, *services.CatalogService) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	catalog := services.NewCatalogService(
		repository.NewFormulaRepository(db),
		repository.NewTemplateRepository(db),
	)
	return services.NewFeedService(catalog), catalog
}

func TestFeedService_Calendar(t *testing.T) {
	feed, catalog := setupFeed(t)
	ctx := context.Background()

	formula, _ := catalog.CreateFormula(ctx, models.FoodFormula{
		Name: "Jevity", DefaultDescription: "Fiber-fortified",
	})
	catalog.CreateTemplate(ctx, models.ScheduleTemplate{
		Timing: "08:00", FormulaID: &formula.ID, QuantityML: 240,
	})
	catalog.CreateTemplate(ctx, models.ScheduleTemplate{
		Timing: "12:30", CustomFoodName: "Blended lunch", QuantityML: 300, Description: "room temperature",
	})

	from := time.Date(2025, 6, 1, 9, 15, 0, 0, time.Local)
	serialized, err := feed.Calendar(ctx, from, 2)
	if err != nil {
		t.Fatalf("building calendar: %v", err)
	}

	if !strings.Contains(serialized, "BEGIN:VCALENDAR") {
		t.Error("expected a VCALENDAR envelope")
	}
	if got := strings.Count(serialized, "BEGIN:VEVENT"); got != 4 {
		t.Errorf("expected 2 templates x 2 days = 4 events, got %d", got)
	}
	if !strings.Contains(serialized, "Jevity (240 ml)") {
		t.Error("expected formula slot summary in feed")
	}
	if !strings.Contains(serialized, "Blended lunch (300 ml)") {
		t.Error("expected custom slot summary in feed")
	}
	if !strings.Contains(serialized, "room temperature") {
		t.Error("expected slot description in feed")
	}
	if !strings.Contains(serialized, "Fiber-fortified") {
		t.Error("expected formula default description fallback in feed")
	}
	if !strings.Contains(serialized, "feed-2025-06-01-") || !strings.Contains(serialized, "feed-2025-06-02-") {
		t.Error("expected stable per-day event UIDs")
	}
}

func TestFeedService_Calendar_EmptySchedule(t *testing.T) {
	feed, _ := setupFeed(t)

	serialized, err := feed.Calendar(context.Background(), time.Now(), 7)
	if err != nil {
		t.Fatalf("building calendar: %v", err)
	}
	if strings.Contains(serialized, "BEGIN:VEVENT") {
		t.Error("empty schedule should produce no events")
	}
}
