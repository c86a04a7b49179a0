package services

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
)

const feedSlotDuration = 30 * time.Minute

// FeedService renders the recurring schedule as an iCalendar feed so
// caregivers can subscribe from a calendar app. The feed projects the
// template slots over the coming days; it does not reflect per-day record
// state.
type FeedService struct {
	catalog *CatalogService
}

func NewFeedService(catalog *CatalogService) *FeedService {
	return &FeedService{catalog: catalog}
}

// Calendar serializes the schedule for days consecutive days starting at
// from's date. Each slot is rendered with the same resolved fields that
// record generation would use, so the feed matches what sync materializes.
func (service *FeedService) Calendar(ctx context.Context, from time.Time, days int) (string, error) {
	templates, err := service.catalog.Templates(ctx)
	if err != nil {
		return "", fmt.Errorf("loading schedule for feed: %w", err)
	}

	formulas, err := service.catalog.Formulas(ctx)
	if err != nil {
		return "", fmt.Errorf("loading formulas for feed: %w", err)
	}
	formulasByID := make(map[string]models.FoodFormula, len(formulas))
	for _, formula := range formulas {
		formulasByID[formula.ID] = formula
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//als-diet-tracker//schedule//EN")

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	now := time.Now()

	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		for _, template := range templates {
			slot, err := time.ParseInLocation(TimingLayout, template.Timing, from.Location())
			if err != nil {
				continue
			}
			begins := time.Date(date.Year(), date.Month(), date.Day(),
				slot.Hour(), slot.Minute(), 0, 0, from.Location())

			var formula *models.FoodFormula
			if template.FormulaID != nil {
				if found, ok := formulasByID[*template.FormulaID]; ok {
					formula = &found
				}
			}
			resolved := ResolveFields(template.ScheduleTemplate, formula)

			event := cal.AddEvent(fmt.Sprintf("feed-%s-%s@als-diet-tracker",
				date.Format(DateLayout), template.ID))
			event.SetDtStampTime(now)
			event.SetStartAt(begins)
			event.SetEndAt(begins.Add(feedSlotDuration))
			event.SetSummary(fmt.Sprintf("%s (%d ml)", resolved.FoodName, resolved.QuantityML))
			if resolved.Description != "" {
				event.SetDescription(resolved.Description)
			}
		}
	}

	return cal.Serialize(), nil
}
