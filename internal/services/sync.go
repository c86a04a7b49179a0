package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
)

// SyncService reconciles the diet records of a single date against the
// current schedule template set. Records a caregiver already acted on
// (administered or skipped) are frozen: they are never updated or deleted,
// and their template is never regenerated for that date. Ad-hoc records
// (no source template) are out of scope entirely.
type SyncService struct {
	templateRepo repository.TemplateRepository
	formulaRepo  repository.FormulaRepository
	recordRepo   repository.RecordRepository
	observer     SyncObserver
}

func NewSyncService(
	templateRepo repository.TemplateRepository,
	formulaRepo repository.FormulaRepository,
	recordRepo repository.RecordRepository,
	observer SyncObserver,
) *SyncService {
	if observer == nil {
		observer = NewLogObserver()
	}
	return &SyncService{
		templateRepo: templateRepo,
		formulaRepo:  formulaRepo,
		recordRepo:   recordRepo,
		observer:     observer,
	}
}

// Reconcile brings the records for date in line with the template set.
// Idempotent; the staged plan is applied in one transaction. Past dates
// are history and are left untouched.
func (service *SyncService) Reconcile(ctx context.Context, date string) error {
	target, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return fmt.Errorf("parsing target date: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if target.Before(today) {
		return nil
	}

	plan, err := service.buildPlan(ctx, date)
	if err != nil {
		service.observer.SyncFailed(date, err)
		return err
	}
	if plan.Empty() {
		return nil
	}

	if err := service.recordRepo.ApplySyncPlan(ctx, plan); err != nil {
		service.observer.SyncFailed(date, err)
		return fmt.Errorf("applying sync plan: %w", err)
	}

	for _, id := range plan.Deletes {
		service.observer.OrphanRemoved(date, id)
	}
	for _, record := range plan.Creates {
		service.observer.RecordCreated(date, *record.SourceTemplateID)
	}
	for _, update := range plan.Updates {
		service.observer.RecordUpdated(date, update.RecordID)
	}

	return nil
}

func (service *SyncService) buildPlan(ctx context.Context, date string) (repository.SyncPlan, error) {
	var plan repository.SyncPlan

	templates, err := service.templateRepo.FindAll(ctx)
	if err != nil {
		return plan, fmt.Errorf("loading templates: %w", err)
	}

	formulas, err := service.formulaRepo.FindAll(ctx)
	if err != nil {
		return plan, fmt.Errorf("loading formulas: %w", err)
	}
	formulasByID := make(map[string]models.FoodFormula, len(formulas))
	for _, formula := range formulas {
		formulasByID[formula.ID] = formula
	}

	linked, err := service.recordRepo.FindTemplateLinkedByDate(ctx, date)
	if err != nil {
		return plan, fmt.Errorf("loading records for date: %w", err)
	}

	pendingByTemplate := make(map[string]models.DietRecord)
	actedTemplates := make(map[string]bool)
	for _, record := range linked {
		templateID := *record.SourceTemplateID
		if record.IsAdministered || record.IsSkipped {
			actedTemplates[templateID] = true
		} else {
			pendingByTemplate[templateID] = record
		}
	}

	templateIDs := make(map[string]bool, len(templates))
	for _, template := range templates {
		templateIDs[template.ID] = true
	}

	for _, template := range templates {
		if actedTemplates[template.ID] {
			continue
		}

		var formula *models.FoodFormula
		if template.FormulaID != nil {
			if found, ok := formulasByID[*template.FormulaID]; ok {
				formula = &found
			}
		}
		resolved := ResolveFields(template, formula)

		if pending, exists := pendingByTemplate[template.ID]; exists {
			if coreFieldsDiffer(pending, template, resolved) {
				plan.Updates = append(plan.Updates, repository.CoreFieldUpdate{
					RecordID:        pending.ID,
					Timing:          template.Timing,
					FoodName:        resolved.FoodName,
					QuantityML:      resolved.QuantityML,
					SourceFormulaID: template.FormulaID,
				})
			}
			continue
		}

		templateID := template.ID
		plan.Creates = append(plan.Creates, models.DietRecord{
			ScheduledDate:    date,
			Timing:           template.Timing,
			FoodName:         resolved.FoodName,
			QuantityML:       resolved.QuantityML,
			Calories:         resolved.Calories,
			ProteinG:         resolved.ProteinG,
			CarbsG:           resolved.CarbsG,
			FatG:             resolved.FatG,
			Description:      resolved.Description,
			IsAdministered:   false,
			IsSkipped:        false,
			SourceTemplateID: &templateID,
			SourceFormulaID:  template.FormulaID,
		})
	}

	for templateID, pending := range pendingByTemplate {
		if !templateIDs[templateID] {
			plan.Deletes = append(plan.Deletes, pending.ID)
		}
	}

	return plan, nil
}

// coreFieldsDiffer compares only the fields sync is allowed to refresh on a
// pending record. Nutrient and description values may have been edited by a
// caregiver and are not inspected.
func coreFieldsDiffer(record models.DietRecord, template models.ScheduleTemplate, resolved ResolvedFields) bool {
	if record.Timing != template.Timing {
		return true
	}
	if record.FoodName != resolved.FoodName {
		return true
	}
	if record.QuantityML != resolved.QuantityML {
		return true
	}
	return !equalStringPtr(record.SourceFormulaID, template.FormulaID)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
