package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
)

var (
	ErrRecordNotFound     = errors.New("diet record not found")
	ErrRecordInvalid      = errors.New("record requires a valid date, timing, food name and quantity")
	ErrRecordSkipped      = errors.New("record is marked skipped")
	ErrRecordAdministered = errors.New("record is marked administered")
)

// RecordService owns the daily record read path (which triggers
// reconciliation), ad-hoc CRUD, and caregiver status transitions.
type RecordService struct {
	recordRepo  repository.RecordRepository
	formulaRepo repository.FormulaRepository
	sync        *SyncService
}

func NewRecordService(recordRepo repository.RecordRepository, formulaRepo repository.FormulaRepository, sync *SyncService) *RecordService {
	return &RecordService{recordRepo: recordRepo, formulaRepo: formulaRepo, sync: sync}
}

// RecordsForDate returns the records for date ordered by timing,
// reconciling against the schedule template first when the date is today
// or later. A malformed date yields an empty list rather than an error.
// Sync failures degrade to serving whatever records already exist.
func (service *RecordService) RecordsForDate(ctx context.Context, date string) ([]models.DietRecord, error) {
	if !validDate(date) {
		return []models.DietRecord{}, nil
	}

	if err := service.sync.Reconcile(ctx, date); err != nil {
		slog.Error("reconciling schedule", "date", date, "error", err)
	}

	records, err := service.recordRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.DietRecord{}
	}
	return records, nil
}

func (service *RecordService) Get(ctx context.Context, id string) (models.DietRecord, error) {
	record, err := service.recordRepo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DietRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.DietRecord{}, err
	}
	return record, nil
}

// CreateAdhoc creates a record with no template origin. Sync never touches
// such records.
func (service *RecordService) CreateAdhoc(ctx context.Context, record models.DietRecord) (models.DietRecord, error) {
	if !validDate(record.ScheduledDate) || !validTiming(record.Timing) ||
		record.FoodName == "" || record.QuantityML <= 0 {
		return models.DietRecord{}, ErrRecordInvalid
	}

	if record.SourceFormulaID != nil {
		if _, err := service.formulaRepo.FindByID(ctx, *record.SourceFormulaID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.DietRecord{}, ErrFormulaNotFound
			}
			return models.DietRecord{}, err
		}
	}

	record.SourceTemplateID = nil
	record.IsAdministered = false
	record.AdministeredAt = nil
	record.IsSkipped = false

	return service.recordRepo.Create(ctx, record)
}

// Update persists caregiver edits to an existing record's content fields.
// Status flags are not editable here; they go through the Mark transitions.
func (service *RecordService) Update(ctx context.Context, record models.DietRecord) (models.DietRecord, error) {
	existing, err := service.Get(ctx, record.ID)
	if err != nil {
		return models.DietRecord{}, err
	}

	if !validTiming(record.Timing) || record.FoodName == "" || record.QuantityML <= 0 {
		return models.DietRecord{}, ErrRecordInvalid
	}

	existing.Timing = record.Timing
	existing.FoodName = record.FoodName
	existing.QuantityML = record.QuantityML
	existing.Calories = record.Calories
	existing.ProteinG = record.ProteinG
	existing.CarbsG = record.CarbsG
	existing.FatG = record.FatG
	existing.Description = record.Description
	existing.ImageURL = record.ImageURL

	if err := service.recordRepo.Update(ctx, existing); err != nil {
		return models.DietRecord{}, err
	}
	return existing, nil
}

func (service *RecordService) Delete(ctx context.Context, id string) error {
	if _, err := service.Get(ctx, id); err != nil {
		return err
	}
	return service.recordRepo.Delete(ctx, id)
}

// MarkAdministered records that the feeding happened. A skipped record must
// be reset to pending first; the conflict is rejected before persisting.
func (service *RecordService) MarkAdministered(ctx context.Context, id string) (models.DietRecord, error) {
	record, err := service.Get(ctx, id)
	if err != nil {
		return models.DietRecord{}, err
	}
	if record.IsSkipped {
		return models.DietRecord{}, ErrRecordSkipped
	}

	now := time.Now()
	record.IsAdministered = true
	record.AdministeredAt = &now
	record.IsSkipped = false

	if err := service.recordRepo.Update(ctx, record); err != nil {
		return models.DietRecord{}, fmt.Errorf("marking administered: %w", err)
	}
	return record, nil
}

// MarkSkipped records that the feeding was deliberately not given.
func (service *RecordService) MarkSkipped(ctx context.Context, id string) (models.DietRecord, error) {
	record, err := service.Get(ctx, id)
	if err != nil {
		return models.DietRecord{}, err
	}
	if record.IsAdministered {
		return models.DietRecord{}, ErrRecordAdministered
	}

	record.IsSkipped = true
	record.IsAdministered = false
	record.AdministeredAt = nil

	if err := service.recordRepo.Update(ctx, record); err != nil {
		return models.DietRecord{}, fmt.Errorf("marking skipped: %w", err)
	}
	return record, nil
}

// MarkPending resets a record to the untracked state. Always allowed.
func (service *RecordService) MarkPending(ctx context.Context, id string) (models.DietRecord, error) {
	record, err := service.Get(ctx, id)
	if err != nil {
		return models.DietRecord{}, err
	}

	record.IsAdministered = false
	record.AdministeredAt = nil
	record.IsSkipped = false

	if err := service.recordRepo.Update(ctx, record); err != nil {
		return models.DietRecord{}, fmt.Errorf("marking pending: %w", err)
	}
	return record, nil
}

// DailySummary aggregates one date's records for the caregiver dashboard.
type DailySummary struct {
	Date                   string `json:"date"`
	Total                  int    `json:"total"`
	Administered           int    `json:"administered"`
	Skipped                int    `json:"skipped"`
	Pending                int    `json:"pending"`
	AdministeredQuantityML int    `json:"administered_quantity_ml"`
	AdministeredCalories   int    `json:"administered_calories"`
}

// Summary is a pure read: it reports on whatever records currently exist
// for the date without triggering reconciliation.
func (service *RecordService) Summary(ctx context.Context, date string) (DailySummary, error) {
	summary := DailySummary{Date: date}
	if !validDate(date) {
		return summary, nil
	}

	records, err := service.recordRepo.FindByDate(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}

	for _, record := range records {
		summary.Total++
		switch record.Status() {
		case models.RecordStatusAdministered:
			summary.Administered++
			summary.AdministeredQuantityML += record.QuantityML
			if record.Calories != nil {
				summary.AdministeredCalories += *record.Calories
			}
		case models.RecordStatusSkipped:
			summary.Skipped++
		default:
			summary.Pending++
		}
	}

	return summary, nil
}

// NextPending returns the first pending record of at's date whose timing is
// at or after at's time of day, or nil when the day has no further feedings.
func (service *RecordService) NextPending(ctx context.Context, at time.Time) (*models.DietRecord, error) {
	date := at.Format(DateLayout)
	timeOfDay := at.Format(TimingLayout)

	records, err := service.recordRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.Status() != models.RecordStatusPending {
			continue
		}
		if record.Timing >= timeOfDay {
			return &record, nil
		}
	}
	return nil, nil
}

func validDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func validTiming(timing string) bool {
	_, err := time.Parse(TimingLayout, timing)
	return err == nil
}
