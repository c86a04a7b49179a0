package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
)

// CoreFieldUpdate patches the template-derived fields of a pending record
// during synchronization. Nutrient and description fields are deliberately
// absent: caregiver edits to those must survive template changes.
type CoreFieldUpdate struct {
	RecordID        string
	Timing          string
	FoodName        string
	QuantityML      int
	SourceFormulaID *string
}

// SyncPlan is the staged outcome of one reconciliation pass. ApplySyncPlan
// lands the whole plan in a single transaction.
type SyncPlan struct {
	Deletes []string
	Creates []models.DietRecord
	Updates []CoreFieldUpdate
}

func (plan SyncPlan) Empty() bool {
	return len(plan.Deletes) == 0 && len(plan.Creates) == 0 && len(plan.Updates) == 0
}

type RecordRepository interface {
	FindByID(ctx context.Context, id string) (models.DietRecord, error)
	FindByDate(ctx context.Context, date string) ([]models.DietRecord, error)
	FindTemplateLinkedByDate(ctx context.Context, date string) ([]models.DietRecord, error)
	Create(ctx context.Context, record models.DietRecord) (models.DietRecord, error)
	Update(ctx context.Context, record models.DietRecord) error
	Delete(ctx context.Context, id string) error
	ApplySyncPlan(ctx context.Context, plan SyncPlan) error
}

type SQLiteRecordRepository struct {
	database *sql.DB
}

func NewRecordRepository(database *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{database: database}
}

const recordColumns = `id, scheduled_date, timing, food_name, quantity_ml,
	calories, protein_g, carbs_g, fat_g, description, image_url,
	is_administered, administered_at, is_skipped,
	source_template_id, source_formula_id, created_at, updated_at`

func (repository *SQLiteRecordRepository) FindByID(ctx context.Context, id string) (models.DietRecord, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM diet_records WHERE id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		return models.DietRecord{}, fmt.Errorf("finding record by id: %w", err)
	}
	return record, nil
}

func (repository *SQLiteRecordRepository) FindByDate(ctx context.Context, date string) ([]models.DietRecord, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM diet_records WHERE scheduled_date = ? ORDER BY timing ASC, created_at ASC",
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("finding records by date: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (repository *SQLiteRecordRepository) FindTemplateLinkedByDate(ctx context.Context, date string) ([]models.DietRecord, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM diet_records WHERE scheduled_date = ? AND source_template_id IS NOT NULL ORDER BY timing ASC",
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("finding template-linked records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (repository *SQLiteRecordRepository) Create(ctx context.Context, record models.DietRecord) (models.DietRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx, insertRecordSQL,
		recordInsertArgs(record)...)
	if err != nil {
		return models.DietRecord{}, fmt.Errorf("creating record: %w", err)
	}
	return record, nil
}

func (repository *SQLiteRecordRepository) Update(ctx context.Context, record models.DietRecord) error {
	record.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE diet_records SET timing = ?, food_name = ?, quantity_ml = ?,
			calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?,
			description = ?, image_url = ?,
			is_administered = ?, administered_at = ?, is_skipped = ?,
			source_formula_id = ?, updated_at = ?
		WHERE id = ?`,
		record.Timing, record.FoodName, record.QuantityML,
		record.Calories, record.ProteinG, record.CarbsG, record.FatG,
		record.Description, record.ImageURL,
		record.IsAdministered, record.AdministeredAt, record.IsSkipped,
		record.SourceFormulaID, record.UpdatedAt, record.ID,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	return nil
}

func (repository *SQLiteRecordRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM diet_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// ApplySyncPlan lands one reconciliation pass atomically: orphan deletes,
// then creates, then core-field updates. Creates tolerate a concurrent
// reconciliation having inserted the same (scheduled_date, source_template_id)
// row already; such conflicts are skipped, not failed.
func (repository *SQLiteRecordRepository) ApplySyncPlan(ctx context.Context, plan SyncPlan) error {
	tx, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning sync transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range plan.Deletes {
		if _, err := tx.ExecContext(ctx, "DELETE FROM diet_records WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting orphaned record %s: %w", id, err)
		}
	}

	now := time.Now()
	for _, record := range plan.Creates {
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		if _, err := tx.ExecContext(ctx,
			insertRecordSQL+" ON CONFLICT(scheduled_date, source_template_id) DO NOTHING",
			recordInsertArgs(record)...); err != nil {
			return fmt.Errorf("creating synced record: %w", err)
		}
	}

	for _, update := range plan.Updates {
		if _, err := tx.ExecContext(ctx,
			`UPDATE diet_records SET timing = ?, food_name = ?, quantity_ml = ?,
				source_formula_id = ?, updated_at = ?
			WHERE id = ?`,
			update.Timing, update.FoodName, update.QuantityML,
			update.SourceFormulaID, now, update.RecordID,
		); err != nil {
			return fmt.Errorf("updating synced record %s: %w", update.RecordID, err)
		}
	}

	return tx.Commit()
}

const insertRecordSQL = `INSERT INTO diet_records (id, scheduled_date, timing, food_name, quantity_ml,
	calories, protein_g, carbs_g, fat_g, description, image_url,
	is_administered, administered_at, is_skipped,
	source_template_id, source_formula_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func recordInsertArgs(record models.DietRecord) []interface{} {
	return []interface{}{
		record.ID, record.ScheduledDate, record.Timing, record.FoodName, record.QuantityML,
		record.Calories, record.ProteinG, record.CarbsG, record.FatG,
		record.Description, record.ImageURL,
		record.IsAdministered, record.AdministeredAt, record.IsSkipped,
		record.SourceTemplateID, record.SourceFormulaID,
		record.CreatedAt, record.UpdatedAt,
	}
}

func collectRecords(rows *sql.Rows) ([]models.DietRecord, error) {
	var records []models.DietRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row rowScanner) (models.DietRecord, error) {
	var record models.DietRecord
	err := row.Scan(
		&record.ID, &record.ScheduledDate, &record.Timing, &record.FoodName, &record.QuantityML,
		&record.Calories, &record.ProteinG, &record.CarbsG, &record.FatG,
		&record.Description, &record.ImageURL,
		&record.IsAdministered, &record.AdministeredAt, &record.IsSkipped,
		&record.SourceTemplateID, &record.SourceFormulaID,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}
