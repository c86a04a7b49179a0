package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
)

type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (models.ScheduleTemplate, error)
	FindAll(ctx context.Context) ([]models.ScheduleTemplate, error)
	Create(ctx context.Context, template models.ScheduleTemplate) (models.ScheduleTemplate, error)
	Update(ctx context.Context, template models.ScheduleTemplate) error
	Delete(ctx context.Context, id string) error
}

type SQLiteTemplateRepository struct {
	database *sql.DB
}

func NewTemplateRepository(database *sql.DB) *SQLiteTemplateRepository {
	return &SQLiteTemplateRepository{database: database}
}

const templateColumns = `id, timing, formula_id, custom_food_name, quantity_ml,
	calories, protein_g, carbs_g, fat_g, description, created_at, updated_at`

func (repository *SQLiteTemplateRepository) FindByID(ctx context.Context, id string) (models.ScheduleTemplate, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM schedule_templates WHERE id = ?", id)
	template, err := scanTemplate(row)
	if err != nil {
		return models.ScheduleTemplate{}, fmt.Errorf("finding template by id: %w", err)
	}
	return template, nil
}

func (repository *SQLiteTemplateRepository) FindAll(ctx context.Context) ([]models.ScheduleTemplate, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+templateColumns+" FROM schedule_templates ORDER BY timing ASC, created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("finding templates: %w", err)
	}
	defer rows.Close()

	var templates []models.ScheduleTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

func (repository *SQLiteTemplateRepository) Create(ctx context.Context, template models.ScheduleTemplate) (models.ScheduleTemplate, error) {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO schedule_templates (id, timing, formula_id, custom_food_name, quantity_ml,
			calories, protein_g, carbs_g, fat_g, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		template.ID, template.Timing, template.FormulaID, template.CustomFoodName, template.QuantityML,
		template.Calories, template.ProteinG, template.CarbsG, template.FatG, template.Description,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return models.ScheduleTemplate{}, fmt.Errorf("creating template: %w", err)
	}
	return template, nil
}

func (repository *SQLiteTemplateRepository) Update(ctx context.Context, template models.ScheduleTemplate) error {
	template.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE schedule_templates SET timing = ?, formula_id = ?, custom_food_name = ?,
			quantity_ml = ?, calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?,
			description = ?, updated_at = ?
		WHERE id = ?`,
		template.Timing, template.FormulaID, template.CustomFoodName,
		template.QuantityML, template.Calories, template.ProteinG, template.CarbsG, template.FatG,
		template.Description, template.UpdatedAt, template.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	return nil
}

func (repository *SQLiteTemplateRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM schedule_templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func scanTemplate(row rowScanner) (models.ScheduleTemplate, error) {
	var template models.ScheduleTemplate
	err := row.Scan(
		&template.ID, &template.Timing, &template.FormulaID, &template.CustomFoodName,
		&template.QuantityML, &template.Calories, &template.ProteinG, &template.CarbsG,
		&template.FatG, &template.Description, &template.CreatedAt, &template.UpdatedAt,
	)
	return template, err
}
