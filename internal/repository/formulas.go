package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
)

type FormulaRepository interface {
	FindByID(ctx context.Context, id string) (models.FoodFormula, error)
	FindByName(ctx context.Context, name string) (models.FoodFormula, error)
	FindAll(ctx context.Context) ([]models.FoodFormula, error)
	Create(ctx context.Context, formula models.FoodFormula) (models.FoodFormula, error)
	Update(ctx context.Context, formula models.FoodFormula) error
	Delete(ctx context.Context, id string) error
}

type SQLiteFormulaRepository struct {
	database *sql.DB
}

func NewFormulaRepository(database *sql.DB) *SQLiteFormulaRepository {
	return &SQLiteFormulaRepository{database: database}
}

const formulaColumns = `id, name, default_quantity_ml, default_calories,
	default_protein_g, default_carbs_g, default_fat_g, default_description,
	created_at, updated_at`

func (repository *SQLiteFormulaRepository) FindByID(ctx context.Context, id string) (models.FoodFormula, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+formulaColumns+" FROM food_formulas WHERE id = ?", id)
	formula, err := scanFormula(row)
	if err != nil {
		return models.FoodFormula{}, fmt.Errorf("finding formula by id: %w", err)
	}
	return formula, nil
}

func (repository *SQLiteFormulaRepository) FindByName(ctx context.Context, name string) (models.FoodFormula, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+formulaColumns+" FROM food_formulas WHERE name = ?", name)
	formula, err := scanFormula(row)
	if err != nil {
		return models.FoodFormula{}, fmt.Errorf("finding formula by name: %w", err)
	}
	return formula, nil
}

func (repository *SQLiteFormulaRepository) FindAll(ctx context.Context) ([]models.FoodFormula, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+formulaColumns+" FROM food_formulas ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("finding formulas: %w", err)
	}
	defer rows.Close()

	var formulas []models.FoodFormula
	for rows.Next() {
		formula, err := scanFormula(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning formula: %w", err)
		}
		formulas = append(formulas, formula)
	}
	return formulas, rows.Err()
}

func (repository *SQLiteFormulaRepository) Create(ctx context.Context, formula models.FoodFormula) (models.FoodFormula, error) {
	if formula.ID == "" {
		formula.ID = uuid.New().String()
	}
	now := time.Now()
	formula.CreatedAt = now
	formula.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO food_formulas (id, name, default_quantity_ml, default_calories,
			default_protein_g, default_carbs_g, default_fat_g, default_description,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formula.ID, formula.Name, formula.DefaultQuantityML, formula.DefaultCalories,
		formula.DefaultProteinG, formula.DefaultCarbsG, formula.DefaultFatG, formula.DefaultDescription,
		formula.CreatedAt, formula.UpdatedAt,
	)
	if err != nil {
		return models.FoodFormula{}, fmt.Errorf("creating formula: %w", err)
	}
	return formula, nil
}

func (repository *SQLiteFormulaRepository) Update(ctx context.Context, formula models.FoodFormula) error {
	formula.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE food_formulas SET name = ?, default_quantity_ml = ?, default_calories = ?,
			default_protein_g = ?, default_carbs_g = ?, default_fat_g = ?,
			default_description = ?, updated_at = ?
		WHERE id = ?`,
		formula.Name, formula.DefaultQuantityML, formula.DefaultCalories,
		formula.DefaultProteinG, formula.DefaultCarbsG, formula.DefaultFatG,
		formula.DefaultDescription, formula.UpdatedAt, formula.ID,
	)
	if err != nil {
		return fmt.Errorf("updating formula: %w", err)
	}
	return nil
}

func (repository *SQLiteFormulaRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM food_formulas WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting formula: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFormula(row rowScanner) (models.FoodFormula, error) {
	var formula models.FoodFormula
	err := row.Scan(
		&formula.ID, &formula.Name, &formula.DefaultQuantityML, &formula.DefaultCalories,
		&formula.DefaultProteinG, &formula.DefaultCarbsG, &formula.DefaultFatG,
		&formula.DefaultDescription, &formula.CreatedAt, &formula.UpdatedAt,
	)
	return formula, err
}
