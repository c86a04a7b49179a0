package models

import "time"

type RecordStatus string

const (
	RecordStatusPending      RecordStatus = "pending"
	RecordStatusAdministered RecordStatus = "administered"
	RecordStatusSkipped      RecordStatus = "skipped"
)

// FoodFormula is a reusable food definition providing defaults for
// schedule templates that link to it.
type FoodFormula struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	DefaultQuantityML  *int     `json:"default_quantity_ml"`
	DefaultCalories    *int     `json:"default_calories"`
	DefaultProteinG    *float64 `json:"default_protein_g"`
	DefaultCarbsG      *float64 `json:"default_carbs_g"`
	DefaultFatG        *float64 `json:"default_fat_g"`
	DefaultDescription string   `json:"default_description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleTemplate is one time slot in the recurring daily schedule.
// It must either link a formula or carry a custom food name.
type ScheduleTemplate struct {
	ID             string   `json:"id"`
	Timing         string   `json:"timing"` // "HH:MM"
	FormulaID      *string  `json:"formula_id"`
	CustomFoodName string   `json:"custom_food_name"`
	QuantityML     int      `json:"quantity_ml"`
	Calories       *int     `json:"calories"`
	ProteinG       *float64 `json:"protein_g"`
	CarbsG         *float64 `json:"carbs_g"`
	FatG           *float64 `json:"fat_g"`
	Description    string   `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DietRecord is a concrete feeding for one date, either generated from a
// schedule template or created ad hoc.
type DietRecord struct {
	ID            string   `json:"id"`
	ScheduledDate string   `json:"scheduled_date"` // "YYYY-MM-DD"
	Timing        string   `json:"timing"`         // "HH:MM"
	FoodName      string   `json:"food_name"`
	QuantityML    int      `json:"quantity_ml"`
	Calories      *int     `json:"calories"`
	ProteinG      *float64 `json:"protein_g"`
	CarbsG        *float64 `json:"carbs_g"`
	FatG          *float64 `json:"fat_g"`
	Description   string   `json:"description"`
	ImageURL      *string  `json:"image_url"`

	IsAdministered bool       `json:"is_administered"`
	AdministeredAt *time.Time `json:"administered_at"`
	IsSkipped      bool       `json:"is_skipped"`

	SourceTemplateID *string `json:"source_template_id"`
	SourceFormulaID  *string `json:"source_formula_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (record DietRecord) Status() RecordStatus {
	switch {
	case record.IsAdministered:
		return RecordStatusAdministered
	case record.IsSkipped:
		return RecordStatusSkipped
	default:
		return RecordStatusPending
	}
}
