package services_test

import (
	"testing"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

func intPtr(value int) *int           { return &value }
func floatPtr(value float64) *float64 { return &value }
func strPtr(value string) *string     { return &value }

func TestResolveFields_CustomTemplateWithoutFormula(t *testing.T) {
	template := models.ScheduleTemplate{
		Timing:         "08:00",
		CustomFoodName: "Oatmeal",
		QuantityML:     200,
		Calories:       intPtr(180),
		Description:    "with cinnamon",
	}

	resolved := services.ResolveFields(template, nil)

	if resolved.FoodName != "Oatmeal" {
		t.Errorf("expected 'Oatmeal', got '%s'", resolved.FoodName)
	}
	if resolved.QuantityML != 200 {
		t.Errorf("expected quantity 200, got %d", resolved.QuantityML)
	}
	if resolved.Calories == nil || *resolved.Calories != 180 {
		t.Errorf("expected calories 180, got %v", resolved.Calories)
	}
	if resolved.ProteinG != nil {
		t.Errorf("expected nil protein, got %v", resolved.ProteinG)
	}
	if resolved.Description != "with cinnamon" {
		t.Errorf("expected template description, got '%s'", resolved.Description)
	}
}

func TestResolveFields_FormulaNameAlwaysWins(t *testing.T) {
	template := models.ScheduleTemplate{
		Timing:         "12:00",
		CustomFoodName: "ignored",
		QuantityML:     240,
	}
	formula := &models.FoodFormula{Name: "Jevity"}

	resolved := services.ResolveFields(template, formula)

	if resolved.FoodName != "Jevity" {
		t.Errorf("linked formula must name the slot, got '%s'", resolved.FoodName)
	}
}

func TestResolveFields_TemplateOverridesBeatFormulaDefaults(t *testing.T) {
	template := models.ScheduleTemplate{
		Timing:      "12:00",
		QuantityML:  240,
		Calories:    intPtr(300),
		Description: "diluted",
	}
	formula := &models.FoodFormula{
		Name:               "Jevity",
		DefaultCalories:    intPtr(250),
		DefaultProteinG:    floatPtr(10.5),
		DefaultCarbsG:      floatPtr(33.0),
		DefaultDescription: "Fiber-fortified",
	}

	resolved := services.ResolveFields(template, formula)

	if resolved.Calories == nil || *resolved.Calories != 300 {
		t.Errorf("expected template calories 300, got %v", resolved.Calories)
	}
	if resolved.ProteinG == nil || *resolved.ProteinG != 10.5 {
		t.Errorf("expected protein fallback 10.5, got %v", resolved.ProteinG)
	}
	if resolved.CarbsG == nil || *resolved.CarbsG != 33.0 {
		t.Errorf("expected carbs fallback 33.0, got %v", resolved.CarbsG)
	}
	if resolved.FatG != nil {
		t.Errorf("no fat anywhere should stay nil, got %v", resolved.FatG)
	}
	if resolved.Description != "diluted" {
		t.Errorf("expected template description, got '%s'", resolved.Description)
	}
}

func TestResolveFields_QuantityHasNoFallback(t *testing.T) {
	template := models.ScheduleTemplate{Timing: "12:00", QuantityML: 240}
	formula := &models.FoodFormula{Name: "Jevity", DefaultQuantityML: intPtr(500)}

	resolved := services.ResolveFields(template, formula)

	if resolved.QuantityML != 240 {
		t.Errorf("quantity comes from the template only, got %d", resolved.QuantityML)
	}
}
