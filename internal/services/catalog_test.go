package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
	"github.com/rishabhrd09/als-diet-tracker/internal/testutil"
)

func setupCatalog(t *testing.T) *services.CatalogService {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	return services.NewCatalogService(
		repository.NewFormulaRepository(db),
		repository.NewTemplateRepository(db),
	)
}

func TestCatalogService_CreateFormula_RejectsDuplicateName(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	if _, err := catalog.CreateFormula(ctx, models.FoodFormula{Name: "Ensure"}); err != nil {
		t.Fatalf("creating formula: %v", err)
	}
	if _, err := catalog.CreateFormula(ctx, models.FoodFormula{Name: "Ensure"}); !errors.Is(err, services.ErrFormulaNameTaken) {
		t.Errorf("expected ErrFormulaNameTaken, got %v", err)
	}
}

func TestCatalogService_CreateFormula_RequiresName(t *testing.T) {
	catalog := setupCatalog(t)

	if _, err := catalog.CreateFormula(context.Background(), models.FoodFormula{}); !errors.Is(err, services.ErrFormulaInvalid) {
		t.Errorf("expected ErrFormulaInvalid, got %v", err)
	}
}

func TestCatalogService_UpdateFormula_RenameToTakenName(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	catalog.CreateFormula(ctx, models.FoodFormula{Name: "Ensure"})
	second, _ := catalog.CreateFormula(ctx, models.FoodFormula{Name: "Jevity"})

	second.Name = "Ensure"
	if _, err := catalog.UpdateFormula(ctx, second); !errors.Is(err, services.ErrFormulaNameTaken) {
		t.Errorf("expected ErrFormulaNameTaken, got %v", err)
	}

	// Keeping your own name is not a conflict.
	second.Name = "Jevity"
	second.DefaultCalories = intPtr(250)
	updated, err := catalog.UpdateFormula(ctx, second)
	if err != nil {
		t.Fatalf("updating formula: %v", err)
	}
	if updated.DefaultCalories == nil || *updated.DefaultCalories != 250 {
		t.Errorf("expected calories 250, got %v", updated.DefaultCalories)
	}
}

func TestCatalogService_CreateTemplate_RequiresFormulaOrCustomName(t *testing.T) {
	catalog := setupCatalog(t)

	_, err := catalog.CreateTemplate(context.Background(), models.ScheduleTemplate{
		Timing: "08:00", QuantityML: 200,
	})
	if !errors.Is(err, services.ErrTemplateInvalid) {
		t.Errorf("expected ErrTemplateInvalid, got %v", err)
	}
}

func TestCatalogService_CreateTemplate_Validation(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		template models.ScheduleTemplate
	}{
		{"bad timing", models.ScheduleTemplate{Timing: "8 o'clock", CustomFoodName: "Oatmeal", QuantityML: 200}},
		{"zero quantity", models.ScheduleTemplate{Timing: "08:00", CustomFoodName: "Oatmeal"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := catalog.CreateTemplate(ctx, tc.template); !errors.Is(err, services.ErrTemplateInvalid) {
				t.Errorf("expected ErrTemplateInvalid, got %v", err)
			}
		})
	}
}

func TestCatalogService_CreateTemplate_UnknownFormula(t *testing.T) {
	catalog := setupCatalog(t)

	missing := "missing"
	_, err := catalog.CreateTemplate(context.Background(), models.ScheduleTemplate{
		Timing: "08:00", FormulaID: &missing, QuantityML: 200,
	})
	if !errors.Is(err, services.ErrFormulaNotFound) {
		t.Errorf("expected ErrFormulaNotFound, got %v", err)
	}
}

func TestCatalogService_Templates_ResolvesDisplayNames(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	formula, _ := catalog.CreateFormula(ctx, models.FoodFormula{Name: "Jevity"})
	catalog.CreateTemplate(ctx, models.ScheduleTemplate{
		Timing: "08:00", FormulaID: &formula.ID, QuantityML: 240,
	})
	catalog.CreateTemplate(ctx, models.ScheduleTemplate{
		Timing: "12:00", CustomFoodName: "Blended lunch", QuantityML: 300,
	})

	views, err := catalog.Templates(ctx)
	if err != nil {
		t.Fatalf("listing templates: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(views))
	}
	if views[0].DisplayName != "Jevity" {
		t.Errorf("expected formula display name, got '%s'", views[0].DisplayName)
	}
	if views[0].FormulaName == nil || *views[0].FormulaName != "Jevity" {
		t.Errorf("expected formula name on view, got %v", views[0].FormulaName)
	}
	if views[1].DisplayName != "Blended lunch" {
		t.Errorf("expected custom display name, got '%s'", views[1].DisplayName)
	}
	if views[1].FormulaName != nil {
		t.Errorf("expected nil formula name, got %v", views[1].FormulaName)
	}
}

func TestCatalogService_DeleteTemplate_Unknown(t *testing.T) {
	catalog := setupCatalog(t)

	if err := catalog.DeleteTemplate(context.Background(), "missing"); !errors.Is(err, services.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteFormula_Unknown(t *testing.T) {
	catalog := setupCatalog(t)

	if err := catalog.DeleteFormula(context.Background(), "missing"); !errors.Is(err, services.ErrFormulaNotFound) {
		t.Errorf("expected ErrFormulaNotFound, got %v", err)
	}
}
