package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
)

var (
	ErrFormulaNotFound  = errors.New("food formula not found")
	ErrFormulaInvalid   = errors.New("formula requires a name")
	ErrFormulaNameTaken = errors.New("formula name already in use")

	ErrTemplateNotFound = errors.New("schedule template not found")
	ErrTemplateInvalid  = errors.New("template requires a formula or a custom food name")
)

// CatalogService manages the formula library and the recurring schedule
// template, enforcing their validation invariants ahead of persistence.
type CatalogService struct {
	formulaRepo  repository.FormulaRepository
	templateRepo repository.TemplateRepository
}

func NewCatalogService(formulaRepo repository.FormulaRepository, templateRepo repository.TemplateRepository) *CatalogService {
	return &CatalogService{formulaRepo: formulaRepo, templateRepo: templateRepo}
}

func (service *CatalogService) Formulas(ctx context.Context) ([]models.FoodFormula, error) {
	formulas, err := service.formulaRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if formulas == nil {
		formulas = []models.FoodFormula{}
	}
	return formulas, nil
}

func (service *CatalogService) GetFormula(ctx context.Context, id string) (models.FoodFormula, error) {
	formula, err := service.formulaRepo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FoodFormula{}, ErrFormulaNotFound
	}
	if err != nil {
		return models.FoodFormula{}, err
	}
	return formula, nil
}

func (service *CatalogService) CreateFormula(ctx context.Context, formula models.FoodFormula) (models.FoodFormula, error) {
	if formula.Name == "" {
		return models.FoodFormula{}, ErrFormulaInvalid
	}
	if _, err := service.formulaRepo.FindByName(ctx, formula.Name); err == nil {
		return models.FoodFormula{}, ErrFormulaNameTaken
	}
	return service.formulaRepo.Create(ctx, formula)
}

func (service *CatalogService) UpdateFormula(ctx context.Context, formula models.FoodFormula) (models.FoodFormula, error) {
	existing, err := service.GetFormula(ctx, formula.ID)
	if err != nil {
		return models.FoodFormula{}, err
	}
	if formula.Name == "" {
		return models.FoodFormula{}, ErrFormulaInvalid
	}
	if formula.Name != existing.Name {
		if _, err := service.formulaRepo.FindByName(ctx, formula.Name); err == nil {
			return models.FoodFormula{}, ErrFormulaNameTaken
		}
	}
	if err := service.formulaRepo.Update(ctx, formula); err != nil {
		return models.FoodFormula{}, err
	}
	return service.GetFormula(ctx, formula.ID)
}

// DeleteFormula removes a formula. Templates referencing it go with it
// (cascade), as do any pending records those templates had generated;
// records keeping only a source_formula reference have it nulled.
func (service *CatalogService) DeleteFormula(ctx context.Context, id string) error {
	if _, err := service.GetFormula(ctx, id); err != nil {
		return err
	}
	return service.formulaRepo.Delete(ctx, id)
}

// TemplateView is a template decorated with its resolved display name for
// API listings.
type TemplateView struct {
	models.ScheduleTemplate
	DisplayName string  `json:"display_name"`
	FormulaName *string `json:"formula_name"`
}

func (service *CatalogService) Templates(ctx context.Context) ([]TemplateView, error) {
	templates, err := service.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	formulas, err := service.formulaRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[string]string, len(formulas))
	for _, formula := range formulas {
		namesByID[formula.ID] = formula.Name
	}

	views := make([]TemplateView, 0, len(templates))
	for _, template := range templates {
		view := TemplateView{ScheduleTemplate: template, DisplayName: template.CustomFoodName}
		if template.FormulaID != nil {
			if name, ok := namesByID[*template.FormulaID]; ok {
				view.DisplayName = name
				view.FormulaName = &name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (service *CatalogService) GetTemplate(ctx context.Context, id string) (models.ScheduleTemplate, error) {
	template, err := service.templateRepo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduleTemplate{}, ErrTemplateNotFound
	}
	if err != nil {
		return models.ScheduleTemplate{}, err
	}
	return template, nil
}

func (service *CatalogService) CreateTemplate(ctx context.Context, template models.ScheduleTemplate) (models.ScheduleTemplate, error) {
	if err := service.validateTemplate(ctx, template); err != nil {
		return models.ScheduleTemplate{}, err
	}
	return service.templateRepo.Create(ctx, template)
}

func (service *CatalogService) UpdateTemplate(ctx context.Context, template models.ScheduleTemplate) (models.ScheduleTemplate, error) {
	if _, err := service.GetTemplate(ctx, template.ID); err != nil {
		return models.ScheduleTemplate{}, err
	}
	if err := service.validateTemplate(ctx, template); err != nil {
		return models.ScheduleTemplate{}, err
	}
	if err := service.templateRepo.Update(ctx, template); err != nil {
		return models.ScheduleTemplate{}, err
	}
	return service.GetTemplate(ctx, template.ID)
}

// DeleteTemplate removes a template slot. Records generated from it for any
// date are deleted by the cascade rule; the next reconciliation would remove
// the pending ones anyway, but acted-upon records go too, matching the
// storage policy that template-born records die with their template.
func (service *CatalogService) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := service.GetTemplate(ctx, id); err != nil {
		return err
	}
	return service.templateRepo.Delete(ctx, id)
}

// validateTemplate enforces the formula-or-custom-name invariant, so the
// synchronizer never meets a template it cannot name.
func (service *CatalogService) validateTemplate(ctx context.Context, template models.ScheduleTemplate) error {
	if template.FormulaID == nil && template.CustomFoodName == "" {
		return ErrTemplateInvalid
	}
	if !validTiming(template.Timing) || template.QuantityML <= 0 {
		return ErrTemplateInvalid
	}
	if template.FormulaID != nil {
		if _, err := service.GetFormula(ctx, *template.FormulaID); err != nil {
			return err
		}
	}
	return nil
}
