package services

import "github.com/rishabhrd09/als-diet-tracker/internal/models"

const (
	DateLayout   = "2006-01-02"
	TimingLayout = "15:04"
)

// ResolvedFields is the effective content of a schedule slot after merging
// template overrides with the linked formula's defaults.
type ResolvedFields struct {
	FoodName    string
	QuantityML  int
	Calories    *int
	ProteinG    *float64
	CarbsG      *float64
	FatG        *float64
	Description string
}

// ResolveFields merges a template with its linked formula (nil when the
// template has none). Template values win; formula defaults fill the gaps.
// QuantityML has no fallback because it is mandatory on the template.
func ResolveFields(template models.ScheduleTemplate, formula *models.FoodFormula) ResolvedFields {
	resolved := ResolvedFields{
		FoodName:    template.CustomFoodName,
		QuantityML:  template.QuantityML,
		Calories:    template.Calories,
		ProteinG:    template.ProteinG,
		CarbsG:      template.CarbsG,
		FatG:        template.FatG,
		Description: template.Description,
	}

	if formula != nil {
		resolved.FoodName = formula.Name
		if resolved.Calories == nil {
			resolved.Calories = formula.DefaultCalories
		}
		if resolved.ProteinG == nil {
			resolved.ProteinG = formula.DefaultProteinG
		}
		if resolved.CarbsG == nil {
			resolved.CarbsG = formula.DefaultCarbsG
		}
		if resolved.FatG == nil {
			resolved.FatG = formula.DefaultFatG
		}
		if resolved.Description == "" {
			resolved.Description = formula.DefaultDescription
		}
	}

	return resolved
}
