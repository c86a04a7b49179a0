package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

type TemplateHandler struct {
	catalog *services.CatalogService
}

func NewTemplateHandler(catalog *services.CatalogService) *TemplateHandler {
	return &TemplateHandler{catalog: catalog}
}

func (handler *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := handler.catalog.Templates(r.Context())
	if err != nil {
		slog.Error("listing templates", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load templates"))
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (handler *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, err := handler.catalog.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

type templateRequest struct {
	Timing         string   `json:"timing"`
	FormulaID      *string  `json:"formula_id"`
	CustomFoodName string   `json:"custom_food_name"`
	QuantityML     int      `json:"quantity_ml"`
	Calories       *int     `json:"calories"`
	ProteinG       *float64 `json:"protein_g"`
	CarbsG         *float64 `json:"carbs_g"`
	FatG           *float64 `json:"fat_g"`
	Description    string   `json:"description"`
}

func (request templateRequest) toModel(id string) models.ScheduleTemplate {
	return models.ScheduleTemplate{
		ID:             id,
		Timing:         request.Timing,
		FormulaID:      request.FormulaID,
		CustomFoodName: request.CustomFoodName,
		QuantityML:     request.QuantityML,
		Calories:       request.Calories,
		ProteinG:       request.ProteinG,
		CarbsG:         request.CarbsG,
		FatG:           request.FatG,
		Description:    request.Description,
	}
}

func (handler *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request templateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	template, err := handler.catalog.CreateTemplate(r.Context(), request.toModel(""))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (handler *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request templateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	template, err := handler.catalog.UpdateTemplate(r.Context(), request.toModel(chi.URLParam(r, "id")))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (handler *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.catalog.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound), errors.Is(err, services.ErrFormulaNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, services.ErrTemplateInvalid), errors.Is(err, services.ErrFormulaInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, services.ErrFormulaNameTaken):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	default:
		slog.Error("catalog operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
