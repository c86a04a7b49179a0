package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

type FormulaHandler struct {
	catalog *services.CatalogService
}

func NewFormulaHandler(catalog *services.CatalogService) *FormulaHandler {
	return &FormulaHandler{catalog: catalog}
}

func (handler *FormulaHandler) List(w http.ResponseWriter, r *http.Request) {
	formulas, err := handler.catalog.Formulas(r.Context())
	if err != nil {
		slog.Error("listing formulas", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load formulas"))
		return
	}
	writeJSON(w, http.StatusOK, formulas)
}

func (handler *FormulaHandler) Get(w http.ResponseWriter, r *http.Request) {
	formula, err := handler.catalog.GetFormula(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formula)
}

type formulaRequest struct {
	Name               string   `json:"name"`
	DefaultQuantityML  *int     `json:"default_quantity_ml"`
	DefaultCalories    *int     `json:"default_calories"`
	DefaultProteinG    *float64 `json:"default_protein_g"`
	DefaultCarbsG      *float64 `json:"default_carbs_g"`
	DefaultFatG        *float64 `json:"default_fat_g"`
	DefaultDescription string   `json:"default_description"`
}

func (request formulaRequest) toModel(id string) models.FoodFormula {
	return models.FoodFormula{
		ID:                 id,
		Name:               request.Name,
		DefaultQuantityML:  request.DefaultQuantityML,
		DefaultCalories:    request.DefaultCalories,
		DefaultProteinG:    request.DefaultProteinG,
		DefaultCarbsG:      request.DefaultCarbsG,
		DefaultFatG:        request.DefaultFatG,
		DefaultDescription: request.DefaultDescription,
	}
}

func (handler *FormulaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request formulaRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	formula, err := handler.catalog.CreateFormula(r.Context(), request.toModel(""))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, formula)
}

func (handler *FormulaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request formulaRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	formula, err := handler.catalog.UpdateFormula(r.Context(), request.toModel(chi.URLParam(r, "id")))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formula)
}

func (handler *FormulaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.catalog.DeleteFormula(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
