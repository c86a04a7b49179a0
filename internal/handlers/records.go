package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rishabhrd09/als-diet-tracker/internal/models"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

type RecordHandler struct {
	records *services.RecordService
}

func NewRecordHandler(records *services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// List returns the records for ?date=YYYY-MM-DD, reconciled against the
// schedule template when the date is not in the past. A missing or
// malformed date yields an empty list.
func (handler *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := r.URL.Query().Get("date")

	records, err := handler.records.RecordsForDate(ctx, date)
	if err != nil {
		slog.Error("listing records", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load records"))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (handler *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := handler.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type recordRequest struct {
	ScheduledDate string   `json:"scheduled_date"`
	Timing        string   `json:"timing"`
	FoodName      string   `json:"food_name"`
	QuantityML    int      `json:"quantity_ml"`
	Calories      *int     `json:"calories"`
	ProteinG      *float64 `json:"protein_g"`
	CarbsG        *float64 `json:"carbs_g"`
	FatG          *float64 `json:"fat_g"`
	Description   string   `json:"description"`
	ImageURL      *string  `json:"image_url"`
	FormulaID     *string  `json:"formula_id"`
}

// Create adds an ad-hoc record for a date; it has no template origin and
// the synchronizer will never touch it.
func (handler *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request recordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	record, err := handler.records.CreateAdhoc(r.Context(), models.DietRecord{
		ScheduledDate:   request.ScheduledDate,
		Timing:          request.Timing,
		FoodName:        request.FoodName,
		QuantityML:      request.QuantityML,
		Calories:        request.Calories,
		ProteinG:        request.ProteinG,
		CarbsG:          request.CarbsG,
		FatG:            request.FatG,
		Description:     request.Description,
		ImageURL:        request.ImageURL,
		SourceFormulaID: request.FormulaID,
	})
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (handler *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request recordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	record, err := handler.records.Update(r.Context(), models.DietRecord{
		ID:          chi.URLParam(r, "id"),
		Timing:      request.Timing,
		FoodName:    request.FoodName,
		QuantityML:  request.QuantityML,
		Calories:    request.Calories,
		ProteinG:    request.ProteinG,
		CarbsG:      request.CarbsG,
		FatG:        request.FatG,
		Description: request.Description,
		ImageURL:    request.ImageURL,
	})
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (handler *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.records.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRecordError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *RecordHandler) MarkAdministered(w http.ResponseWriter, r *http.Request) {
	record, err := handler.records.MarkAdministered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (handler *RecordHandler) MarkSkipped(w http.ResponseWriter, r *http.Request) {
	record, err := handler.records.MarkSkipped(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (handler *RecordHandler) MarkPending(w http.ResponseWriter, r *http.Request) {
	record, err := handler.records.MarkPending(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (handler *RecordHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.records.Summary(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		slog.Error("building summary", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to build summary"))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// NextFeed returns today's next pending feeding at or after the current
// time, or 204 when nothing is left.
func (handler *RecordHandler) NextFeed(w http.ResponseWriter, r *http.Request) {
	record, err := handler.records.NextPending(r.Context(), time.Now())
	if err != nil {
		slog.Error("finding next feeding", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to find next feeding"))
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound), errors.Is(err, services.ErrFormulaNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, services.ErrRecordSkipped), errors.Is(err, services.ErrRecordAdministered):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, services.ErrRecordInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("record operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
