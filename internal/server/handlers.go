package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/optimizer"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/internal/store"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/optimization"
	"github.com/iwvelando/school-forecast/pkg/output"
	"github.com/iwvelando/school-forecast/pkg/validation"
	"go.uber.org/zap"
)

type projectionResponse struct {
	ID       string             `json:"id,omitempty"`
	Scenario scenario.Document  `json:"scenario"`
	Forecast *forecast.Forecast `json:"forecast"`
	Warnings []string           `json:"warnings"`
	Duration string             `json:"duration"`
}

type mutationResponse struct {
	ID       string            `json:"id,omitempty"`
	Scenario scenario.Document `json:"scenario"`
	Path     string            `json:"path"`
}

type breakEvenResponse struct {
	Scenario string                 `json:"scenario"`
	Currency string                 `json:"currency"`
	Results  []optimization.Summary `json:"results"`
}

type scenarioSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}
	h.respondProjection(w, "", scenario.Normalize(req.Scenario), req.Currency, op)
}

func (h *handler) handleMutate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMutate"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	next, path, err := scenario.Apply(scenario.Normalize(req.Scenario), req.Path, req.Value)
	if err != nil {
		h.respondMutationError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, mutationResponse{Scenario: next, Path: path})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	format := r.URL.Query().Get("format")
	if err := validation.ValidateExportFormat(format); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}
	h.respondExport(w, scenario.Normalize(req.Scenario), format, req.Currency, op)
}

// handleBreakEven runs the break-even solver for one target, or for every
// target when none is named.
func (h *handler) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBreakEven"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	targets := optimizer.Targets
	if req.Target != "" {
		target, err := optimizer.ParseTarget(req.Target)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		targets = []optimizer.Target{target}
	}

	doc := scenario.Normalize(req.Scenario)
	opts := forecast.Options{Currency: req.Currency, Engine: h.engine}
	runner, err := optimizer.NewRunner(h.logger, doc, opts)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	results := make([]optimization.Summary, 0, len(targets))
	for _, target := range targets {
		summary, err := runner.Run(target, req.Floor)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		results = append(results, summary)
	}

	currency, _ := forecast.ValidateCurrency(req.Currency)
	h.writeJSON(w, http.StatusOK, breakEvenResponse{Scenario: doc.Name, Currency: currency, Results: results})
}

func (h *handler) listScenarios(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "server.listScenarios")
		return
	}
	summaries := make([]scenarioSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, scenarioSummary{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt})
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) createScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.createScenario"
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}
	rec, err := h.store.Create(r.Context(), scenario.Normalize(req.Scenario))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.logger.Info("scenario created",
		zap.String("op", op),
		zap.String("id", rec.ID),
		zap.String("name", rec.Name),
	)
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *handler) getScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r, "server.getScenario")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) updateScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.updateScenario"
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}
	rec, err := h.store.Update(r.Context(), id, scenario.Normalize(req.Scenario))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) deleteScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.deleteScenario"
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// patchScenario applies one field edit to a stored scenario and saves the
// resulting snapshot.
func (h *handler) patchScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.patchScenario"
	rec, ok := h.loadRecord(w, r, op)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	next, path, err := scenario.Apply(rec.Document, req.Path, req.Value)
	if err != nil {
		h.respondMutationError(w, err, op)
		return
	}
	if _, err := h.store.Update(r.Context(), rec.ID, next); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, mutationResponse{ID: rec.ID, Scenario: next, Path: path})
}

func (h *handler) scenarioForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.scenarioForecast"
	rec, ok := h.loadRecord(w, r, op)
	if !ok {
		return
	}
	h.respondProjection(w, rec.ID, rec.Document, r.URL.Query().Get("currency"), op)
}

func (h *handler) scenarioExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.scenarioExport"
	format := r.URL.Query().Get("format")
	if err := validation.ValidateExportFormat(format); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	rec, ok := h.loadRecord(w, r, op)
	if !ok {
		return
	}
	h.respondExport(w, rec.Document, format, r.URL.Query().Get("currency"), op)
}

func (h *handler) loadRecord(w http.ResponseWriter, r *http.Request, op string) (store.Record, bool) {
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return store.Record{}, false
	}
	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, op)
		return store.Record{}, false
	}
	return rec, true
}

func (h *handler) assemble(doc scenario.Document, currency string) (*forecast.Forecast, error) {
	return forecast.Assemble(h.logger, doc, forecast.Options{Currency: currency, Engine: h.engine})
}

func (h *handler) respondProjection(w http.ResponseWriter, id string, doc scenario.Document, currency, op string) {
	start := time.Now()
	result, err := h.assemble(doc, currency)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	elapsed := time.Since(start)

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.String("scenario", doc.Name),
		zap.String("currency", result.Currency),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, projectionResponse{
		ID:       id,
		Scenario: doc,
		Forecast: result,
		Warnings: result.Warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) respondExport(w http.ResponseWriter, doc scenario.Document, format, currency, op string) {
	var buf bytes.Buffer
	var contentType, fileName string

	if format == constants.ExportFormatYAML {
		data, err := scenario.EncodeYAML(doc)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		buf.Write(data)
		contentType = "application/yaml"
		fileName = strings.TrimSuffix(output.FileName(&forecast.Forecast{Name: doc.Name}, constants.OutputFormatJSON), ".json") + ".yaml"
	} else {
		result, err := h.assemble(doc, currency)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if err := output.Write(&buf, result, format); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		contentType = output.ContentType(format)
		fileName = output.FileName(result, format)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
