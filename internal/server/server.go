/*
Package server exposes the projection engine over HTTP for the scenario
editor and the exporter.

Every figure a response carries comes from forecast.Assemble, so the editor
view and an exported file built from the same scenario snapshot always agree.

Routes:

	GET    /api/version
	POST   /api/projection               {scenario, currency?}
	POST   /api/mutate                   {scenario, path, value}
	POST   /api/export?format=           {scenario, currency?}
	POST   /api/breakeven                {scenario, currency?, target?, floor?}
	GET    /api/scenarios
	POST   /api/scenarios                {scenario}
	GET    /api/scenarios/{id}
	PUT    /api/scenarios/{id}           {scenario}
	DELETE /api/scenarios/{id}
	PATCH  /api/scenarios/{id}/fields    {path, value}
	GET    /api/scenarios/{id}/forecast?currency=
	GET    /api/scenarios/{id}/export?format=&currency=
*/
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/school-forecast/internal/engine"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/internal/store"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	store         store.Store
	engine        engine.Options
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler serving the projection and scenario API.
// A nil cfg uses the defaults of LoadConfig.
func NewHandler(logger *zap.Logger, st store.Store, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}
	if st == nil {
		st = store.NewMemory()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		store:         st,
		engine:        cfg.Engine.Normalize(),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/projection", h.handleProjection)
		r.Post("/mutate", h.handleMutate)
		r.Post("/export", h.handleExport)
		r.Post("/breakeven", h.handleBreakEven)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.listScenarios)
			r.Post("/", h.createScenario)
			r.Get("/{id}", h.getScenario)
			r.Put("/{id}", h.updateScenario)
			r.Delete("/{id}", h.deleteScenario)
			r.Patch("/{id}/fields", h.patchScenario)
			r.Get("/{id}/forecast", h.scenarioForecast)
			r.Get("/{id}/export", h.scenarioExport)
		})
	})

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request served",
				zap.String("op", "server.request"),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// scenarioRequest is the body shared by the stateless endpoints.
type scenarioRequest struct {
	Scenario interface{} `json:"scenario"`
	Currency string      `json:"currency"`
	Path     string      `json:"path"`
	Value    interface{} `json:"value"`
	Target   string      `json:"target"`
	Floor    float64     `json:"floor"`
}

// decodeRequest reads a bounded JSON body. Numbers stay json.Number so the
// scenario normalizer sees them exactly as sent.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (scenarioRequest, bool) {
	var req scenarioRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return req, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}
	return req, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Info("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// respondStoreError maps store errors onto HTTP statuses.
func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

// respondMutationError maps scenario.Apply errors onto HTTP statuses.
func (h *handler) respondMutationError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, scenario.ErrHRDerivedExpense):
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
	}
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
