package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"heatcli/internal/dataprocessing"
	apierrors "heatcli/internal/errors"
	"heatcli/internal/middleware"
)

// DataHandler handles table and conversion HTTP requests with RFC 7807 errors
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/tables", h.ListTables)
	r.Route("/tables/{name}", func(r chi.Router) {
		r.Use(h.TableCtx)
		r.Get("/", h.GetTable)
		r.Get("/stats", h.TableStats)
	})

	r.Post("/parse", h.ParseValues)

	r.Get("/exchangers/lookup", h.ExchangerLookup)
	r.Get("/step", h.StepLookup)

	return r
}

// TableCtx middleware validates the table name parameter
func (h *DataHandler) TableCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Table name is required"))
			return
		}
		if len(name) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Table name too long"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListTables handles GET /api/data/tables
func (h *DataHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	summaries := h.service.TableSummaries(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summaries,
		"count":  len(summaries),
	})
}

// GetTable handles GET /api/data/tables/{name}
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	table, err := h.service.GetTable(r.Context(), name)
	if err != nil {
		h.logger.WarnContext(r.Context(), "table fetch failed",
			slog.String("table", name),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
	})
}

// TableStats handles GET /api/data/tables/{name}/stats
func (h *DataHandler) TableStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	stats, err := h.service.TableStats(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// ParseRequest is the body of POST /api/data/parse
type ParseRequest struct {
	Values []string `json:"values"`
}

// ParseValues handles POST /api/data/parse. The converter is total, so
// this endpoint only fails on malformed request bodies.
func (h *DataHandler) ParseValues(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_JSON",
			"Request body contains invalid JSON",
		))
		return
	}
	if len(req.Values) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("values", "At least one value is required"))
		return
	}
	if len(req.Values) > 10000 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("values", "Batch too large (max 10000)"))
		return
	}

	results := h.service.ParseValues(r.Context(), req.Values)

	if metrics := middleware.GetBusinessMetricsFromContext(r.Context()); metrics != nil {
		metrics.CellsParsedTotal.Add(r.Context(), int64(len(results)))
		fallbacks := int64(0)
		for _, res := range results {
			if dataprocessing.IsFallbackStrategy(res.Strategy) {
				fallbacks++
			}
		}
		if fallbacks > 0 {
			metrics.ParseFallbackTotal.Add(r.Context(), fallbacks)
		}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   results,
		"count":  len(results),
	})
}

// ExchangerLookup handles GET /api/data/exchangers/lookup
func (h *DataHandler) ExchangerLookup(w http.ResponseWriter, r *http.Request) {
	power, err := queryFloat(r, "power")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("power", "Must be a number"))
		return
	}
	t1, err := queryFloat(r, "t1")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("t1", "Must be a number"))
		return
	}
	tempDiff, err := queryFloat(r, "temp_diff")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("temp_diff", "Must be a number"))
		return
	}
	approach, err := queryFloat(r, "approach")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("approach", "Must be a number"))
		return
	}

	match, err := h.service.ExchangerLookup(r.Context(), power, t1, tempDiff, approach)

	middleware.RecordLookupMetrics(r.Context(), "ALLHX", err == nil)

	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   match,
	})
}

// StepLookup handles GET /api/data/step
func (h *DataHandler) StepLookup(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	lookupCol := r.URL.Query().Get("lookup_column")
	returnCol := r.URL.Query().Get("return_column")
	if table == "" || lookupCol == "" || returnCol == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("table", "table, lookup_column and return_column are required"))
		return
	}

	value, err := queryFloat(r, "value")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("value", "Must be a number"))
		return
	}

	result, err := h.service.StepLookup(r.Context(), table, lookupCol, returnCol, value)

	middleware.RecordLookupMetrics(r.Context(), table, err == nil)

	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"table":         table,
			"lookup_column": lookupCol,
			"return_column": returnCol,
			"value":         value,
			"result":        result,
		},
	})
}

func queryFloat(r *http.Request, key string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(key), 64)
}
