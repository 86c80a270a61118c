package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "heatcli/internal/errors"
	"heatcli/internal/middleware"
	"heatcli/internal/services"
)

// CalcHandler handles calculation HTTP requests
type CalcHandler struct {
	service      *services.CalcService
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCalcHandler creates a new calculation handler
func NewCalcHandler(service *services.CalcService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CalcHandler {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CalcHandler{
		service:      service,
		validator:    v,
		logger:       logger.With(slog.String("component", "calc_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the calculation routes
func (h *CalcHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.List)
	r.Get("/categories", h.Categories)
	r.Post("/chain/validate", h.ValidateChain)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", h.Describe)
		r.Post("/run", h.Run)
	})

	return r
}

// List handles GET /api/calculations with an optional ?category filter
func (h *CalcHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	names := h.service.List(r.Context(), category)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   names,
		"count":  len(names),
	})
}

// Categories handles GET /api/calculations/categories
func (h *CalcHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

// Describe handles GET /api/calculations/{name}
func (h *CalcHandler) Describe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	info, err := h.service.Describe(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// RunRequest is the body of POST /api/calculations/{name}/run
type RunRequest struct {
	Inputs map[string]float64 `json:"inputs" validate:"required"`
}

// Run handles POST /api/calculations/{name}/run
func (h *CalcHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_JSON",
			"Request body contains invalid JSON",
		))
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, h.toValidationError(err))
		return
	}

	start := time.Now()
	result, err := h.service.Run(r.Context(), name, req.Inputs)

	middleware.RecordCalcMetrics(r.Context(), name, time.Since(start), err == nil)

	if err != nil {
		h.logger.WarnContext(r.Context(), "calculation run failed",
			slog.String("calculation", name),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// ChainRequest is the body of POST /api/calculations/chain/validate
type ChainRequest struct {
	Calculations []string `json:"calculations" validate:"required,min=1,dive,required"`
}

// ValidateChain handles POST /api/calculations/chain/validate
func (h *CalcHandler) ValidateChain(w http.ResponseWriter, r *http.Request) {
	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_JSON",
			"Request body contains invalid JSON",
		))
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, h.toValidationError(err))
		return
	}

	report, err := h.service.ValidateChain(r.Context(), req.Calculations)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *CalcHandler) toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.ErrValidationFailed
	}

	details := make([]apierrors.ValidationError, 0, len(verrs))
	for _, ve := range verrs {
		details = append(details, apierrors.ValidationError{
			Field:   ve.Field(),
			Message: "failed on rule " + ve.Tag(),
		})
	}

	return apierrors.NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Request validation failed",
		map[string]interface{}{"errors": details},
	)
}
