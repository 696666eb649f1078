package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cpkcli/internal/capability"
	apierrors "cpkcli/internal/errors"
	"cpkcli/internal/exporter"
	"cpkcli/internal/middleware"
	"cpkcli/internal/services"
)

// CalculateHandler handles calculation HTTP requests
type CalculateHandler struct {
	service      CalculationServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxBodyBytes int64
}

// NewCalculateHandler creates a new calculate handler
func NewCalculateHandler(service CalculationServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxBodyBytes int64) *CalculateHandler {
	return &CalculateHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "calculate")),
		errorHandler: errorHandler,
		maxBodyBytes: maxBodyBytes,
	}
}

// Routes returns the calculation routes
func (h *CalculateHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Calculate)
	r.Post("/file", h.CalculateFile)
	r.Post("/export", h.Export)

	return r
}

// Calculate handles POST /api/calculate
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTextRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CalculateFromText(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	result.RequestID = middleware.GetReqID(r.Context())

	render.JSON(w, r, result)
}

// CalculateFile handles POST /api/calculate/file
func (h *CalculateHandler) CalculateFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(fmt.Errorf("parse multipart form: %w", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A measurement file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read upload",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	usl, ok := h.parseLimit(w, r, "usl")
	if !ok {
		return
	}
	lsl, ok := h.parseLimit(w, r, "lsl")
	if !ok {
		return
	}

	result, err := h.service.CalculateFromFile(r.Context(), services.FileRequest{
		Filename: header.Filename,
		Data:     data,
		Column:   r.FormValue("column"),
		Sheet:    r.FormValue("sheet"),
		USL:      usl,
		LSL:      lsl,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	result.RequestID = middleware.GetReqID(r.Context())

	render.JSON(w, r, result)
}

// Export handles POST /api/calculate/export
func (h *CalculateHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTextRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CalculateFromText(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cpk_result.csv"`)

	row := exporter.ResultRow{
		Summary: result.Summary,
		Limits:  result.Limits,
		Cpk:     result.Cpk,
	}
	if err := exporter.WriteResultCSV(w, row); err != nil {
		// Headers are already out; log instead of responding twice.
		h.logger.ErrorContext(r.Context(), "failed to stream result CSV",
			slog.String("error", err.Error()))
	}
}

// decodeTextRequest reads and bounds the JSON body for text calculations.
func (h *CalculateHandler) decodeTextRequest(w http.ResponseWriter, r *http.Request) (services.TextRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req services.TextRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return req, false
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return req, false
	}
	return req, true
}

// parseLimit reads an optional numeric form field. An empty field means
// the limit is absent.
func (h *CalculateHandler) parseLimit(w http.ResponseWriter, r *http.Request, field string) (*float64, bool) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(field, fmt.Sprintf("%s must be a number", field)))
		return nil, false
	}
	return capability.Float(v), true
}

// mapServiceError converts service sentinels to API errors
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())
	case errors.Is(err, services.ErrInvalidLimits):
		return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", services.ErrInvalidLimits.Error(), nil)
	case errors.Is(err, services.ErrFileTooLarge):
		return apierrors.ErrPayloadTooLarge
	case errors.Is(err, services.ErrTooManyValues):
		return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", services.ErrTooManyValues.Error(), nil)
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrUnsupportedFileType
	default:
		return err
	}
}
