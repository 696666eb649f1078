package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"cpkcli/internal/capability"
	"cpkcli/internal/config"
)

// TextRequest is a calculation over freeform delimited text.
type TextRequest struct {
	Values string   `json:"values" validate:"required"`
	USL    *float64 `json:"usl"`
	LSL    *float64 `json:"lsl"`
}

// FileRequest is a calculation over an uploaded tabular file. Column
// selects the measurement column for multi-column files; Sheet selects
// the worksheet for workbooks (first sheet when empty).
type FileRequest struct {
	Filename string `validate:"required"`
	Data     []byte
	Column   string
	Sheet    string
	USL      *float64
	LSL      *float64
}

// CalculationResult is the complete outcome of one calculation. Cpk is
// nil when it cannot be computed; that is a well-formed result, not an
// error.
type CalculationResult struct {
	RequestID string                `json:"request_id"`
	Summary   capability.Summary    `json:"summary"`
	Limits    capability.SpecLimits `json:"limits"`
	Cpk       *float64              `json:"cpk"`
}

// CalculationService orchestrates parsing and statistics for the
// transport layer. Each call operates on locally-scoped values only; the
// service itself is safe for concurrent use.
type CalculationService struct {
	logger   *slog.Logger
	validate *validator.Validate
	cfg      config.CalculatorConfig
	metrics  *Metrics
}

// NewCalculationService creates a calculation service with the given
// input caps. Metrics may be nil.
func NewCalculationService(logger *slog.Logger, cfg config.CalculatorConfig, metrics *Metrics) *CalculationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculationService{
		logger:   logger.With(slog.String("service", "calculation")),
		validate: validator.New(),
		cfg:      cfg,
		metrics:  metrics,
	}
}

// CalculateFromText parses delimited text and computes summary and Cpk.
func (s *CalculationService) CalculateFromText(ctx context.Context, req TextRequest) (*CalculationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	limits, err := normalizeLimits(req.USL, req.LSL)
	if err != nil {
		return nil, err
	}

	values := capability.ParseTokens(req.Values)
	result, err := s.finish(ctx, "text", values, limits)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CalculateFromFile routes an uploaded file by extension, parses the
// measurement column and computes summary and Cpk.
func (s *CalculationService) CalculateFromFile(ctx context.Context, req FileRequest) (*CalculationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if int64(len(req.Data)) > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	limits, err := normalizeLimits(req.USL, req.LSL)
	if err != nil {
		return nil, err
	}

	var values []float64
	switch strings.ToLower(filepath.Ext(req.Filename)) {
	case ".csv", ".txt":
		values, err = capability.ParseCSV(req.Data, req.Column)
	case ".xlsx", ".xlsm":
		values, err = capability.ParseWorkbook(req.Data, req.Sheet, req.Column)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		// An unreadable container (e.g. a non-zip .xlsx) is a bad
		// request, not a server fault.
		return nil, fmt.Errorf("%w: parse %s: %s", ErrInvalidInput, req.Filename, err)
	}

	result, err := s.finish(ctx, "file", values, limits)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// finish runs the statistics engine over a parsed sequence.
func (s *CalculationService) finish(ctx context.Context, source string, values []float64, limits capability.SpecLimits) (*CalculationResult, error) {
	if len(values) > s.cfg.MaxValues {
		return nil, ErrTooManyValues
	}

	summary := capability.Summarize(values)
	result := &CalculationResult{
		Summary: summary,
		Limits:  limits,
		Cpk:     summary.Cpk(limits),
	}
	s.metrics.observe(source, result)

	s.logger.InfoContext(ctx, "calculation completed",
		slog.String("source", source),
		slog.Int("count", summary.Count),
		slog.Bool("cpk_defined", result.Cpk != nil))

	return result, nil
}

// normalizeLimits applies one optional-value convention: NaN limits are
// treated as absent, and when both limits are present LSL must be below
// USL.
func normalizeLimits(usl, lsl *float64) (capability.SpecLimits, error) {
	limits := capability.SpecLimits{USL: usl, LSL: lsl}
	if limits.USL != nil && math.IsNaN(*limits.USL) {
		limits.USL = nil
	}
	if limits.LSL != nil && math.IsNaN(*limits.LSL) {
		limits.LSL = nil
	}
	if limits.TwoSided() && *limits.LSL >= *limits.USL {
		return capability.SpecLimits{}, ErrInvalidLimits
	}
	return limits, nil
}
