package http

import (
	"context"

	"cpkcli/internal/services"
)

// CalculationServiceInterface defines what the calculate handler needs
// from the service layer. Kept narrow so tests can substitute a stub.
type CalculationServiceInterface interface {
	CalculateFromText(ctx context.Context, req services.TextRequest) (*services.CalculationResult, error)
	CalculateFromFile(ctx context.Context, req services.FileRequest) (*services.CalculationResult, error)
}
