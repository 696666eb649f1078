package services

import (
	"context"
	"log/slog"
	"time"
)

// HealthStatus is the response payload for health endpoints.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	UptimeSec int64  `json:"uptime_seconds"`
}

// HealthService reports liveness and build information.
type HealthService struct {
	version   string
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a new health service.
func NewHealthService(version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the current service status.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		UptimeSec: int64(time.Since(s.startTime).Seconds()),
	}
}
