package usecase

import (
	"context"
	"log/slog"

	"isiledger/src/core/ports"
)

// HealthService handles health check logic.
type HealthService struct {
	storage ports.Repository
	log     *slog.Logger
}

// NewHealthService creates a new HealthService. storage may be nil.
func NewHealthService(storage ports.Repository, log *slog.Logger) *HealthService {
	return &HealthService{
		storage: storage,
		log:     log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if s.storage != nil {
		if err := s.storage.Health(ctx); err != nil {
			s.log.Warn("storage health check failed", "error", err)
			status.Status = "degraded"
			status.Components["storage"] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Components["storage"] = ComponentHealth{Status: "healthy"}
		}
	}

	return status
}

// Health implements ports.ExternalService so the service can be probed by
// callers that only need a pass/fail answer.
func (s *HealthService) Health(ctx context.Context) error {
	status := s.Check(ctx)
	if status.Status != "ok" {
		return &healthError{status: status.Status}
	}
	return nil
}

var _ ports.ExternalService = (*HealthService)(nil)

type healthError struct {
	status string
}

func (e *healthError) Error() string {
	return "health check failed: " + e.status
}
