package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/service"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthOutput wraps the health report for Huma.
type HealthOutput struct {
	Status int
	Body   *service.HealthReport
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	report := s.services.Health.Check(ctx)

	status := http.StatusOK
	if report.Status == service.StatusDown {
		status = http.StatusServiceUnavailable
	}
	return &HealthOutput{Status: status, Body: report}, nil
}
