package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
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

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	merge := func(name string, h ComponentHealth) {
		components[name] = h
		switch {
		case h.Status == "unhealthy":
			overall = "unhealthy"
		case h.Status == "degraded" && overall == "healthy":
			overall = "degraded"
		}
	}

	if s.store != nil {
		merge("store", s.checkStore(ctx))
	}
	merge("snapshot", s.checkSnapshot(ctx))

	return &HealthOutput{
		CacheControl: CacheNoStore,
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkStore verifies the snapshot store is readable.
func (s *Server) checkStore(ctx context.Context) ComponentHealth {
	start := time.Now()
	err := s.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "store read failed",
		}
	}
	return ComponentHealth{Status: "healthy", Latency: latency.String()}
}

// checkSnapshot reports whether a fresh, non-demo snapshot has been published.
func (s *Server) checkSnapshot(ctx context.Context) ComponentHealth {
	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "no snapshot published yet",
		}
	}

	age := s.now().Sub(snap.LastUpdated).Truncate(time.Second)
	switch {
	case snap.Demo:
		return ComponentHealth{Status: "degraded", Message: "serving demo data"}
	case age > s.opts.StaleAfter:
		return ComponentHealth{Status: "degraded", Message: fmt.Sprintf("snapshot is %s old", age)}
	}
	return ComponentHealth{
		Status:  "healthy",
		Message: fmt.Sprintf("%d releases, updated %s ago", snap.ReleaseCount(), age),
	}
}
