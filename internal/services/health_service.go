package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	ws "heatcli/internal/websocket"
)

// HealthService provides health check functionality
type HealthService struct {
	version      string
	buildTime    string
	dataService  *DataService
	webSocketHub *ws.Hub
	startTime    time.Time
	logger       *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, dataService *DataService, webSocketHub *ws.Hub, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:      version,
		buildTime:    buildTime,
		dataService:  dataService,
		webSocketHub: webSocketHub,
		startTime:    time.Now(),
		logger:       logger,
	}
}

// HealthCheck reports overall service health
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := "healthy"

	services := map[string]interface{}{}
	if hs.dataService != nil {
		tables := hs.dataService.Store().Names()
		services["data"] = map[string]interface{}{
			"status": "healthy",
			"tables": len(tables),
		}
		if len(tables) == 0 {
			status = "degraded"
			services["data"].(map[string]interface{})["status"] = "empty"
		}
	}
	if hs.webSocketHub != nil {
		services["websocket"] = map[string]interface{}{
			"status":  "healthy",
			"clients": hs.webSocketHub.ClientCount(),
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
		},
		Services: services,
	}
}

// LivenessCheck reports whether the process is alive
func (hs *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
	}
}

// ReadinessCheck reports whether the service can answer data queries
func (hs *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	ready := hs.dataService != nil && len(hs.dataService.Store().Names()) > 0
	status := "ready"
	if !ready {
		status = "not_ready"
	}
	return map[string]interface{}{
		"status":    status,
		"timestamp": time.Now(),
	}
}

// Version returns build information
func (hs *HealthService) Version() map[string]string {
	return map[string]string{
		"version":    hs.version,
		"build_time": hs.buildTime,
		"go_version": runtime.Version(),
	}
}
