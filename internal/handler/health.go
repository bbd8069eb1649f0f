package handler

import (
	"context"
	"net/http"
	"time"
)

// healthTimeout bounds the database checks made by GET /health.
const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status   string         `json:"status"`
	Database databaseHealth `json:"database"`
}

type databaseHealth struct {
	Connected bool        `json:"connected"`
	Stats     *tableStats `json:"stats"`
	Pool      *poolStats  `json:"pool"`
}

type tableStats struct {
	Trips      int64 `json:"trips"`
	Days       int64 `json:"days"`
	Activities int64 `json:"activities"`
}

type poolStats struct {
	AcquiredConns int32 `json:"acquired_conns"`
	IdleConns     int32 `json:"idle_conns"`
	TotalConns    int32 `json:"total_conns"`
	MaxConns      int32 `json:"max_conns"`
}

// GetHealth handles GET /health.
// It always answers 200; data.status is "unhealthy" when the database cannot
// be reached, so callers can tell a live process from a usable one.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "unhealthy"}
	if s.db == nil {
		writeData(w, http.StatusOK, resp)
		return
	}

	if err := s.db.Ping(ctx); err != nil {
		s.log.WarnContext(r.Context(), "health check: database unreachable", "error", err)
		writeData(w, http.StatusOK, resp)
		return
	}
	resp.Status = "healthy"
	resp.Database.Connected = true

	if st := s.db.Stat(); st != nil {
		resp.Database.Pool = &poolStats{
			AcquiredConns: st.AcquiredConns(),
			IdleConns:     st.IdleConns(),
			TotalConns:    st.TotalConns(),
			MaxConns:      st.MaxConns(),
		}
	}

	if s.stats != nil {
		counts, err := s.stats.Counts(ctx)
		if err != nil {
			s.log.WarnContext(r.Context(), "health check: count rows", "error", err)
		} else {
			resp.Database.Stats = &tableStats{Trips: counts.Trips, Days: counts.Days, Activities: counts.Activities}
		}
	}

	writeData(w, http.StatusOK, resp)
}

type apiInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// GetAPIInfo handles GET /api.
func (s *Server) GetAPIInfo(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, apiInfo{
		Name:    "Travel Planner API",
		Version: s.version,
		Endpoints: map[string]string{
			"health":     "/health",
			"trips":      "/api/trips, /api/trips/{id}",
			"days":       "/api/trips/{trip_id}/days, /api/days/{id}",
			"activities": "/api/days/{day_id}/activities, /api/activities/{id}, /api/activities/{id}/order",
			"export":     "/api/trips/{id}/export",
			"openapi":    "/openapi.yaml",
			"metrics":    "/metrics",
		},
	})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(s.openapi)
}
