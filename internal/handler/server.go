// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, day.go, etc.) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// DayServicer defines the business operations the day handlers depend on.
type DayServicer interface {
	Save(ctx context.Context, day domain.Day) (domain.Day, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ActivityServicer defines the business operations the activity handlers depend on.
type ActivityServicer interface {
	Save(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Exporter flattens a trip itinerary into rows.
type Exporter interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Database is the slice of *database.Gateway the health check uses.
type Database interface {
	Ping(ctx context.Context) error
	Stat() *pgxpool.Stat
}

// StatsReader reports row counts for the health check.
type StatsReader interface {
	Counts(ctx context.Context) (domain.TableCounts, error)
}

// Deps groups the Server's collaborators. Any nil field disables the routes
// that need it; tests set only what they exercise.
type Deps struct {
	Trips      TripServicer
	Days       DayServicer
	Activities ActivityServicer
	Export     Exporter
	DB         Database
	Stats      StatsReader
	Metrics    http.Handler
	OpenAPI    []byte
	Version    string
	Logger     *slog.Logger
}

// Server holds every dependency the handlers need.
type Server struct {
	trips      TripServicer
	days       DayServicer
	activities ActivityServicer
	export     Exporter
	db         Database
	stats      StatsReader
	metrics    http.Handler
	openapi    []byte
	version    string
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	version := d.Version
	if version == "" {
		version = "1.0.0"
	}
	return &Server{
		trips:      d.Trips,
		days:       d.Days,
		activities: d.Activities,
		export:     d.Export,
		db:         d.DB,
		stats:      d.Stats,
		metrics:    d.Metrics,
		openapi:    d.OpenAPI,
		version:    version,
		log:        log,
	}
}
