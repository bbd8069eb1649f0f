package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics exposes pool usage as gauges on reg. Values are read from
// Stat at scrape time; a closed gateway reports zero.
func (g *Gateway) RegisterMetrics(reg prometheus.Registerer) error {
	gauges := []struct {
		name, help string
		value      func(*pgxpool.Stat) float64
	}{
		{"db_pool_acquired_conns", "Connections currently checked out of the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }},
		{"db_pool_idle_conns", "Idle connections held by the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }},
		{"db_pool_total_conns", "Total connections owned by the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }},
		{"db_pool_max_conns", "Configured connection ceiling.",
			func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }},
		{"db_pool_empty_acquire_total", "Acquires that had to wait for a free connection.",
			func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) }},
	}

	for _, gg := range gauges {
		value := gg.value
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: gg.name, Help: gg.help}, func() float64 {
			stat := g.Stat()
			if stat == nil {
				return 0
			}
			return value(stat)
		})
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
