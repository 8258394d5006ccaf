package database

import (
	"context"
	"fmt"
	"time"

	"blog-backend/pkg/logger"
)

// Ping checks the database is reachable within five seconds.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the pool. Safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	db.Pool.Close()
	db.Pool = nil
	logger.Info("database connection pool closed", nil)
	return nil
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	AcquireCount         int64
	AcquireDuration      time.Duration
	AcquiredConns        int32
	CanceledAcquireCount int64
	IdleConns            int32
	MaxConns             int32
	TotalConns           int32
}

// Utilization is acquired/max as a percentage.
func (s *PoolStats) Utilization() float64 {
	if s.MaxConns == 0 {
		return 0
	}
	return float64(s.AcquiredConns) / float64(s.MaxConns) * 100
}

// AvgAcquireDuration is the mean wait for a connection.
func (s *PoolStats) AvgAcquireDuration() time.Duration {
	if s.AcquireCount == 0 {
		return 0
	}
	return s.AcquireDuration / time.Duration(s.AcquireCount)
}

// Stats returns current pool statistics.
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		AcquiredConns:        raw.AcquiredConns(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		IdleConns:            raw.IdleConns(),
		MaxConns:             raw.MaxConns(),
		TotalConns:           raw.TotalConns(),
	}, nil
}

// MonitorPoolHealth logs a warning when the pool runs hot. Blocks until ctx is done.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				logger.Error("failed to read pool stats", err)
				continue
			}
			if u := stats.Utilization(); u > 80 {
				logger.Warn("high database pool utilization", map[string]interface{}{
					"utilization_pct": u,
					"acquired":        stats.AcquiredConns,
					"max":             stats.MaxConns,
				})
			}
			if avg := stats.AvgAcquireDuration(); avg > 100*time.Millisecond {
				logger.Warn("high database acquire latency", map[string]interface{}{
					"avg_acquire": avg.String(),
				})
			}
		case <-ctx.Done():
			return
		}
	}
}
