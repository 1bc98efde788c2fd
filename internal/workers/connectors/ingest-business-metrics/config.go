// internal/workers/connectors/ingest-business-metrics/config.go
package ingestbusinessmetrics

import "time"

type Config struct {
	Timeout time.Duration
	// MaxBatch bounds how many metrics one job may upsert.
	MaxBatch int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		MaxBatch: 200,
	}
}
