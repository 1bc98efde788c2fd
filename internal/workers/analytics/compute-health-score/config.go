// internal/workers/analytics/compute-health-score/config.go
package computehealthscore

import (
	"time"

	"bizcoach-workers/internal/engine/healthscore"
)

type Config struct {
	Timeout      time.Duration
	Weights      map[string]float64
	NeutralScore int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		NeutralScore: healthscore.NeutralScore,
	}
}
