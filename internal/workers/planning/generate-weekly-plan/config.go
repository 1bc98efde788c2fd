// internal/workers/planning/generate-weekly-plan/config.go
package generateweeklyplan

import (
	"time"

	"bizcoach-workers/internal/engine/planner"
)

type Config struct {
	Timeout     time.Duration
	PreviewSize int
	MaxGoals    int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		PreviewSize: planner.DefaultPreviewSize,
		MaxGoals:    10,
	}
}
