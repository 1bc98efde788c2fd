// internal/workers/planning/create-action-plan/config.go
package createactionplan

import "time"

type Config struct {
	Timeout  time.Duration
	MaxGoals int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		MaxGoals: 10,
	}
}
