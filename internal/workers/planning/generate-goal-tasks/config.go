// internal/workers/planning/generate-goal-tasks/config.go
package generategoaltasks

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
