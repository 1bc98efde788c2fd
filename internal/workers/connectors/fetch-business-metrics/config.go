// internal/workers/connectors/fetch-business-metrics/config.go
package fetchbusinessmetrics

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
