// internal/workers/analytics/query-health-history/config.go
package queryhealthhistory

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultDays int
	MaxResults  int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		DefaultDays: 30,
		MaxResults:  100,
	}
}
