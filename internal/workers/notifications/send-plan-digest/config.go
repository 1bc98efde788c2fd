// internal/workers/notifications/send-plan-digest/config.go
package sendplandigest

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
	// MaxTasks bounds how many tasks the digest lists.
	MaxTasks int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		MaxTasks: 7,
	}
}
