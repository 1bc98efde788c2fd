// pkg/registry/schema.go
package registry

type ActivityRegistry struct {
	Version     string     `json:"version" yaml:"version" validate:"required"`
	LastUpdated string     `json:"lastUpdated" yaml:"lastUpdated"`
	Activities  []Activity `json:"activities" yaml:"activities" validate:"required,min=1,dive"`
}

// Activity describes one job type the worker manager can serve.
type Activity struct {
	ID                   string   `json:"id" yaml:"id" validate:"required"`
	DisplayName          string   `json:"displayName" yaml:"displayName" validate:"required"`
	Description          string   `json:"description" yaml:"description"`
	Category             string   `json:"category" yaml:"category" validate:"required,oneof=connectors analytics planning notifications"`
	Version              string   `json:"version" yaml:"version" validate:"required,semver"`
	TaskType             string   `json:"taskType" yaml:"taskType" validate:"required"`
	ImplementationStatus string   `json:"implementationStatus" yaml:"implementationStatus" validate:"required,oneof=planned in-progress completed verified"`
	ErrorCodes           []string `json:"errorCodes" yaml:"errorCodes"`
	Timeout              string   `json:"timeout" yaml:"timeout"`
	Retries              int      `json:"retries" yaml:"retries" validate:"gte=0,lte=10"`
	Tags                 []string `json:"tags" yaml:"tags"`
}

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
)
