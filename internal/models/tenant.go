// internal/models/tenant.go
package models

import "errors"

// TenantScope identifies the tenant a job acts for. It travels inside job
// variables rather than living in any process-wide session.
type TenantScope struct {
	TenantID string `json:"tenantId"`
	APIToken string `json:"apiToken,omitempty"`
}

var ErrMissingTenant = errors.New("tenantId is required")

// Validate checks that the scope names a tenant.
func (s TenantScope) Validate() error {
	if s.TenantID == "" {
		return ErrMissingTenant
	}
	return nil
}

// LogFields returns the scope fields that are safe to log.
func (s TenantScope) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"tenantId": s.TenantID,
		"hasToken": s.APIToken != "",
	}
}
