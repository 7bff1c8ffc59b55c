package domain

import "time"

// Audit actions.
const (
	AuditCreate     = "CREATE"
	AuditUpdate     = "UPDATE"
	AuditDelete     = "DELETE"
	AuditPost       = "POST"
	AuditUnpost     = "UNPOST"
	AuditDeactivate = "DEACTIVATE"
	AuditCompute    = "COMPUTE"
	AuditTransition = "TRANSITION"
)

// AuditRecord describes one successful mutation.
type AuditRecord struct {
	AuditID        string         `json:"auditID"`
	OrganizationID string         `json:"organizationID"`
	Actor          string         `json:"actor"`
	Action         string         `json:"action"`
	EntityType     string         `json:"entityType"`
	EntityID       string         `json:"entityID"`
	Summary        string         `json:"summary"`
	Context        map[string]any `json:"context"`
	RecordedAt     time.Time      `json:"recordedAt"`
}
