package domain

import "time"

// Audit actions recorded for a deal.
const (
	AuditActionCreated       = "created"
	AuditActionStatusChanged = "status_changed"
)

// DealAuditEntry is one row in the per-deal audit trail. PreviousStatus is
// empty on the creation entry.
type DealAuditEntry struct {
	ID             int64
	DealID         DealID
	Action         string
	PreviousStatus string
	NewStatus      string
	At             time.Time
}

type DealAuditFilter struct {
	DealID  DealID
	AfterID int64
	Limit   int
}
