package events

import (
	"context"
	"fmt"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// AuditRecorder writes every deal lifecycle event into the audit trail.
type AuditRecorder struct {
	repo ports.DealAuditRepository
}

func NewAuditRecorder(repo ports.DealAuditRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

func (a *AuditRecorder) Handle(ctx context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.DealWasCreated:
		return a.log(ctx, domain.DealAuditEntry{
			DealID:    e.DealID,
			Action:    domain.AuditActionCreated,
			NewStatus: domain.StatusPending.String(),
			At:        e.At,
		})
	case domain.DealStatusWasChanged:
		return a.log(ctx, domain.DealAuditEntry{
			DealID:         e.DealID,
			Action:         domain.AuditActionStatusChanged,
			PreviousStatus: e.PreviousStatus.String(),
			NewStatus:      e.NewStatus.String(),
			At:             e.At,
		})
	}
	return nil
}

func (a *AuditRecorder) log(ctx context.Context, entry domain.DealAuditEntry) error {
	if err := a.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("record deal audit: %w", err)
	}
	return nil
}
