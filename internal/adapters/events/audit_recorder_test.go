package events

import (
	"context"
	"testing"
	"time"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type memAuditRepo struct {
	entries []domain.DealAuditEntry
}

func (m *memAuditRepo) Log(_ context.Context, entry domain.DealAuditEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAuditRepo) List(context.Context, domain.DealAuditFilter) ([]domain.DealAuditEntry, error) {
	return m.entries, nil
}

func TestAuditRecorderWritesBothEventKinds(t *testing.T) {
	repo := &memAuditRepo{}
	recorder := NewAuditRecorder(repo)
	ctx := context.Background()

	created := domain.DealWasCreated{DealID: 1, DealUUID: "uuid-1", At: time.Now().UTC()}
	if err := recorder.Handle(ctx, created); err != nil {
		t.Fatalf("handle created: %v", err)
	}

	changed := domain.DealStatusWasChanged{
		DealID:         1,
		PreviousStatus: domain.StatusPending,
		NewStatus:      domain.StatusAccepted,
		At:             time.Now().UTC(),
	}
	if err := recorder.Handle(ctx, changed); err != nil {
		t.Fatalf("handle changed: %v", err)
	}

	if len(repo.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.entries))
	}
	if repo.entries[0].Action != domain.AuditActionCreated || repo.entries[0].NewStatus != "pending" {
		t.Fatalf("unexpected created entry: %+v", repo.entries[0])
	}
	if repo.entries[1].Action != domain.AuditActionStatusChanged ||
		repo.entries[1].PreviousStatus != "pending" ||
		repo.entries[1].NewStatus != "accepted" {
		t.Fatalf("unexpected changed entry: %+v", repo.entries[1])
	}
}
