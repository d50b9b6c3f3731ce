package ports

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

type DealAuditRepository interface {
	Log(ctx context.Context, entry domain.DealAuditEntry) error
	List(ctx context.Context, filter domain.DealAuditFilter) ([]domain.DealAuditEntry, error)
}
