package usecase

import (
	"context"
	"fmt"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// DealAuditService lists the audit trail of a single deal.
type DealAuditService struct {
	repo ports.DealAuditRepository
}

func NewDealAuditService(repo ports.DealAuditRepository) *DealAuditService {
	return &DealAuditService{repo: repo}
}

func (s *DealAuditService) List(ctx context.Context, dealID int64, afterID int64, limit int) ([]domain.DealAuditEntry, error) {
	id, err := domain.NewDealID(dealID)
	if err != nil {
		return nil, fmt.Errorf("deal id: %w", err)
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.repo.List(ctx, domain.DealAuditFilter{DealID: id, AfterID: afterID, Limit: limit})
}
