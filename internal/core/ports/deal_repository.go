package ports

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

// DealRepository is the persistence contract for the Deal aggregate. Save
// upserts by id and must return domain.ErrStaleDeal when an update loses an
// optimistic-concurrency race.
type DealRepository interface {
	Save(ctx context.Context, deal *domain.Deal) error
	FindByID(ctx context.Context, id domain.DealID) (*domain.Deal, error)
	FindByUser(ctx context.Context, userID domain.UserID) ([]*domain.Deal, error)
	FindByBuyer(ctx context.Context, buyerID domain.UserID) ([]*domain.Deal, error)
	FindBySeller(ctx context.Context, sellerID domain.UserID) ([]*domain.Deal, error)
	FindActive(ctx context.Context) ([]*domain.Deal, error)
	NextID(ctx context.Context) (domain.DealID, error)
	Delete(ctx context.Context, id domain.DealID) error
	Exists(ctx context.Context, id domain.DealID) (bool, error)
}
