package usecase

import (
	"context"
	"fmt"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// DealQueryService serves read-only listings of a user's deals. No mutation,
// no events.
type DealQueryService struct {
	repo ports.DealRepository
}

func NewDealQueryService(repo ports.DealRepository) *DealQueryService {
	return &DealQueryService{repo: repo}
}

// ForUser returns every deal where the user is buyer or seller.
func (s *DealQueryService) ForUser(ctx context.Context, userID int64) ([]*domain.Deal, error) {
	id, err := domain.NewUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return s.repo.FindByUser(ctx, id)
}

func (s *DealQueryService) ForBuyer(ctx context.Context, userID int64) ([]*domain.Deal, error) {
	id, err := domain.NewUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return s.repo.FindByBuyer(ctx, id)
}

func (s *DealQueryService) ForSeller(ctx context.Context, userID int64) ([]*domain.Deal, error) {
	id, err := domain.NewUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return s.repo.FindBySeller(ctx, id)
}

// ActiveOnly post-filters the user's deals down to those still in progress.
func (s *DealQueryService) ActiveOnly(ctx context.Context, userID int64) ([]*domain.Deal, error) {
	deals, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := make([]*domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if deal.Status().IsActive() {
			active = append(active, deal)
		}
	}
	return active, nil
}

// OnChainOnly post-filters down to deals already recorded on chain.
func (s *DealQueryService) OnChainOnly(ctx context.Context, userID int64) ([]*domain.Deal, error) {
	deals, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	onChain := make([]*domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if deal.IsOnChain() {
			onChain = append(onChain, deal)
		}
	}
	return onChain, nil
}

// FindByID loads a single deal for a party of the deal.
func (s *DealQueryService) FindByID(ctx context.Context, dealID, actingUserID int64) (*domain.Deal, error) {
	id, err := domain.NewDealID(dealID)
	if err != nil {
		return nil, fmt.Errorf("deal id: %w", err)
	}
	userID, err := domain.NewUserID(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deal.CanBeModifiedBy(userID) {
		return nil, domain.ErrNotDealParty
	}
	return deal, nil
}
