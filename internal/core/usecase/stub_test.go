package usecase

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

// stubDealRepo implements ports.DealRepository with overridable hooks.
type stubDealRepo struct {
	saveFn         func(ctx context.Context, deal *domain.Deal) error
	findByIDFn     func(ctx context.Context, id domain.DealID) (*domain.Deal, error)
	findByUserFn   func(ctx context.Context, userID domain.UserID) ([]*domain.Deal, error)
	findByBuyerFn  func(ctx context.Context, buyerID domain.UserID) ([]*domain.Deal, error)
	findBySellerFn func(ctx context.Context, sellerID domain.UserID) ([]*domain.Deal, error)
	findActiveFn   func(ctx context.Context) ([]*domain.Deal, error)
	nextIDFn       func(ctx context.Context) (domain.DealID, error)
	deleteFn       func(ctx context.Context, id domain.DealID) error
	existsFn       func(ctx context.Context, id domain.DealID) (bool, error)
}

func (s *stubDealRepo) Save(ctx context.Context, deal *domain.Deal) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, deal)
	}
	return nil
}

func (s *stubDealRepo) FindByID(ctx context.Context, id domain.DealID) (*domain.Deal, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, domain.ErrDealNotFound
}

func (s *stubDealRepo) FindByUser(ctx context.Context, userID domain.UserID) ([]*domain.Deal, error) {
	if s.findByUserFn != nil {
		return s.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubDealRepo) FindByBuyer(ctx context.Context, buyerID domain.UserID) ([]*domain.Deal, error) {
	if s.findByBuyerFn != nil {
		return s.findByBuyerFn(ctx, buyerID)
	}
	return nil, nil
}

func (s *stubDealRepo) FindBySeller(ctx context.Context, sellerID domain.UserID) ([]*domain.Deal, error) {
	if s.findBySellerFn != nil {
		return s.findBySellerFn(ctx, sellerID)
	}
	return nil, nil
}

func (s *stubDealRepo) FindActive(ctx context.Context) ([]*domain.Deal, error) {
	if s.findActiveFn != nil {
		return s.findActiveFn(ctx)
	}
	return nil, nil
}

func (s *stubDealRepo) NextID(ctx context.Context) (domain.DealID, error) {
	if s.nextIDFn != nil {
		return s.nextIDFn(ctx)
	}
	return 1, nil
}

func (s *stubDealRepo) Delete(ctx context.Context, id domain.DealID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubDealRepo) Exists(ctx context.Context, id domain.DealID) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}

// recordingListener collects every event it receives.
type recordingListener struct {
	events []domain.Event
	err    error
}

func (l *recordingListener) Handle(_ context.Context, event domain.Event) error {
	l.events = append(l.events, event)
	return l.err
}

// stubAttacher records attach calls and can be made to fail.
type stubAttacher struct {
	dealID    domain.DealID
	documents []string
	calls     int
	err       error
}

func (a *stubAttacher) Attach(_ context.Context, dealID domain.DealID, documents []string) error {
	a.calls++
	a.dealID = dealID
	a.documents = documents
	return a.err
}
