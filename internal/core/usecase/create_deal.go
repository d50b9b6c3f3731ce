package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// CreateDealCommand carries the intent to open a deal on an ad. Price is in
// major currency units as received from the caller.
type CreateDealCommand struct {
	AdID      int64
	BuyerID   int64
	SellerID  int64
	Price     decimal.Decimal
	Notes     string
	Documents []string
}

// CreateDealService validates the command, builds the aggregate, persists it
// and dispatches the recorded events.
type CreateDealService struct {
	repo       ports.DealRepository
	dispatcher *EventDispatcher
	attacher   ports.DocumentAttacher
	logger     *zap.Logger
}

func NewCreateDealService(repo ports.DealRepository, dispatcher *EventDispatcher, attacher ports.DocumentAttacher, logger *zap.Logger) *CreateDealService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateDealService{repo: repo, dispatcher: dispatcher, attacher: attacher, logger: logger}
}

func (s *CreateDealService) Execute(ctx context.Context, cmd CreateDealCommand) (*domain.Deal, error) {
	if cmd.BuyerID == cmd.SellerID {
		return nil, domain.ErrSameParty
	}
	if !cmd.Price.IsPositive() {
		return nil, domain.ErrNonPositivePrice
	}

	adID, err := domain.NewAdID(cmd.AdID)
	if err != nil {
		return nil, fmt.Errorf("ad id: %w", err)
	}
	buyerID, err := domain.NewUserID(cmd.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("buyer id: %w", err)
	}
	sellerID, err := domain.NewUserID(cmd.SellerID)
	if err != nil {
		return nil, fmt.Errorf("seller id: %w", err)
	}
	price, err := domain.MoneyFromMajor(cmd.Price)
	if err != nil {
		return nil, err
	}
	notes, err := domain.NewDealNotes(cmd.Notes)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next deal id: %w", err)
	}

	deal := domain.NewDeal(id, adID, buyerID, sellerID, price, notes)

	if err := s.repo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("save deal: %w", err)
	}

	// The media collaborator runs after the deal is committed; its failure
	// must not undo the creation.
	if s.attacher != nil && len(cmd.Documents) > 0 {
		if err := s.attacher.Attach(ctx, deal.ID(), cmd.Documents); err != nil {
			s.logger.Warn("attach deal documents",
				zap.Int64("deal_id", deal.ID().Int64()),
				zap.Error(err))
		}
	}

	s.dispatcher.Dispatch(ctx, deal.RecordedEvents())
	deal.ClearRecordedEvents()

	return deal, nil
}
