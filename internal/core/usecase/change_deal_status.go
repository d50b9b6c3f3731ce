package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// ChangeDealStatusCommand carries a status-change request. ActingUserID is
// always explicit; the use case never derives the caller from ambient state.
type ChangeDealStatusCommand struct {
	DealID       int64
	NewStatus    string
	ActingUserID int64
	Reason       string
}

// ChangeDealStatusService loads the deal, authorizes the acting user and
// routes the request to the matching domain operation.
type ChangeDealStatusService struct {
	repo       ports.DealRepository
	dispatcher *EventDispatcher
}

func NewChangeDealStatusService(repo ports.DealRepository, dispatcher *EventDispatcher) *ChangeDealStatusService {
	return &ChangeDealStatusService{repo: repo, dispatcher: dispatcher}
}

func (s *ChangeDealStatusService) Execute(ctx context.Context, cmd ChangeDealStatusCommand) (*domain.Deal, error) {
	dealID, err := domain.NewDealID(cmd.DealID)
	if err != nil {
		return nil, fmt.Errorf("deal id: %w", err)
	}
	userID, err := domain.NewUserID(cmd.ActingUserID)
	if err != nil {
		return nil, fmt.Errorf("acting user id: %w", err)
	}

	deal, err := s.repo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.CanBeModifiedBy(userID) {
		return nil, domain.ErrNotDealParty
	}

	status, err := domain.ParseDealStatus(cmd.NewStatus)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.StatusAccepted:
		err = deal.Accept()
	case domain.StatusRejected:
		err = deal.Reject(cmd.Reason)
	case domain.StatusCompleted:
		err = deal.Complete()
	case domain.StatusCanceled:
		if strings.TrimSpace(cmd.Reason) == "" {
			return nil, domain.ErrReasonRequired
		}
		err = deal.Cancel(cmd.Reason)
	case domain.StatusPending:
		return nil, domain.ErrCannotRevertToPending
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("save deal: %w", err)
	}

	s.dispatcher.Dispatch(ctx, deal.RecordedEvents())
	deal.ClearRecordedEvents()

	return deal, nil
}
