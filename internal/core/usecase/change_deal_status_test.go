package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

func storedDeal(t *testing.T) *domain.Deal {
	t.Helper()
	price, err := domain.MoneyFromMajor(decimal.RequireFromString("1000.50"))
	if err != nil {
		t.Fatalf("money: %v", err)
	}
	deal := domain.NewDeal(1, 100, 10, 20, price, domain.DealNotes{})
	deal.ClearRecordedEvents()
	return deal
}

func repoWith(deal *domain.Deal) *stubDealRepo {
	return &stubDealRepo{
		findByIDFn: func(_ context.Context, id domain.DealID) (*domain.Deal, error) {
			if id != deal.ID() {
				return nil, domain.ErrDealNotFound
			}
			return deal, nil
		},
	}
}

func TestChangeStatusAcceptBySeller(t *testing.T) {
	deal := storedDeal(t)
	repo := repoWith(deal)
	var saved bool
	repo.saveFn = func(context.Context, *domain.Deal) error {
		saved = true
		return nil
	}
	listener := &recordingListener{}
	svc := NewChangeDealStatusService(repo, NewEventDispatcher(nil, listener))

	updated, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "accepted",
		ActingUserID: 20,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if updated.Status() != domain.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status())
	}
	if !saved {
		t.Fatal("deal not saved")
	}
	if len(listener.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(listener.events))
	}
	changed, ok := listener.events[0].(domain.DealStatusWasChanged)
	if !ok {
		t.Fatalf("expected DealStatusWasChanged, got %T", listener.events[0])
	}
	if changed.PreviousStatus != domain.StatusPending || changed.NewStatus != domain.StatusAccepted {
		t.Fatalf("unexpected transition %s -> %s", changed.PreviousStatus, changed.NewStatus)
	}
}

func TestChangeStatusNotFound(t *testing.T) {
	svc := NewChangeDealStatusService(&stubDealRepo{}, NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       99,
		NewStatus:    "accepted",
		ActingUserID: 20,
	})
	if !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChangeStatusRejectsStranger(t *testing.T) {
	deal := storedDeal(t)
	svc := NewChangeDealStatusService(repoWith(deal), NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "accepted",
		ActingUserID: 30,
	})
	if !errors.Is(err, domain.ErrNotDealParty) {
		t.Fatalf("expected not-a-party error, got %v", err)
	}
	if deal.Status() != domain.StatusPending {
		t.Fatalf("status mutated to %s", deal.Status())
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	deal := storedDeal(t)
	svc := NewChangeDealStatusService(repoWith(deal), NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "archived",
		ActingUserID: 10,
	})
	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected unknown status, got %v", err)
	}
}

func TestChangeStatusPendingRevertRefused(t *testing.T) {
	deal := storedDeal(t)
	if err := deal.Accept(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	svc := NewChangeDealStatusService(repoWith(deal), NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "pending",
		ActingUserID: 10,
	})
	if !errors.Is(err, domain.ErrCannotRevertToPending) {
		t.Fatalf("expected revert refusal, got %v", err)
	}
}

func TestChangeStatusCancelRequiresReason(t *testing.T) {
	deal := storedDeal(t)
	svc := NewChangeDealStatusService(repoWith(deal), NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "canceled",
		ActingUserID: 10,
		Reason:       "   ",
	})
	if !errors.Is(err, domain.ErrReasonRequired) {
		t.Fatalf("expected reason-required error, got %v", err)
	}
	if deal.Status() != domain.StatusPending {
		t.Fatalf("status mutated to %s", deal.Status())
	}
}

func TestChangeStatusCancelAppendsReason(t *testing.T) {
	deal := storedDeal(t)
	svc := NewChangeDealStatusService(repoWith(deal), NewEventDispatcher(nil))

	updated, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "canceled",
		ActingUserID: 10,
		Reason:       "changed my mind",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if updated.Status() != domain.StatusCanceled {
		t.Fatalf("expected canceled, got %s", updated.Status())
	}
	if !strings.Contains(updated.Notes().String(), "Причина отмены: changed my mind") {
		t.Fatalf("notes missing cancellation reason: %q", updated.Notes().String())
	}
}

func TestChangeStatusInvalidTransitionPropagates(t *testing.T) {
	deal := storedDeal(t)
	repo := repoWith(deal)
	var saved bool
	repo.saveFn = func(context.Context, *domain.Deal) error {
		saved = true
		return nil
	}
	svc := NewChangeDealStatusService(repo, NewEventDispatcher(nil))

	_, err := svc.Execute(context.Background(), ChangeDealStatusCommand{
		DealID:       1,
		NewStatus:    "completed",
		ActingUserID: 10,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if saved {
		t.Fatal("failed transition saved the deal")
	}
}
