package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	rejectionReasonPrefix    = "Причина отклонения: "
	cancellationReasonPrefix = "Причина отмены: "
)

// Deal is the aggregate root of the deal lifecycle. State changes go through
// the mutation methods below, which either fully succeed (new state plus one
// recorded event) or fully fail with no change at all.
type Deal struct {
	id        DealID
	uuid      string
	adID      AdID
	buyerID   UserID
	sellerID  UserID
	price     Money
	status    DealStatus
	notes     DealNotes
	onChainID string
	createdAt time.Time
	signedAt  *time.Time
	version   int64

	recorded []Event
}

// NewDeal creates a pending deal with a fresh UUID and records DealWasCreated.
// Cross-entity validation (buyer != seller, positive price) is the caller's
// responsibility.
func NewDeal(id DealID, adID AdID, buyerID, sellerID UserID, price Money, notes DealNotes) *Deal {
	now := time.Now().UTC()
	d := &Deal{
		id:        id,
		uuid:      uuid.NewString(),
		adID:      adID,
		buyerID:   buyerID,
		sellerID:  sellerID,
		price:     price,
		status:    StatusPending,
		notes:     notes,
		createdAt: now,
	}
	d.recordThat(DealWasCreated{
		DealID:   id,
		DealUUID: d.uuid,
		AdID:     adID,
		BuyerID:  buyerID,
		SellerID: sellerID,
		Price:    price,
		At:       now,
	})
	return d
}

// ReconstructDeal rebuilds an aggregate from already-validated persisted data
// without recording any events. Only the repository load path uses it.
func ReconstructDeal(
	id DealID,
	adID AdID,
	buyerID, sellerID UserID,
	price Money,
	status DealStatus,
	notes DealNotes,
	onChainID string,
	dealUUID string,
	createdAt time.Time,
	signedAt *time.Time,
	version int64,
) *Deal {
	return &Deal{
		id:        id,
		uuid:      dealUUID,
		adID:      adID,
		buyerID:   buyerID,
		sellerID:  sellerID,
		price:     price,
		status:    status,
		notes:     notes,
		onChainID: onChainID,
		createdAt: createdAt,
		signedAt:  signedAt,
		version:   version,
	}
}

// Accept moves a pending deal to accepted.
func (d *Deal) Accept() error {
	return d.changeStatus(StatusAccepted)
}

// Reject declines a pending deal, optionally noting the reason.
func (d *Deal) Reject(reason string) error {
	if err := d.validateTransition(StatusRejected); err != nil {
		return err
	}
	if reason != "" {
		if err := d.AddNote(rejectionReasonPrefix + reason); err != nil {
			return err
		}
	}
	return d.changeStatus(StatusRejected)
}

// Complete finishes an accepted deal and stamps the signing time.
func (d *Deal) Complete() error {
	if err := d.changeStatus(StatusCompleted); err != nil {
		return err
	}
	now := time.Now().UTC()
	d.signedAt = &now
	return nil
}

// Cancel aborts an active deal, noting the reason. Requiring a non-empty
// reason is enforced by the use case, not here.
func (d *Deal) Cancel(reason string) error {
	if err := d.validateTransition(StatusCanceled); err != nil {
		return err
	}
	if err := d.AddNote(cancellationReasonPrefix + reason); err != nil {
		return err
	}
	return d.changeStatus(StatusCanceled)
}

// AddNote appends free-form text to the deal notes, creating them if absent.
func (d *Deal) AddNote(text string) error {
	appended, err := d.notes.Append(text)
	if err != nil {
		return err
	}
	d.notes = appended
	return nil
}

// MarkAsOnChain records the external chain reference. Once set it never
// changes; later calls are a no-op.
func (d *Deal) MarkAsOnChain(onChainID string) {
	if d.onChainID != "" {
		return
	}
	d.onChainID = onChainID
}

func (d *Deal) CanBeModifiedBy(userID UserID) bool {
	return d.buyerID == userID || d.sellerID == userID
}

func (d *Deal) IsBuyer(userID UserID) bool { return d.buyerID == userID }

func (d *Deal) IsSeller(userID UserID) bool { return d.sellerID == userID }

func (d *Deal) IsOnChain() bool { return d.onChainID != "" }

func (d *Deal) ID() DealID { return d.id }

func (d *Deal) UUID() string { return d.uuid }

func (d *Deal) AdID() AdID { return d.adID }

func (d *Deal) BuyerID() UserID { return d.buyerID }

func (d *Deal) SellerID() UserID { return d.sellerID }

func (d *Deal) Price() Money { return d.price }

func (d *Deal) Status() DealStatus { return d.status }

func (d *Deal) Notes() DealNotes { return d.notes }

func (d *Deal) OnChainID() string { return d.onChainID }

func (d *Deal) CreatedAt() time.Time { return d.createdAt }

// SignedAt returns the completion timestamp, or nil while the deal is not
// completed.
func (d *Deal) SignedAt() *time.Time {
	if d.signedAt == nil {
		return nil
	}
	t := *d.signedAt
	return &t
}

// Version is the optimistic-concurrency token maintained by the repository.
// Zero means the aggregate has never been persisted.
func (d *Deal) Version() int64 { return d.version }

// RecordedEvents returns the events accumulated since the last clear.
func (d *Deal) RecordedEvents() []Event {
	out := make([]Event, len(d.recorded))
	copy(out, d.recorded)
	return out
}

func (d *Deal) ClearRecordedEvents() {
	d.recorded = nil
}

func (d *Deal) validateTransition(next DealStatus) error {
	if d.status == next {
		return fmt.Errorf("deal %s in status %q: %w", d.id, d.status, ErrAlreadyInStatus)
	}
	if !d.status.CanTransitionTo(next) {
		return fmt.Errorf("deal %s: %w: %q -> %q", d.id, ErrInvalidTransition, d.status, next)
	}
	return nil
}

func (d *Deal) changeStatus(next DealStatus) error {
	if err := d.validateTransition(next); err != nil {
		return err
	}
	previous := d.status
	d.status = next
	d.recordThat(DealStatusWasChanged{
		DealID:         d.id,
		PreviousStatus: previous,
		NewStatus:      next,
		At:             time.Now().UTC(),
	})
	return nil
}

func (d *Deal) recordThat(event Event) {
	d.recorded = append(d.recorded, event)
}
