package domain

import "time"

// Event is a record of something that already happened to a deal. Events are
// accumulated on the aggregate during mutation and drained by the use case
// after a successful save.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

type DealWasCreated struct {
	DealID   DealID
	DealUUID string
	AdID     AdID
	BuyerID  UserID
	SellerID UserID
	Price    Money
	At       time.Time
}

func (e DealWasCreated) EventName() string { return "deal.created" }

func (e DealWasCreated) OccurredAt() time.Time { return e.At }

type DealStatusWasChanged struct {
	DealID         DealID
	PreviousStatus DealStatus
	NewStatus      DealStatus
	At             time.Time
}

func (e DealStatusWasChanged) EventName() string { return "deal.status_changed" }

func (e DealStatusWasChanged) OccurredAt() time.Time { return e.At }
