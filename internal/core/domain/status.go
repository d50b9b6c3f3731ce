package domain

import "fmt"

// DealStatus is a closed enumeration governing the deal lifecycle.
type DealStatus string

const (
	StatusPending   DealStatus = "pending"
	StatusAccepted  DealStatus = "accepted"
	StatusRejected  DealStatus = "rejected"
	StatusCompleted DealStatus = "completed"
	StatusCanceled  DealStatus = "canceled"
)

var transitions = map[DealStatus][]DealStatus{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCanceled},
	StatusAccepted: {StatusCompleted, StatusCanceled},
}

// ParseDealStatus maps a string code to its status, rejecting unknown codes.
func ParseDealStatus(code string) (DealStatus, error) {
	switch DealStatus(code) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCanceled:
		return DealStatus(code), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, code)
}

func (s DealStatus) String() string { return string(s) }

// IsFinal reports whether no further transition is permitted from s.
func (s DealStatus) IsFinal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsActive reports whether the deal is still in progress.
func (s DealStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

// CanTransitionTo reports whether the move from s to next is legal.
// Self-transitions are never legal; final statuses allow nothing.
func (s DealStatus) CanTransitionTo(next DealStatus) bool {
	if s.IsFinal() {
		return false
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AvailableTransitions lists the statuses reachable from s.
func (s DealStatus) AvailableTransitions() []DealStatus {
	allowed := transitions[s]
	out := make([]DealStatus, len(allowed))
	copy(out, allowed)
	return out
}
