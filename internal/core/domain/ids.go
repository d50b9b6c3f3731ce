package domain

import "strconv"

// Typed identifiers prevent a deal id from being passed where an ad or user
// id is expected. All identifiers are positive integers assigned elsewhere.

type DealID int64

func NewDealID(v int64) (DealID, error) {
	if v <= 0 {
		return 0, ErrInvalidID
	}
	return DealID(v), nil
}

func (id DealID) Int64() int64 { return int64(id) }

func (id DealID) String() string { return strconv.FormatInt(int64(id), 10) }

type AdID int64

func NewAdID(v int64) (AdID, error) {
	if v <= 0 {
		return 0, ErrInvalidID
	}
	return AdID(v), nil
}

func (id AdID) Int64() int64 { return int64(id) }

type UserID int64

func NewUserID(v int64) (UserID, error) {
	if v <= 0 {
		return 0, ErrInvalidID
	}
	return UserID(v), nil
}

func (id UserID) Int64() int64 { return int64(id) }
