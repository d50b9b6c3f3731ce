package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency this marketplace trades in.
const DefaultCurrency = "RUB"

var minorPerMajor = decimal.NewFromInt(100)

// Money holds an amount as an integer count of minor currency units
// (kopecks). All arithmetic and comparisons run on the integer value;
// decimal major units appear only at the boundary.
type Money struct {
	minor    int64
	currency string
}

// MoneyFromMajor converts a decimal major-unit amount to Money, rounding to
// the nearest minor unit.
func MoneyFromMajor(major decimal.Decimal) (Money, error) {
	if major.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	minor := major.Mul(minorPerMajor).Round(0).IntPart()
	return Money{minor: minor, currency: DefaultCurrency}, nil
}

func MoneyFromMinor(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor, currency: DefaultCurrency}, nil
}

func (m Money) Minor() int64 { return m.minor }

func (m Money) Major() decimal.Decimal { return decimal.New(m.minor, -2) }

func (m Money) Currency() string { return m.currency }

func (m Money) IsPositive() bool { return m.minor > 0 }

func (m Money) Equal(other Money) bool {
	return m.minor == other.minor && m.currency == other.currency
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.minor > other.minor, nil
}

func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.minor < other.minor, nil
}

func (m Money) String() string {
	return m.Major().StringFixed(2) + " " + m.currency
}
