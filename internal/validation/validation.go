package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveAmount(field string, amount decimal.Decimal, v Violations) {
	if !amount.IsPositive() {
		v[field] = "must_be_positive"
	}
}

func NonNegativeAmount(field string, amount decimal.Decimal, v Violations) {
	if amount.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

func PositiveInt(field string, n int, v Violations) {
	if n <= 0 {
		v[field] = "must_be_positive"
	}
}
