package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestViolations(t *testing.T) {
	v := Violations{}
	if !v.Empty() {
		t.Fatal("fresh Violations should be empty")
	}

	Required("name", "  ", v)
	Required("phone", "11-5555", v)
	PositiveAmount("amount", decimal.Zero, v)
	NonNegativeAmount("discount", decimal.NewFromInt(-1), v)
	NonNegativeAmount("total_cost", decimal.Zero, v)
	OneOf("status", "Enviado", []string{"Pendiente", "Entregado"}, v)
	PositiveInt("quantity", 0, v)

	want := map[string]string{
		"name":     "required",
		"amount":   "must_be_positive",
		"discount": "must_not_be_negative",
		"status":   "invalid_value",
		"quantity": "must_be_positive",
	}
	if len(v) != len(want) {
		t.Fatalf("got %d violations, want %d: %v", len(v), len(want), v)
	}
	for field, msg := range want {
		if v[field] != msg {
			t.Errorf("%s: got %q, want %q", field, v[field], msg)
		}
	}
}
