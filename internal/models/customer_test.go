package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCustomerType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"walk-in-cash", CustomerTypeWalkInCash},
		{"walk-in-online", CustomerTypeWalkInOnline},
		{"credit", CustomerTypeCredit},
		{"walk-in", CustomerTypeWalkInCash},    // legacy
		{"delivery", CustomerTypeWalkInOnline}, // legacy
		{"", CustomerTypeWalkInCash},
		{"garbage", CustomerTypeWalkInCash},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCustomerType(tc.in), "input %q", tc.in)
	}
}

func TestSaleBalanceImpact(t *testing.T) {
	sale := &Sale{TotalAmount: 7600, AmountPaid: 5000}
	assert.Equal(t, 2600.0, sale.BalanceImpact())

	paid := &Sale{TotalAmount: 4500, AmountPaid: 4500}
	assert.Equal(t, 0.0, paid.BalanceImpact())
}
