package sale_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/daily-sales/internal/sale"
)

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		in    string
		want  sale.PaymentMethod
		errIs error
	}{
		{in: "cash", want: sale.Cash},
		{in: " CASH ", want: sale.Cash},
		{in: "Efectivo", want: sale.Cash},
		{in: "transfer", want: sale.Transfer},
		{in: "transferencia", want: sale.Transfer},
		{in: "card", errIs: sale.ErrInvalidPaymentMethod},
		{in: "", errIs: sale.ErrInvalidPaymentMethod},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := sale.ParsePaymentMethod(tc.in)
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.errIs))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	product := sale.Product{ID: "P1", Name: "Widget", UnitPrice: 1000}

	t.Run("snapshots product and customer", func(t *testing.T) {
		customer := sale.CustomerInfo{Name: "Ana"}

		rec, err := sale.NewRecord(product, sale.Cash, customer, "10/19/2026", now)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "P1", rec.ProductID)
		assert.Equal(t, "Widget", rec.ProductName)
		assert.Equal(t, int64(1000), rec.Price)
		assert.Equal(t, sale.Cash, rec.PaymentMethod)
		assert.Equal(t, customer, rec.Customer)
		assert.Equal(t, "10/19/2026", rec.Date)
		assert.Equal(t, now, rec.RecordedAt)
	})

	t.Run("zero price is accepted", func(t *testing.T) {
		_, err := sale.NewRecord(sale.Product{ID: "FREE", Name: "Gift"}, sale.Transfer, sale.CustomerInfo{}, "d", now)
		require.NoError(t, err)
	})

	t.Run("rejects", func(t *testing.T) {
		cases := []struct {
			name    string
			product sale.Product
			method  sale.PaymentMethod
			errIs   error
		}{
			{name: "unknown method", product: product, method: "card", errIs: sale.ErrInvalidPaymentMethod},
			{name: "empty method", product: product, method: "", errIs: sale.ErrInvalidPaymentMethod},
			{name: "empty id", product: sale.Product{Name: "x", UnitPrice: 1}, method: sale.Cash, errIs: sale.ErrInvalidProduct},
			{name: "negative price", product: sale.Product{ID: "N", UnitPrice: -1}, method: sale.Cash, errIs: sale.ErrInvalidProduct},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := sale.NewRecord(tc.product, tc.method, sale.CustomerInfo{}, "d", now)
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.errIs))
			})
		}
	})
}

func TestCustomerInfo(t *testing.T) {
	assert.False(t, sale.CustomerInfo{}.HasContact())
	assert.True(t, sale.CustomerInfo{Name: "Ana"}.HasContact())
	assert.True(t, sale.CustomerInfo{Phone: "555"}.HasContact())
	assert.False(t, sale.CustomerInfo{Note: "gift"}.HasContact())
	assert.True(t, sale.CustomerInfo{Note: "gift"}.HasNote())
}
