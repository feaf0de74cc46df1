package recorder_test

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/daily-sales/internal/recorder"
	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
)

var testNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

// countingAppender wraps a store and counts Append calls.
type countingAppender struct {
	store *session.Store
	calls int
}

func (c *countingAppender) Append(rec sale.Record) (session.Session, error) {
	c.calls++
	return c.store.Append(rec)
}

func setup(t *testing.T) (*recorder.Recorder, *countingAppender, *session.MemoryStorage, session.Session) {
	t.Helper()
	storage := session.NewMemoryStorage()
	days := session.NewDaySource(session.NewMockClock(testNow), "", time.UTC)
	store := session.NewStore(storage, days, nil)
	sess := store.Initialize()

	app := &countingAppender{store: store}
	rec := recorder.New(app, recorder.WithNow(func() time.Time { return testNow }))
	return rec, app, storage, sess
}

func TestRegisterSale(t *testing.T) {
	widget := sale.Product{ID: "P1", Name: "Widget", UnitPrice: 1000}

	t.Run("appends exactly one snapshot record", func(t *testing.T) {
		rec, app, storage, sess := setup(t)
		savesBefore := storage.Saves

		next, err := rec.RegisterSale(widget, sale.Cash, sale.CustomerInfo{}, sess)
		require.NoError(t, err)

		assert.Equal(t, 1, app.calls)
		assert.Equal(t, savesBefore+1, storage.Saves)
		require.Len(t, next.Records, 1)

		got := next.Records[0]
		assert.Equal(t, "P1", got.ProductID)
		assert.Equal(t, "Widget", got.ProductName)
		assert.Equal(t, int64(1000), got.Price)
		assert.Equal(t, sale.Cash, got.PaymentMethod)
		assert.Equal(t, sess.Day, got.Date)
		assert.Equal(t, testNow, got.RecordedAt)
	})

	t.Run("later catalog changes do not alter records", func(t *testing.T) {
		rec, _, _, sess := setup(t)
		product := widget

		next, err := rec.RegisterSale(product, sale.Transfer, sale.CustomerInfo{}, sess)
		require.NoError(t, err)

		product.Name = "Renamed"
		product.UnitPrice = 5

		assert.Equal(t, "Widget", next.Records[0].ProductName)
		assert.Equal(t, int64(1000), next.Records[0].Price)
	})

	t.Run("rejects invalid input without appending", func(t *testing.T) {
		cases := []struct {
			name    string
			product sale.Product
			method  sale.PaymentMethod
			errIs   error
		}{
			{name: "unknown method", product: widget, method: "card", errIs: sale.ErrInvalidPaymentMethod},
			{name: "empty product id", product: sale.Product{Name: "x"}, method: sale.Cash, errIs: sale.ErrInvalidProduct},
			{name: "negative price", product: sale.Product{ID: "N", UnitPrice: -10}, method: sale.Cash, errIs: sale.ErrInvalidProduct},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec, app, _, sess := setup(t)

				got, err := rec.RegisterSale(tc.product, tc.method, sale.CustomerInfo{}, sess)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.errIs))
				assert.Zero(t, app.calls)
				assert.Equal(t, sess, got)
			})
		}
	})
}

func TestRegisterWith(t *testing.T) {
	widget := sale.Product{ID: "P1", Name: "Widget", UnitPrice: 1000}

	t.Run("static customer", func(t *testing.T) {
		rec, _, _, sess := setup(t)

		next, err := rec.RegisterWith(widget, sale.Cash, recorder.StaticCustomer{Name: "  Ana "}, sess)
		require.NoError(t, err)

		assert.Equal(t, sale.CustomerInfo{Name: "Ana"}, next.Records[0].Customer)
	})

	t.Run("prompted customer", func(t *testing.T) {
		rec, _, _, sess := setup(t)
		var out strings.Builder
		prompter := recorder.NewPrompter(strings.NewReader("Ana\n300 555 0101\nleave at door\n"), &out)

		next, err := rec.RegisterWith(widget, sale.Transfer, prompter, sess)
		require.NoError(t, err)

		assert.Equal(t, sale.CustomerInfo{Name: "Ana", Phone: "300 555 0101", Note: "leave at door"}, next.Records[0].Customer)
		assert.Contains(t, out.String(), recorder.PromptName)
		assert.Contains(t, out.String(), recorder.PromptNote)
	})

	t.Run("invalid method is rejected before prompting", func(t *testing.T) {
		rec, app, _, sess := setup(t)
		var out strings.Builder
		prompter := recorder.NewPrompter(strings.NewReader("Ana\n"), &out)

		_, err := rec.RegisterWith(widget, "cheque", prompter, sess)

		assert.True(t, errors.Is(err, sale.ErrInvalidPaymentMethod))
		assert.Empty(t, out.String())
		assert.Zero(t, app.calls)
	})
}

func TestPrompter(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  sale.CustomerInfo
	}{
		{name: "all answered", input: "Ana\n555\nnote\n", want: sale.CustomerInfo{Name: "Ana", Phone: "555", Note: "note"}},
		{name: "blank answers", input: "\n\n\n", want: sale.CustomerInfo{}},
		{name: "only name then eof", input: "Ana\n", want: sale.CustomerInfo{Name: "Ana"}},
		{name: "no trailing newline", input: "Ana\n555\nlast", want: sale.CustomerInfo{Name: "Ana", Phone: "555", Note: "last"}},
		{name: "closed input", input: "", want: sale.CustomerInfo{}},
		{name: "windows line endings", input: "Ana\r\n555\r\n\r\n", want: sale.CustomerInfo{Name: "Ana", Phone: "555"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out strings.Builder
			got := recorder.NewPrompter(strings.NewReader(tc.input), &out).Customer()
			assert.Equal(t, tc.want, got)
		})
	}
}
