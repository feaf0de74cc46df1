// =============================================================================
// Daily Sales - Sale Recorder
// =============================================================================
//
// The recorder turns "this product was sold, paid this way, to this buyer"
// into exactly one appended session record.
//
// RULES:
//   - One call records one unit; there is no quantity.
//   - Empty customer fields are valid.
//   - A payment method outside the enum or a malformed product is rejected
//     before anything is appended.
//
// =============================================================================

package recorder

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
	"github.com/ginjaninja78/daily-sales/pkg/logger"
)

// Appender is the part of the session store the recorder needs.
type Appender interface {
	Append(rec sale.Record) (session.Session, error)
}

// Recorder registers sales into a session store.
type Recorder struct {
	store Appender
	now   func() time.Time
	log   *logger.Logger
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNow overrides the timestamp source of new records.
func WithNow(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Recorder) { r.log = log.With("recorder") }
}

// New creates a Recorder writing to store.
func New(store Appender, opts ...Option) *Recorder {
	r := &Recorder{
		store: store,
		now:   time.Now,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterSale snapshots product, method and customer into a record for
// sess.Day and appends it. The returned session is the store's new state.
func (r *Recorder) RegisterSale(product sale.Product, method sale.PaymentMethod, customer sale.CustomerInfo, sess session.Session) (session.Session, error) {
	rec, err := sale.NewRecord(product, method, customer, sess.Day, r.now())
	if err != nil {
		return sess, errors.Wrap(err, "register sale")
	}

	next, err := r.store.Append(rec)
	if err != nil {
		return sess, errors.Wrap(err, "register sale")
	}

	r.log.Info().
		Str("record", rec.ID).
		Str("product", rec.ProductID).
		Int64("price", rec.Price).
		Str("payment", rec.PaymentMethod.String()).
		Int("count", next.Len()).
		Msg("sale registered")

	return next, nil
}

// RegisterWith asks source for the customer fields and then registers the
// sale. The source is always consulted before anything is recorded.
func (r *Recorder) RegisterWith(product sale.Product, method sale.PaymentMethod, source CustomerSource, sess session.Session) (session.Session, error) {
	if !method.Valid() {
		return sess, errors.Wrapf(sale.ErrInvalidPaymentMethod, "register sale: %q", string(method))
	}
	if err := product.Validate(); err != nil {
		return sess, errors.Wrap(err, "register sale")
	}
	return r.RegisterSale(product, method, source.Customer(), sess)
}
