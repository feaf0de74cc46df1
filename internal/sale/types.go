// =============================================================================
// Daily Sales - Shared Types
// =============================================================================
//
// This package contains the sale data model shared by the catalog, the session
// store, the recorder and the report generator. Keeping it in one leaf package
// avoids import cycles between those modules.
//
// OWNERSHIP:
//   - Product      : owned by the catalog, immutable.
//   - CustomerInfo : embedded value inside a Record.
//   - Record       : created by the recorder, owned by the session store,
//                    never mutated after creation.
//
// =============================================================================

package sale

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidPaymentMethod is returned for a payment method outside the enum.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidProduct is returned for a product with an empty identifier or
	// a negative price.
	ErrInvalidProduct = errors.New("invalid product")
)

// =============================================================================
// PAYMENT METHOD
// =============================================================================

// PaymentMethod is how a sale was paid. The set is closed.
type PaymentMethod string

const (
	Cash     PaymentMethod = "cash"
	Transfer PaymentMethod = "transfer"
)

// PaymentMethods returns every payment method in report order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, Transfer}
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m == Cash || m == Transfer
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod converts user input into a PaymentMethod.
// Matching is case-insensitive and accepts the shop's Spanish names.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "efectivo":
		return Cash, nil
	case "transfer", "transferencia":
		return Transfer, nil
	default:
		return "", errors.Wrapf(ErrInvalidPaymentMethod, "%q", s)
	}
}

// =============================================================================
// PRODUCT
// =============================================================================

// Product is a catalog entry.
type Product struct {
	// ID is the stable display code, unique within the catalog.
	ID string `yaml:"id"`

	// Name is the display label.
	Name string `yaml:"name"`

	// UnitPrice is the price in whole currency units.
	UnitPrice int64 `yaml:"price"`
}

// Validate checks the product invariants.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.Wrap(ErrInvalidProduct, "empty identifier")
	}
	if p.UnitPrice < 0 {
		return errors.Wrapf(ErrInvalidProduct, "%s: negative price %d", p.ID, p.UnitPrice)
	}
	return nil
}

// =============================================================================
// CUSTOMER
// =============================================================================

// CustomerInfo is what the buyer chose to tell. Every field may be empty.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// HasContact reports whether a name or a phone was given.
func (c CustomerInfo) HasContact() bool {
	return c.Name != "" || c.Phone != ""
}

// HasNote reports whether a note was given.
func (c CustomerInfo) HasNote() bool {
	return c.Note != ""
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one unit sold. Product data is copied by value so later catalog
// changes never alter recorded sales.
type Record struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"productId"`
	ProductName   string        `json:"productName"`
	Price         int64         `json:"price"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Customer      CustomerInfo  `json:"customer"`
	Date          string        `json:"date"`
	RecordedAt    time.Time     `json:"recordedAt"`
}

// NewRecord snapshots product and buyer data into a Record for the given day.
func NewRecord(product Product, method PaymentMethod, customer CustomerInfo, day string, now time.Time) (Record, error) {
	if err := product.Validate(); err != nil {
		return Record{}, err
	}
	if !method.Valid() {
		return Record{}, errors.Wrapf(ErrInvalidPaymentMethod, "%q", string(method))
	}

	return Record{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Price:         product.UnitPrice,
		PaymentMethod: method,
		Customer:      customer,
		Date:          day,
		RecordedAt:    now,
	}, nil
}
