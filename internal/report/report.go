// =============================================================================
// Daily Sales - Report Generator
// =============================================================================
//
// Builds the text summary of the day that is pasted into a chat or printed.
//
// REPORT LAYOUT:
//   📦 DAILY SALES – 10/19/2026
//
//   💵 CASH:
//   P1 – Widget – $1,000
//   Customer: Ana 300 555 0101
//   Note: gift wrap
//
//   🏦 TRANSFER:
//   P2 – Gadget – $25,500
//
// RULES:
//   - A section only appears when it has at least one sale.
//   - Cash always comes before Transfer, whatever the registration order.
//   - Inside a section, sales keep their registration order.
//   - Every sale is followed by one blank line.
//   - An empty day renders the NoSales sentinel instead.
//
// =============================================================================

package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
)

// =============================================================================
// LABELS
// =============================================================================

// Labels holds every fixed piece of text in the report.
type Labels struct {
	Header   string `yaml:"header"`
	Cash     string `yaml:"cash"`
	Transfer string `yaml:"transfer"`
	Customer string `yaml:"customer"`
	Note     string `yaml:"note"`
	NoSales  string `yaml:"no_sales"`
	Currency string `yaml:"currency"`
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Header:   "📦 DAILY SALES",
		Cash:     "💵 CASH:",
		Transfer: "🏦 TRANSFER:",
		Customer: "Customer:",
		Note:     "Note:",
		NoSales:  "No sales recorded today.",
		Currency: "$",
	}
}

// withDefaults fills every empty label from DefaultLabels.
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.Header == "" {
		l.Header = d.Header
	}
	if l.Cash == "" {
		l.Cash = d.Cash
	}
	if l.Transfer == "" {
		l.Transfer = d.Transfer
	}
	if l.Customer == "" {
		l.Customer = d.Customer
	}
	if l.Note == "" {
		l.Note = d.Note
	}
	if l.NoSales == "" {
		l.NoSales = d.NoSales
	}
	if l.Currency == "" {
		l.Currency = d.Currency
	}
	return l
}

// Section returns the title for a payment method.
func (l Labels) Section(method sale.PaymentMethod) string {
	if method == sale.Transfer {
		return l.Transfer
	}
	return l.Cash
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator renders sessions. It holds no state besides its configuration,
// so rendering the same session twice gives the same bytes.
type Generator struct {
	labels  Labels
	printer *message.Printer
}

// NewGenerator creates a Generator. locale is a BCP 47 tag that decides the
// digit grouping of prices ("en" → 1,000, "es" → 1.000); an empty or unknown
// tag falls back to English.
func NewGenerator(labels Labels, locale string) *Generator {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Generator{
		labels:  labels.withDefaults(),
		printer: message.NewPrinter(tag),
	}
}

// Default returns a Generator with English labels and digit grouping.
func Default() *Generator {
	return NewGenerator(DefaultLabels(), "en")
}

// Labels returns the labels in use.
func (g *Generator) Labels() Labels {
	return g.labels
}

// FormatPrice renders an amount with the currency sign and grouped digits.
func (g *Generator) FormatPrice(amount int64) string {
	return g.labels.Currency + g.printer.Sprintf("%d", amount)
}

// Generate renders the report text for sess.
func (g *Generator) Generate(sess session.Session) string {
	if sess.Empty() {
		return g.labels.NoSales
	}

	var b strings.Builder
	b.WriteString(g.labels.Header + " – " + sess.Day + "\n\n")

	for _, method := range sale.PaymentMethods() {
		records := sess.RecordsFor(method)
		if len(records) == 0 {
			continue
		}

		b.WriteString(g.labels.Section(method) + "\n")
		for _, rec := range records {
			g.writeRecord(&b, rec)
		}
	}

	return b.String()
}

// Line renders the main line of a record: "<id> – <name> – $<price>".
func (g *Generator) Line(rec sale.Record) string {
	return rec.ProductID + " – " + rec.ProductName + " – " + g.FormatPrice(rec.Price)
}

func (g *Generator) writeRecord(b *strings.Builder, rec sale.Record) {
	b.WriteString(g.Line(rec) + "\n")
	if rec.Customer.HasContact() {
		b.WriteString(g.labels.Customer + " " + rec.Customer.Name + " " + rec.Customer.Phone + "\n")
	}
	if rec.Customer.HasNote() {
		b.WriteString(g.labels.Note + " " + rec.Customer.Note + "\n")
	}
	b.WriteString("\n")
}
