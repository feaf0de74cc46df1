package report

import (
	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
)

// MethodTotal is the count and amount of the sales paid one way.
type MethodTotal struct {
	Method sale.PaymentMethod
	Count  int
	Amount int64
}

// Summary aggregates a session per payment method.
type Summary struct {
	Day     string
	Methods []MethodTotal // in report order, always one entry per method
	Count   int
	Amount  int64
}

// Summarize totals sess per payment method.
func Summarize(sess session.Session) Summary {
	sum := Summary{Day: sess.Day}
	for _, method := range sale.PaymentMethods() {
		mt := MethodTotal{Method: method}
		for _, rec := range sess.RecordsFor(method) {
			mt.Count++
			mt.Amount += rec.Price
		}
		sum.Methods = append(sum.Methods, mt)
		sum.Count += mt.Count
		sum.Amount += mt.Amount
	}
	return sum
}

// For returns the totals of one method.
func (s Summary) For(method sale.PaymentMethod) MethodTotal {
	for _, mt := range s.Methods {
		if mt.Method == method {
			return mt
		}
	}
	return MethodTotal{Method: method}
}
