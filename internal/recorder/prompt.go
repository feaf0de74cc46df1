package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/daily-sales/internal/sale"
)

// CustomerSource supplies the buyer fields for a sale. Implementations never
// fail: anything missing is an empty string.
type CustomerSource interface {
	Customer() sale.CustomerInfo
}

// StaticCustomer is a CustomerSource holding values supplied up front, e.g.
// from command-line flags.
type StaticCustomer sale.CustomerInfo

// Customer implements CustomerSource.
func (s StaticCustomer) Customer() sale.CustomerInfo {
	return sale.CustomerInfo{
		Name:  strings.TrimSpace(s.Name),
		Phone: strings.TrimSpace(s.Phone),
		Note:  strings.TrimSpace(s.Note),
	}
}

// Prompt labels, asked in this order.
const (
	PromptName  = "Customer name: "
	PromptPhone = "Customer phone: "
	PromptNote  = "Note: "
)

// Prompter asks for the three customer fields one line at a time.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Customer implements CustomerSource. A closed or exhausted input yields
// empty answers instead of aborting the sale.
func (p *Prompter) Customer() sale.CustomerInfo {
	return sale.CustomerInfo{
		Name:  p.ask(PromptName),
		Phone: p.ask(PromptPhone),
		Note:  p.ask(PromptNote),
	}
}

func (p *Prompter) ask(question string) string {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimSpace(line)
}
