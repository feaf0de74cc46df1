package export

import (
	"strings"

	"github.com/cockroachdb/errors"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFSink renders the report text into an A4 document, one row per line.
// The first line is printed as a title.
type PDFSink struct {
	fm   *utils.FileManager
	day  string
	path string
}

// NewPDFSink creates a PDFSink writing into fm's output directory.
func NewPDFSink(fm *utils.FileManager, day string) *PDFSink {
	return &PDFSink{fm: fm, day: day}
}

// Send renders report and writes it to a new .pdf file.
func (s *PDFSink) Send(report string) error {
	data, err := RenderPDF(report)
	if err != nil {
		return err
	}

	path, err := s.fm.WriteOutput(".pdf", dayParams(s.day), data)
	if err != nil {
		return errors.Wrap(err, "export pdf report")
	}
	s.path = path
	return nil
}

// Path returns the file written by the last Send.
func (s *PDFSink) Path() string {
	return s.path
}

// RenderPDF returns the PDF bytes for report.
func RenderPDF(report string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Daily Sales", true).
		Build()

	m := maroto.New(cfg)

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			m.AddRows(titleRow(l))
			m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
		case strings.TrimSpace(l) == "":
			m.AddRows(row.New(3))
		default:
			m.AddRows(textRow(l))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "pdf: generate document")
	}
	return doc.GetBytes(), nil
}

func titleRow(s string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(pdfText(s), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
	)
}

func textRow(s string) core.Row {
	style := fontstyle.Normal
	var color *props.Color
	if strings.HasSuffix(s, ":") {
		style = fontstyle.Bold
		color = colorPrimary
	} else if !strings.Contains(s, " – ") {
		color = colorGray
	}

	return row.New(6).Add(
		col.New(12).Add(text.New(pdfText(s), props.Text{
			Style: style, Size: 10, Color: color, Top: 1,
		})),
	)
}

// pdfText keeps what the built-in Latin-1 fonts can draw: emoji and other
// symbols are dropped and the en dash becomes a hyphen.
func pdfText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '–' || r == '—':
			b.WriteRune('-')
		case r <= 0xFF:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
