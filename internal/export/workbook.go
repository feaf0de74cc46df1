package export

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/daily-sales/internal/report"
	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

// SummarySheet is the name of the totals sheet of an exported workbook.
const SummarySheet = "Summary"

// WorkbookHeader is the header row of every payment method sheet.
var WorkbookHeader = []interface{}{"ID", "Product", "Price", "Customer", "Phone", "Note", "Recorded At"}

// WorkbookExporter writes a session as an .xlsx workbook: one sheet per
// payment method ending in a totals row, plus a summary sheet.
type WorkbookExporter struct {
	fm *utils.FileManager
}

// NewWorkbookExporter creates a WorkbookExporter writing into fm's output
// directory.
func NewWorkbookExporter(fm *utils.FileManager) *WorkbookExporter {
	return &WorkbookExporter{fm: fm}
}

// SheetName returns the sheet that holds the sales paid with method.
func SheetName(method sale.PaymentMethod) string {
	return cases.Title(language.English).String(method.String())
}

// Export writes sess and returns the workbook path.
func (e *WorkbookExporter) Export(sess session.Session) (string, error) {
	if err := e.fm.EnsureDirectories(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", errors.Wrap(err, "workbook style")
	}

	sum := report.Summarize(sess)
	first := f.GetSheetName(0)

	for i, method := range sale.PaymentMethods() {
		name := SheetName(method)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return "", errors.Wrapf(err, "rename sheet %s", first)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return "", errors.Wrapf(err, "create sheet %s", name)
		}

		rows := [][]interface{}{WorkbookHeader}
		for _, rec := range sess.RecordsFor(method) {
			rows = append(rows, []interface{}{
				rec.ProductID,
				rec.ProductName,
				rec.Price,
				rec.Customer.Name,
				rec.Customer.Phone,
				rec.Customer.Note,
				rec.RecordedAt.Format(time.RFC3339),
			})
		}
		totals := sum.For(method)
		rows = append(rows, []interface{}{"Total", totals.Count, totals.Amount})

		if err := writeRows(f, name, rows); err != nil {
			return "", err
		}
		if err := f.SetCellStyle(name, "A1", "G1", bold); err != nil {
			return "", errors.Wrap(err, "workbook header style")
		}
		if err := f.SetColWidth(name, "B", "B", 28); err != nil {
			return "", errors.Wrap(err, "workbook column width")
		}
	}

	if err := writeSummary(f, sum, bold); err != nil {
		return "", err
	}

	path := e.fm.OutputPath(".xlsx", dayParams(sess.Day))
	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrapf(err, "save workbook %s", path)
	}
	return path, nil
}

func writeSummary(f *excelize.File, sum report.Summary, style int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return errors.Wrapf(err, "create sheet %s", SummarySheet)
	}

	rows := [][]interface{}{
		{"Day", sum.Day},
		{"Method", "Sales", "Amount"},
	}
	for _, mt := range sum.Methods {
		rows = append(rows, []interface{}{SheetName(mt.Method), mt.Count, mt.Amount})
	}
	rows = append(rows, []interface{}{"Total", sum.Count, sum.Amount})

	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A2", "C2", style); err != nil {
		return errors.Wrap(err, "workbook summary style")
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "write %s row %d", sheet, i+1)
		}
	}
	return nil
}
