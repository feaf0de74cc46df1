package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/daily-sales/internal/export"
	"github.com/ginjaninja78/daily-sales/internal/report"
	"github.com/ginjaninja78/daily-sales/internal/sale"
	"github.com/ginjaninja78/daily-sales/internal/session"
	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

const today = "10/19/2026"

func testSession(t *testing.T) session.Session {
	t.Helper()
	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	mk := func(id, name string, price int64, m sale.PaymentMethod, c sale.CustomerInfo) sale.Record {
		r, err := sale.NewRecord(sale.Product{ID: id, Name: name, UnitPrice: price}, m, c, today, at)
		require.NoError(t, err)
		return r
	}

	return session.Session{Day: today, Records: []sale.Record{
		mk("P2", "Gadget", 25500, sale.Transfer, sale.CustomerInfo{Name: "Luis", Phone: "555"}),
		mk("P1", "Widget", 1000, sale.Cash, sale.CustomerInfo{}),
		mk("P1", "Widget", 1000, sale.Cash, sale.CustomerInfo{Note: "gift"}),
	}}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := export.NewWriterSink(&buf)

	require.NoError(t, sink.Send("No sales recorded today."))
	require.NoError(t, sink.Send("line\n"))

	assert.Equal(t, "No sales recorded today.\nline\n", buf.String())
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fm := utils.NewFileManager(dir, "")
	text := report.Default().Generate(testSession(t))

	sink := export.NewFileSink(fm, today)
	assert.Empty(t, sink.Path())
	require.NoError(t, sink.Send(text))

	path := sink.Path()
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "sales_10-19-2026_"))
	assert.Equal(t, ".txt", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestPDFSink(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), "report_{date}")
	sink := export.NewPDFSink(fm, today)

	require.NoError(t, sink.Send(report.Default().Generate(testSession(t))))

	assert.Equal(t, "report_10-19-2026.pdf", filepath.Base(sink.Path()))
	data, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderPDF_Empty(t *testing.T) {
	data, err := export.RenderPDF("No sales recorded today.")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestNew(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), "")

	cases := map[string]interface{}{
		"stdout": &export.WriterSink{},
		"":       &export.WriterSink{},
		"file":   &export.FileSink{},
		"PDF":    &export.PDFSink{},
	}
	for kind, want := range cases {
		sink, err := export.New(kind, &bytes.Buffer{}, fm, today)
		require.NoError(t, err, kind)
		assert.IsType(t, want, sink, kind)
	}

	_, err := export.New("clipboard", nil, fm, today)
	assert.True(t, errors.Is(err, export.ErrUnknownSink))
}

func TestWorkbookExporter(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), "")

	path, err := export.NewWorkbookExporter(fm).Export(testSession(t))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Cash", "Transfer", export.SummarySheet}, f.GetSheetList())

	cash, err := f.GetRows("Cash")
	require.NoError(t, err)
	require.Len(t, cash, 4)
	assert.Equal(t, []string{"ID", "Product", "Price", "Customer", "Phone", "Note", "Recorded At"}, cash[0])
	assert.Equal(t, []string{"P1", "Widget", "1000"}, cash[1][:3])
	assert.Equal(t, "gift", cash[2][5])
	assert.Equal(t, []string{"Total", "2", "2000"}, cash[3])

	transfer, err := f.GetRows("Transfer")
	require.NoError(t, err)
	require.Len(t, transfer, 3)
	assert.Equal(t, []string{"P2", "Gadget", "25500", "Luis", "555"}, transfer[1][:5])
	assert.Equal(t, []string{"Total", "1", "25500"}, transfer[2])

	summary, err := f.GetRows(export.SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day", today}, summary[0])
	assert.Equal(t, []string{"Total", "3", "27500"}, summary[len(summary)-1])
}

func TestWorkbookExporter_EmptySession(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), "")

	path, err := export.NewWorkbookExporter(fm).Export(session.Session{Day: today})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transfer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "0", "0"}, rows[1])
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	fm := utils.NewFileManager(dir, "")
	now := time.Now()
	past := now.Add(-72 * time.Hour)

	old := filepath.Join(dir, "sales_10-16-2026_a.pdf")
	fresh := filepath.Join(dir, "sales_10-19-2026_b.txt")
	foreignConfig := filepath.Join(dir, "config.yaml")
	foreignText := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, foreignConfig, foreignText} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	for _, p := range []string{old, foreignConfig, foreignText} {
		require.NoError(t, os.Chtimes(p, past, past))
	}

	n, err := export.Prune(fm, 0, now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.FileExists(t, old)

	n, err = export.Prune(fm, 48*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, foreignConfig, "files that are not exports are kept")
	assert.FileExists(t, foreignText, "files without the export name prefix are kept")
}
