package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/daily-sales/internal/catalog"
	"github.com/ginjaninja78/daily-sales/internal/sale"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var wantProducts = []sale.Product{
	{ID: "P1", Name: "Widget", UnitPrice: 1000},
	{ID: "P2", Name: "Gadget", UnitPrice: 25500},
	{ID: "P3", Name: "Sample", UnitPrice: 0},
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
products:
  - id: P1
    name: Widget
    price: 1000
  - id: P2
    name: Gadget
    price: 25500
  - id: P3
    name: Sample
    price: 0
`)

	c, err := catalog.Load(path)
	require.NoError(t, err)

	assert.Equal(t, wantProducts, c.Products())
	assert.Equal(t, path, c.Source())
	assert.Equal(t, 3, c.Len())
}

func TestLoadCSV(t *testing.T) {
	t.Run("comma with reordered columns", func(t *testing.T) {
		path := writeFile(t, "catalog.csv", "name,id,price\nWidget,P1,1000\n\nGadget,P2,\"25,500\"\nSample,P3,0\n")

		c, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, wantProducts, c.Products())
	})

	t.Run("semicolon with spanish headers", func(t *testing.T) {
		path := writeFile(t, "catalog.csv", "item;nombre;precio\nP1;Widget;$1.000\nP2;Gadget;25.500\nP3;Sample;0\n")

		c, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, wantProducts, c.Products())
	})

	t.Run("missing price column", func(t *testing.T) {
		path := writeFile(t, "catalog.csv", "id,name\nP1,Widget\n")

		_, err := catalog.Load(path)
		assert.ErrorContains(t, err, "missing price column")
	})

	t.Run("invalid price", func(t *testing.T) {
		for _, price := range []string{"cheap", "12.50", "\"1,000.00\"", "$1.5", "\"1,00\"", "\"1.000,50\"", "-5"} {
			path := writeFile(t, "catalog.csv", "id,name,price\nP1,Widget,"+price+"\n")

			_, err := catalog.Load(path)
			assert.ErrorContains(t, err, "row 2", price)
		}
	})

	t.Run("grouped whole prices", func(t *testing.T) {
		path := writeFile(t, "catalog.csv", "id,name,price\nP1,Widget,\"$1,234,567\"\nP2,Gadget,1.234.567\nP3,Sample,$ 999\n")

		c, err := catalog.Load(path)
		require.NoError(t, err)
		for _, p := range c.Products() {
			if p.ID == "P3" {
				assert.Equal(t, int64(999), p.UnitPrice)
				continue
			}
			assert.Equal(t, int64(1234567), p.UnitPrice, p.ID)
		}
	})
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"ID", "Name", "Price"},
		{"P1", "Widget", 1000},
		{"P2", "Gadget", 25500},
		{"P3", "Sample", 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, wantProducts, c.Products())
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name     string
		products []sale.Product
		errIs    error
		contains string
	}{
		{name: "duplicate id", products: []sale.Product{{ID: "P1"}, {ID: " P1 "}}, contains: "duplicate"},
		{name: "empty id", products: []sale.Product{{Name: "x"}}, errIs: sale.ErrInvalidProduct},
		{name: "negative price", products: []sale.Product{{ID: "P1", UnitPrice: -5}}, errIs: sale.ErrInvalidProduct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.New("test", tc.products)
			require.Error(t, err)
			if tc.errIs != nil {
				assert.True(t, errors.Is(err, tc.errIs))
			}
			if tc.contains != "" {
				assert.ErrorContains(t, err, tc.contains)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	c, err := catalog.New("test", wantProducts)
	require.NoError(t, err)

	p, err := c.Lookup("P2")
	require.NoError(t, err)
	assert.Equal(t, "Gadget", p.Name)

	p, err = c.Lookup(" p1 ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)

	_, err = c.Lookup("P9")
	assert.True(t, errors.Is(err, catalog.ErrUnknownProduct))
}

func TestProductsIsACopy(t *testing.T) {
	c, err := catalog.New("test", wantProducts)
	require.NoError(t, err)

	products := c.Products()
	products[0].Name = "changed"

	assert.Equal(t, "Widget", c.Products()[0].Name)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := catalog.Load("catalog.json")
	assert.True(t, errors.Is(err, catalog.ErrUnsupportedFormat))
}
