// =============================================================================
// Daily Sales - Product Catalog
// =============================================================================
//
// The catalog is the static, ordered list of products offered at the counter.
// It is read once at start-up and never written by the application.
//
// SUPPORTED SOURCES (picked by file extension):
//   - .yaml / .yml : a "products" list of {id, name, price}
//   - .csv         : a header row followed by one product per row
//   - .xlsx        : first sheet, header row followed by one product per row
//
// TABULAR HEADERS:
//   CSV and XLSX sources locate their columns by header name, so column order
//   does not matter. Recognised names (case-insensitive):
//     id    : id, item, code, sku
//     name  : name, nombre, product
//     price : price, precio, unit_price
//
// =============================================================================

package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/daily-sales/internal/sale"
)

var (
	// ErrUnknownProduct is returned when an identifier is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrUnsupportedFormat is returned for a catalog file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered, read-only product list.
type Catalog struct {
	source   string
	products []sale.Product
	index    map[string]int
}

// New builds a catalog from products, keeping their order. Identifiers must
// be unique and every product must be valid.
func New(source string, products []sale.Product) (*Catalog, error) {
	c := &Catalog{
		source:   source,
		products: make([]sale.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)

		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "product #%d", i+1)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, errors.Newf("duplicate product id %q", p.ID)
		}

		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Source returns where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []sale.Product {
	out := make([]sale.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup finds a product by identifier. Matching ignores surrounding spaces
// and, when there is no exact match, letter case.
func (c *Catalog) Lookup(id string) (sale.Product, error) {
	id = strings.TrimSpace(id)
	if i, ok := c.index[id]; ok {
		return c.products[i], nil
	}
	for _, p := range c.products {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return sale.Product{}, errors.Wrapf(ErrUnknownProduct, "%q", id)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a catalog file, choosing the parser from the file extension.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// yamlCatalog is the YAML document layout.
type yamlCatalog struct {
	Products []sale.Product `yaml:"products"`
}

// LoadYAML reads a YAML catalog.
func LoadYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog")
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	return New(path, doc.Products)
}

// =============================================================================
// TABULAR SOURCES
// =============================================================================

// columns holds the 0-based position of each field in a tabular source.
type columns struct {
	id, name, price int
}

var headerAliases = map[string][]string{
	"id":    {"id", "item", "code", "sku"},
	"name":  {"name", "nombre", "product"},
	"price": {"price", "precio", "unit_price"},
}

// locateColumns finds the product columns in a header row.
func locateColumns(header []string) (columns, error) {
	find := func(field string) int {
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(h))
			for _, alias := range headerAliases[field] {
				if h == alias {
					return i
				}
			}
		}
		return -1
	}

	cols := columns{id: find("id"), name: find("name"), price: find("price")}
	switch {
	case cols.id < 0:
		return cols, errors.New("missing id column")
	case cols.name < 0:
		return cols, errors.New("missing name column")
	case cols.price < 0:
		return cols, errors.New("missing price column")
	}
	return cols, nil
}

// fromRows converts a header row plus data rows into a catalog. Blank rows
// are skipped.
func fromRows(source string, rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, errors.Newf("%s: catalog is empty", source)
	}

	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, errors.Wrapf(err, "%s", source)
	}

	getCell := func(row []string, index int) string {
		if index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}

	var products []sale.Product
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		price, err := parsePrice(getCell(row, cols.price))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d", source, i+1)
		}

		products = append(products, sale.Product{
			ID:        getCell(row, cols.id),
			Name:      getCell(row, cols.name),
			UnitPrice: price,
		})
	}

	return New(source, products)
}

var (
	plainDigits   = regexp.MustCompile(`^\d+$`)
	commaGrouped  = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
	periodGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// parsePrice accepts whole amounts, optionally written with one grouping
// style ("25,500" or "25.500") and a currency sign. Fractional amounts such as
// "12.50" or "1,000.00" are rejected.
func parsePrice(s string) (int64, error) {
	cleaned := strings.NewReplacer("$", "", " ", "", "_", "").Replace(s)
	if cleaned == "" {
		return 0, errors.New("empty price")
	}

	switch {
	case plainDigits.MatchString(cleaned):
	case commaGrouped.MatchString(cleaned), periodGrouped.MatchString(cleaned):
		cleaned = strings.NewReplacer(",", "", ".", "").Replace(cleaned)
	default:
		return 0, errors.Newf("invalid price %q: expected a whole amount", s)
	}

	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid price %q", s)
	}
	return v, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
