package catalog

import (
	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of a workbook as a catalog.
//
// Expected layout (column order is free, see the header aliases):
//
//	| id  | name   | price |
//	|-----|--------|-------|
//	| P1  | Widget | 1000  |
func LoadXLSX(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open catalog workbook")
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.Newf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read rows")
	}

	return fromRows(path, rows)
}
