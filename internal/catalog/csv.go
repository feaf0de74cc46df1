package catalog

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/cockroachdb/errors"
)

// LoadCSV reads a CSV catalog. The delimiter is detected from the header
// line: semicolon and tab are accepted besides comma.
func LoadCSV(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open catalog")
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	csvReader := csv.NewReader(reader)
	csvReader.Comma = sniffDelimiter(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog CSV")
	}

	return fromRows(path, rows)
}

// sniffDelimiter peeks at the first line and picks the most frequent of the
// supported delimiters.
func sniffDelimiter(r *bufio.Reader) rune {
	head, _ := r.Peek(1024)

	counts := map[rune]int{}
	for _, b := range head {
		if b == '\n' {
			break
		}
		switch b {
		case ',', ';', '\t':
			counts[rune(b)]++
		}
	}

	best := ','
	for _, d := range []rune{';', '\t'} {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
