package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// ForEachRow streams a delimited file as header-keyed rows. Open failures
// and malformed rows are skipped silently; public research exports routinely
// contain ragged lines and the contract is best-effort. The callback returns
// false to stop early.
func ForEachRow(path string, delimiter rune, fn func(row map[string]string) bool) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		if !fn(row) {
			return
		}
	}
}

// RowValue returns the first non-empty value among the given column names.
// Datasets rename columns between releases; adapters list every known alias.
func RowValue(row map[string]string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(row[name]); v != "" {
			return v
		}
	}
	return ""
}
