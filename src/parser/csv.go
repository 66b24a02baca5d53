package parser

import (
	"encoding/csv"
	"io"
)

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	// Broker exports occasionally have ragged rows; pad/truncate per record
	// instead of failing the whole file.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}
