// Package parser turns broker export files (CSV or XLSX) into raw fill
// records. It knows nothing about P&L; its job ends at a clean []RawFill
// with cancelled orders already dropped.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

var ErrNoData = errors.New("file must contain at least a header row and one data row")

// fieldColumns maps each RawFill field to the accepted header spellings, in
// priority order. Exports from different broker versions disagree on the
// quantity and price column names, and on Contract vs Product for the symbol.
var fieldColumns = map[string][]string{
	"date":      {"Date"},
	"symbol":    {"Contract", "Product"},
	"side":      {"B/S"},
	"quantity":  {"filledQty", "Filled Qty"},
	"price":     {"avgPrice", "Avg Fill Price"},
	"status":    {"Status"},
	"orderType": {"Type"},
}

// Result carries the parsed fills together with the header row, which the
// validator needs to report missing columns by name.
type Result struct {
	Headers []string
	Fills   []model.RawFill
}

// Parse reads a broker export. The format is picked from the file name
// extension; anything that is not .csv is treated as a spreadsheet.
func Parse(r io.Reader, filename string) (*Result, error) {
	var (
		rows [][]string
		err  error
	)

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		rows, err = readCSV(r)
	} else {
		rows, err = readXLSX(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	return fromRows(rows)
}

func fromRows(rows [][]string) (*Result, error) {
	if len(rows) < 2 {
		return nil, ErrNoData
	}

	headers := rows[0]
	if !hasRecognizableHeader(headers) {
		return nil, errors.New("no recognizable header row found")
	}

	index := columnIndex(headers)

	fills := make([]model.RawFill, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		fill := model.RawFill{
			Date:      cell(row, index, "date"),
			Symbol:    cell(row, index, "symbol"),
			Side:      cell(row, index, "side"),
			Quantity:  cell(row, index, "quantity"),
			Price:     cell(row, index, "price"),
			Status:    cell(row, index, "status"),
			OrderType: cell(row, index, "orderType"),
		}

		if isCancelled(fill.Status) {
			continue
		}
		fills = append(fills, fill)
	}

	if len(fills) == 0 {
		return nil, errors.New("no data found in file")
	}

	logger.WithFields(map[string]interface{}{
		"rows":  len(rows) - 1,
		"fills": len(fills),
	}).Debug("Parsed broker export")

	return &Result{Headers: headers, Fills: fills}, nil
}

// columnIndex resolves every RawFill field to a column number using the
// priority-ordered spellings of fieldColumns. Missing fields map to -1.
func columnIndex(headers []string) map[string]int {
	position := make(map[string]int, len(headers))
	for i, h := range headers {
		position[strings.TrimSpace(h)] = i
	}

	index := make(map[string]int, len(fieldColumns))
	for field, names := range fieldColumns {
		index[field] = -1
		for _, name := range names {
			if i, ok := position[name]; ok {
				index[field] = i
				break
			}
		}
	}
	return index
}

func cell(row []string, index map[string]int, field string) string {
	i := index[field]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func hasRecognizableHeader(headers []string) bool {
	for _, h := range headers {
		name := strings.TrimSpace(h)
		for _, names := range fieldColumns {
			for _, candidate := range names {
				if name == candidate {
					return true
				}
			}
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isCancelled(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "canceled", "cancelled", "cancel":
		return true
	}
	return false
}
