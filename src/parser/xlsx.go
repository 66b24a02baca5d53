package parser

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}

	// First sheet only, same as the original export format.
	return book.GetRows(sheets[0])
}
