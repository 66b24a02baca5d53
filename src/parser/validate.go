package parser

import (
	"strings"
)

// Validate checks a parse result for the columns the P&L pipeline needs and
// returns one message per problem. An empty slice means the file is usable.
func Validate(result *Result) []string {
	var errs []string

	if result == nil || len(result.Fills) == 0 {
		return []string{"No trade data found"}
	}

	has := func(names ...string) bool {
		for _, header := range result.Headers {
			for _, name := range names {
				if strings.TrimSpace(header) == name {
					return true
				}
			}
		}
		return false
	}

	if !has("Date") {
		errs = append(errs, "Missing 'Date' column")
	}
	if !has("Contract", "Product") {
		errs = append(errs, "Missing 'Contract' column")
	}
	if !has("filledQty", "Filled Qty") {
		errs = append(errs, "Missing quantity column (filledQty or Filled Qty)")
	}
	if !has("avgPrice", "Avg Fill Price") {
		errs = append(errs, "Missing price column (avgPrice or Avg Fill Price)")
	}
	if !has("Status") {
		errs = append(errs, "Missing 'Status' column")
	}

	if len(errs) > 0 {
		return append([]string{"Missing required columns:"}, errs...)
	}

	// Cancelled orders are filtered during parsing, so any surviving fill is
	// a valid one; nothing surviving means the export held only cancels.
	return nil
}
