package contracts

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

func spec(tickSize, tickValue, name, exchange, contractType, exchangeFee string) model.ContractSpec {
	s := model.ContractSpec{
		TickSize:     decimal.RequireFromString(tickSize),
		TickValue:    decimal.RequireFromString(tickValue),
		Name:         name,
		Exchange:     exchange,
		ContractType: contractType,
		ExchangeFee:  decimal.Zero,
	}
	if exchangeFee != "" {
		s.ExchangeFee = decimal.RequireFromString(exchangeFee)
	}
	return s
}

// specsTable is the authoritative reference table, keyed by base symbol.
// Full contract codes (base + month letter + 2-digit year) resolve through
// the suffix-strip fallback in Service.Resolve.
var specsTable = map[string]model.ContractSpec{
	// Equity index minis
	"NQ":  spec("0.25", "5", "E-mini NASDAQ-100", "CME", model.ContractTypeMini, "1.38"),
	"ES":  spec("0.25", "12.5", "E-mini S&P 500", "CME", model.ContractTypeMini, "1.38"),
	"YM":  spec("1", "5", "E-mini Dow Jones", "CME", model.ContractTypeMini, "1.38"),
	"RTY": spec("0.1", "5", "E-mini Russell 2000", "CME", model.ContractTypeMini, "1.38"),
	"NKD": spec("5", "5", "Nikkei 225", "CME", model.ContractTypeMini, "1.38"),

	// Energy
	"CL": spec("0.01", "10", "Crude Oil", "NYMEX", "", ""),
	"NG": spec("0.001", "10", "Natural Gas", "NYMEX", "", ""),

	// Metals
	"GC": spec("0.1", "10", "Gold", "COMEX", "", ""),
	"SI": spec("0.005", "25", "Silver", "COMEX", "", ""),

	// Treasuries
	"ZB": spec("0.03125", "31.25", "30-Year Treasury Bond", "CBOT", "", "1.38"),
	"ZN": spec("0.015625", "15.625", "10-Year Treasury Note", "CBOT", "", "1.38"),
	"ZF": spec("0.0078125", "7.8125", "5-Year Treasury Note", "CBOT", "", "1.38"),
	"ZT": spec("0.0078125", "7.8125", "2-Year Treasury Note", "CBOT", "", "1.38"),

	// Currencies
	"6E": spec("0.00005", "6.25", "Euro FX", "CME", "", ""),
	"6J": spec("0.0000005", "6.25", "Japanese Yen", "CME", "", ""),
	"6B": spec("0.0001", "6.25", "British Pound", "CME", "", ""),
	"6A": spec("0.0001", "10", "Australian Dollar", "CME", "", ""),
	"6C": spec("0.00005", "10", "Canadian Dollar", "CME", "", ""),
	"6S": spec("0.0001", "10", "Swiss Franc", "CME", "", ""),
	"6N": spec("0.0001", "10", "New Zealand Dollar", "CME", "", ""),
	"6M": spec("0.0001", "10", "Mexican Peso", "CME", "", ""),

	// Micros
	"MNQ": spec("0.25", "0.5", "Micro E-mini NASDAQ-100", "CME", model.ContractTypeMicro, "0.35"),
	"MES": spec("0.25", "1.25", "Micro E-mini S&P 500", "CME", model.ContractTypeMicro, "0.35"),
	"M2K": spec("0.1", "0.5", "Micro E-mini Russell 2000", "CME", model.ContractTypeMicro, "0.35"),
	"MGC": spec("0.1", "1", "Micro Gold", "COMEX", model.ContractTypeMicro, "0.35"),
}

// DefaultSpec is used when a symbol resolves nowhere, so the pipeline always
// has a usable spec.
func DefaultSpec() model.ContractSpec {
	return model.ContractSpec{
		TickSize:    decimal.RequireFromString("0.01"),
		TickValue:   decimal.NewFromInt(1),
		Name:        "Unknown Contract",
		Exchange:    "Unknown",
		ExchangeFee: decimal.Zero,
	}
}

// AvailableSymbols lists the base symbols of the reference table.
func AvailableSymbols() []string {
	symbols := make([]string, 0, len(specsTable))
	for s := range specsTable {
		symbols = append(symbols, s)
	}
	return symbols
}
