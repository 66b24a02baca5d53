package model

import "github.com/shopspring/decimal"

const (
	ContractTypeMicro = "micro"
	ContractTypeMini  = "mini"
)

// ContractSpec is the immutable reference data for one futures contract.
// An ExchangeFee of zero means "not declared"; fee derivation substitutes
// the default per-side exchange fee in that case.
type ContractSpec struct {
	TickSize     decimal.Decimal `json:"tick_size"`
	TickValue    decimal.Decimal `json:"tick_value"`
	Name         string          `json:"name"`
	Exchange     string          `json:"exchange"`
	ContractType string          `json:"contract_type,omitempty"`
	ExchangeFee  decimal.Decimal `json:"exchange_fee"`
}
