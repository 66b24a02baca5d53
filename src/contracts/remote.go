package contracts

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// RemoteClient asks an external reference-data API for contract specs.
// Lookups are strictly best-effort: the resolver swallows every error here
// and keeps falling through to the default spec.
type RemoteClient struct {
	http   *resty.Client
	apiKey string
}

type remoteSpecResponse struct {
	Symbol       string  `json:"symbol"`
	TickSize     float64 `json:"tickSize"`
	TickValue    float64 `json:"tickValue"`
	Name         string  `json:"name"`
	Exchange     string  `json:"exchange"`
	ContractType string  `json:"contractType"`
	ExchangeFee  float64 `json:"exchangeFee"`
	ErrorMessage string  `json:"Error Message"`
	Note         string  `json:"Note"`
}

func NewRemoteClient(config Config) *RemoteClient {
	if config.ReferenceAPIURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(config.ReferenceAPIURL).
		SetTimeout(config.ReferenceAPITimeout)

	return &RemoteClient{http: client, apiKey: config.ReferenceAPIKey}
}

// Fetch resolves a symbol against the remote API.
func (c *RemoteClient) Fetch(ctx context.Context, symbol string) (model.ContractSpec, error) {
	var body remoteSpecResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "CONTRACT_SPECS",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&body).
		Get("/query")
	if err != nil {
		return model.ContractSpec{}, fmt.Errorf("reference API request failed: %w", err)
	}
	if resp.IsError() {
		return model.ContractSpec{}, fmt.Errorf("reference API status %d", resp.StatusCode())
	}
	if body.ErrorMessage != "" {
		return model.ContractSpec{}, fmt.Errorf("reference API error: %s", body.ErrorMessage)
	}
	if body.Note != "" {
		return model.ContractSpec{}, fmt.Errorf("reference API rate limited")
	}
	if body.TickSize <= 0 || body.TickValue <= 0 {
		return model.ContractSpec{}, fmt.Errorf("reference API returned no usable spec for %s", symbol)
	}

	logger.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"tick_size":  body.TickSize,
		"tick_value": body.TickValue,
	}).Debug("Resolved contract spec remotely")

	return model.ContractSpec{
		TickSize:     decimal.NewFromFloat(body.TickSize),
		TickValue:    decimal.NewFromFloat(body.TickValue),
		Name:         body.Name,
		Exchange:     body.Exchange,
		ContractType: body.ContractType,
		ExchangeFee:  decimal.NewFromFloat(body.ExchangeFee),
	}, nil
}
