package contracts

import (
	"context"
	"regexp"
	"sync"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// Per-side rates. Clearing is charged by the broker but excluded from net
// P&L, so it is fixed at zero.
var (
	microCommissionPerSide    = decimal.RequireFromString("0.35")
	standardCommissionPerSide = decimal.RequireFromString("1.29")
	defaultExchangeFeePerSide = decimal.RequireFromString("1.38")
)

// monthCodeSuffix matches the trailing month letter + 2-digit year of a full
// contract code, e.g. the "U5" in NQU5 or the "H25" in MNQH25.
var monthCodeSuffix = regexp.MustCompile(`[0-9A-Z]{2,3}$`)

// Service resolves instrument symbols to contract specs. Resolution order:
// cache, exact table match, base-symbol fallback, remote lookup, default
// spec. It never fails; callers always get a usable spec back. The cache is
// owned by the service instance, one per process.
type Service struct {
	mu     sync.Mutex
	cache  map[string]model.ContractSpec
	remote *RemoteClient
}

func NewService(remote *RemoteClient) *Service {
	return &Service{
		cache:  make(map[string]model.ContractSpec),
		remote: remote,
	}
}

// Resolve looks up the spec for a symbol. Every result, including the
// default, is cached under the original symbol.
func (s *Service) Resolve(ctx context.Context, symbol string) model.ContractSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[symbol]; ok {
		return cached
	}

	if found, ok := specsTable[symbol]; ok {
		s.cache[symbol] = found
		return found
	}

	if base := monthCodeSuffix.ReplaceAllString(symbol, ""); base != symbol {
		if found, ok := specsTable[base]; ok {
			logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"base":   base,
			}).Debug("Resolved contract spec via base symbol")

			s.cache[symbol] = found
			return found
		}
	}

	if s.remote != nil {
		found, err := s.remote.Fetch(ctx, symbol)
		if err == nil {
			s.cache[symbol] = found
			return found
		}
		logger.WithField("symbol", symbol).
			WithError(err).
			Warn("Remote contract spec lookup failed")
	}

	logger.WithField("symbol", symbol).Warn("Using default specs for unknown contract")

	fallback := DefaultSpec()
	s.cache[symbol] = fallback
	return fallback
}

// CommissionPerSide returns the per-contract commission for one side of a
// trade. Micro contracts get the reduced tier, everything else the standard
// rate.
func CommissionPerSide(spec model.ContractSpec) decimal.Decimal {
	if spec.ContractType == model.ContractTypeMicro {
		return microCommissionPerSide
	}
	return standardCommissionPerSide
}

// ExchangeFeePerSide returns the spec's declared per-contract exchange fee,
// or the default when the spec does not declare one.
func ExchangeFeePerSide(spec model.ContractSpec) decimal.Decimal {
	if spec.ExchangeFee.IsZero() {
		return defaultExchangeFeePerSide
	}
	return spec.ExchangeFee
}

// PriceDifferenceToDollars converts a price difference in points into
// dollars: ticks = diff / tickSize, dollars = ticks * tickValue. This is the
// only correct conversion path; multiplying a price difference by tick value
// directly is wrong for every contract whose tick size is not 1.
func PriceDifferenceToDollars(diff decimal.Decimal, spec model.ContractSpec) decimal.Decimal {
	return diff.Div(spec.TickSize).Mul(spec.TickValue)
}
