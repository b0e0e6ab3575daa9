package handler

import (
	"context"
	"strings"

	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/repository"
)

// currencyResolver looks a currency up in the store first and falls back to
// the built-in table, so a bare deployment still formats the common codes.
type currencyResolver struct {
	repo repository.CurrencyRepository
}

func (cr currencyResolver) resolve(ctx context.Context, code string) (currency.Currency, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return currency.Currency{}, false, nil
	}

	if cr.repo != nil {
		stored, found, err := cr.repo.GetByCode(ctx, code)
		if err != nil {
			return currency.Currency{}, false, err
		}
		if found && stored.IsActive {
			return currency.Currency{
				Code:          stored.Code,
				Name:          stored.Name,
				Symbol:        stored.Symbol,
				DecimalPlaces: stored.DecimalPlaces,
			}, true, nil
		}
	}

	c, ok := currency.Lookup(code)
	return c, ok, nil
}

func splitCodes(raw string) []string {
	codes := []string{}
	for _, part := range strings.Split(raw, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
