package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Price is the resolved cost of playing a collection, in minor currency
// units.
type Price struct {
	ID         string
	UnitAmount int64
	Currency   string
}

// PriceCatalog resolves a collection's opaque price reference. Lookups have
// no side effects and are never retried here.
type PriceCatalog interface {
	Resolve(ctx context.Context, priceRef string) (Price, error)
}

// StripeCatalog resolves price references against the Stripe prices API.
type StripeCatalog struct {
	api *client.API
}

func NewStripeCatalog(apiKey string) *StripeCatalog {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeCatalog{api: api}
}

func (s *StripeCatalog) Resolve(ctx context.Context, priceRef string) (Price, error) {
	params := &stripe.PriceParams{Params: stripe.Params{Context: ctx}}
	p, err := s.api.Prices.Get(priceRef, params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) {
			if sErr.Code == stripe.ErrorCodeResourceMissing || sErr.HTTPStatusCode == 404 {
				return Price{}, fmt.Errorf("price %s: %w", priceRef, ErrNotFound)
			}
			if sErr.HTTPStatusCode >= 500 {
				return Price{}, fmt.Errorf("stripe %d: %w", sErr.HTTPStatusCode, ErrUpstreamUnavailable)
			}
			return Price{}, err
		}
		// No typed response at all, the catalog was unreachable.
		return Price{}, fmt.Errorf("stripe: %v: %w", err, ErrUpstreamUnavailable)
	}

	return Price{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
	}, nil
}
