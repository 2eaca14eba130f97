// Package pricing implements the price resolution engine: given an
// application instant and a (product, brand) pair, it returns every
// price record whose validity window covers the instant, ordered so
// the highest-precedence record comes first.
package pricing

import (
	"context"
	"sort"
)

// CandidateStore is the capability the resolver requires from any
// storage backend. Implementations return every record held for the
// pair regardless of validity window; the resolver applies the
// temporal filter.
type CandidateStore interface {
	FindCandidates(ctx context.Context, productID, brandID int64) ([]PriceRecord, error)
}

// Resolver decides which price records apply at a given instant.
// It is stateless and safe for concurrent use.
type Resolver struct {
	store CandidateStore
}

// NewResolver wires a candidate store into a Resolver.
func NewResolver(store CandidateStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the records covering q.Instant for the queried
// product and brand, sorted ascending by priority (lower value wins).
// Records sharing a priority keep the store's return order. An empty
// slice is a valid result meaning no applicable price; a store
// failure surfaces as *ResolutionError wrapping the cause.
func (r *Resolver) Resolve(ctx context.Context, q Query) ([]PriceRecord, error) {
	candidates, err := r.store.FindCandidates(ctx, q.ProductID, q.BrandID)
	if err != nil {
		return nil, &ResolutionError{Cause: err}
	}

	applicable := make([]PriceRecord, 0, len(candidates))
	for _, rec := range candidates {
		if rec.Window.Covers(q.Instant) {
			applicable = append(applicable, rec)
		}
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority < applicable[j].Priority
	})

	return applicable, nil
}
