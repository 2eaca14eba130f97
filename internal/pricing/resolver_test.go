package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type stubStore struct {
	records []PriceRecord
	err     error
	calls   int
}

func (s *stubStore) FindCandidates(_ context.Context, productID, brandID int64) ([]PriceRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]PriceRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.ProductID == productID && rec.BrandID == brandID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func eur(t *testing.T, amount string) Money {
	t.Helper()
	m, err := NewMoney(decimal.RequireFromString(amount), "EUR")
	if err != nil {
		t.Fatalf("money %s: %v", amount, err)
	}
	return m
}

func sampleRecords(t *testing.T) []PriceRecord {
	t.Helper()
	return []PriceRecord{
		{
			ID:        1,
			ProductID: 35455,
			BrandID:   1,
			PriceList: 1,
			Window:    ValidityWindow{Start: ts(t, "2020-06-14 00:00:00"), End: ts(t, "2020-12-31 23:59:59")},
			Priority:  0,
			Price:     eur(t, "35.50"),
		},
		{
			ID:        2,
			ProductID: 35455,
			BrandID:   1,
			PriceList: 2,
			Window:    ValidityWindow{Start: ts(t, "2020-06-14 15:00:00"), End: ts(t, "2020-06-14 18:30:00")},
			Priority:  1,
			Price:     eur(t, "25.45"),
		},
	}
}

func resolveAt(t *testing.T, store CandidateStore, instant string, productID, brandID int64) []PriceRecord {
	t.Helper()
	result, err := NewResolver(store).Resolve(context.Background(), Query{
		Instant:   ts(t, instant),
		ProductID: productID,
		BrandID:   brandID,
	})
	if err != nil {
		t.Fatalf("resolve at %s: %v", instant, err)
	}
	return result
}

func TestResolveBeforePromotionWindow(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	result := resolveAt(t, store, "2020-06-14 10:00:00", 35455, 1)

	if len(result) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result))
	}
	if result[0].PriceList != 1 {
		t.Fatalf("expected base tariff, got price list %d", result[0].PriceList)
	}
}

func TestResolveDuringOverlapOrdersByPriority(t *testing.T) {
	records := sampleRecords(t)
	// insertion order deliberately reversed; priority must win
	store := &stubStore{records: []PriceRecord{records[1], records[0]}}

	result := resolveAt(t, store, "2020-06-14 16:00:00", 35455, 1)

	if len(result) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result))
	}
	if result[0].Priority != 0 || result[1].Priority != 1 {
		t.Fatalf("expected priorities [0 1], got [%d %d]", result[0].Priority, result[1].Priority)
	}
	if !result[0].Price.Amount.Equal(decimal.RequireFromString("35.50")) {
		t.Fatalf("expected base price first, got %s", result[0].Price.Amount)
	}
}

func TestResolveAfterPromotionEnds(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	result := resolveAt(t, store, "2020-06-14 21:00:00", 35455, 1)

	if len(result) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result))
	}
	if result[0].PriceList != 1 {
		t.Fatalf("promotion ended at 18:30, expected base tariff, got price list %d", result[0].PriceList)
	}
}

func TestResolveIncludesLowerBoundaryExactly(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	result := resolveAt(t, store, "2020-06-14 15:00:00", 35455, 1)

	if len(result) != 2 {
		t.Fatalf("lower boundary is inclusive, expected 2 records, got %d", len(result))
	}
}

func TestResolveBoundaryInclusion(t *testing.T) {
	window := ValidityWindow{
		Start: ts(t, "2020-06-14 15:00:00"),
		End:   ts(t, "2020-06-14 18:30:00"),
	}
	store := &stubStore{records: []PriceRecord{{
		ID: 7, ProductID: 35455, BrandID: 1, PriceList: 2,
		Window: window, Priority: 1, Price: eur(t, "25.45"),
	}}}

	cases := []struct {
		instant string
		want    int
	}{
		{"2020-06-14 15:00:00", 1},
		{"2020-06-14 18:30:00", 1},
		{"2020-06-14 14:59:59", 0},
		{"2020-06-14 18:30:01", 0},
	}
	for _, tc := range cases {
		result := resolveAt(t, store, tc.instant, 35455, 1)
		if len(result) != tc.want {
			t.Errorf("at %s: expected %d records, got %d", tc.instant, tc.want, len(result))
		}
	}
}

func TestResolveUnknownProductReturnsEmpty(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	result := resolveAt(t, store, "2020-06-14 16:00:00", 99999, 1)

	if result == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(result) != 0 {
		t.Fatalf("expected no records, got %d", len(result))
	}
}

func TestResolveIgnoresOtherBrand(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	result := resolveAt(t, store, "2020-06-14 16:00:00", 35455, 2)

	if len(result) != 0 {
		t.Fatalf("records belong to brand 1, expected none for brand 2, got %d", len(result))
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	first := resolveAt(t, store, "2020-06-14 16:00:00", 35455, 1)
	second := resolveAt(t, store, "2020-06-14 16:00:00", 35455, 1)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("position %d differs: id %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestResolveEqualPriorityKeepsStoreOrder(t *testing.T) {
	base := sampleRecords(t)[0]
	a, b := base, base
	a.ID, a.PriceList = 10, 3
	b.ID, b.PriceList = 11, 4

	store := &stubStore{records: []PriceRecord{b, a}}
	result := resolveAt(t, store, "2020-06-14 16:00:00", 35455, 1)

	if len(result) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result))
	}
	if result[0].ID != 11 || result[1].ID != 10 {
		t.Fatalf("equal priorities must keep store order, got ids [%d %d]", result[0].ID, result[1].ID)
	}
}

func TestResolvePropagatesStoreFailure(t *testing.T) {
	cause := ErrStoreUnavailable
	store := &stubStore{err: cause}

	_, err := NewResolver(store).Resolve(context.Background(), Query{
		Instant: ts(t, "2020-06-14 16:00:00"), ProductID: 35455, BrandID: 1,
	})
	if err == nil {
		t.Fatal("expected resolution failure")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("cause must stay reachable, got %v", err)
	}
}

func TestResolveHitsStoreOncePerCall(t *testing.T) {
	store := &stubStore{records: sampleRecords(t)}

	resolveAt(t, store, "2020-06-14 16:00:00", 35455, 1)

	if store.calls != 1 {
		t.Fatalf("expected a single store read, got %d", store.calls)
	}
}
