package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"price-resolution-api/internal/pricing"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	createSchemaSQL = `CREATE TABLE IF NOT EXISTS brands (
        id          BIGINT PRIMARY KEY,
        name        TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT ''
    );
    CREATE TABLE IF NOT EXISTS prices (
        id         BIGSERIAL PRIMARY KEY,
        brand_id   BIGINT NOT NULL REFERENCES brands(id),
        start_date TIMESTAMP NOT NULL,
        end_date   TIMESTAMP NOT NULL,
        price_list INT NOT NULL,
        product_id BIGINT NOT NULL,
        priority   INT NOT NULL CHECK (priority >= 0),
        price      NUMERIC(10,2) NOT NULL,
        curr       CHAR(3) NOT NULL,
        CHECK (start_date <= end_date)
    );
    CREATE INDEX IF NOT EXISTS idx_prices_product_brand
        ON prices (product_id, brand_id);`

	upsertBrandSQL = `INSERT INTO brands (id, name, description)
    VALUES ($1, $2, $3)
    ON CONFLICT (id) DO UPDATE
    SET name = EXCLUDED.name,
        description = EXCLUDED.description;`

	insertPriceSQL = `INSERT INTO prices (
        brand_id,
        start_date,
        end_date,
        price_list,
        product_id,
        priority,
        price,
        curr
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8
    )
    RETURNING id;`

	listCandidatesSQL = `SELECT
        p.id,
        p.product_id,
        p.brand_id,
        b.name,
        b.description,
        p.price_list,
        p.start_date,
        p.end_date,
        p.priority,
        p.price,
        p.curr
    FROM prices p
    JOIN brands b ON b.id = p.brand_id
    WHERE p.product_id = $1
      AND p.brand_id = $2
    ORDER BY p.id;`

	listRecentPricesSQL = `SELECT
        p.id,
        p.product_id,
        p.brand_id,
        b.name,
        b.description,
        p.price_list,
        p.start_date,
        p.end_date,
        p.priority,
        p.price,
        p.curr
    FROM prices p
    JOIN brands b ON b.id = p.brand_id
    ORDER BY p.id DESC
    LIMIT $1;`

	countPricesSQL = `SELECT COUNT(*) FROM prices;`
)

// PriceWriter defines the management-side write operations. The
// resolver never uses it; prices enter the system through seed and
// administrative tooling only.
type PriceWriter interface {
	UpsertBrand(ctx context.Context, brand pricing.Brand) error
	InsertPrice(ctx context.Context, record pricing.PriceRecord) (int64, error)
}

// PriceLister exposes read operations for the CLI tooling.
type PriceLister interface {
	ListRecentPrices(ctx context.Context, limit int) ([]pricing.PriceRecord, error)
	CountPrices(ctx context.Context) (int64, error)
}

// Store provides PostgreSQL-backed price persistence. It satisfies
// pricing.CandidateStore for the resolver and the writer/lister
// contracts for the tooling.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// EnsureSchema creates the brand and price tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, createSchemaSQL); execErr != nil {
		return fmt.Errorf("create schema: %w", execErr)
	}
	return nil
}

// FindCandidates returns every record stored for the product/brand
// pair, brand data joined, ordered by insertion id. The temporal
// filter is the resolver's job. Any failure is reported as the single
// opaque store-unavailable condition.
func (s *Store) FindCandidates(ctx context.Context, productID, brandID int64) ([]pricing.PriceRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pricing.ErrStoreUnavailable, err)
	}

	rows, queryErr := pool.Query(ctx, listCandidatesSQL, productID, brandID)
	if queryErr != nil {
		return nil, fmt.Errorf("%w: list candidates: %v", pricing.ErrStoreUnavailable, queryErr)
	}
	defer rows.Close()

	records, scanErr := collectPriceRecords(rows)
	if scanErr != nil {
		return nil, fmt.Errorf("%w: %v", pricing.ErrStoreUnavailable, scanErr)
	}
	return records, nil
}

// UpsertBrand persists or updates brand presentation data.
func (s *Store) UpsertBrand(ctx context.Context, brand pricing.Brand) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, upsertBrandSQL, brand.ID, brand.Name, brand.Description); execErr != nil {
		return fmt.Errorf("upsert brand: %w", execErr)
	}
	return nil
}

// InsertPrice stores a new price record and returns its assigned id.
// The window and money invariants are enforced here, on the write
// path, so the read path never sees malformed records.
func (s *Store) InsertPrice(ctx context.Context, record pricing.PriceRecord) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	if err := record.Window.Validate(); err != nil {
		return 0, fmt.Errorf("invalid validity window: %w", err)
	}
	if _, err := pricing.NewMoney(record.Price.Amount, record.Price.Currency); err != nil {
		return 0, fmt.Errorf("invalid price: %w", err)
	}

	var id int64
	scanErr := pool.QueryRow(ctx, insertPriceSQL,
		record.BrandID,
		record.Window.Start,
		record.Window.End,
		record.PriceList,
		record.ProductID,
		record.Priority,
		record.Price.Amount.StringFixed(2),
		record.Price.Currency,
	).Scan(&id)
	if scanErr != nil {
		return 0, fmt.Errorf("insert price: %w", scanErr)
	}
	return id, nil
}

// ListRecentPrices lists the most recently inserted records.
func (s *Store) ListRecentPrices(ctx context.Context, limit int) ([]pricing.PriceRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentPricesSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent prices: %w", queryErr)
	}
	defer rows.Close()

	return collectPriceRecords(rows)
}

// CountPrices counts stored price records.
func (s *Store) CountPrices(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countPricesSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count prices: %w", scanErr)
	}
	return count, nil
}

func collectPriceRecords(rows pgx.Rows) ([]pricing.PriceRecord, error) {
	records := make([]pricing.PriceRecord, 0)
	for rows.Next() {
		record, scanErr := scanPriceRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func scanPriceRecord(rows pgx.Rows) (pricing.PriceRecord, error) {
	var (
		record    pricing.PriceRecord
		amountStr string
	)

	if err := rows.Scan(
		&record.ID,
		&record.ProductID,
		&record.BrandID,
		&record.Brand.Name,
		&record.Brand.Description,
		&record.PriceList,
		&record.Window.Start,
		&record.Window.End,
		&record.Priority,
		&amountStr,
		&record.Price.Currency,
	); err != nil {
		return pricing.PriceRecord{}, err
	}

	record.Brand.ID = record.BrandID

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return pricing.PriceRecord{}, fmt.Errorf("parse price amount: %w", err)
	}
	record.Price.Amount = amount

	return record, nil
}
