package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"price-resolution-api/internal/pricing"
)

// timeLayout is the wire format for every timestamp in the API, a
// naive local datetime with no zone designator.
const timeLayout = "2006-01-02 15:04:05"

// apiTime marshals time values using timeLayout.
type apiTime struct {
	time.Time
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return fmt.Errorf("timestamp is required")
	}
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return fmt.Errorf("timestamp must match %q: %w", timeLayout, err)
	}
	t.Time = parsed
	return nil
}

func (t apiTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(timeLayout) + `"`), nil
}

type findPricesRequest struct {
	StartDate *apiTime `json:"startDate" binding:"required"`
	ProductID *int64   `json:"productId" binding:"required,gt=0"`
	BrandID   *int64   `json:"brandId" binding:"required,gt=0"`
}

type brandResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type priceResponse struct {
	ProductID int64           `json:"productId"`
	Brand     brandResponse   `json:"brand"`
	PriceList int             `json:"priceList"`
	StartDate apiTime         `json:"startDate"`
	EndDate   apiTime         `json:"endDate"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
}

func toPriceResponse(record pricing.PriceRecord) priceResponse {
	return priceResponse{
		ProductID: record.ProductID,
		Brand: brandResponse{
			ID:          record.Brand.ID,
			Name:        record.Brand.Name,
			Description: record.Brand.Description,
		},
		PriceList: record.PriceList,
		StartDate: apiTime{record.Window.Start},
		EndDate:   apiTime{record.Window.End},
		Price:     record.Price.Amount,
		Currency:  record.Price.Currency,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
