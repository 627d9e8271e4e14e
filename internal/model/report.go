package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Price bucket labels used in the report's price_ranges object.
const (
	PriceRangeUnder50  = "under_50"
	PriceRange50To100  = "50_to_100"
	PriceRange100To500 = "100_to_500"
	PriceRangeOver500  = "over_500"
)

// PriceRanges counts products per half-open price interval:
// [0,50), [50,100), [100,500), [500,inf).
type PriceRanges struct {
	Under50      int `json:"under_50"`
	From50To100  int `json:"50_to_100"`
	From100To500 int `json:"100_to_500"`
	Over500      int `json:"over_500"`
}

// Inc increments the bucket named by label. Unknown labels are ignored.
func (r *PriceRanges) Inc(label string) {
	switch label {
	case PriceRangeUnder50:
		r.Under50++
	case PriceRange50To100:
		r.From50To100++
	case PriceRange100To500:
		r.From100To500++
	case PriceRangeOver500:
		r.Over500++
	}
}

// Total returns the sum of all bucket counts.
func (r PriceRanges) Total() int {
	return r.Under50 + r.From50To100 + r.From100To500 + r.Over500
}

// AggregateReport is the daily product report published by a run.
type AggregateReport struct {
	TotalProducts int             `json:"total_products"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	PriceRanges   PriceRanges     `json:"price_ranges"`
	Products      []ProductRecord `json:"products"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// Prices are written as JSON numbers rather than decimal strings.
type jsonProduct struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Description *string     `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

type jsonReport struct {
	TotalProducts int           `json:"total_products"`
	AveragePrice  json.Number   `json:"average_price"`
	PriceRanges   PriceRanges   `json:"price_ranges"`
	Products      []jsonProduct `json:"products"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

// MarshalJSON implements [json.Marshaler].
func (r AggregateReport) MarshalJSON() ([]byte, error) {
	products := make([]jsonProduct, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, jsonProduct{
			ID:          p.ID,
			Name:        p.Name,
			Price:       json.Number(p.Price.String()),
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		})
	}

	return json.Marshal(jsonReport{
		TotalProducts: r.TotalProducts,
		AveragePrice:  json.Number(r.AveragePrice.StringFixed(2)),
		PriceRanges:   r.PriceRanges,
		Products:      products,
		GeneratedAt:   r.GeneratedAt,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *AggregateReport) UnmarshalJSON(data []byte) error {
	var raw jsonReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	avg, err := decimal.NewFromString(raw.AveragePrice.String())
	if err != nil {
		return err
	}

	products := make([]ProductRecord, 0, len(raw.Products))
	for _, p := range raw.Products {
		price, err := decimal.NewFromString(p.Price.String())
		if err != nil {
			return err
		}
		products = append(products, ProductRecord{
			ID:          p.ID,
			Name:        p.Name,
			Price:       price,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		})
	}

	*r = AggregateReport{
		TotalProducts: raw.TotalProducts,
		AveragePrice:  avg,
		PriceRanges:   raw.PriceRanges,
		Products:      products,
		GeneratedAt:   raw.GeneratedAt,
	}

	return nil
}
