package etl

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
)

var (
	priceFifty       = decimal.NewFromInt(50)
	priceHundred     = decimal.NewFromInt(100)
	priceFiveHundred = decimal.NewFromInt(500)
)

// PriceRange returns the label of the bucket price falls into. Boundaries
// belong to the higher bucket.
func PriceRange(price decimal.Decimal) string {
	switch {
	case price.LessThan(priceFifty):
		return model.PriceRangeUnder50
	case price.LessThan(priceHundred):
		return model.PriceRange50To100
	case price.LessThan(priceFiveHundred):
		return model.PriceRange100To500
	default:
		return model.PriceRangeOver500
	}
}

// Transform builds the report for products. It performs no I/O; generatedAt
// is the only input not derived from products.
func Transform(products []model.ProductRecord, generatedAt time.Time) (model.AggregateReport, error) {
	report := model.AggregateReport{
		TotalProducts: len(products),
		AveragePrice:  decimal.Zero,
		Products:      make([]model.ProductRecord, 0, len(products)),
		GeneratedAt:   generatedAt,
	}

	sum := decimal.Zero
	for _, p := range products {
		if p.Price.IsNegative() {
			return model.AggregateReport{}, apperr.TransformErr.WrapParent(
				fmt.Errorf("product %d has negative price %s", p.ID, p.Price))
		}

		sum = sum.Add(p.Price)
		report.PriceRanges.Inc(PriceRange(p.Price))
		report.Products = append(report.Products, p)
	}

	if len(products) > 0 {
		// DivRound rounds half away from zero, which is half-up for prices.
		report.AveragePrice = sum.DivRound(decimal.NewFromInt(int64(len(products))), 2)
	}

	return report, nil
}
