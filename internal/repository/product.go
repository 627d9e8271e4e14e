package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/ptr"
)

const listProductsCreatedSinceSQL = `
	SELECT id, name, price, description, created_at
	FROM products
	WHERE created_at >= $1
	ORDER BY created_at DESC
`

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	// ListProductsCreatedSince returns products created at or after since,
	// newest first.
	ListProductsCreatedSince(ctx context.Context, since time.Time) ([]model.ProductRecord, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

type productRow struct {
	ID          int64
	Name        string
	Price       pgtype.Numeric
	Description pgtype.Text
	CreatedAt   time.Time
}

func (r productRepository) ListProductsCreatedSince(ctx context.Context, since time.Time) ([]model.ProductRecord, error) {
	rows, err := r.db.Query(ctx, listProductsCreatedSinceSQL, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query products created since: %w", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect product rows: %w", err)
	}

	products := make([]model.ProductRecord, 0, len(productRows))
	for _, row := range productRows {
		product, err := productRowToModelProduct(row)
		if err != nil {
			return nil, fmt.Errorf("convert product %d to model product: %w", row.ID, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func productRowToModelProduct(row productRow) (model.ProductRecord, error) {
	price, err := numericToDecimal(row.Price)
	if err != nil {
		return model.ProductRecord{}, apperr.TransformErr.WrapParent(fmt.Errorf("price: %w", err))
	}

	var description *string
	if row.Description.Valid {
		description = ptr.New(row.Description.String)
	}

	return model.ProductRecord{
		ID:          row.ID,
		Name:        row.Name,
		Price:       price,
		Description: description,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	switch {
	case !n.Valid:
		return decimal.Decimal{}, errors.New("null numeric")
	case n.NaN:
		return decimal.Decimal{}, errors.New("numeric is NaN")
	case n.InfinityModifier != pgtype.Finite:
		return decimal.Decimal{}, errors.New("numeric is infinite")
	case n.Int == nil:
		return decimal.Zero, nil
	}

	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
