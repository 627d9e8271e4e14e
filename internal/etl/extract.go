package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

// Extract returns the products created at or after since, newest first. The
// read runs in a read-only snapshot whose connection goes back to the
// pool before Extract returns.
func (s *Service) Extract(ctx context.Context, since time.Time) ([]model.ProductRecord, error) {
	if err := s.health.Ping(ctx); err != nil {
		return nil, classify(fmt.Errorf("health check: %w", err), apperr.ConnectionErr)
	}

	var products []model.ProductRecord
	if err := s.db.ReadSnapshot(ctx, func(db db.DB) error {
		var err error
		products, err = s.productRepo.
			WithDB(db).
			ListProductsCreatedSince(ctx, since)
		if err != nil {
			return fmt.Errorf("product repository list products created since: %w", err)
		}
		return nil
	}); err != nil {
		return nil, classify(err, apperr.ConnectionErr)
	}

	return products, nil
}

// classify wraps err in sentinel unless something below already classified it.
func classify(err error, sentinel zerror.ZError) error {
	if zerror.KindOf(err) != zerror.KindUnknown {
		return err
	}
	return sentinel.WrapParent(err)
}
