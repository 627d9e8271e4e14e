package etl

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/blob"
)

const reportContentType = "application/json"

// ReportKey returns the object key of the report for the calendar date of
// runDate, in runDate's location.
func ReportKey(prefix string, runDate time.Time) string {
	return path.Join(prefix, fmt.Sprintf("daily-product-report-%s.json", runDate.Format(time.DateOnly)))
}

// EncodeReport renders report as two-space indented JSON.
func EncodeReport(report model.AggregateReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// Load publishes report under the key for runDate, replacing any report
// already stored for that date, and returns the key.
func (s *Service) Load(ctx context.Context, report model.AggregateReport, runDate time.Time) (string, error) {
	body, err := EncodeReport(report)
	if err != nil {
		return "", apperr.PublishErr.WrapParent(fmt.Errorf("encode report: %w", err))
	}

	key := ReportKey(s.cfg.KeyPrefix, runDate)
	if err := s.store.Put(ctx, blob.Object{
		Key:         key,
		Body:        body,
		ContentType: reportContentType,
	}); err != nil {
		return "", apperr.PublishErr.WrapParent(fmt.Errorf("put %s: %w", key, err))
	}

	return key, nil
}
