package etl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/mq"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/correlationid"
)

// ReportPublishedEvent announces a newly published report.
type ReportPublishedEvent struct {
	RunID         string    `json:"run_id,omitempty"`
	Key           string    `json:"key"`
	Location      string    `json:"location"`
	TotalProducts int       `json:"total_products"`
	AveragePrice  string    `json:"average_price"`
	GeneratedAt   time.Time `json:"generated_at"`
}

func (s *Service) notify(ctx context.Context, key string, report model.AggregateReport) error {
	runID, _ := correlationid.FromContext(ctx)
	ev := ReportPublishedEvent{
		RunID:         runID,
		Key:           key,
		Location:      s.store.Location(key),
		TotalProducts: report.TotalProducts,
		AveragePrice:  report.AveragePrice.StringFixed(2),
		GeneratedAt:   report.GeneratedAt,
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal report published event: %w", err)
	}

	if err := s.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        s.topic,
		Headers:      mq.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &key,
	}); err != nil {
		return fmt.Errorf("produce report published event: %w", err)
	}

	return nil
}
