package etl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/config"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/etl"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/log"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/metrics"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/correlationid"
)

var runAt = time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)

type harness struct {
	db       *fakeDB
	repo     *fakeProductRepo
	store    *memoryStore
	producer *fakeProducer
	metrics  *metrics.Registry
	logs     *bytes.Buffer
	svc      *etl.Service
}

func newHarness(cfg config.Report, products []model.ProductRecord) *harness {
	h := &harness{
		db:       &fakeDB{},
		repo:     &fakeProductRepo{products: products},
		store:    newMemoryStore(),
		producer: &fakeProducer{},
		metrics:  metrics.NewRegistry(),
		logs:     &bytes.Buffer{},
	}
	logger := log.New(h.logs, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})
	h.svc = etl.NewService(cfg, logger, h.db, h.db, h.repo, h.store, h.metrics,
		etl.WithNotifier(h.producer, "etl.report.published"),
		etl.WithClock(func() time.Time { return runAt }),
	)
	return h
}

func TestServiceRun(t *testing.T) {
	ctx := correlationid.NewContext(context.Background(), "run-1")

	t.Run("Should extract, transform and load the report", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("29.99", "79.99", "999.99"))

		res, err := h.svc.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, runAt.Add(-24*time.Hour), h.repo.since)
		assert.Equal(t, 1, h.db.acquired)
		assert.Equal(t, 1, h.db.released)

		assert.Equal(t, "etl-reports/daily-product-report-2026-10-19.json", res.Key)
		assert.Equal(t, "mem://reports/etl-reports/daily-product-report-2026-10-19.json", res.Location)
		assert.Equal(t, 3, res.Report.TotalProducts)
		assert.Equal(t, "369.99", res.Report.AveragePrice.StringFixed(2))
		assert.Equal(t, runAt, res.Report.GeneratedAt)

		require.Contains(t, h.store.objects, res.Key)
		var published model.AggregateReport
		require.NoError(t, json.Unmarshal(h.store.objects[res.Key].Body, &published))
		assert.Equal(t, res.Report.PriceRanges, published.PriceRanges)

		assert.Equal(t, 3.0, testutil.ToFloat64(h.metrics.ProductsExtracted))
		assert.Equal(t, float64(runAt.Unix()), testutil.ToFloat64(h.metrics.LastSuccess))

		assert.Contains(t, h.logs.String(), `"msg":"extracted products"`)
		assert.Contains(t, h.logs.String(), `"count":3`)
	})

	t.Run("Should publish an empty report for an empty window", func(t *testing.T) {
		h := newHarness(reportCfg, nil)

		res, err := h.svc.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Report.TotalProducts)
		assert.True(t, res.Report.AveragePrice.IsZero())
		assert.Equal(t, 0, res.Report.PriceRanges.Total())
		assert.Equal(t, 1, h.store.puts)
	})

	t.Run("Should use the configured window and timezone", func(t *testing.T) {
		cfg := reportCfg
		cfg.Window = 6 * time.Hour
		cfg.Timezone = "America/Los_Angeles"
		h := newHarness(cfg, nil)

		res, err := h.svc.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, runAt.Add(-6*time.Hour), h.repo.since)
		// 02:00 UTC on Oct 19 is still Oct 18 in Los Angeles.
		assert.Equal(t, "etl-reports/daily-product-report-2026-10-18.json", res.Key)
	})

	t.Run("Should notify with key and correlation id", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("10.00"))

		res, err := h.svc.Run(ctx)
		require.NoError(t, err)

		require.Len(t, h.producer.msgs, 1)
		msg := h.producer.msgs[0]
		assert.Equal(t, "etl.report.published", msg.Topic)
		assert.Equal(t, "run-1", msg.Headers[correlationid.Header])
		require.NotNil(t, msg.PartitionKey)
		assert.Equal(t, res.Key, *msg.PartitionKey)

		var ev etl.ReportPublishedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		assert.Equal(t, "run-1", ev.RunID)
		assert.Equal(t, res.Key, ev.Key)
		assert.Equal(t, res.Location, ev.Location)
		assert.Equal(t, 1, ev.TotalProducts)
		assert.Equal(t, "10.00", ev.AveragePrice)
	})

	t.Run("Should not fail the run when notification fails", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("10.00"))
		h.producer.err = errors.New("broker down")

		res, err := h.svc.Run(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Key)
		assert.Contains(t, h.logs.String(), "error notifying report published")
	})

	t.Run("Should fail with connection error when the store is unhealthy", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("10.00"))
		h.db.healthErr = errors.New("connection refused")

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ConnectionErr)
		assert.Equal(t, 0, h.repo.calls)
		assert.Equal(t, 0, h.store.puts)
		assert.Contains(t, h.logs.String(), `"stage":"extract"`)
		assert.Equal(t, float64(runAt.Unix()), testutil.ToFloat64(h.metrics.LastFailure.WithLabelValues("connection")))
	})

	t.Run("Should release the connection when the query fails", func(t *testing.T) {
		h := newHarness(reportCfg, nil)
		h.repo.err = errors.New("relation \"products\" does not exist")

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ConnectionErr)
		assert.Equal(t, h.db.acquired, h.db.released)
		assert.Equal(t, 0, h.store.puts)
	})

	t.Run("Should fail with connection error when the transaction cannot begin", func(t *testing.T) {
		h := newHarness(reportCfg, nil)
		h.db.txErr = context.DeadlineExceeded

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ConnectionErr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Should keep the transform class of a malformed row", func(t *testing.T) {
		h := newHarness(reportCfg, nil)
		h.repo.err = apperr.TransformErr.WrapParent(errors.New("numeric is NaN"))

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.TransformErr)
		assert.NotErrorIs(t, err, apperr.ConnectionErr)
	})

	t.Run("Should fail with transform error on a negative price", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("10.00", "-5.00"))

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.TransformErr)
		assert.Equal(t, 0, h.store.puts)
		assert.Empty(t, h.producer.msgs)
		assert.Contains(t, h.logs.String(), `"stage":"transform"`)
	})

	t.Run("Should fail with publish error when the put fails", func(t *testing.T) {
		h := newHarness(reportCfg, productsWithPrices("10.00"))
		h.store.err = errors.New("access denied")

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.PublishErr)
		assert.Empty(t, h.producer.msgs)
		assert.Contains(t, h.logs.String(), `"stage":"load"`)
	})

	t.Run("Should reject an unknown timezone", func(t *testing.T) {
		cfg := reportCfg
		cfg.Timezone = "Mars/Olympus"
		h := newHarness(cfg, nil)

		_, err := h.svc.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ValidationErr)
		assert.Equal(t, 0, h.repo.calls)
		assert.Equal(t, float64(runAt.Unix()), testutil.ToFloat64(h.metrics.LastFailure.WithLabelValues("validation_failed")))
		assert.Contains(t, h.logs.String(), `"stage":"prepare"`)
		assert.Contains(t, h.logs.String(), `"kind":"validation_failed"`)
	})
}
