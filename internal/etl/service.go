package etl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/config"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/log"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/metrics"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/repository"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/blob"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/mq"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

var tracer = otel.Tracer("internal/etl")

const (
	StagePrepare   = "prepare"
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
	StageNotify    = "notify"
)

// Service runs the daily product report: extract, transform, load.
type Service struct {
	cfg         config.Report
	logger      *slog.Logger
	db          db.DB
	health      db.Pinger
	productRepo repository.ProductRepository
	store       blob.Store
	metrics     *metrics.Registry

	producer mq.Producer
	topic    string
	now      func() time.Time
}

// Option customizes a Service built by NewService.
type Option func(*Service)

// WithNotifier makes the service announce every published report on topic.
func WithNotifier(producer mq.Producer, topic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.topic = topic
	}
}

// WithClock overrides the invocation time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a report service. Without WithNotifier no event is
// produced after a report is published.
func NewService(
	cfg config.Report,
	logger *slog.Logger,
	db db.DB,
	health db.Pinger,
	productRepo repository.ProductRepository,
	store blob.Store,
	metrics *metrics.Registry,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:         cfg,
		logger:      logger.With(slog.String("service", "etl")),
		db:          db,
		health:      health,
		productRepo: productRepo,
		store:       store,
		metrics:     metrics,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result describes a completed run.
type Result struct {
	Key      string
	Location string
	Report   model.AggregateReport
}

// Run executes one report run. Errors carry the class of the failing stage
// (see apperr) and no stage is retried.
func (s *Service) Run(ctx context.Context) (Result, error) {
	now := s.now()

	ctx, span := tracer.Start(ctx, "Service.Run")
	defer span.End()

	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		err = apperr.ValidationErr.WrapParent(fmt.Errorf("load report timezone: %w", err))
		return Result{}, s.fail(ctx, span, StagePrepare, err)
	}

	since := now.Add(-s.cfg.Window)

	var products []model.ProductRecord
	if err := s.stage(ctx, StageExtract, func(ctx context.Context) error {
		s.logger.InfoContext(ctx, "extracting products",
			slog.Time("window_start", since), slog.Time("window_end", now))

		var err error
		products, err = s.Extract(ctx, since)
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "extracted products", slog.Int("count", len(products)))
		return nil
	}); err != nil {
		return Result{}, s.fail(ctx, span, StageExtract, err)
	}

	var report model.AggregateReport
	if err := s.stage(ctx, StageTransform, func(ctx context.Context) error {
		s.logger.InfoContext(ctx, "transforming products")

		var err error
		report, err = Transform(products, now)
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "transformed products",
			slog.Int("total_products", report.TotalProducts),
			slog.String("average_price", report.AveragePrice.StringFixed(2)),
			slog.Any("price_ranges", report.PriceRanges),
		)
		return nil
	}); err != nil {
		return Result{}, s.fail(ctx, span, StageTransform, err)
	}

	var key string
	if err := s.stage(ctx, StageLoad, func(ctx context.Context) error {
		s.logger.InfoContext(ctx, "loading report")

		var err error
		key, err = s.Load(ctx, report, now.In(loc))
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "loaded report", slog.String("location", s.store.Location(key)))
		return nil
	}); err != nil {
		return Result{}, s.fail(ctx, span, StageLoad, err)
	}

	s.metrics.ObserveReport(report)
	s.metrics.MarkSuccess(s.now())

	if s.producer != nil {
		// The report is already durable; a lost notification does not fail the run.
		if err := s.stage(ctx, StageNotify, func(ctx context.Context) error {
			return s.notify(ctx, key, report)
		}); err != nil {
			s.logger.ErrorContext(log.WithStage(ctx, StageNotify), "error notifying report published",
				slog.String("topic", s.topic), slog.Any("error", err))
		}
	}

	span.SetStatus(codes.Ok, "")

	return Result{
		Key:      key,
		Location: s.store.Location(key),
		Report:   report,
	}, nil
}

func (s *Service) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(log.WithStage(ctx, name), "Service."+name,
		trace.WithAttributes(attribute.String("stage", name)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveStage(name, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
		return err
	}

	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, stage string, err error) error {
	kind := zerror.KindOf(err)

	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" failed")
	s.metrics.MarkFailure(kind, s.now())

	s.logger.ErrorContext(log.WithStage(ctx, stage), "report run failed",
		slog.String("kind", kind.String()),
		slog.Any("error", err),
	)

	return err
}
