package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/config"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/etl"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/log"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/metrics"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/repository"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/blob"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/mq"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/telemetry"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/cmdutil"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/correlationid"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running report job: %v\n", err)
		os.Exit(cmdutil.ExitCode(err))
	}
}

func run() error {
	ctx, cancel := cmdutil.InterruptContext(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Storage  config.Storage
		Report   config.Report
		Kafka    config.Kafka
		Metrics  config.Metrics
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("error generating run id: %w", err)
	}
	ctx = correlationid.NewContext(ctx, runID.String())

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	registry := metrics.NewRegistry()
	if cfg.Metrics.PushgatewayURL != "" {
		defer func() {
			if err := registry.Push(context.WithoutCancel(ctx), cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName); err != nil {
				logger.WarnContext(ctx, "error pushing metrics", slog.Any("error", err))
			}
		}()
	}

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		registry.MarkFailure(zerror.KindConnection, time.Now())
		return apperr.ConnectionErr.WrapParent(fmt.Errorf("error creating pgx pool: %w", err))
	}
	defer pgxPool.Close()

	store, err := blob.NewStore(ctx, cfg.Storage)
	if err != nil {
		registry.MarkFailure(zerror.KindPublish, time.Now())
		return apperr.PublishErr.WrapParent(fmt.Errorf("error creating object store: %w", err))
	}

	var opts []etl.Option
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			logger.WarnContext(ctx, "report notifications disabled", slog.Any("error", err))
		} else {
			defer kafkaProducer.Close(context.WithoutCancel(ctx))
			opts = append(opts, etl.WithNotifier(kafkaProducer, cfg.Kafka.Topic))
		}
	}

	dbClient := db.NewClient(pgxPool)
	productRepository := repository.NewProductRepository(dbClient)

	svc := etl.NewService(cfg.Report, logger, dbClient, dbClient, productRepository, store, registry, opts...)

	logger.InfoContext(ctx, "daily product report started", slog.String("bucket", cfg.Storage.Bucket))

	res, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running daily product report: %w", err)
	}

	logger.InfoContext(ctx, "daily product report completed",
		slog.String("key", res.Key),
		slog.String("location", res.Location),
	)
	fmt.Printf("report available at: %s\n", res.Location)

	return nil
}
