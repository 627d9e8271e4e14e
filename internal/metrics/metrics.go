package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

// Registry holds the gauges describing the last report run. A batch job has
// no scrape endpoint, so the registry is pushed to a Pushgateway at exit.
type Registry struct {
	reg *prometheus.Registry

	ProductsExtracted prometheus.Gauge
	AveragePrice      prometheus.Gauge
	PriceRange        *prometheus.GaugeVec
	StageDuration     *prometheus.GaugeVec
	LastSuccess       prometheus.Gauge
	LastFailure       *prometheus.GaugeVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	extracted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "etl_report_products_extracted",
		Help: "Products read from the store in the last run.",
	})
	avg := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "etl_report_average_price",
		Help: "Average product price in the last published report.",
	})
	priceRange := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etl_report_price_range_products",
		Help: "Products per price range in the last published report.",
	}, []string{"range"})
	stage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etl_report_stage_duration_seconds",
		Help: "Duration of each stage in the last run.",
	}, []string{"stage"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "etl_report_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run.",
	})
	lastFailure := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etl_report_last_failure_timestamp_seconds",
		Help: "Unix time of the last failed run, by error kind.",
	}, []string{"kind"})

	r.MustRegister(extracted, avg, priceRange, stage, lastSuccess, lastFailure)
	return &Registry{
		reg:               r,
		ProductsExtracted: extracted,
		AveragePrice:      avg,
		PriceRange:        priceRange,
		StageDuration:     stage,
		LastSuccess:       lastSuccess,
		LastFailure:       lastFailure,
	}
}

func (r *Registry) ObserveStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Set(d.Seconds())
}

func (r *Registry) ObserveReport(report model.AggregateReport) {
	r.ProductsExtracted.Set(float64(report.TotalProducts))
	r.AveragePrice.Set(report.AveragePrice.InexactFloat64())
	r.PriceRange.WithLabelValues(model.PriceRangeUnder50).Set(float64(report.PriceRanges.Under50))
	r.PriceRange.WithLabelValues(model.PriceRange50To100).Set(float64(report.PriceRanges.From50To100))
	r.PriceRange.WithLabelValues(model.PriceRange100To500).Set(float64(report.PriceRanges.From100To500))
	r.PriceRange.WithLabelValues(model.PriceRangeOver500).Set(float64(report.PriceRanges.Over500))
}

func (r *Registry) MarkSuccess(at time.Time) {
	r.LastSuccess.Set(float64(at.Unix()))
}

func (r *Registry) MarkFailure(kind zerror.Kind, at time.Time) {
	r.LastFailure.WithLabelValues(kind.String()).Set(float64(at.Unix()))
}

// Push replaces the metrics of job on the Pushgateway at url.
func (r *Registry) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
