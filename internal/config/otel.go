package config

// Otel configures tracing. Without OTEL_COLLECTOR_URL spans are recorded
// for log correlation only.
type Otel struct {
	ServiceName    string  `env:"OTEL_SERVICE_NAME" envDefault:"daily-product-report" validate:"required"`
	ServiceVersion string  `env:"OTEL_SERVICE_VERSION" envDefault:"dev"`
	Environment    string  `env:"OTEL_DEPLOYMENT_ENVIRONMENT"`
	CollectorURL   string  `env:"OTEL_COLLECTOR_URL"`
	CollectorAuth  string  `env:"OTEL_COLLECTOR_AUTH"`
	Insecure       bool    `env:"OTEL_INSECURE"`
	TraceIDRatio   float64 `env:"OTEL_TRACE_ID_RATIO" envDefault:"1" validate:"gte=0,lte=1"`

	K8sPodName   string `env:"K8S_POD_NAME"`
	K8sNamespace string `env:"K8S_NAMESPACE"`
}
