package config

type Metrics struct {
	PushgatewayURL string `env:"METRICS_PUSHGATEWAY_URL" validate:"omitempty,url"`
	JobName        string `env:"METRICS_JOB_NAME" envDefault:"daily_product_report" validate:"required"`
}
