package config

import "time"

// Kafka configures the optional report-published notification.
// Leaving KAFKA_ADDRESSES empty disables it.
type Kafka struct {
	Addresses      []string      `env:"KAFKA_ADDRESSES" envSeparator:","`
	Topic          string        `env:"KAFKA_TOPIC" envDefault:"etl.report.published" validate:"required"`
	ClientID       string        `env:"KAFKA_CLIENT_ID" envDefault:"daily-product-report"`
	ProduceTimeout time.Duration `env:"KAFKA_PRODUCE_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// Enabled reports whether at least one broker address is configured.
func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
