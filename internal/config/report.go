package config

import "time"

type Report struct {
	Window    time.Duration `env:"REPORT_WINDOW" envDefault:"24h" validate:"gt=0"`
	KeyPrefix string        `env:"REPORT_KEY_PREFIX" envDefault:"etl-reports" validate:"required"`
	Timezone  string        `env:"REPORT_TIMEZONE" envDefault:"UTC" validate:"timezone"`
}
