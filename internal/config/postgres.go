package config

import "time"

type Postgres struct {
	Host     string `env:"POSTGRES_HOST,required" validate:"required"`
	Port     int    `env:"POSTGRES_PORT,required" validate:"gt=0,lte=65535"`
	User     string `env:"POSTGRES_USER,required" validate:"required"`
	Password string `env:"POSTGRES_PASSWORD,required"`
	DB       string `env:"POSTGRES_DB,required" validate:"required"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"prefer"`

	ApplicationName  string        `env:"POSTGRES_APPLICATION_NAME" envDefault:"daily-product-report"`
	ConnectTimeout   time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	StatementTimeout time.Duration `env:"POSTGRES_STATEMENT_TIMEOUT" envDefault:"30s" validate:"gte=0"`

	// The job holds a single connection during extraction, so the pool stays small.
	MaxConns        int32         `env:"POSTGRES_MAX_CONNS" envDefault:"2" validate:"gte=1"`
	MinConns        int32         `env:"POSTGRES_MIN_CONNS" envDefault:"0" validate:"gte=0"`
	MaxConnLifetime time.Duration `env:"POSTGRES_MAX_CONN_LIFETIME" envDefault:"30m"`
	MaxConnIdleTime time.Duration `env:"POSTGRES_MAX_CONN_IDLE_TIME" envDefault:"5m"`
}
