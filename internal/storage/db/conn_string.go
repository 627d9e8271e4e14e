package db

import (
	"fmt"
	"net/url"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/config"
)

// connectionString builds a PostgreSQL connection URL from config.
func connectionString(cfg config.Postgres) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.DB, sslMode)
}
