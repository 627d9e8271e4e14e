package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/apperr"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/validator"
)

// New reads configuration from environment variables and unmarshals them into
// a struct of type T, then validates it against its `validate` tags.
// Returns the populated configuration struct or an error.
func New[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, apperr.ValidationErr.WrapParent(fmt.Errorf("parse env: %w", err))
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return cfg, fmt.Errorf("new validator: %w", err)
	}

	if err := v.Validate(cfg); err != nil {
		return cfg, apperr.ValidationErr.WrapParent(validator.Describe(err))
	}

	return cfg, nil
}
