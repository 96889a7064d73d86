package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// New reads configuration from environment variables and unmarshals them
// into a struct of type T. Returns the populated configuration struct or an error.
func New[T any]() (T, error) {
	return NewWithOptions[T](env.Options{})
}

// NewWithOptions is New with explicit parser options, e.g. an Environment
// map in tests.
func NewWithOptions[T any](opts env.Options) (T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
