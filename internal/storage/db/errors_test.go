package db_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"foreign key", &pgconn.PgError{Code: "23503"}, true},
		{"not null wrapped", fmt.Errorf("create product: %w", &pgconn.PgError{Code: "23502"}), true},
		{"unique", &pgconn.PgError{Code: "23505"}, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.IsConstraintViolation(tt.err))
		})
	}
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, db.IsNoRows(fmt.Errorf("get category: %w", pgx.ErrNoRows)))
	assert.False(t, db.IsNoRows(errors.New("boom")))
}
