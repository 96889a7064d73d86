package memory

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// The memory store reports constraint failures as the same *pgconn.PgError
// values Postgres would, so callers classify them identically.

func notNullViolation(table, column string) error {
	return &pgconn.PgError{
		Code:       "23502",
		Message:    fmt.Sprintf("null value in column %q of relation %q violates not-null constraint", column, table),
		TableName:  table,
		ColumnName: column,
	}
}

func foreignKeyViolation(table, constraint string) error {
	return &pgconn.PgError{
		Code:           "23503",
		Message:        fmt.Sprintf("insert or update on table %q violates foreign key constraint %q", table, constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}
