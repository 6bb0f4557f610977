// Package repository exposes read queries over the pricing catalog. All
// filters are parameterized; table and column names are fixed by the
// versioned schema under migrations/.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
)

// undefined_table: the catalog may be only partially provisioned in
// environments that have not run every migration yet.
const pgUndefinedTable = "42P01"

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}

func dataUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, pricing.ErrDataUnavailable, err)
}
