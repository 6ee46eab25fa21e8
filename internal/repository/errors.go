package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront/internal/domain"
)

const ordersPrimaryKey = "orders_pkey"

// mapError translates driver errors into domain sentinels, keeping the cause in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == ordersPrimaryKey {
			return fmt.Errorf("%w: %w", domain.ErrDuplicateID, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrDuplicate, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	return err
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
