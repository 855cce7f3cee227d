package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/panelledger/internal/domain"
)

const (
	pgErrForeignKeyViolation = "23503"
	pgErrUniqueViolation     = "23505"
	pgErrCheckViolation      = "23514"
)

// translateWriteError maps constraint violations raised by INSERT or
// UPDATE to domain errors.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrForeignKeyViolation:
		return fmt.Errorf("%w: %s", missingReference(pgErr.ConstraintName), pgErr.ConstraintName)
	case pgErrUniqueViolation:
		switch pgErr.ConstraintName {
		case "accounts_name_key":
			return domain.ErrAccountNameTaken
		case "users_username_key":
			return domain.ErrUsernameTaken
		}
	case pgErrCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.ConstraintName)
	}

	return err
}

// translateDeleteError maps a RESTRICT violation to ErrReferencedEntityProtected.
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrReferencedEntityProtected, pgErr.TableName)
	}
	return err
}

func missingReference(constraint string) error {
	switch {
	case strings.Contains(constraint, "owner_id"), strings.Contains(constraint, "maker_id"):
		return domain.ErrUserNotFound
	case strings.Contains(constraint, "category_id"):
		return domain.ErrCategoryNotFound
	case strings.Contains(constraint, "account"):
		return domain.ErrAccountNotFound
	default:
		return domain.ErrInvalidInput
	}
}
