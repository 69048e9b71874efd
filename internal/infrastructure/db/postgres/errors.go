package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// uniqueConstraints maps the named unique indexes in the schema to the
// domain conflict each violation signals. The database is the authority on
// uniqueness; service-level pre-checks are only early exits.
var uniqueConstraints = map[string]error{
	"users_username_key": domain.ErrUsernameTaken,
	"users_email_key":    domain.ErrEmailTaken,
	"books_isbn_key":     domain.ErrISBNTaken,
}

// translateError converts a driver-level unique violation into its domain
// conflict error. Any other error passes through untouched.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if domainErr, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return domainErr
		}
	}
	return err
}
