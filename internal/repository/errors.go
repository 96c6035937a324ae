package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var ErrNotFound = errors.New("record not found")

// UniquenessConflict is returned when an insert or update hits a unique constraint.
type UniquenessConflict struct {
	Field string
}

func (e *UniquenessConflict) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *UniquenessConflict) FieldName() string { return e.Field }

// mapUniqueViolation turns a Postgres unique violation into a UniquenessConflict
// naming the column, e.g. users_email_key -> email.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	field := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if pgErr.TableName != "" {
		field = strings.TrimPrefix(field, pgErr.TableName+"_")
	} else if i := strings.Index(field, "_"); i >= 0 {
		field = field[i+1:]
	}
	if field == "" {
		field = "record"
	}

	return &UniquenessConflict{Field: field}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
