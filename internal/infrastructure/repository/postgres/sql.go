package postgres

import (
	"database/sql"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

const uniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// writeError wraps a failed write. Unique violations surface as
// usecase.ErrConflict.
func writeError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return crerr.Wrapf(usecase.ErrConflict, "%s (%s)", op, pqErr.Constraint)
	}
	return crerr.Wrap(err, op)
}

// requireAffected turns an UPDATE or DELETE that touched nothing into an error.
func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return crerr.Wrapf(err, "%s rows affected", op)
	}
	if affected == 0 {
		return crerr.Wrapf(usecase.ErrNotFound, "%s", op)
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullInt64ToPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

// stringArray keeps empty lists as '{}' instead of NULL.
func stringArray(items []string) pq.StringArray {
	if items == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(items)
}
