package attendance

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueActiveViolation detects the uq_attendance_active constraint
// firing under a concurrent double check-in. The loser of the race is
// treated as "already checked in", same as the read path.
func isUniqueActiveViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_active"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_active")
}
