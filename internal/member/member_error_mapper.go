package member

import (
	"errors"
	"strings"

	membererrors "go-gym/internal/member/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return membererrors.ErrMemberNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_member_number":
				return membererrors.ErrMemberNumberTaken
			case "uq_member_email":
				return membererrors.ErrEmailTaken
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_member_number") {
		return membererrors.ErrMemberNumberTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_member_email") {
		return membererrors.ErrEmailTaken
	}

	return err
}
