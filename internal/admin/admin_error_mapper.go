package admin

import (
	"errors"

	adminerrors "go-directory/internal/admin/errors"
	"go-directory/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adminerrors.ErrAdminNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_admin_email" {
		return adminerrors.ErrAdminAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return adminerrors.ErrAdminAlreadyExists
	}

	return apperror.StorageUnavailable(err)
}
