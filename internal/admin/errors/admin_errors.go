package adminerrors

import (
	"go-directory/internal/shared/apperror"
	"net/http"
)

var (
	ErrAdminNotFound = apperror.New(
		apperror.CodeNotFound,
		"Admin not found",
		http.StatusNotFound,
	)

	ErrAdminAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An admin with this email already exists",
		http.StatusConflict,
	)

	ErrSeatLimitExceeded = apperror.New(
		apperror.CodeLimitExceeded,
		"Employee seat limit reached",
		http.StatusUnprocessableEntity,
	)
)
