package asseterrors

import (
	"go-directory/internal/shared/apperror"
	"net/http"
)

var (
	ErrBlobNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asset not found",
		http.StatusNotFound,
	)

	ErrUnknownBucket = apperror.New(
		apperror.CodeNotFound,
		"Asset bucket not found",
		http.StatusNotFound,
	)

	ErrUnexpectedField = apperror.New(
		apperror.CodeInvalidInput,
		"Unexpected file field",
		http.StatusBadRequest,
	)

	ErrUnsupportedMediaType = apperror.New(
		apperror.CodeInvalidInput,
		"Only JPEG, PNG, GIF and WEBP images are allowed",
		http.StatusBadRequest,
	)

	ErrTooManyFiles = apperror.New(
		apperror.CodeInvalidInput,
		"Only one file per field is allowed",
		http.StatusBadRequest,
	)
)
