package companyerrors

import (
	"go-directory/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with the same name already exists",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrCompanyNotEmpty = apperror.New(
		apperror.CodeInvalidState,
		"Company still has employees",
		http.StatusConflict,
	)

	ErrNoCompany = apperror.New(
		apperror.CodeNotFound,
		"You are not linked to a company",
		http.StatusNotFound,
	)

	ErrAdminFieldsForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only a super admin can change the company admin or seat limit",
		http.StatusForbidden,
	)
)
