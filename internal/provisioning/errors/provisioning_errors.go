package provisioningerrors

import (
	"errors"
	"fmt"
	"net/http"

	"go-directory/internal/shared/apperror"

	"github.com/google/uuid"
)

var (
	ErrOwnCompanyOnly = apperror.New(
		apperror.CodeForbidden,
		"Company admins can only onboard employees into their own company",
		http.StatusForbidden,
	)

	ErrNotLinkedToCompany = apperror.New(
		apperror.CodeForbidden,
		"Your admin account is not linked to a company",
		http.StatusForbidden,
	)
)

// PartialBootstrapError reports a tenant bootstrap that stopped after some
// rows were written. The created ids are exposed so the caller can clean up.
type PartialBootstrapError struct {
	CompanyID *uuid.UUID
	AdminID   *uuid.UUID
	cause     *apperror.AppError
}

// NewPartialBootstrapError keeps the code and status of err and adds the
// ids of whatever was created to its details.
func NewPartialBootstrapError(companyID, adminID *uuid.UUID, err error) *PartialBootstrapError {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(err, apperror.ErrInternal.Code, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
	}

	details := map[string]any{"partial": true}
	if companyID != nil {
		details["company_id"] = companyID.String()
	}
	if adminID != nil {
		details["admin_id"] = adminID.String()
	}
	if appErr.Details != nil {
		details["cause"] = appErr.Details
	}

	return &PartialBootstrapError{
		CompanyID: companyID,
		AdminID:   adminID,
		cause:     appErr.WithDetails(details),
	}
}

func (e *PartialBootstrapError) Error() string {
	return fmt.Sprintf("tenant bootstrap partially applied (company=%s admin=%s): %v", idString(e.CompanyID), idString(e.AdminID), e.cause)
}

func (e *PartialBootstrapError) Unwrap() error {
	return e.cause
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return "none"
	}
	return id.String()
}
