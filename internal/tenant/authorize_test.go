package tenant_test

import (
	"regexp"
	"testing"

	"go-directory/internal/domain"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestAuthorize(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()

	super := domain.Principal{SubjectID: uuid.New(), Role: domain.RoleSuperAdmin}
	adminA := domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin, CompanyID: &companyA}
	employeeA := domain.Principal{SubjectID: uuid.New(), Role: domain.RoleEmployee, CompanyID: &companyA}

	tests := []struct {
		name    string
		p       domain.Principal
		target  *uuid.UUID
		allowed bool
	}{
		{"superadmin any company", super, &companyB, true},
		{"superadmin companyless target", super, nil, true},
		{"company admin own company", adminA, &companyA, true},
		{"company admin other company", adminA, &companyB, false},
		{"company admin companyless target", adminA, nil, false},
		{"employee never passes", employeeA, &companyA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tenant.Authorize(tt.p, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperror.ErrForbidden)
		})
	}
}

func TestScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	companyID := uuid.New()
	admin := domain.Principal{Role: domain.RoleCompanyAdmin, CompanyID: &companyID}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE company_id = $1`)).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var rows []map[string]any
	err = gdb.Table("users").Scopes(tenant.Scope(admin)).Find(&rows).Error
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
