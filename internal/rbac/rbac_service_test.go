package rbac_test

import (
	"testing"

	"go-directory/internal/domain"
	"go-directory/internal/rbac"
	"go-directory/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		allowed  bool
	}{
		{"super admin creates tenants", domain.RoleSuperAdmin, domain.ResourceTenant, domain.ActionCreate, true},
		{"super admin inherits employee create", domain.RoleSuperAdmin, domain.ResourceEmployee, domain.ActionCreate, true},
		{"super admin lists companies", domain.RoleSuperAdmin, domain.ResourceCompany, domain.ActionList, true},
		{"company admin cannot create tenants", domain.RoleCompanyAdmin, domain.ResourceTenant, domain.ActionCreate, false},
		{"company admin cannot list companies", domain.RoleCompanyAdmin, domain.ResourceCompany, domain.ActionList, false},
		{"company admin cannot delete companies", domain.RoleCompanyAdmin, domain.ResourceCompany, domain.ActionDelete, false},
		{"company admin onboards", domain.RoleCompanyAdmin, domain.ResourceEmployee, domain.ActionCreate, true},
		{"company admin updates own company", domain.RoleCompanyAdmin, domain.ResourceCompany, domain.ActionUpdate, true},
		{"employee reads own profile", domain.RoleEmployee, domain.ResourceProfile, domain.ActionRead, true},
		{"employee cannot read employees", domain.RoleEmployee, domain.ResourceEmployee, domain.ActionRead, false},
		{"unknown role", domain.Role("owner"), domain.ResourceProfile, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})

			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	t.Run("employee", func(t *testing.T) {
		perms, err := svc.Permissions(domain.RoleEmployee)

		assert.NoError(t, err)
		assert.Equal(t, []rbac.Permission{
			{Resource: domain.ResourceProfile, Action: domain.ActionRead},
			{Resource: domain.ResourceProfile, Action: domain.ActionUpdate},
		}, perms)
	})

	t.Run("super admin includes inherited", func(t *testing.T) {
		perms, err := svc.Permissions(domain.RoleSuperAdmin)

		assert.NoError(t, err)
		assert.Contains(t, perms, rbac.Permission{Resource: domain.ResourceTenant, Action: domain.ActionCreate})
		assert.Contains(t, perms, rbac.Permission{Resource: domain.ResourceEmployee, Action: domain.ActionDelete})
		assert.NotContains(t, perms, rbac.Permission{Resource: domain.ResourceProfile, Action: domain.ActionRead})
	})
}
