package infra

import (
	_ "embed"
	"fmt"

	"go-directory/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

// DefaultPolicies grants each role its own permissions. superAdmin inherits
// everything companyAdmin may do.
var DefaultPolicies = [][]string{
	{string(domain.RoleSuperAdmin), domain.ResourceTenant, domain.ActionCreate},
	{string(domain.RoleSuperAdmin), domain.ResourceCompany, domain.ActionList},
	{string(domain.RoleSuperAdmin), domain.ResourceCompany, domain.ActionDelete},

	{string(domain.RoleCompanyAdmin), domain.ResourceCompany, domain.ActionRead},
	{string(domain.RoleCompanyAdmin), domain.ResourceCompany, domain.ActionUpdate},
	{string(domain.RoleCompanyAdmin), domain.ResourceEmployee, domain.ActionCreate},
	{string(domain.RoleCompanyAdmin), domain.ResourceEmployee, domain.ActionRead},
	{string(domain.RoleCompanyAdmin), domain.ResourceEmployee, domain.ActionUpdate},
	{string(domain.RoleCompanyAdmin), domain.ResourceEmployee, domain.ActionDelete},

	{string(domain.RoleEmployee), domain.ResourceProfile, domain.ActionRead},
	{string(domain.RoleEmployee), domain.ResourceProfile, domain.ActionUpdate},
}

var DefaultRoleInheritance = [][]string{
	{string(domain.RoleSuperAdmin), string(domain.RoleCompanyAdmin)},
}

// NewEnforcer builds an in-memory enforcer loaded with the default policy.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(DefaultPolicies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(DefaultRoleInheritance); err != nil {
		return nil, fmt.Errorf("add role inheritance: %w", err)
	}
	return e, nil
}
