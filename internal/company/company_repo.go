package company

import (
	"context"

	companyerrors "go-directory/internal/company/errors"
	"go-directory/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	EnsureByName(ctx context.Context, c *Company) (*Company, bool, error)
	List(ctx context.Context, nameFilter string) ([]Company, error)
	AppendEmployee(ctx context.Context, id, employeeID uuid.UUID) error
	RemoveEmployee(ctx context.Context, id, employeeID uuid.UUID) error
	LinkAdmin(ctx context.Context, id, adminID uuid.UUID) error
	UpdateDetails(ctx context.Context, c *Company) error
	SyncMemberCompanyName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	if c.EmployeeIDs == nil {
		c.EmployeeIDs = []string{}
	}
	return mapRepositoryError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &c, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Company, error) {
	var c Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &c, nil
}

// EnsureByName inserts c unless a company with the same name exists, then
// returns the stored row. created is false when another writer got there first.
func (r *repository) EnsureByName(ctx context.Context, c *Company) (*Company, bool, error) {
	if c.EmployeeIDs == nil {
		c.EmployeeIDs = []string{}
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(c)
	if res.Error != nil {
		return nil, false, mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 1 {
		return c, true, nil
	}

	existing, err := r.GetByName(ctx, c.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *repository) List(ctx context.Context, nameFilter string) ([]Company, error) {
	var companies []Company
	q := r.db.WithContext(ctx).Order("name ASC")
	if nameFilter != "" {
		q = q.Where("name ILIKE ?", database.ContainsPattern(nameFilter))
	}
	if err := q.Find(&companies).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return companies, nil
}

// AppendEmployee adds employeeID to the end of the membership list. Adding an
// existing member is a no-op.
func (r *repository) AppendEmployee(ctx context.Context, id, employeeID uuid.UUID) error {
	member := employeeID.String()
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ? AND NOT (? = ANY(employee_ids))", id, member).
		Update("employee_ids", gorm.Expr("array_append(employee_ids, ?)", member))
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

func (r *repository) RemoveEmployee(ctx context.Context, id, employeeID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		Update("employee_ids", gorm.Expr("array_remove(employee_ids, ?)", employeeID.String()))
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}

func (r *repository) LinkAdmin(ctx context.Context, id, adminID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		Update("admin_id", adminID)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}

// UpdateDetails writes name and asset keys only. Membership is never
// rewritten from a possibly stale copy.
func (r *repository) UpdateDetails(ctx context.Context, c *Company) error {
	res := r.db.WithContext(ctx).
		Model(c).
		Select("name", "logo_key", "cover_key", "updated_at").
		Updates(c)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}

// SyncMemberCompanyName refreshes the company name cached on member users.
func (r *repository) SyncMemberCompanyName(ctx context.Context, id uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).
		Table("users").
		Where("company_id = ?", id).
		Updates(map[string]any{"company_name": name, "updated_at": gorm.Expr("NOW()")}).Error
	return mapRepositoryError(err)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}

func (r *repository) ensureExists(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Company{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return mapRepositoryError(err)
	}
	if n == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}
