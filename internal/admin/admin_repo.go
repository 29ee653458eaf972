package admin

import (
	"context"

	adminerrors "go-directory/internal/admin/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin_repo.go -destination=mock/admin_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Admin, error)
	Update(ctx context.Context, id uuid.UUID, changes Changes) error
	DecrementSeat(ctx context.Context, id uuid.UUID) error
	ReleaseSeat(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, a *Admin) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(a).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	var a Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &a, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Admin, error) {
	var admins []Admin
	if len(ids) == 0 {
		return admins, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return admins, nil
}

// Changes lists the admin columns a caller may rewrite. Nil fields keep their
// stored value, so an email edit never writes the seat counter.
type Changes struct {
	Email             *string
	EmployeeSeatLimit *int
}

func (c Changes) columns() map[string]any {
	cols := map[string]any{}
	if c.Email != nil {
		cols["email"] = *c.Email
	}
	if c.EmployeeSeatLimit != nil {
		cols["employee_seat_limit"] = *c.EmployeeSeatLimit
	}
	return cols
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	cols := changes.columns()
	if len(cols) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Admin{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return adminerrors.ErrAdminNotFound
	}
	return nil
}

// DecrementSeat consumes one seat only while seats remain. The check and the
// write are one statement, so concurrent callers can never overdraw.
func (r *repository) DecrementSeat(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ? AND employee_seat_limit > 0", id).
		Update("employee_seat_limit", gorm.Expr("employee_seat_limit - 1"))
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return adminerrors.ErrSeatLimitExceeded
	}
	return nil
}

// ReleaseSeat returns a seat taken by DecrementSeat.
func (r *repository) ReleaseSeat(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", id).
		Update("employee_seat_limit", gorm.Expr("employee_seat_limit + 1"))
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return adminerrors.ErrAdminNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return mapRepositoryError(r.db.WithContext(ctx).Delete(&Admin{}, "id = ?", id).Error)
}
