package user

import (
	"context"

	"go-directory/internal/domain"
	"go-directory/internal/shared/database"
	"go-directory/internal/tenant"
	usererrors "go-directory/internal/user/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, p domain.Principal, nameFilter string) ([]User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	Update(ctx context.Context, u *User) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

// List returns the users p may see, optionally narrowed by a case-insensitive
// substring of the first name.
func (r *repository) List(ctx context.Context, p domain.Principal, nameFilter string) ([]User, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(p))
	if nameFilter != "" {
		q = q.Where("first_name ILIKE ?", database.ContainsPattern(nameFilter))
	}

	var users []User
	if err := q.Order("first_name ASC, created_at ASC").Find(&users).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return users, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return users, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return mapRepositoryError(r.db.WithContext(ctx).Save(u).Error)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return usererrors.ErrUserNotFound
	}
	return nil
}
