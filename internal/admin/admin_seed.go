package admin

import (
	"context"
	"errors"
	"strings"

	adminerrors "go-directory/internal/admin/errors"
	"go-directory/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordHasher is satisfied by credential.Hasher.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// EnsureSuperAdmin creates the superAdmin account when no admin owns email.
// An existing account is left untouched.
func EnsureSuperAdmin(ctx context.Context, repo Repository, hasher PasswordHasher, email, password string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L().Named("admin.seed")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logger.Debug("superadmin seeding skipped")
		return nil
	}

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adminerrors.ErrAdminNotFound) {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	a := &Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	}
	if err := repo.Create(ctx, a); err != nil {
		if errors.Is(err, adminerrors.ErrAdminAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info("superadmin seeded", zap.String("admin_id", a.ID.String()))
	return nil
}
