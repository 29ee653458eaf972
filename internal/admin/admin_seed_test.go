package admin_test

import (
	"context"
	"testing"

	"go-directory/internal/admin"
	adminerrors "go-directory/internal/admin/errors"
	adminMock "go-directory/internal/admin/mock"
	"go-directory/internal/credential"
	"go-directory/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()
	hasher := credential.NewHasher(bcrypt.MinCost)

	t.Run("creates missing superadmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMock.NewMockRepository(ctrl)

		repo.EXPECT().GetByEmail(ctx, "root@acme.io").Return(nil, adminerrors.ErrAdminNotFound)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *admin.Admin) error {
				assert.Equal(t, "root@acme.io", a.Email)
				assert.Equal(t, domain.RoleSuperAdmin, a.Role)
				assert.Nil(t, a.CompanyID)
				assert.True(t, hasher.Verify("s3cret", a.PasswordHash))
				return nil
			})

		err := admin.EnsureSuperAdmin(ctx, repo, hasher, " Root@Acme.io ", "s3cret", zap.NewNop())
		assert.NoError(t, err)
	})

	t.Run("existing account untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMock.NewMockRepository(ctrl)

		repo.EXPECT().GetByEmail(ctx, "root@acme.io").Return(&admin.Admin{Email: "root@acme.io"}, nil)

		assert.NoError(t, admin.EnsureSuperAdmin(ctx, repo, hasher, "root@acme.io", "s3cret", zap.NewNop()))
	})

	t.Run("skipped without credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMock.NewMockRepository(ctrl)

		assert.NoError(t, admin.EnsureSuperAdmin(ctx, repo, hasher, "", "", zap.NewNop()))
	})
}
