package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-directory/internal/asset"
	assetMock "go-directory/internal/asset/mock"
	"go-directory/internal/company"
	companyerrors "go-directory/internal/company/errors"
	companyMock "go-directory/internal/company/mock"
	"go-directory/internal/domain"
	"go-directory/internal/events"
	"go-directory/internal/messaging/kafka"
	kafkaMock "go-directory/internal/messaging/kafka/mock"
	"go-directory/internal/shared/apperror"
	dbMock "go-directory/internal/shared/database/mock"
	"go-directory/internal/user"
	usererrors "go-directory/internal/user/errors"
	userMock "go-directory/internal/user/mock"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const baseURL = "http://directory.test"

type fakeHasher struct {
	calls int
}

func (f *fakeHasher) Hash(secret string) (string, error) {
	f.calls++
	return "hashed:" + secret, nil
}

type serviceDeps struct {
	tx          *dbMock.MockTransactor
	repo        *userMock.MockRepository
	companyRepo *companyMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
	uploader    *assetMock.MockUploader
	hasher      *fakeHasher
	service     user.Service
}

func newServiceDeps(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	d := &serviceDeps{
		tx:          dbMock.NewMockTransactor(ctrl),
		repo:        userMock.NewMockRepository(ctrl),
		companyRepo: companyMock.NewMockRepository(ctrl),
		outbox:      kafkaMock.NewMockOutboxRepository(ctrl),
		uploader:    assetMock.NewMockUploader(ctrl),
		hasher:      &fakeHasher{},
	}
	d.service = user.NewService(d.tx, d.repo, d.companyRepo, d.outbox, d.hasher, d.uploader, asset.NewResolver(baseURL))
	return d
}

func (d *serviceDeps) expectTx() {
	d.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(*gorm.DB) error) error { return fn(nil) },
	)
}

func superAdmin() domain.Principal {
	return domain.Principal{SubjectID: uuid.New(), Role: domain.RoleSuperAdmin}
}

func companyAdmin(companyID uuid.UUID) domain.Principal {
	return domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin, CompanyID: &companyID}
}

func employee(u *user.User) domain.Principal {
	return u.Principal()
}

func newUser(companyID uuid.UUID) *user.User {
	return &user.User{
		ID:           uuid.New(),
		Email:        "jane@acme.io",
		PasswordHash: "old-hash",
		FirstName:    "Jane",
		Phone:        "5551234",
		Position:     "Engineer",
		CompanyName:  "Acme",
		CompanyID:    &companyID,
		AvatarKey:    asset.DefaultAvatarKey,
		Role:         domain.RoleEmployee,
	}
}

func strPtr(s string) *string { return &s }

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("employee is forbidden", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		_, err := d.service.List(ctx, employee(u), "")

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("maps asset urls", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		p := companyAdmin(companyID)
		u := newUser(companyID)
		u.CoverKey = "1_cover.png"

		d.repo.EXPECT().List(ctx, p, "jan").Return([]user.User{*u}, nil)

		resp, err := d.service.List(ctx, p, " jan ")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, baseURL+"/uploads/images/profile.png", *resp[0].AvatarURL)
		assert.Equal(t, baseURL+"/api/v1/assets/covers/1_cover.png", *resp[0].CoverURL)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("other tenant is forbidden", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())
		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

		_, err := d.service.GetByID(ctx, companyAdmin(uuid.New()), u.ID.String())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("super admin reads any tenant", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())
		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

		resp, err := d.service.GetByID(ctx, superAdmin(), u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
		assert.Equal(t, "employee", resp.Role)
	})

	t.Run("malformed id", func(t *testing.T) {
		d := newServiceDeps(t)

		_, err := d.service.GetByID(ctx, superAdmin(), "42")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non digit phone before any write", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		_, err := d.service.Update(ctx, superAdmin(), u.ID.String(), user.UpdateUserRequest{
			ProfileFields: user.ProfileFields{Phone: strPtr("abc")},
		}, nil)

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("allow-listed fields without password keep the hash", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.expectTx()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.Equal(t, "Janet", got.FirstName)
			assert.Equal(t, "Lead", got.Position)
			assert.Equal(t, "old-hash", got.PasswordHash)
			return nil
		})

		resp, err := d.service.Update(ctx, companyAdmin(companyID), u.ID.String(), user.UpdateUserRequest{
			ProfileFields: user.ProfileFields{FirstName: strPtr("Janet")},
			Position:      strPtr("Lead"),
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "Janet", resp.FirstName)
		assert.Equal(t, 0, d.hasher.calls)
	})

	t.Run("password is rehashed when supplied", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.expectTx()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.Equal(t, "hashed:new-secret-1", got.PasswordHash)
			return nil
		})

		_, err := d.service.Update(ctx, companyAdmin(companyID), u.ID.String(), user.UpdateUserRequest{
			ProfileFields: user.ProfileFields{Password: strPtr("new-secret-1")},
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, 1, d.hasher.calls)
	})

	t.Run("email taken conflicts", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.repo.EXPECT().GetByEmail(ctx, "taken@acme.io").Return(&user.User{ID: uuid.New()}, nil)

		_, err := d.service.Update(ctx, companyAdmin(companyID), u.ID.String(), user.UpdateUserRequest{
			Email: strPtr("Taken@Acme.io"),
		}, nil)

		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})

	t.Run("company admin cannot move employee", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)
		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

		_, err := d.service.Update(ctx, companyAdmin(companyID), u.ID.String(), user.UpdateUserRequest{
			CompanyName: strPtr("Globex"),
		}, nil)

		assert.ErrorIs(t, err, usererrors.ErrCompanyMoveForbidden)
	})

	t.Run("move to unknown company", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())
		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.companyRepo.EXPECT().GetByName(ctx, "Globex").Return(nil, companyerrors.ErrCompanyNotFound)

		_, err := d.service.Update(ctx, superAdmin(), u.ID.String(), user.UpdateUserRequest{
			CompanyName: strPtr("Globex"),
		}, nil)

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("super admin moves employee and maintains membership", func(t *testing.T) {
		d := newServiceDeps(t)
		from := &company.Company{ID: uuid.New(), Name: "Acme"}
		to := &company.Company{ID: uuid.New(), Name: "Globex"}
		u := newUser(from.ID)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.companyRepo.EXPECT().GetByName(ctx, "Globex").Return(to, nil)
		d.companyRepo.EXPECT().GetByID(ctx, from.ID).Return(from, nil)
		d.expectTx()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		d.companyRepo.EXPECT().WithTx(gomock.Any()).Return(d.companyRepo)
		gomock.InOrder(
			d.companyRepo.EXPECT().RemoveEmployee(ctx, from.ID, u.ID).Return(nil),
			d.companyRepo.EXPECT().AppendEmployee(ctx, to.ID, u.ID).Return(nil),
		)

		resp, err := d.service.Update(ctx, superAdmin(), u.ID.String(), user.UpdateUserRequest{
			CompanyName: strPtr("Globex"),
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "Globex", resp.CompanyName)
		assert.Equal(t, to.ID.String(), *resp.CompanyID)
	})

	t.Run("avatar upload replaces key", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)
		files, err := asset.NewFiles(asset.File{
			Field:       asset.FieldAvatar,
			Filename:    "me.webp",
			ContentType: "image/webp",
			Content:     strings.NewReader("webp"),
		})
		assert.NoError(t, err)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.uploader.EXPECT().Upload(ctx, gomock.Any()).Return("1700000000000_me.webp", nil)
		d.expectTx()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := d.service.Update(ctx, companyAdmin(companyID), u.ID.String(), user.UpdateUserRequest{}, files)

		assert.NoError(t, err)
		assert.Equal(t, baseURL+"/api/v1/assets/photos/1700000000000_me.webp", *resp.AvatarURL)
	})
}

func TestService_Update_BlankFields(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  user.UpdateUserRequest
	}{
		{"position", user.UpdateUserRequest{Position: strPtr("   ")}},
		{"company name", user.UpdateUserRequest{CompanyName: strPtr("\t")}},
		{"first name", user.UpdateUserRequest{ProfileFields: user.ProfileFields{FirstName: strPtr("  ")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newServiceDeps(t)

			_, err := d.service.Update(ctx, superAdmin(), uuid.NewString(), tt.req, nil)

			assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("other tenant is forbidden", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())
		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

		err := d.service.Delete(ctx, companyAdmin(uuid.New()), u.ID.String())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("removes membership and records event", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.expectTx()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Delete(ctx, u.ID).Return(nil)
		d.companyRepo.EXPECT().WithTx(gomock.Any()).Return(d.companyRepo)
		d.companyRepo.EXPECT().RemoveEmployee(ctx, companyID, u.ID).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.EmployeeDeleted, e.EventType)
			assert.Equal(t, events.AggregateEmployee, e.AggregateType)
			return nil
		})

		err := d.service.Delete(ctx, companyAdmin(companyID), u.ID.String())

		assert.NoError(t, err)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		d := newServiceDeps(t)
		companyID := uuid.New()
		u := newUser(companyID)
		down := apperror.StorageUnavailable(errors.New("connection refused"))

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(down)

		err := d.service.Delete(ctx, superAdmin(), u.ID.String())

		assert.Equal(t, apperror.CodeOf(down), apperror.CodeOf(err))
	})
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("admin token cannot use self service", func(t *testing.T) {
		d := newServiceDeps(t)

		_, err := d.service.GetProfile(ctx, superAdmin())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("self update saves allow-listed fields", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		d.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
		d.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.Equal(t, pq.StringArray{"en", "id"}, got.Languages)
			assert.Equal(t, "09:00", got.WorkingHoursStart)
			return nil
		})

		resp, err := d.service.UpdateProfile(ctx, employee(u), user.UpdateProfileRequest{
			ProfileFields: user.ProfileFields{
				Languages:         []string{"en", "id"},
				WorkingHoursStart: strPtr("09:00"),
			},
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "09:00", resp.WorkingHours.Start)
	})

	t.Run("whitespace first name rejected", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		_, err := d.service.UpdateProfile(ctx, employee(u), user.UpdateProfileRequest{
			ProfileFields: user.ProfileFields{FirstName: strPtr("   ")},
		}, nil)

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("invalid website rejected", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		_, err := d.service.UpdateProfile(ctx, employee(u), user.UpdateProfileRequest{
			ProfileFields: user.ProfileFields{Website: strPtr("not a url")},
		}, nil)

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})
}

func TestService_ProfileCard(t *testing.T) {
	ctx := context.Background()

	t.Run("includes company cover", func(t *testing.T) {
		d := newServiceDeps(t)
		comp := &company.Company{ID: uuid.New(), Name: "Acme", CoverKey: "9_cover.jpg"}
		u := newUser(comp.ID)

		d.repo.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil)
		d.companyRepo.EXPECT().GetByID(gomock.Any(), comp.ID).Return(comp, nil)

		card, err := d.service.ProfileCard(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, baseURL+"/api/v1/assets/covers/9_cover.jpg", *card.CompanyCoverURL)
	})

	t.Run("orphaned company reference tolerated", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())

		d.repo.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil)
		d.companyRepo.EXPECT().GetByID(gomock.Any(), *u.CompanyID).Return(nil, companyerrors.ErrCompanyNotFound)

		card, err := d.service.ProfileCard(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Nil(t, card.CompanyCoverURL)
	})

	t.Run("unknown user", func(t *testing.T) {
		d := newServiceDeps(t)
		id := uuid.New()
		d.repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, usererrors.ErrUserNotFound)

		_, err := d.service.ProfileCard(ctx, id.String())

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("every read reflects the current company", func(t *testing.T) {
		d := newServiceDeps(t)
		comp := &company.Company{ID: uuid.New(), Name: "Acme", CoverKey: "1_old.jpg"}
		before := newUser(comp.ID)
		after := *before
		after.CompanyName = "Acme Corp"
		renamed := *comp
		renamed.Name = "Acme Corp"
		renamed.CoverKey = "2_new.jpg"

		gomock.InOrder(
			d.repo.EXPECT().GetByID(gomock.Any(), before.ID).Return(before, nil),
			d.companyRepo.EXPECT().GetByID(gomock.Any(), comp.ID).Return(comp, nil),
			d.repo.EXPECT().GetByID(gomock.Any(), before.ID).Return(&after, nil),
			d.companyRepo.EXPECT().GetByID(gomock.Any(), comp.ID).Return(&renamed, nil),
		)

		first, err := d.service.ProfileCard(ctx, before.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Acme", first.User.CompanyName)

		second, err := d.service.ProfileCard(ctx, before.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Acme Corp", second.User.CompanyName)
		assert.Equal(t, baseURL+"/api/v1/assets/covers/2_new.jpg", *second.CompanyCoverURL)
	})

	t.Run("cancelled caller does not abort the shared load", func(t *testing.T) {
		d := newServiceDeps(t)
		u := newUser(uuid.New())
		u.CompanyID = nil
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		d.repo.EXPECT().GetByID(gomock.Any(), u.ID).DoAndReturn(func(c context.Context, _ uuid.UUID) (*user.User, error) {
			if err := c.Err(); err != nil {
				return nil, err
			}
			return u, nil
		})

		card, err := d.service.ProfileCard(cancelled, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), card.User.ID)
	})
}

func TestService_Roster(t *testing.T) {
	ctx := context.Background()

	t.Run("cross tenant roster denied", func(t *testing.T) {
		d := newServiceDeps(t)

		_, err := d.service.Roster(ctx, companyAdmin(uuid.New()), uuid.NewString())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("keeps membership order", func(t *testing.T) {
		d := newServiceDeps(t)
		first, second := newUser(uuid.Nil), newUser(uuid.Nil)
		comp := &company.Company{
			ID:          uuid.New(),
			Name:        "Acme",
			EmployeeIDs: pq.StringArray{first.ID.String(), second.ID.String()},
		}

		d.companyRepo.EXPECT().GetByID(ctx, comp.ID).Return(comp, nil)
		d.repo.EXPECT().FindByIDs(ctx, []string(comp.EmployeeIDs)).Return([]user.User{*second, *first}, nil)

		roster, err := d.service.Roster(ctx, companyAdmin(comp.ID), comp.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Acme", roster.CompanyName)
		assert.Nil(t, roster.CompanyCoverURL)
		assert.Equal(t, first.ID.String(), roster.Employees[0].ID)
		assert.Equal(t, second.ID.String(), roster.Employees[1].ID)
	})
}
