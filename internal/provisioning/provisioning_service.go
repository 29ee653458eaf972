package provisioning

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-directory/internal/admin"
	adminerrors "go-directory/internal/admin/errors"
	"go-directory/internal/asset"
	"go-directory/internal/company"
	companyerrors "go-directory/internal/company/errors"
	"go-directory/internal/domain"
	"go-directory/internal/events"
	"go-directory/internal/messaging/kafka"
	provisioningerrors "go-directory/internal/provisioning/errors"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/shared/database"
	"go-directory/internal/user"
	usererrors "go-directory/internal/user/errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PasswordHasher is satisfied by credential.Hasher.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

//go:generate mockgen -source=provisioning_service.go -destination=mock/provisioning_service_mock.go -package=mock
type Service interface {
	CreateTenant(ctx context.Context, p domain.Principal, req CreateTenantRequest, files *asset.Files) (*company.CompanyResponse, error)
	OnboardEmployee(ctx context.Context, p domain.Principal, req OnboardEmployeeRequest, files *asset.Files) (*OnboardEmployeeResponse, error)
}

type service struct {
	tx          database.Transactor
	companyRepo company.Repository
	adminRepo   admin.Repository
	userRepo    user.Repository
	outbox      kafka.OutboxRepository
	hasher      PasswordHasher
	uploader    asset.Uploader
	resolver    *asset.Resolver
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	tx database.Transactor,
	companyRepo company.Repository,
	adminRepo admin.Repository,
	userRepo user.Repository,
	outbox kafka.OutboxRepository,
	hasher PasswordHasher,
	uploader asset.Uploader,
	resolver *asset.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("provisioning.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("provisioning.service")
	}
	return &service{
		tx:          tx,
		companyRepo: companyRepo,
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		outbox:      outbox,
		hasher:      hasher,
		uploader:    uploader,
		resolver:    resolver,
		now:         time.Now,
		logger:      l,
	}
}

// CreateTenant bootstraps a company and its companyAdmin and links them.
func (s *service) CreateTenant(
	ctx context.Context,
	p domain.Principal,
	req CreateTenantRequest,
	files *asset.Files,
) (*company.CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !p.IsSuperAdmin() {
		return nil, apperror.ErrForbidden
	}
	if err := apperror.ValidateStruct(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.CompanyName)
	if err := s.ensureTenantFree(ctx, email, name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", http.StatusInternalServerError)
	}

	comp := &company.Company{ID: uuid.New(), Name: name, EmployeeIDs: pq.StringArray{}}
	var blobs compensations
	if comp.LogoKey, err = s.upload(ctx, files, asset.FieldLogo, &blobs); err != nil {
		return nil, err
	}
	if comp.CoverKey, err = s.upload(ctx, files, asset.FieldCover, &blobs); err != nil {
		blobs.run(ctx, l)
		return nil, err
	}

	adm := &admin.Admin{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      hash,
		Role:              domain.RoleCompanyAdmin,
		CompanyID:         &comp.ID,
		EmployeeSeatLimit: *req.EmployeeLimit,
	}

	event, err := kafka.NewOutboxEvent(ctx, events.AggregateCompany, comp.ID.String(), events.TenantCreated, events.DirectoryLifecycleTopic,
		events.TenantCreatedEvent{
			EventType:     events.TenantCreated,
			CompanyID:     comp.ID.String(),
			CompanyName:   comp.Name,
			AdminID:       adm.ID.String(),
			AdminEmail:    adm.Email,
			EmployeeLimit: adm.EmployeeSeatLimit,
			CreatedBy:     p.SubjectID.String(),
			OccurredAt:    s.now().UTC(),
		})
	if err != nil {
		blobs.run(ctx, l)
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to record tenant creation", http.StatusInternalServerError)
	}

	if s.tx.Transactional() {
		err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
			companyRepo := s.companyRepo.WithTx(tx)
			if err := companyRepo.Create(ctx, comp); err != nil {
				return err
			}
			if err := s.adminRepo.WithTx(tx).Create(ctx, adm); err != nil {
				return err
			}
			if err := companyRepo.LinkAdmin(ctx, comp.ID, adm.ID); err != nil {
				return err
			}
			return s.outbox.WithTx(tx).Create(ctx, event)
		})
	} else {
		err = s.bootstrapConcurrently(ctx, comp, adm, event)
	}
	if err != nil {
		l.Warn("create tenant failed",
			zap.String("company_name", comp.Name),
			zap.String("admin_email", adm.Email),
			zap.Error(err),
		)
		if !companyPersisted(err) {
			blobs.run(ctx, l)
		}
		return nil, err
	}

	comp.AdminID = &adm.ID
	l.Info("tenant created",
		zap.String("company_id", comp.ID.String()),
		zap.String("admin_id", adm.ID.String()),
		zap.Int("employee_limit", adm.EmployeeSeatLimit),
	)
	return company.ToResponse(comp, adm, s.resolver), nil
}

// bootstrapConcurrently writes the company and the admin side by side, then
// links them. Nothing is rolled back; a failure after any write is reported
// as a PartialBootstrapError naming what exists.
func (s *service) bootstrapConcurrently(ctx context.Context, comp *company.Company, adm *admin.Admin, event kafka.OutboxEvent) error {
	var (
		g          errgroup.Group
		companyErr error
		adminErr   error
	)
	g.Go(func() error {
		companyErr = s.companyRepo.Create(ctx, comp)
		return companyErr
	})
	g.Go(func() error {
		adminErr = s.adminRepo.Create(ctx, adm)
		return adminErr
	})

	if err := g.Wait(); err != nil {
		if companyErr != nil && adminErr != nil {
			return err
		}
		var companyID, adminID *uuid.UUID
		if companyErr == nil {
			companyID = &comp.ID
		}
		if adminErr == nil {
			adminID = &adm.ID
		}
		return provisioningerrors.NewPartialBootstrapError(companyID, adminID, err)
	}

	if err := s.companyRepo.LinkAdmin(ctx, comp.ID, adm.ID); err != nil {
		return provisioningerrors.NewPartialBootstrapError(&comp.ID, &adm.ID, err)
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		return provisioningerrors.NewPartialBootstrapError(&comp.ID, &adm.ID, err)
	}
	return nil
}

// companyPersisted reports whether a failed bootstrap still left the company
// row, and with it references to its uploaded blobs.
func companyPersisted(err error) bool {
	var partial *provisioningerrors.PartialBootstrapError
	return errors.As(err, &partial) && partial.CompanyID != nil
}

func (s *service) ensureTenantFree(ctx context.Context, email, name string) error {
	if _, err := s.companyRepo.GetByName(ctx, name); err == nil {
		return companyerrors.ErrCompanyAlreadyExists
	} else if !errors.Is(err, companyerrors.ErrCompanyNotFound) {
		return err
	}

	if _, err := s.adminRepo.GetByEmail(ctx, email); err == nil {
		return adminerrors.ErrAdminAlreadyExists
	} else if !errors.Is(err, adminerrors.ErrAdminNotFound) {
		return err
	}
	return nil
}

// OnboardEmployee creates an employee under a company. Seats are charged only
// for companyAdmins, and the charge is the last write.
func (s *service) OnboardEmployee(
	ctx context.Context,
	p domain.Principal,
	req OnboardEmployeeRequest,
	files *asset.Files,
) (*OnboardEmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !p.Role.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if err := apperror.ValidateStruct(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.CompanyName)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, usererrors.ErrUserAlreadyExists
	} else if !errors.Is(err, usererrors.ErrUserNotFound) {
		return nil, err
	}

	chargeSeat := p.IsCompanyAdmin()
	var own *company.Company
	if chargeSeat {
		var err error
		if own, err = s.ownCompany(ctx, p, name); err != nil {
			return nil, err
		}
		if err := s.checkSeat(ctx, p.SubjectID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", http.StatusInternalServerError)
	}

	u := newEmployee(req, email, hash)
	var blobs compensations
	if key, err := s.upload(ctx, files, asset.FieldAvatar, &blobs); err != nil {
		return nil, err
	} else if key != "" {
		u.AvatarKey = key
	}
	if u.CoverKey, err = s.upload(ctx, files, asset.FieldCover, &blobs); err != nil {
		blobs.run(ctx, l)
		return nil, err
	}

	var created bool
	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		var err error
		created, err = s.onboard(ctx, tx, p, u, own, name, chargeSeat)
		return err
	})
	if err != nil {
		l.Warn("onboard employee failed",
			zap.String("email", u.Email),
			zap.String("company_name", name),
			zap.Error(err),
		)
		blobs.run(ctx, l)
		return nil, err
	}

	l.Info("employee onboarded",
		zap.String("user_id", u.ID.String()),
		zap.String("company_id", u.CompanyID.String()),
		zap.Bool("company_created", created),
		zap.Bool("seat_charged", chargeSeat),
	)
	return &OnboardEmployeeResponse{
		Employee:       *user.ToResponse(u, s.resolver),
		CompanyCreated: created,
	}, nil
}

// onboard performs the writes of one onboarding. Without a transaction every
// completed step is undone in reverse order when a later one fails.
func (s *service) onboard(
	ctx context.Context,
	tx *gorm.DB,
	p domain.Principal,
	u *user.User,
	comp *company.Company,
	name string,
	chargeSeat bool,
) (bool, error) {
	companyRepo := s.companyRepo.WithTx(tx)
	userRepo := s.userRepo.WithTx(tx)
	adminRepo := s.adminRepo.WithTx(tx)

	var undo compensations
	fail := func(err error) (bool, error) {
		if !s.tx.Transactional() {
			undo.run(ctx, contextutil.GetLogger(ctx, s.logger))
		}
		return false, err
	}

	created := false
	if comp == nil {
		var err error
		comp, created, err = companyRepo.EnsureByName(ctx, &company.Company{ID: uuid.New(), Name: name})
		if err != nil {
			return false, err
		}
		if created {
			companyID := comp.ID
			undo.add("delete company", func(ctx context.Context) error {
				return companyRepo.Delete(ctx, companyID)
			})
		}
	}
	u.CompanyID = &comp.ID
	u.CompanyName = comp.Name

	if err := userRepo.Create(ctx, u); err != nil {
		return fail(err)
	}
	undo.add("delete user", func(ctx context.Context) error {
		return userRepo.Delete(ctx, u.ID)
	})

	if err := companyRepo.AppendEmployee(ctx, comp.ID, u.ID); err != nil {
		return fail(err)
	}
	companyID := comp.ID
	undo.add("remove member", func(ctx context.Context) error {
		return companyRepo.RemoveEmployee(ctx, companyID, u.ID)
	})

	if chargeSeat {
		if err := adminRepo.DecrementSeat(ctx, p.SubjectID); err != nil {
			return fail(err)
		}
		undo.add("release seat", func(ctx context.Context) error {
			return adminRepo.ReleaseSeat(ctx, p.SubjectID)
		})
	}

	event, err := kafka.NewOutboxEvent(ctx, events.AggregateEmployee, u.ID.String(), events.EmployeeOnboarded, events.DirectoryLifecycleTopic,
		events.EmployeeOnboardedEvent{
			EventType:  events.EmployeeOnboarded,
			EmployeeID: u.ID.String(),
			CompanyID:  comp.ID.String(),
			Email:      u.Email,
			OnboardBy:  p.SubjectID.String(),
			SeatCharge: chargeSeat,
			OccurredAt: s.now().UTC(),
		})
	if err != nil {
		return fail(apperror.Wrap(err, apperror.CodeInternalError, "Failed to record onboarding", http.StatusInternalServerError))
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return fail(err)
	}
	return created, nil
}

// ownCompany resolves the acting companyAdmin's company and requires the
// requested name to match it.
func (s *service) ownCompany(ctx context.Context, p domain.Principal, name string) (*company.Company, error) {
	if p.CompanyID == nil {
		return nil, provisioningerrors.ErrNotLinkedToCompany
	}
	own, err := s.companyRepo.GetByID(ctx, *p.CompanyID)
	if errors.Is(err, companyerrors.ErrCompanyNotFound) {
		return nil, provisioningerrors.ErrNotLinkedToCompany
	}
	if err != nil {
		return nil, err
	}
	if own.Name != name {
		return nil, provisioningerrors.ErrOwnCompanyOnly
	}
	return own, nil
}

// checkSeat fails fast when no seat is left. DecrementSeat is still the
// authoritative guard.
func (s *service) checkSeat(ctx context.Context, adminID uuid.UUID) error {
	adm, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if adm.EmployeeSeatLimit <= 0 {
		return adminerrors.ErrSeatLimitExceeded
	}
	return nil
}

// upload stores the file sent under field, if any, and registers its removal
// on undo.
func (s *service) upload(ctx context.Context, files *asset.Files, field asset.Field, undo *compensations) (string, error) {
	file, ok := files.Get(field)
	if !ok {
		return "", nil
	}
	key, err := s.uploader.Upload(ctx, file)
	if err != nil {
		return "", err
	}
	undo.add("discard "+string(field), func(ctx context.Context) error {
		return s.uploader.Discard(ctx, field, key)
	})
	return key, nil
}

func newEmployee(req OnboardEmployeeRequest, email, hash string) *user.User {
	return &user.User{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      hash,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Phone:             strings.TrimSpace(req.Phone),
		Position:          strings.TrimSpace(req.Position),
		Role:              domain.RoleEmployee,
		AvatarKey:         asset.DefaultAvatarKey,
		Address:           strings.TrimSpace(req.Address),
		Website:           strings.TrimSpace(req.Website),
		WorkingHoursStart: req.WorkingHoursStart,
		WorkingHoursEnd:   req.WorkingHoursEnd,
		Languages:         pq.StringArray(append([]string{}, req.Languages...)),
		Facebook:          strings.TrimSpace(req.Facebook),
		Instagram:         strings.TrimSpace(req.Instagram),
		XTwitter:          strings.TrimSpace(req.XTwitter),
		LinkedIn:          strings.TrimSpace(req.LinkedIn),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
