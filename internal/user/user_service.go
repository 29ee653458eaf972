package user

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-directory/internal/asset"
	"go-directory/internal/company"
	companyerrors "go-directory/internal/company/errors"
	"go-directory/internal/domain"
	"go-directory/internal/events"
	"go-directory/internal/messaging/kafka"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/shared/database"
	"go-directory/internal/tenant"
	usererrors "go-directory/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// PasswordHasher is satisfied by credential.Hasher.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, p domain.Principal, nameFilter string) ([]UserResponse, error)
	GetByID(ctx context.Context, p domain.Principal, id string) (*UserResponse, error)
	Update(ctx context.Context, p domain.Principal, id string, req UpdateUserRequest, files *asset.Files) (*UserResponse, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	GetProfile(ctx context.Context, p domain.Principal) (*UserResponse, error)
	UpdateProfile(ctx context.Context, p domain.Principal, req UpdateProfileRequest, files *asset.Files) (*UserResponse, error)
	ProfileCard(ctx context.Context, id string) (*ProfileCardResponse, error)
	Roster(ctx context.Context, p domain.Principal, companyID string) (*RosterResponse, error)
}

const profileCardFlightKey = "profiles:card:"

type service struct {
	tx          database.Transactor
	repo        Repository
	companyRepo company.Repository
	outbox      kafka.OutboxRepository
	hasher      PasswordHasher
	uploader    asset.Uploader
	resolver    *asset.Resolver
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	tx database.Transactor,
	repo Repository,
	companyRepo company.Repository,
	outbox kafka.OutboxRepository,
	hasher PasswordHasher,
	uploader asset.Uploader,
	resolver *asset.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		tx:          tx,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outbox,
		hasher:      hasher,
		uploader:    uploader,
		resolver:    resolver,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) List(ctx context.Context, p domain.Principal, nameFilter string) ([]UserResponse, error) {
	if !p.Role.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	users, err := s.repo.List(ctx, p, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, err
	}
	return s.mapList(users), nil
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id string) (*UserResponse, error) {
	u, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return s.mapToResponse(u), nil
}

func (s *service) Update(
	ctx context.Context,
	p domain.Principal,
	id string,
	req UpdateUserRequest,
	files *asset.Files,
) (*UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := apperror.ValidateStruct(req); err != nil {
		return nil, err
	}
	u, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != u.Email {
			if _, err := s.repo.GetByEmail(ctx, email); err == nil {
				return nil, usererrors.ErrUserAlreadyExists
			} else if !errors.Is(err, usererrors.ErrUserNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if req.Position != nil {
		u.Position = strings.TrimSpace(*req.Position)
	}

	var from, to *company.Company
	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) != u.CompanyName {
		from, to, err = s.resolveMove(ctx, p, u, strings.TrimSpace(*req.CompanyName))
		if err != nil {
			return nil, err
		}
		u.CompanyID = &to.ID
		u.CompanyName = to.Name
	}

	if err := s.applyProfile(ctx, u, req.ProfileFields, files); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, u); err != nil {
			return err
		}
		if to == nil {
			return nil
		}
		companyRepo := s.companyRepo.WithTx(tx)
		if from != nil {
			if err := companyRepo.RemoveEmployee(ctx, from.ID, u.ID); err != nil {
				return err
			}
		}
		return companyRepo.AppendEmployee(ctx, to.ID, u.ID)
	})
	if err != nil {
		l.Warn("update employee failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return nil, err
	}

	l.Info("employee updated", zap.String("user_id", u.ID.String()), zap.Bool("moved", to != nil))
	return s.mapToResponse(u), nil
}

// resolveMove loads the source and destination companies of a move. Moves
// cross tenants, so only superAdmin may perform them.
func (s *service) resolveMove(ctx context.Context, p domain.Principal, u *User, name string) (*company.Company, *company.Company, error) {
	if !p.IsSuperAdmin() {
		return nil, nil, usererrors.ErrCompanyMoveForbidden
	}
	to, err := s.companyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if u.CompanyID == nil {
		return nil, to, nil
	}
	from, err := s.companyRepo.GetByID(ctx, *u.CompanyID)
	if errors.Is(err, companyerrors.ErrCompanyNotFound) {
		return nil, to, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (s *service) Delete(ctx context.Context, p domain.Principal, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.load(ctx, p, id)
	if err != nil {
		return err
	}

	payload := events.EmployeeDeletedEvent{
		EventType:  events.EmployeeDeleted,
		EmployeeID: u.ID.String(),
		DeletedBy:  p.SubjectID.String(),
		OccurredAt: time.Now().UTC(),
	}
	if u.CompanyID != nil {
		payload.CompanyID = u.CompanyID.String()
	}
	event, err := kafka.NewOutboxEvent(ctx, events.AggregateEmployee, u.ID.String(), events.EmployeeDeleted, events.DirectoryLifecycleTopic, payload)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to record employee deletion", http.StatusInternalServerError)
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, u.ID); err != nil {
			return err
		}
		if u.CompanyID != nil {
			err := s.companyRepo.WithTx(tx).RemoveEmployee(ctx, *u.CompanyID, u.ID)
			if err != nil && !errors.Is(err, companyerrors.ErrCompanyNotFound) {
				return err
			}
		}
		return s.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		l.Warn("delete employee failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return err
	}

	l.Info("employee deleted", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) GetProfile(ctx context.Context, p domain.Principal) (*UserResponse, error) {
	u, err := s.self(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.mapToResponse(u), nil
}

func (s *service) UpdateProfile(ctx context.Context, p domain.Principal, req UpdateProfileRequest, files *asset.Files) (*UserResponse, error) {
	if err := apperror.ValidateStruct(req); err != nil {
		return nil, err
	}
	u, err := s.self(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(ctx, u, req.ProfileFields, files); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("profile updated", zap.String("user_id", u.ID.String()))
	return s.mapToResponse(u), nil
}

// ProfileCard is readable without authentication. Concurrent reads of the
// same card share one load, which runs detached from any single caller's
// cancellation.
func (s *service) ProfileCard(ctx context.Context, id string) (*ProfileCardResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(profileCardFlightKey+uid.String(), func() (any, error) {
		return s.loadProfileCard(loadCtx, uid)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProfileCardResponse), nil
}

func (s *service) loadProfileCard(ctx context.Context, uid uuid.UUID) (*ProfileCardResponse, error) {
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	card := &ProfileCardResponse{User: *s.mapToResponse(u)}
	if u.CompanyID != nil {
		comp, err := s.companyRepo.GetByID(ctx, *u.CompanyID)
		switch {
		case err == nil:
			card.CompanyCoverURL = s.resolver.Resolve(asset.BucketCovers, comp.CoverKey)
		case !errors.Is(err, companyerrors.ErrCompanyNotFound):
			return nil, err
		}
	}
	return card, nil
}

// Roster lists a company's members in membership order.
func (s *service) Roster(ctx context.Context, p domain.Principal, companyID string) (*RosterResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, usererrors.ErrInvalidCompanyID
	}
	if err := tenant.Authorize(p, &cid); err != nil {
		return nil, err
	}
	comp, err := s.companyRepo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.FindByIDs(ctx, comp.EmployeeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*User, len(members))
	for i := range members {
		byID[members[i].ID.String()] = &members[i]
	}

	employees := make([]UserResponse, 0, len(members))
	for _, id := range comp.EmployeeIDs {
		if u, ok := byID[id]; ok {
			employees = append(employees, *s.mapToResponse(u))
		}
	}

	return &RosterResponse{
		CompanyID:       comp.ID.String(),
		CompanyName:     comp.Name,
		CompanyCoverURL: s.resolver.Resolve(asset.BucketCovers, comp.CoverKey),
		Employees:       employees,
	}, nil
}

func (s *service) load(ctx context.Context, p domain.Principal, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := tenant.Authorize(p, u.CompanyID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) self(ctx context.Context, p domain.Principal) (*User, error) {
	if p.Role != domain.RoleEmployee {
		return nil, apperror.ErrForbidden
	}
	return s.repo.GetByID(ctx, p.SubjectID)
}

// applyProfile merges the allow-listed profile fields and uploads into u.
// The password is rehashed only when one was supplied.
func (s *service) applyProfile(ctx context.Context, u *User, f ProfileFields, files *asset.Files) error {
	setString(&u.FirstName, f.FirstName)
	setString(&u.LastName, f.LastName)
	setString(&u.Phone, f.Phone)
	setString(&u.Address, f.Address)
	setString(&u.Website, f.Website)
	setString(&u.WorkingHoursStart, f.WorkingHoursStart)
	setString(&u.WorkingHoursEnd, f.WorkingHoursEnd)
	setString(&u.Facebook, f.Facebook)
	setString(&u.Instagram, f.Instagram)
	setString(&u.XTwitter, f.XTwitter)
	setString(&u.LinkedIn, f.LinkedIn)
	if f.Languages != nil {
		u.Languages = append(u.Languages[:0:0], f.Languages...)
	}

	if f.Password != nil {
		hash, err := s.hasher.Hash(*f.Password)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", http.StatusInternalServerError)
		}
		u.PasswordHash = hash
	}

	if file, ok := files.Get(asset.FieldAvatar); ok {
		key, err := s.uploader.Upload(ctx, file)
		if err != nil {
			return err
		}
		u.AvatarKey = key
	}
	if file, ok := files.Get(asset.FieldCover); ok {
		key, err := s.uploader.Upload(ctx, file)
		if err != nil {
			return err
		}
		u.CoverKey = key
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) mapList(users []User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *s.mapToResponse(&users[i]))
	}
	return resp
}

func (s *service) mapToResponse(u *User) *UserResponse {
	return ToResponse(u, s.resolver)
}
