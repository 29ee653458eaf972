package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-directory/internal/admin"
	adminerrors "go-directory/internal/admin/errors"
	autherrors "go-directory/internal/auth/errors"
	"go-directory/internal/company"
	"go-directory/internal/domain"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/user"
	usererrors "go-directory/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Verifier is satisfied by credential.Hasher.
type Verifier interface {
	Verify(secret, hash string) bool
}

// Issuer is satisfied by TokenManager.
type Issuer interface {
	Issue(p domain.Principal, d Domain, ttl time.Duration) (string, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Me(ctx context.Context, p domain.Principal) (*MeResponse, error)
}

type service struct {
	adminRepo   admin.Repository
	userRepo    user.Repository
	companyRepo company.Repository
	verifier    Verifier
	issuer      Issuer
	ttl         time.Duration
	logger      *zap.Logger
}

func NewService(
	adminRepo admin.Repository,
	userRepo user.Repository,
	companyRepo company.Repository,
	verifier Verifier,
	issuer Issuer,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		verifier:    verifier,
		issuer:      issuer,
		ttl:         ttl,
		logger:      l,
	}
}

// Login checks the admin store first, then the employee store. The first
// record whose hash verifies wins; its tier decides the signing domain.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	email = strings.ToLower(strings.TrimSpace(email))

	a, err := s.adminRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if s.verifier.Verify(password, a.PasswordHash) {
			resp, err := s.respond(a.Principal(), DomainAdmin, s.companyName(ctx, a.CompanyID))
			if err == nil {
				l.Info("admin logged in", zap.String("admin_id", a.ID.String()), zap.String("role", string(a.Role)))
			}
			return resp, err
		}
	case !errors.Is(err, adminerrors.ErrAdminNotFound):
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if s.verifier.Verify(password, u.PasswordHash) {
			resp, err := s.respond(u.Principal(), DomainEmployee, u.CompanyName)
			if err == nil {
				l.Info("employee logged in", zap.String("user_id", u.ID.String()))
			}
			return resp, err
		}
	case !errors.Is(err, usererrors.ErrUserNotFound):
		return nil, err
	}

	l.Info("login rejected")
	return nil, autherrors.ErrInvalidCredentials
}

func (s *service) Me(ctx context.Context, p domain.Principal) (*MeResponse, error) {
	if !p.Role.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	a, err := s.adminRepo.GetByID(ctx, p.SubjectID)
	if errors.Is(err, adminerrors.ErrAdminNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{
		ID:            a.ID.String(),
		Email:         a.Email,
		Role:          string(a.Role),
		CompanyName:   s.companyName(ctx, a.CompanyID),
		EmployeeLimit: a.EmployeeSeatLimit,
	}
	if a.CompanyID != nil {
		companyID := a.CompanyID.String()
		resp.CompanyID = &companyID
	}
	return resp, nil
}

func (s *service) respond(p domain.Principal, d Domain, companyName string) (*LoginResponse, error) {
	token, err := s.issuer.Issue(p, d, s.ttl)
	if err != nil {
		return nil, err
	}
	resp := &LoginResponse{
		Token:       token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		ID:          p.SubjectID.String(),
		Role:        string(p.Role),
		CompanyName: companyName,
	}
	if p.CompanyID != nil {
		companyID := p.CompanyID.String()
		resp.CompanyID = &companyID
	}
	return resp, nil
}

// companyName is best effort: a dangling company link renders as empty.
func (s *service) companyName(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	comp, err := s.companyRepo.GetByID(ctx, *id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("company lookup failed", zap.String("company_id", id.String()), zap.Error(err))
		return ""
	}
	return comp.Name
}
