package company

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-directory/internal/admin"
	adminerrors "go-directory/internal/admin/errors"
	"go-directory/internal/asset"
	companyerrors "go-directory/internal/company/errors"
	"go-directory/internal/domain"
	"go-directory/internal/events"
	"go-directory/internal/messaging/kafka"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/shared/database"
	"go-directory/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, p domain.Principal, id string) (*CompanyResponse, error)
	GetMine(ctx context.Context, p domain.Principal) (*CompanyResponse, error)
	List(ctx context.Context, p domain.Principal, nameFilter string) ([]CompanyResponse, error)
	Update(ctx context.Context, p domain.Principal, id string, req UpdateCompanyRequest, files *asset.Files) (*CompanyResponse, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}

type service struct {
	tx        database.Transactor
	repo      Repository
	adminRepo admin.Repository
	outbox    kafka.OutboxRepository
	uploader  asset.Uploader
	resolver  *asset.Resolver
	logger    *zap.Logger
}

func NewService(
	tx database.Transactor,
	repo Repository,
	adminRepo admin.Repository,
	outbox kafka.OutboxRepository,
	uploader asset.Uploader,
	resolver *asset.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		adminRepo: adminRepo,
		outbox:    outbox,
		uploader:  uploader,
		resolver:  resolver,
		logger:    l,
	}
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id string) (*CompanyResponse, error) {
	comp, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return s.withAdmin(ctx, comp)
}

func (s *service) GetMine(ctx context.Context, p domain.Principal) (*CompanyResponse, error) {
	if p.CompanyID == nil {
		return nil, companyerrors.ErrNoCompany
	}
	comp, err := s.repo.GetByID(ctx, *p.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.withAdmin(ctx, comp)
}

func (s *service) List(ctx context.Context, p domain.Principal, nameFilter string) ([]CompanyResponse, error) {
	if !p.IsSuperAdmin() {
		return nil, apperror.ErrForbidden
	}

	companies, err := s.repo.List(ctx, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, err
	}

	adminIDs := make([]uuid.UUID, 0, len(companies))
	for _, c := range companies {
		if c.AdminID != nil {
			adminIDs = append(adminIDs, *c.AdminID)
		}
	}
	admins, err := s.adminRepo.FindByIDs(ctx, adminIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*admin.Admin, len(admins))
	for i := range admins {
		byID[admins[i].ID] = &admins[i]
	}

	resp := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		var a *admin.Admin
		if c.AdminID != nil {
			a = byID[*c.AdminID]
		}
		resp = append(resp, *s.mapToResponse(c, a))
	}
	return resp, nil
}

func (s *service) Update(
	ctx context.Context,
	p domain.Principal,
	id string,
	req UpdateCompanyRequest,
	files *asset.Files,
) (*CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := apperror.ValidateStruct(req); err != nil {
		return nil, err
	}
	comp, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if req.touchesAdmin() && !p.IsSuperAdmin() {
		return nil, companyerrors.ErrAdminFieldsForbidden
	}

	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != comp.Name {
			if _, err := s.repo.GetByName(ctx, name); err == nil {
				return nil, companyerrors.ErrCompanyAlreadyExists
			} else if !errors.Is(err, companyerrors.ErrCompanyNotFound) {
				return nil, err
			}
			comp.Name = name
			renamed = true
		}
	}

	if err := s.applyAssets(ctx, comp, files); err != nil {
		return nil, err
	}

	var linked *admin.Admin
	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateDetails(ctx, comp); err != nil {
			return err
		}
		if renamed {
			if err := repo.SyncMemberCompanyName(ctx, comp.ID, comp.Name); err != nil {
				return err
			}
		}
		if !req.touchesAdmin() {
			return nil
		}

		if comp.AdminID == nil {
			return adminerrors.ErrAdminNotFound
		}
		changes := admin.Changes{EmployeeSeatLimit: req.EmployeeLimit}
		if req.AdminEmail != nil {
			email := strings.ToLower(strings.TrimSpace(*req.AdminEmail))
			changes.Email = &email
		}
		adminRepo := s.adminRepo.WithTx(tx)
		if err := adminRepo.Update(ctx, *comp.AdminID, changes); err != nil {
			return err
		}
		a, err := adminRepo.GetByID(ctx, *comp.AdminID)
		if err != nil {
			return err
		}
		linked = a
		return nil
	})
	if err != nil {
		l.Warn("update company failed", zap.String("company_id", comp.ID.String()), zap.Error(err))
		return nil, err
	}

	l.Info("company updated", zap.String("company_id", comp.ID.String()), zap.Bool("renamed", renamed))
	if linked != nil {
		return s.mapToResponse(comp, linked), nil
	}
	return s.withAdmin(ctx, comp)
}

// Delete removes an empty company together with its linked admin. Companies
// that still list employees are rejected.
func (s *service) Delete(ctx context.Context, p domain.Principal, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if !p.IsSuperAdmin() {
		return apperror.ErrForbidden
	}
	comp, err := s.load(ctx, p, id)
	if err != nil {
		return err
	}
	if comp.HasMembers() {
		return companyerrors.ErrCompanyNotEmpty.WithDetails(map[string]int{"employee_count": len(comp.EmployeeIDs)})
	}

	payload := events.CompanyDeletedEvent{
		EventType:  events.CompanyDeleted,
		CompanyID:  comp.ID.String(),
		DeletedBy:  p.SubjectID.String(),
		OccurredAt: time.Now().UTC(),
	}
	if comp.AdminID != nil {
		payload.AdminID = comp.AdminID.String()
	}
	event, err := kafka.NewOutboxEvent(ctx, events.AggregateCompany, comp.ID.String(), events.CompanyDeleted, events.DirectoryLifecycleTopic, payload)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to record company deletion", http.StatusInternalServerError)
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, comp.ID); err != nil {
			return err
		}
		if comp.AdminID != nil {
			if err := s.adminRepo.WithTx(tx).Delete(ctx, *comp.AdminID); err != nil {
				return err
			}
		}
		return s.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		l.Warn("delete company failed", zap.String("company_id", comp.ID.String()), zap.Error(err))
		return err
	}

	l.Info("company deleted", zap.String("company_id", comp.ID.String()))
	return nil
}

func (s *service) load(ctx context.Context, p domain.Principal, id string) (*Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := tenant.Authorize(p, &comp.ID); err != nil {
		return nil, err
	}
	return comp, nil
}

func (s *service) applyAssets(ctx context.Context, comp *Company, files *asset.Files) error {
	if f, ok := files.Get(asset.FieldLogo); ok {
		key, err := s.uploader.Upload(ctx, f)
		if err != nil {
			return err
		}
		comp.LogoKey = key
	}
	if f, ok := files.Get(asset.FieldCover); ok {
		key, err := s.uploader.Upload(ctx, f)
		if err != nil {
			return err
		}
		comp.CoverKey = key
	}
	return nil
}

// withAdmin renders a company with its linked admin. A dangling admin
// reference renders without admin fields; any other failure is returned.
func (s *service) withAdmin(ctx context.Context, comp *Company) (*CompanyResponse, error) {
	if comp.AdminID == nil {
		return s.mapToResponse(comp, nil), nil
	}
	a, err := s.adminRepo.GetByID(ctx, *comp.AdminID)
	if errors.Is(err, adminerrors.ErrAdminNotFound) {
		contextutil.GetLogger(ctx, s.logger).Warn("linked admin missing",
			zap.String("company_id", comp.ID.String()),
			zap.String("admin_id", comp.AdminID.String()),
		)
		return s.mapToResponse(comp, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return s.mapToResponse(comp, a), nil
}

func (s *service) mapToResponse(c *Company, a *admin.Admin) *CompanyResponse {
	return ToResponse(c, a, s.resolver)
}
