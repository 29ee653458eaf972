package auth

import (
	"errors"
	"fmt"
	"time"

	autherrors "go-directory/internal/auth/errors"
	"go-directory/internal/config"
	"go-directory/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Domain selects the signing key. Tokens never validate across domains.
type Domain = config.SigningDomain

const (
	DomainAdmin    = config.DomainAdmin
	DomainEmployee = config.DomainEmployee
)

type Claims struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=token.go -destination=mock/token_mock.go -package=mock

// TokenParser is what the auth middleware depends on.
type TokenParser interface {
	Parse(tokenString string, d Domain) (domain.Principal, error)
}

type TokenManager struct {
	keys map[Domain][]byte
	now  func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(keys map[Domain][]byte, opts ...TokenOption) (*TokenManager, error) {
	m := &TokenManager{keys: make(map[Domain][]byte, len(keys)), now: time.Now}
	for _, d := range []Domain{DomainAdmin, DomainEmployee} {
		key := keys[d]
		if len(key) == 0 {
			return nil, fmt.Errorf("missing signing key for %q domain", d)
		}
		m.keys[d] = key
	}
	if string(m.keys[DomainAdmin]) == string(m.keys[DomainEmployee]) {
		return nil, errors.New("signing domains must not share a key")
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue mints a token for p under domain d that expires after ttl.
func (m *TokenManager) Issue(p domain.Principal, d Domain, ttl time.Duration) (string, error) {
	key, ok := m.keys[d]
	if !ok {
		return "", autherrors.ErrUnknownDomain
	}

	now := m.now()
	claims := Claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID.String(),
			Audience:  jwt.ClaimStrings{string(d)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if p.CompanyID != nil {
		claims.CompanyID = p.CompanyID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

// Parse validates tokenString under domain d and returns its principal.
func (m *TokenManager) Parse(tokenString string, d Domain) (domain.Principal, error) {
	key, ok := m.keys[d]
	if !ok {
		return domain.Principal{}, autherrors.ErrUnknownDomain
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(string(d)),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, autherrors.ErrTokenExpired
		}
		return domain.Principal{}, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	return claims.principal(d)
}

func (c *Claims) principal(d Domain) (domain.Principal, error) {
	subject, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	role := domain.Role(c.Role)
	// The employee domain only ever carries employees and vice versa.
	if !role.Valid() || (d == DomainEmployee) != (role == domain.RoleEmployee) {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	p := domain.Principal{SubjectID: subject, Role: role}
	if c.CompanyID != "" {
		companyID, err := uuid.Parse(c.CompanyID)
		if err != nil {
			return domain.Principal{}, autherrors.ErrInvalidToken
		}
		p.CompanyID = &companyID
	}
	if role == domain.RoleCompanyAdmin && p.CompanyID == nil {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}
	return p, nil
}
