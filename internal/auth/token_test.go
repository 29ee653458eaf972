package auth_test

import (
	"testing"
	"time"

	"go-directory/internal/auth"
	autherrors "go-directory/internal/auth/errors"
	"go-directory/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testKeys = map[auth.Domain][]byte{
	auth.DomainAdmin:    []byte("admin-signing-key"),
	auth.DomainEmployee: []byte("employee-signing-key"),
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newManager(t *testing.T, clock *fakeClock) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(testKeys, auth.WithClock(clock.Now))
	assert.NoError(t, err)
	return m
}

func TestTokenManager_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	m := newManager(t, clock)
	companyID := uuid.New()

	cases := []struct {
		name      string
		principal domain.Principal
		domain    auth.Domain
	}{
		{"super admin", domain.Principal{SubjectID: uuid.New(), Role: domain.RoleSuperAdmin}, auth.DomainAdmin},
		{"company admin", domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin, CompanyID: &companyID}, auth.DomainAdmin},
		{"employee", domain.Principal{SubjectID: uuid.New(), Role: domain.RoleEmployee, CompanyID: &companyID}, auth.DomainEmployee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := m.Issue(tc.principal, tc.domain, time.Hour)
			assert.NoError(t, err)

			clock.t = clock.t.Add(59 * time.Minute)
			defer func() { clock.t = clock.t.Add(-59 * time.Minute) }()

			got, err := m.Parse(token, tc.domain)
			assert.NoError(t, err)
			assert.Equal(t, tc.principal, got)
		})
	}
}

func TestTokenManager_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	m := newManager(t, clock)

	token, err := m.Issue(domain.Principal{SubjectID: uuid.New(), Role: domain.RoleSuperAdmin}, auth.DomainAdmin, time.Hour)
	assert.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Hour)

	_, err = m.Parse(token, auth.DomainAdmin)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestTokenManager_CrossDomainRejected(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newManager(t, clock)
	companyID := uuid.New()

	adminToken, err := m.Issue(domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin, CompanyID: &companyID}, auth.DomainAdmin, time.Hour)
	assert.NoError(t, err)
	employeeToken, err := m.Issue(domain.Principal{SubjectID: uuid.New(), Role: domain.RoleEmployee}, auth.DomainEmployee, time.Hour)
	assert.NoError(t, err)

	_, err = m.Parse(adminToken, auth.DomainEmployee)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)

	_, err = m.Parse(employeeToken, auth.DomainAdmin)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}

func TestTokenManager_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newManager(t, clock)

	t.Run("malformed", func(t *testing.T) {
		_, err := m.Parse("not.a.token", auth.DomainAdmin)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("foreign key", func(t *testing.T) {
		claims := auth.Claims{
			Role: string(domain.RoleSuperAdmin),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				Audience:  jwt.ClaimStrings{string(auth.DomainAdmin)},
				ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
		assert.NoError(t, err)

		_, err = m.Parse(forged, auth.DomainAdmin)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := auth.Claims{
			Role: string(domain.RoleSuperAdmin),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:  uuid.NewString(),
				Audience: jwt.ClaimStrings{string(auth.DomainAdmin)},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKeys[auth.DomainAdmin])
		assert.NoError(t, err)

		_, err = m.Parse(token, auth.DomainAdmin)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("company admin without company", func(t *testing.T) {
		token, err := m.Issue(domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin}, auth.DomainAdmin, time.Hour)
		assert.NoError(t, err)

		_, err = m.Parse(token, auth.DomainAdmin)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestNewTokenManager_KeyValidation(t *testing.T) {
	_, err := auth.NewTokenManager(map[auth.Domain][]byte{auth.DomainAdmin: []byte("k")})
	assert.Error(t, err)

	_, err = auth.NewTokenManager(map[auth.Domain][]byte{
		auth.DomainAdmin:    []byte("same"),
		auth.DomainEmployee: []byte("same"),
	})
	assert.Error(t, err)
}
