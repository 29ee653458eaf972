package middleware

import (
	"strings"

	"go-directory/internal/config"
	"go-directory/internal/domain"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenParser is satisfied by auth.TokenManager.
type TokenParser interface {
	Parse(tokenString string, d config.SigningDomain) (domain.Principal, error)
}

// Authenticate accepts only bearer tokens signed under d and attaches the
// resolved principal to both the gin and the request context.
func Authenticate(parser TokenParser, d config.SigningDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		p, err := parser.Parse(tokenString, d)
		if err != nil {
			if apperror.CodeOf(err) != apperror.CodeUnauthorized {
				err = apperror.ErrUnauthorized
			}
			response.AbortWithError(c, err)
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// SetPrincipal attaches p to the gin and the request context.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
}

// PrincipalFrom returns the principal attached by Authenticate.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// CurrentPrincipal is PrincipalFrom for handlers: it writes 401 and returns
// false when no principal is attached.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := PrincipalFrom(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
	}
	return p, ok
}
