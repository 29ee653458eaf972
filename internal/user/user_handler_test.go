package user_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"go-directory/internal/asset"
	"go-directory/internal/domain"
	"go-directory/internal/middleware"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/user"
	usererrors "go-directory/internal/user/errors"
	userMock "go-directory/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestRouter(p *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if p != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetPrincipal(c, *p)
			c.Next()
		})
	}
	return r
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	handler := user.NewHandler(svc)

	p := superAdmin()
	svc.EXPECT().List(gomock.Any(), p, "jane").Return([]user.UserResponse{{FirstName: "Jane"}}, nil)

	r := newTestRouter(&p)
	r.GET("/employees", handler.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?name=jane", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_name":"Jane"`)
}

func TestHandler_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	handler := user.NewHandler(svc)

	p := companyAdmin(uuid.New())
	id := uuid.NewString()

	t.Run("forbidden", func(t *testing.T) {
		svc.EXPECT().GetByID(gomock.Any(), p, id).Return(nil, apperror.ErrForbidden)

		r := newTestRouter(&p)
		r.GET("/employees/:id", handler.GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc.EXPECT().GetByID(gomock.Any(), p, id).Return(nil, usererrors.ErrUserNotFound)

		r := newTestRouter(&p)
		r.GET("/employees/:id", handler.GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	handler := user.NewHandler(svc)

	p := superAdmin()
	id := uuid.NewString()

	t.Run("multipart with avatar", func(t *testing.T) {
		svc.EXPECT().Update(gomock.Any(), p, id, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ domain.Principal, _ string, req user.UpdateUserRequest, files *asset.Files) (*user.UserResponse, error) {
				assert.Equal(t, "Lead", *req.Position)
				_, ok := files.Get(asset.FieldAvatar)
				assert.True(t, ok)
				return &user.UserResponse{ID: id, Position: *req.Position}, nil
			})

		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		assert.NoError(t, mw.WriteField("position", "Lead"))
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="avatar"; filename="me.png"`)
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		assert.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		assert.NoError(t, mw.Close())

		r := newTestRouter(&p)
		r.PATCH("/employees/:id", handler.Update)

		req := httptest.NewRequest(http.MethodPatch, "/employees/"+id, body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unexpected upload field", func(t *testing.T) {
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		assert.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		assert.NoError(t, mw.Close())

		r := newTestRouter(&p)
		r.PATCH("/employees/:id", handler.Update)

		req := httptest.NewRequest(http.MethodPatch, "/employees/"+id, body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	handler := user.NewHandler(svc)

	p := superAdmin()
	id := uuid.NewString()
	svc.EXPECT().Delete(gomock.Any(), p, id).Return(nil)

	r := newTestRouter(&p)
	r.DELETE("/employees/:id", handler.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_ProfileCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)
	handler := user.NewHandler(svc)

	id := uuid.NewString()
	cover := "http://directory.test/api/v1/assets/covers/1_c.png"
	svc.EXPECT().ProfileCard(gomock.Any(), id).Return(&user.ProfileCardResponse{
		User:            user.UserResponse{ID: id},
		CompanyCoverURL: &cover,
	}, nil)

	r := newTestRouter(nil)
	r.GET("/profiles/:id", handler.ProfileCard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profiles/"+id, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cover)
}

func TestHandler_GetProfile_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := user.NewHandler(userMock.NewMockService(ctrl))

	r := newTestRouter(nil)
	r.GET("/me", handler.GetProfile)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
