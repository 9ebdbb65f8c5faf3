package api

import (
	"alcyxob/fittrack/internal/domain"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter(Services{Auth: &stubAuthService{users: map[string]*domain.User{}}})

	reg := RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "correct horse"}
	w := do(t, router, http.MethodPost, "/api/v1/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[UserResponse](t, w)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotContains(t, w.Body.String(), "password")

	w = do(t, router, http.MethodPost, "/api/v1/auth/register", "", reg)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Bo", Email: "not-an-email", Password: "long enough"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: reg.Email, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: reg.Email, Password: reg.Password})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[LoginResponse](t, w)
	assert.Equal(t, "signed-token", login.Token)
	assert.Equal(t, user.ID, login.User.ID)
}
