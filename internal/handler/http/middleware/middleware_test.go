package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/jwt"
)

func newTestService() jwt.Service {
	return jwt.NewJWTService("test-secret-key-for-middleware", "1h")
}

// newTestChain mounts the middleware the way the router does: verifier,
// access check, then any role gates in front of a 200 handler.
func newTestChain(svc jwt.Service, gates ...func(http.Handler) http.Handler) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for i := len(gates) - 1; i >= 0; i-- {
		h = gates[i](h)
	}
	h = AuthRequired(svc.JWTAuth())(h)
	return jwtauth.Verifier(svc.JWTAuth())(h)
}

func accessToken(t *testing.T, svc jwt.Service, role employee.Role) string {
	t.Helper()
	employeeID := "employee-1"
	companyID := "company-1"
	token, _, err := svc.GenerateAccessToken("user-1", &employeeID, &companyID, role)
	require.NoError(t, err)
	return token
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestAuthRequired_AccessTokenPasses(t *testing.T) {
	svc := newTestService()
	handler := newTestChain(svc)

	w := doRequest(handler, accessToken(t, svc, employee.RoleEmployee))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	svc := newTestService()
	handler := newTestChain(svc)

	w := doRequest(handler, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_NonAccessToken(t *testing.T) {
	svc := newTestService()
	handler := newTestChain(svc)

	// Same signing key, wrong token type.
	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	w := doRequest(handler, tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireHR(t *testing.T) {
	svc := newTestService()
	handler := newTestChain(svc, RequireHR)

	w := doRequest(handler, accessToken(t, svc, employee.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(handler, accessToken(t, svc, employee.RoleHR))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(handler, accessToken(t, svc, employee.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService()
	handler := newTestChain(svc, RequireAdmin)

	w := doRequest(handler, accessToken(t, svc, employee.RoleHR))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(handler, accessToken(t, svc, employee.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}
