package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockauth "github.com/jobtrail/jobtrail/internal/mocks/auth"
	"github.com/jobtrail/jobtrail/internal/service"
)

func newAuthMiddleware() (func(http.Handler) http.Handler, *mockauth.MockTokenVerifier) {
	verifier := mockauth.NewMockTokenVerifier()
	authSvc := service.NewAuthService(service.AuthServiceOptions{Verifier: verifier})
	return RequireAuth(authSvc), verifier
}

func protectedEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "no principal", http.StatusInternalServerError)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"userId": p.UserID})
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mw, verifier := newAuthMiddleware()
	handler := mw(protectedEcho())

	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	r.Header.Set("Authorization", "Bearer "+verifier.Token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock-user-1")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw, _ := newAuthMiddleware()
	handler := mw(protectedEcho())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	mw, verifier := newAuthMiddleware()
	handler := mw(protectedEcho())

	for _, header := range []string{"Basic abc", verifier.Token, "Bearer", "Bearer   "} {
		r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw, _ := newAuthMiddleware()
	handler := mw(protectedEcho())

	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	mw, verifier := newAuthMiddleware()
	handler := mw(protectedEcho())

	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	r.Header.Set("Authorization", "bearer "+verifier.Token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(protectedEcho())

	r := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExtensionOrigin(t *testing.T) {
	handler := CORS(nil)(protectedEcho())

	r := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	r.Header.Set("Origin", "chrome-extension://abcdef")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "chrome-extension://abcdef", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
