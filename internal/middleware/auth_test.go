package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aeromaint/internal/domain/models"
	"aeromaint/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

type stubVerifier struct {
	claims *models.AccessClaims
	err    error
}

func (v *stubVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	return v.claims, v.err
}

func (v *stubVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-1"},
		Role:             "authenticated",
	}

	tests := []struct {
		name       string
		path       string
		authHeader string
		verifier   *stubVerifier
		wantStatus int
		wantOwner  string
	}{
		{
			name:       "valid token",
			path:       "/api/folders/abc",
			authHeader: "Bearer good-token",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusOK,
			wantOwner:  "owner-1",
		},
		{
			name:       "missing header",
			path:       "/api/folders/abc",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			path:       "/api/folders/abc",
			authHeader: "Basic dXNlcg==",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			path:       "/api/folders/abc",
			authHeader: "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("signature mismatch")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "health bypasses auth",
			path:       "/health",
			verifier:   &stubVerifier{err: errors.New("should not be called")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner = httputil.GetOwnerID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			AuthMiddleware(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantOwner != "" && gotOwner != tt.wantOwner {
				t.Errorf("owner id = %q, want %q", gotOwner, tt.wantOwner)
			}
		})
	}
}
