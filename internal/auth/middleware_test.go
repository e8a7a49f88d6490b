package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"tableside/internal/domain"
)

func newMiddlewareFixture(t *testing.T) (*Service, string) {
	t.Helper()
	user := staffUser(t, "staff123")
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewService(repo, "test_secret", 12*time.Hour, zap.NewNop())

	token, err := svc.Login(context.Background(), user.Email, "staff123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, token
}

func TestRequireAuth_RejectsBeforeHandler(t *testing.T) {
	svc, _ := newMiddlewareFixture(t)

	invoked := false
	handler := RequireAuth(svc, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	cases := map[string]string{
		"no header":    "",
		"not bearer":   "Basic abc",
		"malformed":    "Bearer not-a-jwt",
		"empty bearer": "Bearer ",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
	}
	if invoked {
		t.Error("handler must not run without a valid credential")
	}
}

func TestRequireAuth_PassesClaimsThrough(t *testing.T) {
	svc, token := newMiddlewareFixture(t)

	var gotClaims *Claims
	handler := RequireAuth(svc, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.Role != domain.RoleStaff {
		t.Errorf("expected staff claims in context, got %+v", gotClaims)
	}
}

func TestAllow_PermitsAnyValidClaims(t *testing.T) {
	claims := &Claims{Role: domain.RoleStaff}

	if !Allow(claims, "PUT /api/orders/1/status") {
		t.Error("expected staff to be allowed")
	}
	if Allow(nil, "PUT /api/orders/1/status") {
		t.Error("expected nil claims to be denied")
	}
}
