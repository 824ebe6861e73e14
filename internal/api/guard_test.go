package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/auth"
	"github.com/profbkmurage/physiocare/internal/identity"
)

type stubResolver struct {
	role identity.Role
}

func (s stubResolver) Resolve(_ context.Context, id uuid.UUID, email string) identity.Resolved {
	return identity.Resolved{ID: id, Email: email, Role: s.role}
}

const testSecret = "guard-test-secret"

func bearerFor(t *testing.T, uid uuid.UUID) string {
	t.Helper()
	token, err := auth.MakeToken(uid.String(), "user@example.com", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestAuthenticatedInjectsIdentity(t *testing.T) {
	uid := uuid.New()

	var got identity.Resolved
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	h := Authenticated(stubResolver{role: identity.RoleClient}, testSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearerFor(t, uid))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.ID != uid {
		t.Errorf("resolved ID = %s, want %s", got.ID, uid)
	}
	if got.Role != identity.RoleClient {
		t.Errorf("resolved role = %s, want client", got.Role)
	}
}

func TestAuthenticatedRejects(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without valid token")
	})
	h := Authenticated(stubResolver{role: identity.RoleAdmin}, testSecret)(next)

	otherSecret, err := auth.MakeToken(uuid.NewString(), "x@example.com", "wrong-secret", time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + otherSecret},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		role identity.Role
		want int
	}{
		{identity.RoleNormal, http.StatusForbidden},
		{identity.RoleClient, http.StatusForbidden},
		{identity.RoleAdmin, http.StatusOK},
		{identity.RoleSuperAdmin, http.StatusOK},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			h := Authenticated(stubResolver{role: tc.role}, testSecret)(AdminOnly(next))

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", bearerFor(t, uuid.New()))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("role %s: status = %d, want %d", tc.role, rec.Code, tc.want)
			}
		})
	}
}

func TestAdminOnlyWithoutIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without identity")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	AdminOnly(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRateLimiterThrottles(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want both 200", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}

	// a different address has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.9.9.9:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("fresh address = %d, want 200", rec.Code)
	}
}

func TestAuthenticatedRejectsResetToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a reset-purpose token")
	})
	h := Authenticated(stubResolver{role: identity.RoleClient}, testSecret)(next)

	reset, err := auth.MakeResetToken(uuid.NewString(), "user@example.com", testSecret, "stored-hash", time.Minute)
	if err != nil {
		t.Fatalf("mint reset token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+reset)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
