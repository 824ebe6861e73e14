package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendCredentialReset(t *testing.T) {
	var got emailRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailtrapSender(srv.URL, "test-key", "no-reply@physiocare.clinic")
	if err := m.SendCredentialReset(context.Background(), "jane@example.com", "Jane", "tok-123"); err != nil {
		t.Fatalf("SendCredentialReset: %v", err)
	}

	if auth != "Bearer test-key" {
		t.Errorf("authorization = %q, want bearer key", auth)
	}
	if len(got.To) != 1 || got.To[0].Email != "jane@example.com" {
		t.Errorf("to = %+v, want jane@example.com", got.To)
	}
	if got.From.Email != "no-reply@physiocare.clinic" {
		t.Errorf("from = %q", got.From.Email)
	}
	if !strings.Contains(got.Text, "tok-123") {
		t.Errorf("body does not carry the reset token: %q", got.Text)
	}
}

func TestSendCredentialResetAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailtrapSender(srv.URL, "bad-key", "no-reply@physiocare.clinic")
	if err := m.SendCredentialReset(context.Background(), "jane@example.com", "Jane", "tok"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
