package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsmith/internal/services"
	"shopsmith/internal/services/supabase"
)

func newTestClient(t *testing.T, handler http.Handler) (*supabase.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := supabase.New(server.URL, "service-key", 5)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestFindUserByEmail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/admin/users" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-key" {
			t.Fatalf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("apikey"); got != "service-key" {
			t.Fatalf("unexpected apikey %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": "u-1", "email": "maker@example.com"},
			},
		})
	}))

	user, err := client.FindUserByEmail(context.Background(), "Maker@Example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user == nil || user.ID != "u-1" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestFindUserByEmailAbsent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"users": []map[string]any{}})
	}))

	user, err := client.FindUserByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestCreateUserConfirmsEmail(t *testing.T) {
	var captured map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/admin/users" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u-2", "email": captured["email"]})
	}))

	user, err := client.CreateUser(context.Background(), "New@Example.com", "temp-password")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID != "u-2" {
		t.Fatalf("unexpected user %+v", user)
	}
	if captured["email"] != "new@example.com" {
		t.Fatalf("expected lowercased email, got %v", captured["email"])
	}
	if captured["email_confirm"] != true {
		t.Fatalf("expected email_confirm true, got %v", captured["email_confirm"])
	}
}

func TestExecSQLNotFoundMarksMissingRPC(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.ExecSQL(context.Background(), "create table t (id int)")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSampleRowsBuildsQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/thought_messages" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("order") != "created_at.desc" {
			t.Fatalf("unexpected order %q", query.Get("order"))
		}
		if query.Get("limit") != "5" {
			t.Fatalf("unexpected limit %q", query.Get("limit"))
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"role": "user", "content": "hello"},
			{"role": "assistant", "content": "hi"},
		})
	}))

	rows, err := client.SampleRows(context.Background(), "thought_messages", 5)
	if err != nil {
		t.Fatalf("sample rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestBackendErrorCarriesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"permission denied"}`))
	}))

	_, err := client.SampleRows(context.Background(), "secrets", 1)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external-tool error, got %v", err)
	}
}
