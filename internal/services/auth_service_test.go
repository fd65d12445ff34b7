package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petwell/internal/api"
	"petwell/internal/domain"
	"petwell/internal/services"
	"petwell/internal/session"
)

func authService(t *testing.T, h http.HandlerFunc) *services.AuthService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	st, err := session.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.DB.Close() })
	return &services.AuthService{API: api.NewSet(srv.URL, 5*time.Second), Sessions: st}
}

func TestLoginStoresTokenAndProfile(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(domain.AuthResponse{Token: "tok-1", Username: "alice"})
		case "/users/profile":
			_ = json.NewEncoder(w).Encode(domain.UserProfile{ID: "u1", Username: "alice"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	user, err := svc.Login(context.Background(), "sid-1", "alice", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("user = %+v", user)
	}

	sess, err := svc.Sessions.Get("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token != "tok-1" || sess.User == nil {
		t.Fatalf("session = %+v", sess)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	if _, err := svc.Login(context.Background(), "sid-1", "alice", "wrong"); err != services.ErrBadCreds {
		t.Fatalf("err = %v", err)
	}
	sess, _ := svc.Sessions.Get("sid-1")
	if sess.IsAuthenticated {
		t.Fatal("failed login must not authenticate the session")
	}
}

// A token stored without a profile gets the profile fetched before the
// session is handed to a page.
func TestCurrentFetchesMissingProfile(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/profile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(domain.UserProfile{ID: "u2", Username: "bob"})
	})
	_ = svc.Sessions.SetLogin("sid-2", "tok-2", nil)

	sess, err := svc.Current(context.Background(), "sid-2")
	if err != nil {
		t.Fatal(err)
	}
	if sess.User == nil || sess.User.ID != "u2" {
		t.Fatalf("user = %+v", sess.User)
	}

	// The fetched profile is cached for the next request.
	stored, _ := svc.Sessions.Get("sid-2")
	if stored.User == nil {
		t.Fatal("profile not cached")
	}
}

// A failed profile fetch on a token-only session forces logout.
func TestCurrentForcesLogoutOnProfileFailure(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_ = svc.Sessions.SetLogin("sid-3", "tok-expired", nil)

	sess, err := svc.Current(context.Background(), "sid-3")
	if err != nil {
		t.Fatal(err)
	}
	if sess.IsAuthenticated {
		t.Fatal("expected unauthenticated session")
	}
	stored, _ := svc.Sessions.Get("sid-3")
	if stored.IsAuthenticated {
		t.Fatal("session not torn down")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {})
	_ = svc.Sessions.SetLogin("sid-4", "tok", &domain.UserProfile{ID: "u4"})

	if err := svc.Logout("sid-4"); err != nil {
		t.Fatal(err)
	}
	sess, _ := svc.Sessions.Get("sid-4")
	if sess.IsAuthenticated || sess.User != nil {
		t.Fatalf("session survived logout: %+v", sess)
	}
}

func TestTeardownOnAuthFailure(t *testing.T) {
	svc := authService(t, func(w http.ResponseWriter, r *http.Request) {})
	_ = svc.Sessions.SetLogin("sid-5", "tok", nil)

	if svc.TeardownOnAuthFailure("sid-5", context.DeadlineExceeded) {
		t.Fatal("network error must not tear the session down")
	}
	if !svc.TeardownOnAuthFailure("sid-5", &api.APIError{StatusCode: http.StatusUnauthorized}) {
		t.Fatal("401 must tear the session down")
	}
	sess, _ := svc.Sessions.Get("sid-5")
	if sess.IsAuthenticated {
		t.Fatal("session survived teardown")
	}
}
