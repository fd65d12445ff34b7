package session_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"petwell/internal/domain"
	"petwell/internal/session"
)

func memStore(t *testing.T) *session.Store {
	t.Helper()
	st, err := session.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.DB.Close() })
	return st
}

func TestUnknownSIDIsEmptySession(t *testing.T) {
	st := memStore(t)
	sess, err := st.Get("never-seen")
	if err != nil {
		t.Fatal(err)
	}
	if sess.IsAuthenticated || sess.Token != "" || sess.User != nil {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	st := memStore(t)
	user := &domain.UserProfile{ID: "u1", Username: "alice", Roles: []string{"ROLE_USER"}}

	if err := st.SetLogin("sid-1", "tok-abc", user); err != nil {
		t.Fatal(err)
	}
	sess, err := st.Get("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if !sess.IsAuthenticated || sess.Token != "tok-abc" {
		t.Fatalf("session = %+v", sess)
	}
	if sess.User == nil || sess.User.Username != "alice" {
		t.Fatalf("user = %+v", sess.User)
	}

	// Logging in again on the same sid replaces the stored pair.
	if err := st.SetLogin("sid-1", "tok-def", nil); err != nil {
		t.Fatal(err)
	}
	sess, _ = st.Get("sid-1")
	if sess.Token != "tok-def" || sess.User != nil {
		t.Fatalf("after relogin: %+v", sess)
	}
}

func TestTokenWithoutProfile(t *testing.T) {
	st := memStore(t)
	if err := st.SetLogin("sid-2", "tok-xyz", nil); err != nil {
		t.Fatal(err)
	}
	sess, _ := st.Get("sid-2")
	if !sess.IsAuthenticated || sess.User != nil {
		t.Fatalf("expected token-only session, got %+v", sess)
	}

	if err := st.SetUser("sid-2", &domain.UserProfile{ID: "u2"}); err != nil {
		t.Fatal(err)
	}
	sess, _ = st.Get("sid-2")
	if sess.User == nil || sess.User.ID != "u2" {
		t.Fatalf("user not cached: %+v", sess.User)
	}
}

func TestClearDropsTokenAndProfile(t *testing.T) {
	st := memStore(t)
	_ = st.SetLogin("sid-3", "tok", &domain.UserProfile{ID: "u3"})
	if err := st.Clear("sid-3"); err != nil {
		t.Fatal(err)
	}
	sess, _ := st.Get("sid-3")
	if sess.IsAuthenticated || sess.Token != "" || sess.User != nil {
		t.Fatalf("expected cleared session, got %+v", sess)
	}
}

func signedToken(t *testing.T, roles []string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"roles": roles, "sub": "u1"})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestIsAdminPrefersProfileOverToken(t *testing.T) {
	sess := &session.Session{
		Token:           signedToken(t, []string{domain.RoleAdmin}),
		User:            &domain.UserProfile{Roles: []string{"ROLE_USER"}},
		IsAuthenticated: true,
	}
	if sess.IsAdmin() {
		t.Fatal("profile says user, IsAdmin must follow the profile")
	}
}

func TestIsAdminFallsBackToTokenClaims(t *testing.T) {
	sess := &session.Session{Token: signedToken(t, []string{domain.RoleAdmin}), IsAuthenticated: true}
	if !sess.IsAdmin() {
		t.Fatal("expected admin from token claims")
	}

	sess = &session.Session{Token: signedToken(t, []string{"ROLE_USER"}), IsAuthenticated: true}
	if sess.IsAdmin() {
		t.Fatal("plain user token must not be admin")
	}
}

func TestRolesFromGarbageToken(t *testing.T) {
	if roles := session.RolesFromToken("not-a-jwt"); roles != nil {
		t.Fatalf("expected nil roles, got %v", roles)
	}
	if roles := session.RolesFromToken(""); roles != nil {
		t.Fatalf("expected nil roles, got %v", roles)
	}
}
