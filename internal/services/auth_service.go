package services

import (
	"context"
	"errors"

	"petwell/internal/api"
	"petwell/internal/domain"
	"petwell/internal/session"
)

var ErrBadCreds = errors.New("invalid username or password")

// AuthService owns the session read/write contract: set on login, clear
// on logout, refresh the cached profile when it lags the token.
type AuthService struct {
	API      *api.Set
	Sessions *session.Store
}

func (s *AuthService) Login(ctx context.Context, sid, emailOrUsername, password string) (*domain.UserProfile, error) {
	auth, err := s.API.Auth.Login(ctx, api.LoginRequest{EmailOrUsername: emailOrUsername, Password: password})
	if err != nil {
		if ae, ok := api.AsAPIError(err); ok && (ae.IsAuthFailure() || ae.IsForbidden()) {
			return nil, ErrBadCreds
		}
		return nil, err
	}

	// The profile may lag the token; a failed fetch is not fatal to the
	// login, Current will retry on the next request.
	user, perr := s.API.Users.Profile(ctx, auth.Token)
	if perr != nil {
		user = nil
	}
	if err := s.Sessions.SetLogin(sid, auth.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Clear(sid)
}

// Current resolves the session for sid. When a token exists without a
// cached profile the profile is fetched before anything renders; a
// failed fetch forces logout so the caller sees an unauthenticated
// session.
func (s *AuthService) Current(ctx context.Context, sid string) (*session.Session, error) {
	sess, err := s.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	if !sess.IsAuthenticated || sess.User != nil {
		return sess, nil
	}

	user, err := s.API.Users.Profile(ctx, sess.Token)
	if err != nil {
		_ = s.Sessions.Clear(sid)
		return &session.Session{SID: sid}, nil
	}
	if err := s.Sessions.SetUser(sid, user); err != nil {
		return nil, err
	}
	sess.User = user
	return sess, nil
}

// TeardownOnAuthFailure clears the session when err is a backend 401.
// Returns true when the session was torn down.
func (s *AuthService) TeardownOnAuthFailure(sid string, err error) bool {
	ae, ok := api.AsAPIError(err)
	if !ok || !ae.IsAuthFailure() {
		return false
	}
	_ = s.Sessions.Clear(sid)
	return true
}
