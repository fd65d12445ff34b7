package session

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"petwell/internal/domain"
)

// Session is the authenticated state bound to one browser's sid cookie.
// IsAuthenticated tracks the token only; User may lag behind it until a
// profile fetch completes.
type Session struct {
	SID             string
	Token           string
	User            *domain.UserProfile
	IsAuthenticated bool
}

func (s *Session) IsAdmin() bool {
	if s == nil {
		return false
	}
	if s.User != nil {
		return s.User.IsAdmin()
	}
	// Profile not cached yet: fall back to the token's role claims.
	for _, r := range RolesFromToken(s.Token) {
		if r == domain.RoleAdmin {
			return true
		}
	}
	return false
}

// Store persists token + last-known profile per sid in a local sqlite
// file. These two values are the only client-side state that survives a
// restart.
type Store struct {
	DB *sqlx.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  token TEXT NOT NULL DEFAULT '',
  user_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

type row struct {
	ID       string         `db:"id"`
	Token    string         `db:"token"`
	UserJSON sql.NullString `db:"user_json"`
}

// Get returns the session for sid. An unknown sid yields an empty,
// unauthenticated session rather than an error.
func (s *Store) Get(sid string) (*Session, error) {
	var r row
	err := s.DB.Get(&r, `SELECT id,token,user_json FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{SID: sid}, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &Session{SID: sid, Token: r.Token, IsAuthenticated: r.Token != ""}
	if r.UserJSON.Valid && r.UserJSON.String != "" {
		var u domain.UserProfile
		if err := json.Unmarshal([]byte(r.UserJSON.String), &u); err == nil {
			sess.User = &u
		}
	}
	return sess, nil
}

// SetLogin stores the token and profile issued at login.
func (s *Store) SetLogin(sid, token string, user *domain.UserProfile) error {
	uj, err := marshalUser(user)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(`INSERT INTO sessions(id,token,user_json,last_seen)
                         VALUES(?,?,?,CURRENT_TIMESTAMP)
                         ON CONFLICT(id) DO UPDATE SET token=excluded.token,user_json=excluded.user_json,last_seen=CURRENT_TIMESTAMP`,
		sid, token, uj)
	return err
}

// SetUser refreshes the cached profile without touching the token.
func (s *Store) SetUser(sid string, user *domain.UserProfile) error {
	uj, err := marshalUser(user)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(`UPDATE sessions SET user_json=?,last_seen=CURRENT_TIMESTAMP WHERE id=?`, uj, sid)
	return err
}

// Clear drops both the token and the cached profile for sid.
func (s *Store) Clear(sid string) error {
	_, err := s.DB.Exec(`UPDATE sessions SET token='',user_json=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func marshalUser(user *domain.UserProfile) (sql.NullString, error) {
	if user == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(user)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
