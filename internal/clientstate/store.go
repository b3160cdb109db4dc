// Package clientstate persists the admin session and UI preferences in
// SQLite so they survive restarts.
package clientstate

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Keys in the client_state table.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyAdminTheme   = "adminTheme"
)

// Theme is the back-office color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme returns true if s is a known theme.
func ValidTheme(s string) bool {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Profile is the signed-in user as remembered locally.
type Profile struct {
	Email string `json:"email"`
}

// Tokens is the stored access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Store is a key/value view over the client_state table.
type Store struct {
	db *sql.DB
}

// New creates a client state store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveSession stores the tokens and profile of a successful login.
func (s *Store) SaveSession(t Tokens, email string) (err error) {
	profile, err := json.Marshal(Profile{Email: email})
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	values := map[string]string{
		KeyAccessToken:  t.AccessToken,
		KeyRefreshToken: t.RefreshToken,
		KeyUser:         string(profile),
	}
	for k, v := range values {
		if err = put(tx, k, v); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Tokens returns the stored token pair. Missing keys are empty strings.
func (s *Store) Tokens() (Tokens, error) {
	access, err := s.get(KeyAccessToken)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.get(KeyRefreshToken)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *Store) AccessToken() (string, error) {
	return s.get(KeyAccessToken)
}

// Profile returns the signed-in user. ok is false when no one is logged in.
func (s *Store) Profile() (p Profile, ok bool, err error) {
	raw, err := s.get(KeyUser)
	if err != nil || raw == "" {
		return Profile{}, false, err
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, false, fmt.Errorf("parsing stored profile: %w", err)
	}
	return p, true, nil
}

// Clear forgets the session. The theme preference is kept.
func (s *Store) Clear() error {
	_, err := s.db.Exec(
		"DELETE FROM client_state WHERE key IN (?, ?, ?)",
		KeyAccessToken, KeyRefreshToken, KeyUser,
	)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Theme returns the stored theme, defaulting to light.
func (s *Store) Theme() (Theme, error) {
	v, err := s.get(KeyAdminTheme)
	if err != nil {
		return "", err
	}
	if !ValidTheme(v) {
		return ThemeLight, nil
	}
	return Theme(v), nil
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(t Theme) error {
	if !ValidTheme(string(t)) {
		return fmt.Errorf("invalid theme %q (must be light or dark)", t)
	}
	return put(s.db, KeyAdminTheme, string(t))
}

// AccessTokenExpiry returns the exp claim of the stored access token. The
// signature is not checked; the API does that. ok is false when there is no
// token or it carries no expiry.
func (s *Store) AccessTokenExpiry() (exp time.Time, ok bool, err error) {
	token, err := s.AccessToken()
	if err != nil || token == "" {
		return time.Time{}, false, err
	}
	return TokenExpiry(token)
}

// TokenExpiry reads the exp claim of a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("parsing access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, false, nil
	}
	return exp.Time, true, nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func put(e execer, key, value string) error {
	_, err := e.Exec(
		`INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}
