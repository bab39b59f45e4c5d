package services

import (
	"crypto/subtle"
	"time"

	"foodmanager/models"
	"foodmanager/utils"
)

// SessionManager checks the admin credential and issues and verifies the
// signed tokens stored in the auth-token cookie.
type SessionManager struct {
	admin    models.User
	password string
	secret   []byte
	ttl      time.Duration
}

func NewSessionManager(email, password, name string, secret []byte, ttl time.Duration) *SessionManager {
	return &SessionManager{
		admin:    models.User{ID: 1, Email: email, Name: name},
		password: password,
		secret:   secret,
		ttl:      ttl,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Authenticate compares both fields by exact string equality. It reports
// only success or failure, never which field was wrong.
func (m *SessionManager) Authenticate(email, password string) (*models.User, bool) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(m.admin.Email))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password))
	if emailOK&passOK != 1 {
		return nil, false
	}
	u := m.admin
	return &u, true
}

func (m *SessionManager) Issue(u *models.User) (string, error) {
	return utils.GenerateSessionToken(u.Email, m.secret, m.ttl)
}

// Valid reports whether token is a live session for the admin account.
func (m *SessionManager) Valid(token string) bool {
	claims, err := utils.ParseSessionToken(token, m.secret)
	if err != nil {
		return false
	}
	return claims.Email == m.admin.Email
}
