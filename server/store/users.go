// Package store holds the stub backend's in-memory state. Everything is
// lost on restart, which is exactly what a development backend wants.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hemahemapathi/health-management-client/users"
)

var ErrNotFound = errors.New("not found")

// UserStore keeps registered accounts and outstanding password-reset
// tokens.
type UserStore struct {
	lock        sync.RWMutex
	users       map[string]*users.User // id -> user
	emailIndex  map[string]string      // email -> id
	resetTokens map[string]string      // reset token -> user id
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:       make(map[string]*users.User),
		emailIndex:  make(map[string]string),
		resetTokens: make(map[string]string),
	}
}

func (s *UserStore) Upsert(user *users.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if existingID, ok := s.emailIndex[user.Email]; ok && existingID != user.ID {
		return errors.New("email already registered")
	}
	s.users[user.ID] = user
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *UserStore) GetByEmail(email string) (*users.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return nil, ErrNotFound
	}
	userCopy := *s.users[id]
	return &userCopy, nil
}

func (s *UserStore) GetByID(id string) (*users.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

// CreateResetToken issues a single-use password reset token for the account
// with the given email.
func (s *UserStore) CreateResetToken(email string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return "", ErrNotFound
	}
	token := uuid.New().String()
	s.resetTokens[token] = id
	return token, nil
}

// ConsumeResetToken resolves and invalidates a reset token.
func (s *UserStore) ConsumeResetToken(token string) (*users.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.resetTokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.resetTokens, token)
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}
