package session

import (
	"sync"

	"github.com/linemk/storefront/internal/domain/models"
)

// Store - состояние сессии в памяти: пользователь и баланс либо оба заданы, либо оба пусты.
type Store struct {
	mu      sync.RWMutex
	user    *models.User
	balance int64
}

func NewStore() *Store {
	return &Store{}
}

// User возвращает копию текущего пользователя или nil
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Balance() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Set заменяет пользователя и баланс одним шагом
func (s *Store) Set(user models.User, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.balance = balance
}

// SetBalance обновляет баланс залогиненного пользователя, без пользователя вызов игнорируется
func (s *Store) SetBalance(balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.balance = balance
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.balance = 0
}
