package store

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

// SessionStore владеет идентичностью и токеном текущей сессии.
// Побочные эффекты ограничены ключами foodHive_token и foodHive_user;
// очистка остальных сторов идёт только через каскад.
type SessionStore struct {
	mu      sync.Mutex
	state   StateStore
	cascade Cascade
	logger  *zap.Logger

	session model.Session
}

// NewSessionStore создаёт стор сессии с указанным хранилищем и каскадом
// очистки.
func NewSessionStore(state StateStore, cascade Cascade, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		state:   state,
		cascade: cascade,
		logger:  logger,
	}
}

// Login фиксирует аутентифицированную сессию. Сетевых вызовов нет:
// вызывающая сторона уже аутентифицировалась через внешний API.
func (s *SessionStore) Login(user model.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{User: &user, Token: token}

	if err := s.state.Put(storage.KeyToken, []byte(token)); err != nil {
		s.logger.Error("persist token", zap.Error(err))
	}
	persist(s.state, s.logger, storage.KeyUser, user)
}

// Logout очищает сессию и её ключи хранилища, затем каскадирует очистку
// корзины, избранного и недавних заказов, чтобы данные прежнего
// владельца не пережили смену сессии.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = model.Session{}

	if err := s.state.Delete(storage.KeyToken); err != nil {
		s.logger.Error("delete token", zap.Error(err))
	}
	if err := s.state.Delete(storage.KeyUser); err != nil {
		s.logger.Error("delete user", zap.Error(err))
	}
	s.mu.Unlock()

	s.cascade.ClearPanier()
	s.cascade.ClearFavoris()
	s.cascade.ClearCommandes()
}

// InitializeAuth восстанавливает сессию из хранилища. Идемпотентна и
// безопасна для повторных вызовов. При нечитаемом состоянии выполняет
// Logout, гарантируя согласованное пустое состояние вместо частично
// заполненного.
func (s *SessionStore) InitializeAuth() {
	s.mu.Lock()

	token, errToken := s.state.Get(storage.KeyToken)
	userData, errUser := s.state.Get(storage.KeyUser)

	tokenMissing := errors.Is(errToken, storage.ErrNoState)
	userMissing := errors.Is(errUser, storage.ErrNoState)

	if tokenMissing && userMissing {
		s.mu.Unlock()
		return
	}
	if tokenMissing || userMissing {
		// Осиротевший ключ без пары удаляется: хранилище сессии либо
		// полное, либо пустое.
		if err := s.state.Delete(storage.KeyToken); err != nil {
			s.logger.Error("delete token", zap.Error(err))
		}
		if err := s.state.Delete(storage.KeyUser); err != nil {
			s.logger.Error("delete user", zap.Error(err))
		}
		s.mu.Unlock()
		return
	}
	if errToken != nil || errUser != nil {
		s.mu.Unlock()
		s.logger.Error("read persisted session",
			zap.NamedError("token", errToken), zap.NamedError("user", errUser))
		s.Logout()
		return
	}

	var user model.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.mu.Unlock()
		s.logger.Error("parse persisted user", zap.Error(err))
		s.Logout()
		return
	}

	s.session = model.Session{User: &user, Token: string(token)}
	s.mu.Unlock()
}

// UpdateUser накладывает частичное обновление на профиль пользователя.
// Токен не затрагивается. Для неаутентифицированной сессии — no-op.
func (s *SessionStore) UpdateUser(patch model.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.User == nil {
		return
	}

	user := *s.session.User
	if patch.Nom != nil {
		user.Nom = *patch.Nom
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Telephone != nil {
		user.Telephone = *patch.Telephone
	}

	s.session.User = &user
	persist(s.state, s.logger, storage.KeyUser, user)
}

// Session возвращает снимок текущей сессии.
func (s *SessionStore) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	if sess.User != nil {
		user := *sess.User
		sess.User = &user
	}
	return sess
}
