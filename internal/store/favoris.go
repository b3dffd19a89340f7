package store

import (
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/storage"
)

// FavorisStore владеет множеством идентификаторов избранных блюд
// аутентифицированного пользователя. Мутации вызываются только из
// продолжений успешных серверных запросов.
type FavorisStore struct {
	mu     sync.Mutex
	state  StateStore
	logger *zap.Logger

	favoris []string
}

// NewFavorisStore создаёт стор избранного.
func NewFavorisStore(state StateStore, logger *zap.Logger) *FavorisStore {
	return &FavorisStore{
		state:   state,
		logger:  logger,
		favoris: []string{},
	}
}

// Load восстанавливает избранное из хранилища.
func (s *FavorisStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	err := load(s.state, storage.KeyFavoris, &ids)
	switch {
	case errors.Is(err, storage.ErrNoState):
		return
	case err != nil:
		s.logger.Error("load favoris state", zap.Error(err))
		s.favoris = []string{}
		return
	}

	if ids == nil {
		ids = []string{}
	}
	s.favoris = ids
}

// SetFavoris целиком замещает множество избранного.
func (s *FavorisStore) SetFavoris(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favoris = make([]string, len(ids))
	copy(s.favoris, ids)
	persist(s.state, s.logger, storage.KeyFavoris, s.favoris)
}

// AddFavori добавляет блюдо в избранное. Повторное добавление — no-op.
func (s *FavorisStore) AddFavori(platID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.favoris, platID) {
		return
	}
	s.favoris = append(s.favoris, platID)
	persist(s.state, s.logger, storage.KeyFavoris, s.favoris)
}

// RemoveFavori убирает блюдо из избранного.
func (s *FavorisStore) RemoveFavori(platID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.favoris, platID)
	if idx < 0 {
		return
	}
	s.favoris = slices.Delete(s.favoris, idx, idx+1)
	persist(s.state, s.logger, storage.KeyFavoris, s.favoris)
}

// ClearFavoris опустошает множество избранного.
func (s *FavorisStore) ClearFavoris() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favoris = []string{}
	persist(s.state, s.logger, storage.KeyFavoris, s.favoris)
}

// Favoris возвращает копию множества избранного.
func (s *FavorisStore) Favoris() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.favoris))
	copy(out, s.favoris)
	return out
}
