package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

// CommandeStore владеет списком заказов, оформленных в текущей сессии.
// Это не история заказов с сервера: список накапливается локально и
// живёт до logout или нового входа.
type CommandeStore struct {
	mu     sync.Mutex
	state  StateStore
	logger *zap.Logger

	commandes []model.Commande
}

type persistedCommandes struct {
	Commandes []model.Commande `json:"commande"`
}

// NewCommandeStore создаёт стор недавних заказов.
func NewCommandeStore(state StateStore, logger *zap.Logger) *CommandeStore {
	return &CommandeStore{
		state:     state,
		logger:    logger,
		commandes: []model.Commande{},
	}
}

// Load восстанавливает список заказов из хранилища.
func (s *CommandeStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot persistedCommandes
	err := load(s.state, storage.KeyCommande, &snapshot)
	switch {
	case errors.Is(err, storage.ErrNoState):
		return
	case err != nil:
		s.logger.Error("load commandes state", zap.Error(err))
		s.commandes = []model.Commande{}
		return
	}

	if snapshot.Commandes == nil {
		snapshot.Commandes = []model.Commande{}
	}
	s.commandes = snapshot.Commandes
}

// Add добавляет заказ в конец списка.
func (s *CommandeStore) Add(commande model.Commande) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commandes = append(s.commandes, commande)
	persist(s.state, s.logger, storage.KeyCommande, persistedCommandes{Commandes: s.commandes})
}

// Replace замещает заказ с совпадающим идентификатором обновлённой
// версией. Контракт строго update-only: неизвестный идентификатор
// молча игнорируется и никогда не добавляется.
func (s *CommandeStore) Replace(commande model.Commande) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.commandes {
		if s.commandes[i].ID == commande.ID {
			s.commandes[i] = commande
			persist(s.state, s.logger, storage.KeyCommande, persistedCommandes{Commandes: s.commandes})
			return
		}
	}
}

// Clear опустошает список заказов.
func (s *CommandeStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commandes = []model.Commande{}
	persist(s.state, s.logger, storage.KeyCommande, persistedCommandes{Commandes: s.commandes})
}

// Recent возвращает заказы от новых к старым. Возвращается производная
// копия: канонический порядок добавления в хранении не меняется.
func (s *CommandeStore) Recent() []model.Commande {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Commande, 0, len(s.commandes))
	for i := len(s.commandes) - 1; i >= 0; i-- {
		out = append(out, s.commandes[i])
	}
	return out
}
