package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

// PanierStore владеет снимком активной корзины и производным счётчиком
// позиций. Корзина всегда замещается целиком серверным снимком;
// локальных оптимистичных мутаций нет.
type PanierStore struct {
	mu     sync.Mutex
	state  StateStore
	logger *zap.Logger

	panier    model.Panier
	itemCount int
}

// persistedPanier — сохраняемая форма состояния корзины. Имена полей
// повторяют прежний формат ключа panier-storage.
type persistedPanier struct {
	Panier    model.Panier `json:"panier"`
	ItemCount int          `json:"itemCount"`
}

// NewPanierStore создаёт стор корзины в каноническом пустом состоянии.
func NewPanierStore(state StateStore, logger *zap.Logger) *PanierStore {
	return &PanierStore{
		state:  state,
		logger: logger,
		panier: model.EmptyPanier(),
	}
}

// Load восстанавливает корзину из хранилища. Счётчик позиций всегда
// пересчитывается по списку, сохранённое значение не используется.
// Нечитаемое состояние заменяется каноническим пустым.
func (s *PanierStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot persistedPanier
	err := load(s.state, storage.KeyPanier, &snapshot)
	switch {
	case errors.Is(err, storage.ErrNoState):
		return
	case err != nil:
		s.logger.Error("load panier state", zap.Error(err))
		s.panier = model.EmptyPanier()
		s.itemCount = 0
		return
	}

	s.panier = canonical(snapshot.Panier)
	s.itemCount = s.panier.ItemCount()
}

// SetPanier целиком замещает корзину серверным снимком и пересчитывает
// счётчик позиций по доступным блюдам.
func (s *PanierStore) SetPanier(panier model.Panier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panier = canonical(panier)
	s.itemCount = s.panier.ItemCount()
	persist(s.state, s.logger, storage.KeyPanier, persistedPanier{
		Panier:    s.panier,
		ItemCount: s.itemCount,
	})
}

// ClearPanier сбрасывает корзину в каноническое пустое состояние.
func (s *PanierStore) ClearPanier() {
	s.SetPanier(model.EmptyPanier())
}

// Panier возвращает снимок текущей корзины.
func (s *PanierStore) Panier() model.Panier {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.panier
	p.Items = make([]model.PanierItem, len(s.panier.Items))
	copy(p.Items, s.panier.Items)
	return p
}

// ItemCount возвращает производный счётчик позиций корзины.
func (s *PanierStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
}

// canonical приводит снимок к канонической форме: список позиций
// никогда не равен nil.
func canonical(p model.Panier) model.Panier {
	if p.Items == nil {
		p.Items = []model.PanierItem{}
	}
	return p
}
