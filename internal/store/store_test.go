package store

import (
	"testing"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/storage"
)

// memState — хранилище состояния в памяти для тестов сторов.
type memState struct {
	data map[string][]byte
}

func newMemState() *memState {
	return &memState{data: map[string][]byte{}}
}

func (m *memState) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNoState
	}
	return v, nil
}

func (m *memState) Put(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memState) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type testStores struct {
	state     *memState
	session   *SessionStore
	panier    *PanierStore
	favoris   *FavorisStore
	commandes *CommandeStore
}

func newTestStores(t *testing.T) testStores {
	t.Helper()

	state := newMemState()
	logger := zap.NewNop()

	panier := NewPanierStore(state, logger)
	favoris := NewFavorisStore(state, logger)
	commandes := NewCommandeStore(state, logger)
	session := NewSessionStore(state, NewCascade(panier, favoris, commandes), logger)

	return testStores{
		state:     state,
		session:   session,
		panier:    panier,
		favoris:   favoris,
		commandes: commandes,
	}
}
