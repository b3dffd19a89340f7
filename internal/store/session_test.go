package store

import (
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

// countingCascade фиксирует число каскадных очисток.
type countingCascade struct {
	panier, favoris, commandes int
}

func (c *countingCascade) ClearPanier()    { c.panier++ }
func (c *countingCascade) ClearFavoris()   { c.favoris++ }
func (c *countingCascade) ClearCommandes() { c.commandes++ }

func (c *countingCascade) total() int {
	return c.panier + c.favoris + c.commandes
}

func clientUser(id string) model.User {
	return model.User{ID: id, Nom: "Awa", Email: "awa@foodhive.test", Role: model.RoleClient}
}

func TestLoginPersistsSession(t *testing.T) {
	ts := newTestStores(t)

	ts.session.Login(clientUser("u1"), "jwt-token")

	sess := ts.session.Session()
	if !sess.IsAuthenticated() {
		t.Fatalf("session must be authenticated after Login")
	}
	if sess.User.ID != "u1" || sess.Token != "jwt-token" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	token, err := ts.state.Get(storage.KeyToken)
	if err != nil || string(token) != "jwt-token" {
		t.Fatalf("token not persisted: %q, %v", token, err)
	}
	if _, err := ts.state.Get(storage.KeyUser); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestLogoutCascadeCompleteness(t *testing.T) {
	ts := newTestStores(t)

	ts.session.Login(clientUser("u1"), "jwt-token")
	ts.panier.SetPanier(model.Panier{
		ID: "panier-1",
		Items: []model.PanierItem{
			{Plat: model.Plat{ID: "p1", Disponible: true}, Quantite: 2},
		},
	})
	ts.favoris.SetFavoris([]string{"p1", "p2"})
	ts.commandes.Add(model.Commande{ID: "c1", Statut: model.StatutEnAttente})

	ts.session.Logout()

	if ts.session.Session().IsAuthenticated() {
		t.Fatalf("session must be empty after Logout")
	}

	panier := ts.panier.Panier()
	if panier.Items == nil || len(panier.Items) != 0 || ts.panier.ItemCount() != 0 {
		t.Fatalf("panier after logout = %+v, want canonical empty", panier)
	}
	if len(ts.favoris.Favoris()) != 0 {
		t.Fatalf("favoris must be empty after logout")
	}
	if len(ts.commandes.Recent()) != 0 {
		t.Fatalf("commandes must be empty after logout")
	}

	// Ключи сессии удалены, остальные ключи не содержат данных
	// прежнего владельца.
	if _, err := ts.state.Get(storage.KeyToken); !errors.Is(err, storage.ErrNoState) {
		t.Fatalf("token key must be deleted, got err %v", err)
	}
	if _, err := ts.state.Get(storage.KeyUser); !errors.Is(err, storage.ErrNoState) {
		t.Fatalf("user key must be deleted, got err %v", err)
	}

	var persisted persistedPanier
	data, err := ts.state.Get(storage.KeyPanier)
	if err != nil {
		t.Fatalf("panier key missing: %v", err)
	}
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("unmarshal persisted panier: %v", err)
	}
	if persisted.Panier.ID != "" || len(persisted.Panier.Items) != 0 {
		t.Fatalf("persisted panier still holds previous owner data: %+v", persisted)
	}
}

func TestInitializeAuthIdempotent(t *testing.T) {
	state := newMemState()
	cascade := &countingCascade{}
	session := NewSessionStore(state, cascade, zap.NewNop())

	userData, _ := json.Marshal(clientUser("u1"))
	_ = state.Put(storage.KeyToken, []byte("jwt-token"))
	_ = state.Put(storage.KeyUser, userData)

	session.InitializeAuth()
	first := session.Session()

	session.InitializeAuth()
	second := session.Session()

	if !first.IsAuthenticated() || !second.IsAuthenticated() {
		t.Fatalf("both initializations must restore the session")
	}
	if first.Token != second.Token || first.User.ID != second.User.ID {
		t.Fatalf("sessions differ: %+v vs %+v", first, second)
	}
	if cascade.total() != 0 {
		t.Fatalf("InitializeAuth must not cascade on valid state, got %d clears", cascade.total())
	}
}

func TestInitializeAuthEmptyState(t *testing.T) {
	state := newMemState()
	cascade := &countingCascade{}
	session := NewSessionStore(state, cascade, zap.NewNop())

	session.InitializeAuth()

	if session.Session().IsAuthenticated() {
		t.Fatalf("session must stay empty without persisted state")
	}
	if cascade.total() != 0 {
		t.Fatalf("no cascade expected on first start")
	}
}

func TestInitializeAuthOrphanKeyRemoved(t *testing.T) {
	userData, _ := json.Marshal(clientUser("u1"))

	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{"token without user", storage.KeyToken, []byte("jwt-token")},
		{"user without token", storage.KeyUser, userData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newMemState()
			cascade := &countingCascade{}
			session := NewSessionStore(state, cascade, zap.NewNop())

			_ = state.Put(tt.key, tt.value)

			session.InitializeAuth()

			if session.Session().IsAuthenticated() {
				t.Fatalf("half of a session must not authenticate")
			}
			if _, err := state.Get(storage.KeyToken); !errors.Is(err, storage.ErrNoState) {
				t.Fatalf("token key must be removed, got err %v", err)
			}
			if _, err := state.Get(storage.KeyUser); !errors.Is(err, storage.ErrNoState) {
				t.Fatalf("user key must be removed, got err %v", err)
			}
			if cascade.total() != 0 {
				t.Fatalf("orphan key cleanup must not cascade, got %d clears", cascade.total())
			}
		})
	}
}

func TestInitializeAuthCorruptUser(t *testing.T) {
	state := newMemState()
	cascade := &countingCascade{}
	session := NewSessionStore(state, cascade, zap.NewNop())

	_ = state.Put(storage.KeyToken, []byte("jwt-token"))
	_ = state.Put(storage.KeyUser, []byte("{not json"))

	session.InitializeAuth()

	if session.Session().IsAuthenticated() {
		t.Fatalf("corrupt state must resolve to an empty session, not a partial one")
	}
	if cascade.panier != 1 || cascade.favoris != 1 || cascade.commandes != 1 {
		t.Fatalf("corrupt state must trigger the full logout cascade: %+v", cascade)
	}
	if _, err := state.Get(storage.KeyToken); !errors.Is(err, storage.ErrNoState) {
		t.Fatalf("token key must be cleared after failed initialization")
	}
}

func TestUpdateUserKeepsToken(t *testing.T) {
	ts := newTestStores(t)
	ts.session.Login(clientUser("u1"), "jwt-token")

	nom := "Fatou"
	ts.session.UpdateUser(model.UserPatch{Nom: &nom})

	sess := ts.session.Session()
	if sess.User.Nom != "Fatou" {
		t.Fatalf("nom = %q, want Fatou", sess.User.Nom)
	}
	if sess.User.Email != "awa@foodhive.test" {
		t.Fatalf("untouched fields must survive the patch")
	}
	if sess.Token != "jwt-token" {
		t.Fatalf("token must not change on UpdateUser")
	}
	if sess.User.Role != model.RoleClient {
		t.Fatalf("role must not change on UpdateUser")
	}
}

func TestUpdateUserAnonymousNoop(t *testing.T) {
	ts := newTestStores(t)

	nom := "Fatou"
	ts.session.UpdateUser(model.UserPatch{Nom: &nom})

	if ts.session.Session().User != nil {
		t.Fatalf("UpdateUser on anonymous session must be a no-op")
	}
}
