package store

import (
	"encoding/json"
	"testing"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

func TestSetPanierRecomputesItemCount(t *testing.T) {
	ts := newTestStores(t)

	// Серверный снимок: total задан сервером и не пересчитывается,
	// счётчик позиций пересчитывается локально.
	ts.panier.SetPanier(model.Panier{
		ID:    "panier-1",
		Total: 5000,
		Items: []model.PanierItem{
			{Plat: model.Plat{ID: "p1", Disponible: false}, Quantite: 3},
			{Plat: model.Plat{ID: "p2", Disponible: true}, Quantite: 2},
		},
	})

	if got := ts.panier.ItemCount(); got != 2 {
		t.Fatalf("ItemCount = %d, want 2 (unavailable excluded)", got)
	}
	if got := ts.panier.Panier().Total; got != 5000 {
		t.Fatalf("Total = %v, want server-supplied 5000", got)
	}
	if got := len(ts.panier.Panier().Items); got != 2 {
		t.Fatalf("unavailable items must stay in the list, got %d items", got)
	}
}

func TestSetPanierNilItemsCanonicalized(t *testing.T) {
	ts := newTestStores(t)

	ts.panier.SetPanier(model.Panier{ID: "panier-1"})

	p := ts.panier.Panier()
	if p.Items == nil {
		t.Fatalf("Items must never be nil after SetPanier")
	}
}

func TestClearPanierListTyped(t *testing.T) {
	ts := newTestStores(t)

	ts.panier.SetPanier(model.Panier{
		ID: "panier-1",
		Items: []model.PanierItem{
			{Plat: model.Plat{ID: "p1", Disponible: true}, Quantite: 1},
		},
	})
	ts.panier.ClearPanier()

	p := ts.panier.Panier()
	if p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("cleared panier must be list-typed empty, got %+v", p)
	}
	if ts.panier.ItemCount() != 0 {
		t.Fatalf("ItemCount after clear = %d, want 0", ts.panier.ItemCount())
	}
}

func TestLoadRecomputesItemCount(t *testing.T) {
	ts := newTestStores(t)

	// Сохранённый счётчик расходится со списком: доверяем только списку.
	data, _ := json.Marshal(persistedPanier{
		Panier: model.Panier{
			ID: "panier-1",
			Items: []model.PanierItem{
				{Plat: model.Plat{ID: "p1", Disponible: true}, Quantite: 2},
			},
		},
		ItemCount: 99,
	})
	_ = ts.state.Put(storage.KeyPanier, data)

	ts.panier.Load()

	if got := ts.panier.ItemCount(); got != 2 {
		t.Fatalf("ItemCount after Load = %d, want recomputed 2", got)
	}
}

func TestLoadCorruptStateResolvesEmpty(t *testing.T) {
	ts := newTestStores(t)
	_ = ts.state.Put(storage.KeyPanier, []byte("{broken"))

	ts.panier.Load()

	p := ts.panier.Panier()
	if p.Items == nil || len(p.Items) != 0 || ts.panier.ItemCount() != 0 {
		t.Fatalf("corrupt state must resolve to canonical empty, got %+v", p)
	}
}

func TestPanierSnapshotIsCopy(t *testing.T) {
	ts := newTestStores(t)
	ts.panier.SetPanier(model.Panier{
		ID: "panier-1",
		Items: []model.PanierItem{
			{Plat: model.Plat{ID: "p1", Disponible: true}, Quantite: 1},
		},
	})

	p := ts.panier.Panier()
	p.Items[0].Quantite = 50

	if got := ts.panier.Panier().Items[0].Quantite; got != 1 {
		t.Fatalf("mutating a snapshot must not affect the store, got quantite %d", got)
	}
}
