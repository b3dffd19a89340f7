package model

import "testing"

func TestItemCountSkipsUnavailable(t *testing.T) {
	p := Panier{
		Items: []PanierItem{
			{Plat: Plat{ID: "p1", Disponible: true}, Quantite: 2},
			{Plat: Plat{ID: "p2", Disponible: false}, Quantite: 3},
			{Plat: Plat{ID: "p3", Disponible: true}, Quantite: 1},
		},
	}

	if got := p.ItemCount(); got != 3 {
		t.Fatalf("ItemCount() = %d, want 3", got)
	}
}

func TestItemCountAllUnavailable(t *testing.T) {
	p := Panier{
		Items: []PanierItem{
			{Plat: Plat{ID: "p1", Disponible: false}, Quantite: 3},
			{Plat: Plat{ID: "p2", Disponible: false}, Quantite: 2},
		},
	}

	if got := p.ItemCount(); got != 0 {
		t.Fatalf("ItemCount() = %d, want 0 for all-unavailable panier", got)
	}
	if len(p.Items) != 2 {
		t.Fatalf("unavailable items must stay in the list")
	}
}

func TestEmptyPanierIsListTyped(t *testing.T) {
	p := EmptyPanier()

	if p.Items == nil {
		t.Fatalf("EmptyPanier().Items must be an empty slice, not nil")
	}
	if len(p.Items) != 0 || p.ItemCount() != 0 {
		t.Fatalf("EmptyPanier() must have no items")
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"empty", Session{}, false},
		{"token only", Session{Token: "t"}, false},
		{"user only", Session{User: &User{ID: "u1"}}, false},
		{"both", Session{User: &User{ID: "u1"}, Token: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sess.IsAuthenticated(); got != tt.want {
				t.Fatalf("IsAuthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}
