package service

import (
	"context"

	"github.com/foodhive/client-shell/internal/model"
)

// Commandes возвращает заказы текущей сессии от новых к старым.
func (s *Service) Commandes() []model.Commande {
	return s.commandes.Recent()
}

// CancelCommande отменяет заказ на сервере и замещает его локальную
// версию обновлённой.
func (s *Service) CancelCommande(ctx context.Context, commandeID string) error {
	commande, err := s.api.CancelCommande(ctx, commandeID)
	if err != nil {
		return err
	}

	s.commandes.Replace(*commande)
	return nil
}
