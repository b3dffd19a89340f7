package service

import (
	"context"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/geo"
	"github.com/foodhive/client-shell/internal/model"
)

// Panier возвращает снимок активной корзины.
func (s *Service) Panier() model.Panier {
	return s.paniers.Panier()
}

// ItemCount возвращает производный счётчик позиций корзины.
func (s *Service) ItemCount() int {
	return s.paniers.ItemCount()
}

// AddToCart добавляет позицию в корзину. Локальный стор получает только
// серверный снимок из ответа: оптимистичных мутаций нет. Когда корзины
// ещё нет, запрос адресуется владельцу области, и сервер создаёт её.
func (s *Service) AddToCart(ctx context.Context, item api.ItemRequest) error {
	target := s.paniers.Panier().ID
	if target == "" {
		target = s.ownerID()
	}
	if target == "" {
		return ErrNoPanier
	}

	panier, err := s.api.AddToPanier(ctx, target, item)
	if err != nil {
		return err
	}

	s.paniers.SetPanier(*panier)
	return nil
}

// UpdateCartItem изменяет количество или комментарий позиции. Нулевое
// количество означает удаление позиции.
func (s *Service) UpdateCartItem(ctx context.Context, item api.ItemRequest) error {
	if item.Quantite <= 0 {
		return s.RemoveCartItem(ctx, item.PlatID)
	}

	panierID := s.paniers.Panier().ID
	if panierID == "" {
		return ErrNoPanier
	}

	panier, err := s.api.UpdateItem(ctx, panierID, item)
	if err != nil {
		return err
	}

	s.paniers.SetPanier(*panier)
	return nil
}

// RemoveCartItem убирает позицию из корзины.
func (s *Service) RemoveCartItem(ctx context.Context, platID string) error {
	panierID := s.paniers.Panier().ID
	if panierID == "" {
		return ErrNoPanier
	}

	panier, err := s.api.RemoveItem(ctx, panierID, platID)
	if err != nil {
		return err
	}

	s.paniers.SetPanier(*panier)
	return nil
}

// ClearCart опустошает корзину на сервере и применяет серверный снимок.
func (s *Service) ClearCart(ctx context.Context) error {
	panierID := s.paniers.Panier().ID
	if panierID == "" {
		return ErrNoPanier
	}

	panier, err := s.api.ClearPanier(ctx, panierID)
	if err != nil {
		return err
	}

	s.paniers.SetPanier(*panier)
	return nil
}

// CheckoutEligibility проверяет, может ли текущая корзина стать
// заказом. Возвращает nil либо первую из ошибок ErrNoPanier,
// ErrEmptyPanier, ErrUnavailableItems.
func (s *Service) CheckoutEligibility() error {
	panier := s.paniers.Panier()
	if panier.ID == "" {
		return ErrNoPanier
	}
	if len(panier.Items) == 0 {
		return ErrEmptyPanier
	}
	for _, item := range panier.Items {
		if !item.Plat.Disponible {
			return ErrUnavailableItems
		}
	}
	return nil
}

// Checkout преобразует корзину в заказ. Режим определяется столом:
// занятый стол — заказ на месте, иначе — на вынос, и тогда координаты
// клиента обязательны. Заказ добавляется в недавние, корзина
// очищается локально.
func (s *Service) Checkout(ctx context.Context, coords *model.Coordinates) (*model.Commande, error) {
	if err := s.CheckoutEligibility(); err != nil {
		return nil, err
	}

	req := api.ConvertRequest{ModeCommande: model.ModeSurPlace}
	if s.tables.Table() == nil {
		if coords == nil {
			return nil, ErrLocationRequired
		}
		req.ModeCommande = model.ModeEmporter
		req.Latitude = &coords.Latitude
		req.Longitude = &coords.Longitude
	}

	commande, err := s.api.ConvertToOrder(ctx, s.paniers.Panier().ID, req)
	if err != nil {
		return nil, err
	}

	s.commandes.Add(*commande)
	s.paniers.ClearPanier()
	return commande, nil
}

// DeliveryFee возвращает стоимость доставки для заказа на вынос. За
// столом доставка не нужна, стоимость равна нулю. Расстояние считается
// до ресторана первой позиции корзины.
func (s *Service) DeliveryFee(coords *model.Coordinates) float64 {
	if s.tables.Table() != nil {
		return 0
	}

	panier := s.paniers.Panier()
	if len(panier.Items) == 0 {
		return 0
	}

	restaurant := panier.Items[0].Plat.Restaurant
	if restaurant == nil {
		return 0
	}

	return geo.FraisLivraison(&model.Coordinates{
		Latitude:  restaurant.Latitude,
		Longitude: restaurant.Longitude,
	}, coords)
}
