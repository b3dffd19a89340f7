package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/foodhive/client-shell/internal/model"
)

// ItemRequest — позиция для мутации корзины.
type ItemRequest struct {
	PlatID      string `json:"platId"`
	Quantite    int    `json:"quantite"`
	Commentaire string `json:"commentaire,omitempty"`
}

// ConvertRequest — параметры преобразования корзины в заказ.
// Координаты обязательны только для заказа на вынос.
type ConvertRequest struct {
	ModeCommande string   `json:"modeCommande"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type panierData struct {
	Panier model.Panier `json:"panier"`
}

// GetPanier возвращает текущую корзину владельца, при необходимости в
// области конкретного стола. 404 транслируется в ErrNotFound:
// «корзины ещё нет» — валидное пустое состояние.
func (c *Client) GetPanier(ctx context.Context, ownerID, tableID string) (*model.Panier, error) {
	var query url.Values
	if tableID != "" {
		query = url.Values{"tableId": {tableID}}
	}

	data, err := c.do(ctx, http.MethodGet, "/paniers/"+ownerID, query, nil)
	if err != nil {
		return nil, err
	}

	var payload panierData
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Panier, nil
}

// AddToPanier добавляет позицию и возвращает новый серверный снимок
// корзины.
func (c *Client) AddToPanier(ctx context.Context, panierID string, item ItemRequest) (*model.Panier, error) {
	data, err := c.do(ctx, http.MethodPost, "/paniers/"+panierID+"/add", nil, item)
	if err != nil {
		return nil, err
	}

	var payload panierData
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Panier, nil
}

// UpdateItem изменяет позицию и возвращает новый серверный снимок.
func (c *Client) UpdateItem(ctx context.Context, panierID string, item ItemRequest) (*model.Panier, error) {
	data, err := c.do(ctx, http.MethodPut, "/paniers/"+panierID+"/update-item", nil, item)
	if err != nil {
		return nil, err
	}

	var payload panierData
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Panier, nil
}

// RemoveItem убирает позицию и возвращает новый серверный снимок.
func (c *Client) RemoveItem(ctx context.Context, panierID, platID string) (*model.Panier, error) {
	data, err := c.do(ctx, http.MethodDelete, "/paniers/"+panierID+"/remove/"+platID, nil, nil)
	if err != nil {
		return nil, err
	}

	var payload panierData
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Panier, nil
}

// ClearPanier опустошает корзину на сервере и возвращает её снимок.
func (c *Client) ClearPanier(ctx context.Context, panierID string) (*model.Panier, error) {
	data, err := c.do(ctx, http.MethodDelete, "/paniers/"+panierID+"/clear", nil, nil)
	if err != nil {
		return nil, err
	}

	var payload panierData
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Panier, nil
}

// ConvertToOrder преобразует корзину в заказ.
func (c *Client) ConvertToOrder(ctx context.Context, panierID string, req ConvertRequest) (*model.Commande, error) {
	data, err := c.do(ctx, http.MethodPost, "/paniers/"+panierID+"/convert-to-order", nil, req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Commande model.Commande `json:"commande"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Commande, nil
}

// CancelCommande отменяет заказ и возвращает его обновлённую версию.
func (c *Client) CancelCommande(ctx context.Context, commandeID string) (*model.Commande, error) {
	data, err := c.do(ctx, http.MethodDelete, "/commandes/"+commandeID, nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Commande model.Commande `json:"commande"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Commande, nil
}
