package api

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentRequest — заявка на создание платежа по заказу.
// 409 (ErrConflict) означает, что платёж по заказу уже в обработке.
type PaymentRequest struct {
	CommandeID string  `json:"commandeId"`
	Montant    float64 `json:"montant"`
}

// Payment описывает платёж в объёме, нужном оболочке.
type Payment struct {
	ID         string `json:"_id"`
	CommandeID string `json:"commandeId"`
	Status     string `json:"status"`
}

// PaymentUpdate — обновление платежа после возврата с платёжного шлюза.
type PaymentUpdate struct {
	Status         string `json:"status"`
	MoneeroPayment string `json:"moneeroPayment"`
}

// PaymentVerification — результат проверки платежа у шлюза.
type PaymentVerification struct {
	Status     string
	CommandeID string
}

// CreatePayment создаёт платёж по заказу.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	data, err := c.do(ctx, http.MethodPost, "/payments", nil, req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Payment Payment `json:"payment"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Payment, nil
}

// GetPaymentLink возвращает ссылку на оплату для перенаправления.
func (c *Client) GetPaymentLink(ctx context.Context, paymentID, returnURL string) (string, error) {
	var query url.Values
	if returnURL != "" {
		query = url.Values{"returnUrl": {returnURL}}
	}

	data, err := c.do(ctx, http.MethodGet, "/payments/generate-link/"+paymentID, query, nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Link string `json:"link"`
	}
	if err := decodeData(data, &payload); err != nil {
		return "", err
	}
	return payload.Link, nil
}

// VerifyPayment запрашивает у шлюза состояние платежа после возврата
// пользователя по платёжной ссылке.
func (c *Client) VerifyPayment(ctx context.Context, paymentID string) (*PaymentVerification, error) {
	data, err := c.do(ctx, http.MethodGet, "/payments/verify/"+paymentID, nil, nil)
	if err != nil {
		return nil, err
	}

	// Шлюз отвечает вложенным конвертом: данные платежа лежат в
	// payment.data, идентификатор заказа — в его метаданных.
	var payload struct {
		Payment struct {
			Data struct {
				Status   string `json:"status"`
				Metadata struct {
					OrderID string `json:"order_id"`
				} `json:"metadata"`
			} `json:"data"`
		} `json:"payment"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}

	return &PaymentVerification{
		Status:     payload.Payment.Data.Status,
		CommandeID: payload.Payment.Data.Metadata.OrderID,
	}, nil
}

// UpdatePayment сохраняет итог платежа на сервере FoodHive.
func (c *Client) UpdatePayment(ctx context.Context, commandeID string, upd PaymentUpdate) error {
	_, err := c.do(ctx, http.MethodPut, "/payments/"+commandeID, nil, upd)
	return err
}

// GetPaymentStatus возвращает статус платежа по заказу.
func (c *Client) GetPaymentStatus(ctx context.Context, commandeID string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/payments/status/commande/"+commandeID, nil, nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeData(data, &payload); err != nil {
		return "", err
	}
	return payload.Status, nil
}
