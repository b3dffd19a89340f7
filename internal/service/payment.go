package service

import (
	"context"

	"github.com/foodhive/client-shell/internal/api"
)

// StartPayment создаёт платёж по заказу и возвращает ссылку на оплату
// для перенаправления пользователя. 409 (api.ErrConflict) означает,
// что платёж по заказу уже в обработке.
func (s *Service) StartPayment(ctx context.Context, commandeID string, montant float64, returnURL string) (string, error) {
	payment, err := s.api.CreatePayment(ctx, api.PaymentRequest{
		CommandeID: commandeID,
		Montant:    montant,
	})
	if err != nil {
		return "", err
	}

	return s.api.GetPaymentLink(ctx, payment.ID, returnURL)
}

// VerifyPaymentReturn обрабатывает возврат пользователя с платёжного
// шлюза: запрашивает итог платежа и сохраняет его на сервере FoodHive.
// Локальные сторы не затрагиваются: статус заказа контролирует сервер.
func (s *Service) VerifyPaymentReturn(ctx context.Context, paymentID string) (*api.PaymentVerification, error) {
	verification, err := s.api.VerifyPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if verification.CommandeID != "" {
		err = s.api.UpdatePayment(ctx, verification.CommandeID, api.PaymentUpdate{
			Status:         verification.Status,
			MoneeroPayment: paymentID,
		})
		if err != nil {
			return nil, err
		}
	}

	return verification, nil
}

// PaymentStatus возвращает статус платежа по заказу.
func (s *Service) PaymentStatus(ctx context.Context, commandeID string) (string, error) {
	return s.api.GetPaymentStatus(ctx, commandeID)
}
