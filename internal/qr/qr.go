// Package qr декодирует полезную нагрузку QR-кода стола.
package qr

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foodhive/client-shell/internal/model"
)

// ErrInvalidPayload возвращается, когда строка QR-кода не содержит
// полного набора параметров стола.
var ErrInvalidPayload = errors.New("invalid qr payload")

// Parse разбирает раскодированную сканером строку QR-кода. Ожидается
// URL с параметрами type, id, number и timestamp; все четыре
// обязательны, type должен быть "table".
func Parse(raw string) (model.QRData, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return model.QRData{}, fmt.Errorf("parse qr url: %w", err)
	}

	params := u.Query()
	typ := params.Get("type")
	id := params.Get("id")

	number, numErr := strconv.Atoi(params.Get("number"))
	timestamp, tsErr := strconv.ParseInt(params.Get("timestamp"), 10, 64)

	if typ != "table" || id == "" || numErr != nil || tsErr != nil {
		return model.QRData{}, ErrInvalidPayload
	}

	return model.QRData{
		Type:      typ,
		ID:        id,
		Number:    number,
		Timestamp: timestamp,
	}, nil
}
