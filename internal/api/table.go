package api

import (
	"context"
	"net/http"

	"github.com/foodhive/client-shell/internal/model"
)

// OccupyTable подтверждает занятие стола по раскодированной нагрузке
// QR-кода. Любая ошибка означает, что стол занимать нельзя.
func (c *Client) OccupyTable(ctx context.Context, tableID string, qrData model.QRData) (*model.Table, error) {
	data, err := c.do(ctx, http.MethodPost, "/table/"+tableID+"/occupy", nil, qrData)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Table model.Table `json:"table"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.Table, nil
}

// FreeTable освобождает стол. Действие необратимо.
func (c *Client) FreeTable(ctx context.Context, tableID string) error {
	_, err := c.do(ctx, http.MethodPost, "/table/"+tableID+"/free", nil, nil)
	return err
}
