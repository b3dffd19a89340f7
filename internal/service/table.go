package service

import (
	"context"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/qr"
)

// Table возвращает текущий стол или nil.
func (s *Service) Table() *model.Table {
	return s.tables.Table()
}

// HandleQRScan обрабатывает скан QR-кода стола. Порядок строгий:
// нагрузка сохраняется как предварительная, стол фиксируется локально
// только после подтверждения занятия сервером. Повторный скан уже
// занятого стола идемпотентен. При отказе сервера привязка к столу
// снимается, и ошибка возвращается вызывающему.
func (s *Service) HandleQRScan(ctx context.Context, raw string) (*model.Table, error) {
	data, err := qr.Parse(raw)
	if err != nil {
		return nil, err
	}

	if current := s.tables.Table(); current != nil && current.ID == data.ID {
		return current, nil
	}

	s.tables.SetQRData(data)

	table, err := s.api.OccupyTable(ctx, data.ID, data)
	if err != nil {
		s.tables.ClearTable()
		return nil, err
	}

	s.tables.SetTable(*table)
	s.reconciler.Invalidate()
	if err := s.reconciler.Sync(ctx); err != nil {
		return nil, err
	}
	return s.tables.Table(), nil
}

// ReleaseTable освобождает занятый стол и перезагружает состояние для
// новой области: у анонимной сессии без стола корзины быть не должно.
func (s *Service) ReleaseTable(ctx context.Context) error {
	table := s.tables.Table()
	if table == nil {
		return ErrNoTable
	}

	if err := s.api.FreeTable(ctx, table.ID); err != nil {
		return err
	}

	s.tables.ClearTable()
	s.reconciler.Invalidate()
	return s.reconciler.Sync(ctx)
}
