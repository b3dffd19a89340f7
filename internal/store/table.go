package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/storage"
)

// TableStore владеет идентичностью текущего стола. Непустой стол
// означает, что занятие подтверждено сервером: одного раскодированного
// QR-кода для этого недостаточно.
type TableStore struct {
	mu     sync.Mutex
	state  StateStore
	logger *zap.Logger

	table  *model.Table
	qrData model.QRData
}

type persistedTable struct {
	Table  *model.Table `json:"table"`
	QRData model.QRData `json:"qrData"`
}

// NewTableStore создаёт стор стола.
func NewTableStore(state StateStore, logger *zap.Logger) *TableStore {
	return &TableStore{
		state:  state,
		logger: logger,
	}
}

// Load восстанавливает состояние стола из хранилища.
func (s *TableStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot persistedTable
	err := load(s.state, storage.KeyTable, &snapshot)
	switch {
	case errors.Is(err, storage.ErrNoState):
		return
	case err != nil:
		s.logger.Error("load table state", zap.Error(err))
		return
	}

	s.table = snapshot.Table
	s.qrData = snapshot.QRData
}

// SetQRData сохраняет раскодированную нагрузку QR-кода до попытки
// занятия стола. Состояние предварительное: стол ещё не занят.
func (s *TableStore) SetQRData(data model.QRData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.qrData = data
	persist(s.state, s.logger, storage.KeyTable, persistedTable{Table: s.table, QRData: s.qrData})
}

// SetTable фиксирует подтверждённое занятие стола. Вызывается только
// после успешного ответа на occupy-запрос.
func (s *TableStore) SetTable(table model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = &table
	persist(s.state, s.logger, storage.KeyTable, persistedTable{Table: s.table, QRData: s.qrData})
}

// ClearTable снимает привязку к столу: при явном освобождении и при
// неудачном occupy-запросе. Нагрузка QR-кода сохраняется для
// идемпотентности повторной загрузки.
func (s *TableStore) ClearTable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = nil
	persist(s.state, s.logger, storage.KeyTable, persistedTable{QRData: s.qrData})
}

// Table возвращает текущий стол или nil, если стол не занят.
func (s *TableStore) Table() *model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil
	}
	table := *s.table
	return &table
}

// QRData возвращает последнюю раскодированную нагрузку QR-кода.
func (s *TableStore) QRData() model.QRData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrData
}
