// Package storage реализует локальное durable-хранилище состояния оболочки.
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Ключи хранилища — контракт совместимости между версиями приложения.
// Смена ключа молча теряет активную корзину или стол пользователя при
// обновлении, поэтому имена зафиксированы.
const (
	KeyToken    = "foodHive_token"
	KeyUser     = "foodHive_user"
	KeyPanier   = "panier-storage"
	KeyTable    = "foodHive_table"
	KeyFavoris  = "foodHive_favoris"
	KeyCommande = "commande-storage"
)

// ErrNoState возвращается, когда по ключу нет сохранённого состояния.
var ErrNoState = errors.New("state not found")

// StateRecord — строка таблицы локального состояния: один ключ, один
// сериализованный снимок.
type StateRecord struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// Store — хранилище состояния поверх локального файла sqlite.
type Store struct {
	db *gorm.DB
}

// Open открывает файл состояния по указанному пути, создавая его при
// необходимости.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, fmt.Errorf("migrate state db: %w", err)
	}

	return &Store{db: db}, nil
}

// Get возвращает сохранённое состояние по ключу.
func (s *Store) Get(key string) ([]byte, error) {
	var rec StateRecord
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("get state %q: %w", key, err)
	}
	return rec.Value, nil
}

// Put сохраняет состояние по ключу, замещая предыдущее значение.
func (s *Store) Put(key string, value []byte) error {
	rec := StateRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

// Delete удаляет состояние по ключу. Отсутствие ключа не считается ошибкой.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&StateRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с файлом состояния.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
