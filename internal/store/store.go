// Package store содержит персистентные сторы локального состояния
// оболочки: сессию, корзину, стол, избранное и недавние заказы.
//
// Каждый стор владеет ровно одним ключом durable-хранилища и не
// обращается к чужим ключам; межсторные очистки идут только через
// каскад (см. Cascade).
package store

import (
	"encoding/json"

	"go.uber.org/zap"
)

// StateStore описывает контракт durable-хранилища, используемый сторами.
type StateStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Cascade перечисляет команды очистки, которые logout обязан
// каскадировать в остальные сторы. Список собран в одном месте и
// направлен строго в одну сторону: стор сессии ничего не знает о
// внутренностях остальных сторов.
type Cascade interface {
	ClearPanier()
	ClearFavoris()
	ClearCommandes()
}

type cascadeTargets struct {
	panier    *PanierStore
	favoris   *FavorisStore
	commandes *CommandeStore
}

// NewCascade собирает каскад очистки над тремя сторами, зависящими от
// владельца сессии.
func NewCascade(panier *PanierStore, favoris *FavorisStore, commandes *CommandeStore) Cascade {
	return &cascadeTargets{
		panier:    panier,
		favoris:   favoris,
		commandes: commandes,
	}
}

func (c *cascadeTargets) ClearPanier()    { c.panier.ClearPanier() }
func (c *cascadeTargets) ClearFavoris()   { c.favoris.ClearFavoris() }
func (c *cascadeTargets) ClearCommandes() { c.commandes.Clear() }

// persist сериализует снимок и записывает его по ключу стора. Сбой
// записи не прерывает работу: состояние в памяти остаётся актуальным,
// потеря ограничивается следующим перезапуском.
func persist(state StateStore, logger *zap.Logger, key string, snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("marshal state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := state.Put(key, data); err != nil {
		logger.Error("persist state", zap.String("key", key), zap.Error(err))
	}
}

// load читает и десериализует снимок по ключу стора. Возвращает
// storage.ErrNoState, если состояние ещё не сохранялось.
func load(state StateStore, key string, snapshot any) error {
	data, err := state.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return err
	}
	return nil
}
