// Package sync реализует оркестратор синхронизации локального состояния
// оболочки с сервером FoodHive: единственное место, решающее, что
// должны содержать сторы корзины и избранного для текущей пары
// (владелец, стол).
package sync

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/model"
)

// ErrRoleMismatch возвращается, когда сохранённая сессия принадлежит
// роли, которой клиентская оболочка не обслуживает.
var ErrRoleMismatch = errors.New("session role is not client")

// SessionSource — операции стора сессии, нужные реконсиляции.
type SessionSource interface {
	Session() model.Session
	Logout()
}

// TableSource — чтение текущего стола.
type TableSource interface {
	Table() *model.Table
}

// PanierSink — применение серверной истины к стору корзины.
type PanierSink interface {
	SetPanier(model.Panier)
	ClearPanier()
}

// FavorisSink — применение серверной истины к стору избранного.
type FavorisSink interface {
	SetFavoris([]string)
	ClearFavoris()
}

// API — вызовы удалённого API, используемые реконсиляцией.
type API interface {
	GetPanier(ctx context.Context, ownerID, tableID string) (*model.Panier, error)
	GetFavorites(ctx context.Context, ownerID string) ([]string, error)
}

// Reconciler приводит сторы корзины и избранного к серверной истине.
type Reconciler struct {
	session SessionSource
	table   TableSource
	panier  PanierSink
	favoris FavorisSink
	api     API
	logger  *zap.Logger

	guestOwnerID   string
	guestTableCart bool

	// seq нумерует проходы реконсиляции. Ответ применяется только если
	// с момента старта прохода не начался более новый и не было
	// инвалидации: устаревший ответ не должен перезаписать состояние,
	// загруженное для новой идентичности.
	seq atomic.Uint64
}

// New создаёт оркестратор. guestTableCart включает загрузку гостевой
// корзины за столом для анонимной сессии.
func New(session SessionSource, table TableSource, panier PanierSink, favoris FavorisSink, apiClient API, guestOwnerID string, guestTableCart bool, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		session:        session,
		table:          table,
		panier:         panier,
		favoris:        favoris,
		api:            apiClient,
		logger:         logger,
		guestOwnerID:   guestOwnerID,
		guestTableCart: guestTableCart,
	}
}

// Invalidate помечает незавершённые проходы реконсиляции устаревшими.
// Вызывается при logout и смене стола.
func (r *Reconciler) Invalidate() {
	r.seq.Add(1)
}

// Sync выполняет один проход реконсиляции для текущей пары
// (владелец, стол). Сетевые сбои не фатальны: они логируются, а
// локальное состояние остаётся нетронутым. Единственная возвращаемая
// ошибка — ErrRoleMismatch.
func (r *Reconciler) Sync(ctx context.Context) error {
	pass := r.seq.Add(1)

	sess := r.session.Session()

	// Защита от несоответствия роли выполняется на каждом проходе до
	// любых загрузок: сохранённая сессия чужого контекста не должна
	// дойти до запросов корзины.
	if sess.IsAuthenticated() && sess.User.Role != model.RoleClient {
		r.session.Logout()
		r.Invalidate()
		return ErrRoleMismatch
	}

	tableID := ""
	if table := r.table.Table(); table != nil {
		tableID = table.ID
	}

	switch {
	case sess.IsAuthenticated():
		r.loadPanier(ctx, pass, sess.User.ID, tableID)
		r.loadFavoris(ctx, pass, sess.User.ID)
	case tableID == "":
		// Анонимная сессия без стола: валидной области запроса нет.
		if r.current(pass) {
			r.panier.ClearPanier()
		}
	case r.guestTableCart:
		r.loadPanier(ctx, pass, r.guestOwnerID, tableID)
	}

	return nil
}

func (r *Reconciler) current(pass uint64) bool {
	return r.seq.Load() == pass
}

func (r *Reconciler) loadPanier(ctx context.Context, pass uint64, ownerID, tableID string) {
	panier, err := r.api.GetPanier(ctx, ownerID, tableID)
	switch {
	case errors.Is(err, api.ErrNotFound):
		// Отсутствие корзины — валидное пустое состояние, не сбой.
		if r.current(pass) {
			r.panier.ClearPanier()
		}
	case err != nil:
		// Временный сбой: устаревшие данные лучше внезапного сброса.
		r.logger.Warn("panier reconciliation failed",
			zap.String("owner", ownerID), zap.Error(err))
	default:
		if r.current(pass) {
			r.panier.SetPanier(*panier)
		}
	}
}

func (r *Reconciler) loadFavoris(ctx context.Context, pass uint64, ownerID string) {
	favoris, err := r.api.GetFavorites(ctx, ownerID)
	switch {
	case errors.Is(err, api.ErrNotFound):
		if r.current(pass) {
			r.favoris.ClearFavoris()
		}
	case err != nil:
		r.logger.Warn("favoris reconciliation failed",
			zap.String("owner", ownerID), zap.Error(err))
	default:
		if r.current(pass) {
			r.favoris.SetFavoris(favoris)
		}
	}
}
