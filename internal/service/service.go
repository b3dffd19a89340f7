// Package service реализует прикладные сценарии клиентской оболочки
// FoodHive: связывает локальные сторы, клиент API и оркестратор
// синхронизации.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/store"
)

// Ошибки прикладного уровня.
var (
	// ErrNotAuthenticated — операция требует аутентифицированной сессии.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrNoPanier — активной корзины нет, мутировать нечего.
	ErrNoPanier = errors.New("no active panier")
	// ErrEmptyPanier — корзина пуста и не может стать заказом.
	ErrEmptyPanier = errors.New("panier is empty")
	// ErrUnavailableItems — в корзине есть недоступные блюда.
	ErrUnavailableItems = errors.New("panier contains unavailable items")
	// ErrLocationRequired — для заказа на вынос нужны координаты клиента.
	ErrLocationRequired = errors.New("location required for takeaway order")
	// ErrNoTable — операция требует занятого стола.
	ErrNoTable = errors.New("no occupied table")
)

// API описывает вызовы удалённого сервера FoodHive, используемые
// прикладными сценариями.
type API interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Register(ctx context.Context, req api.RegisterRequest) (*model.User, string, error)
	UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error)

	AddFavorite(ctx context.Context, userID, platID string) error
	RemoveFavorite(ctx context.Context, userID, platID string) error

	AddToPanier(ctx context.Context, panierID string, item api.ItemRequest) (*model.Panier, error)
	UpdateItem(ctx context.Context, panierID string, item api.ItemRequest) (*model.Panier, error)
	RemoveItem(ctx context.Context, panierID, platID string) (*model.Panier, error)
	ClearPanier(ctx context.Context, panierID string) (*model.Panier, error)
	ConvertToOrder(ctx context.Context, panierID string, req api.ConvertRequest) (*model.Commande, error)
	CancelCommande(ctx context.Context, commandeID string) (*model.Commande, error)

	OccupyTable(ctx context.Context, tableID string, qrData model.QRData) (*model.Table, error)
	FreeTable(ctx context.Context, tableID string) error

	CreatePayment(ctx context.Context, req api.PaymentRequest) (*api.Payment, error)
	GetPaymentLink(ctx context.Context, paymentID, returnURL string) (string, error)
	VerifyPayment(ctx context.Context, paymentID string) (*api.PaymentVerification, error)
	UpdatePayment(ctx context.Context, commandeID string, upd api.PaymentUpdate) error
	GetPaymentStatus(ctx context.Context, commandeID string) (string, error)
}

// Reconciler описывает оркестратор синхронизации, которому сервис
// делегирует загрузку состояния после смены идентичности или стола.
type Reconciler interface {
	Sync(ctx context.Context) error
	Invalidate()
}

// Service реализует прикладные сценарии оболочки.
type Service struct {
	sessions   *store.SessionStore
	paniers    *store.PanierStore
	tables     *store.TableStore
	favoris    *store.FavorisStore
	commandes  *store.CommandeStore
	api        API
	reconciler Reconciler
	logger     *zap.Logger

	guestOwnerID   string
	guestTableCart bool
}

// NewService создаёт сервис поверх сторов, клиента API и оркестратора.
func NewService(
	sessions *store.SessionStore,
	paniers *store.PanierStore,
	tables *store.TableStore,
	favoris *store.FavorisStore,
	commandes *store.CommandeStore,
	apiClient API,
	reconciler Reconciler,
	guestOwnerID string,
	guestTableCart bool,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions:       sessions,
		paniers:        paniers,
		tables:         tables,
		favoris:        favoris,
		commandes:      commandes,
		api:            apiClient,
		reconciler:     reconciler,
		guestOwnerID:   guestOwnerID,
		guestTableCart: guestTableCart,
		logger:         logger,
	}
}

// Login аутентифицирует пользователя и фиксирует новую сессию. Список
// недавних заказов очищается до входа: заказы прежней сессии не должны
// достаться новой идентичности. Затем состояние корзины и избранного
// загружается с сервера; несоответствие роли возвращается как
// sync.ErrRoleMismatch.
func (s *Service) Login(ctx context.Context, email, password string) error {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.commandes.Clear()
	s.sessions.Login(*user, token)
	s.reconciler.Invalidate()
	return s.reconciler.Sync(ctx)
}

// Register регистрирует пользователя и сразу открывает сессию, как и
// Login.
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) error {
	user, token, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}

	s.commandes.Clear()
	s.sessions.Login(*user, token)
	s.reconciler.Invalidate()
	return s.reconciler.Sync(ctx)
}

// Logout закрывает сессию. Каскадную очистку сторов выполняет стор
// сессии; инвалидация помечает незавершённые проходы синхронизации
// устаревшими.
func (s *Service) Logout() {
	s.sessions.Logout()
	s.reconciler.Invalidate()
}

// UpdateProfile отправляет частичное обновление профиля на сервер и
// накладывает его на локальную сессию только после успеха.
func (s *Service) UpdateProfile(ctx context.Context, patch model.UserPatch) error {
	sess := s.sessions.Session()
	if !sess.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if _, err := s.api.UpdateUser(ctx, sess.User.ID, patch); err != nil {
		return err
	}

	s.sessions.UpdateUser(patch)
	return nil
}

// Refresh запускает один проход синхронизации с сервером.
func (s *Service) Refresh(ctx context.Context) error {
	return s.reconciler.Sync(ctx)
}

// Session возвращает снимок текущей сессии.
func (s *Service) Session() model.Session {
	return s.sessions.Session()
}

// ownerID возвращает идентификатор владельца корзины для текущей
// сессии: пользователя, гостя за столом либо пустую строку, когда
// валидной области нет.
func (s *Service) ownerID() string {
	if sess := s.sessions.Session(); sess.IsAuthenticated() {
		return sess.User.ID
	}
	if s.guestTableCart && s.tables.Table() != nil {
		return s.guestOwnerID
	}
	return ""
}
