// Package model содержит доменные сущности клиентской оболочки FoodHive.
package model

import "time"

// Role описывает роль пользователя на платформе.
type Role string

const (
	RoleClient       Role = "client"
	RoleGestionnaire Role = "gestionnaire"
	RoleAdmin        Role = "admin"
)

// User представляет пользователя платформы FoodHive.
type User struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Role      Role   `json:"role"`
}

// UserPatch описывает частичное обновление профиля пользователя.
// Роль не обновляется: она выдаётся сервером только при входе.
type UserPatch struct {
	Nom       *string `json:"nom,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
}

// Session описывает локальную сессию оболочки.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated сообщает, аутентифицирована ли сессия.
// Инвариант: истина тогда и только тогда, когда есть и пользователь, и токен.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Coordinates — географические координаты в градусах.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Restaurant содержит данные ресторана в объёме, достаточном для
// отображения и расчёта доставки.
type Restaurant struct {
	ID        string  `json:"_id"`
	Nom       string  `json:"nom"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Plat описывает блюдо в объёме, достаточном для отображения позиции корзины.
type Plat struct {
	ID         string      `json:"_id"`
	Nom        string      `json:"nom"`
	Prix       float64     `json:"prix"`
	ImageURL   string      `json:"imageUrl,omitempty"`
	Disponible bool        `json:"disponible"`
	Restaurant *Restaurant `json:"restaurantId,omitempty"`
}

// PanierItem — позиция корзины.
type PanierItem struct {
	Plat        Plat   `json:"platId"`
	Quantite    int    `json:"quantite"`
	Commentaire string `json:"commentaire,omitempty"`
}

// Panier — корзина, привязанная к одной паре (владелец, стол).
// Total всегда берётся из серверного снимка и никогда не вычисляется локально.
type Panier struct {
	ID    string       `json:"_id"`
	Items []PanierItem `json:"items"`
	Total float64      `json:"total"`
}

// ItemCount возвращает количество позиций, пересчитанное по текущему
// списку. Позиции с недоступными блюдами остаются в списке, но в счёт
// не входят.
func (p Panier) ItemCount() int {
	count := 0
	for _, item := range p.Items {
		if item.Plat.Disponible {
			count += item.Quantite
		}
	}
	return count
}

// EmptyPanier возвращает каноническое пустое состояние корзины.
// Items всегда инициализирован пустым списком, а не nil: ни один путь
// кода не должен наблюдать корзину без списка позиций.
func EmptyPanier() Panier {
	return Panier{Items: []PanierItem{}}
}

// QRData — раскодированная полезная нагрузка QR-кода стола.
// Сохраняется до подтверждения занятия стола и сама по себе не означает,
// что стол занят.
type QRData struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Timestamp int64  `json:"timestamp"`
}

// Table описывает стол, занятие которого подтверждено сервером.
type Table struct {
	ID             string     `json:"_id"`
	Numero         int        `json:"numero"`
	Capacite       int        `json:"capacite"`
	RestaurantID   string     `json:"restaurantId"`
	DateOccupation *time.Time `json:"dateOccupation,omitempty"`
	QRData         *QRData    `json:"qrData,omitempty"`
}

// CommandeStatut описывает статус заказа. Переходы между статусами
// контролирует сервер; оболочка статусы только отображает.
type CommandeStatut string

const (
	StatutEnAttente     CommandeStatut = "en_attente"
	StatutConfirmee     CommandeStatut = "confirmee"
	StatutEnPreparation CommandeStatut = "en_preparation"
	StatutPrete         CommandeStatut = "prete"
	StatutServie        CommandeStatut = "servie"
	StatutPayee         CommandeStatut = "payee"
	StatutAnnulee       CommandeStatut = "annulee"
)

// Режимы оформления заказа.
const (
	ModeSurPlace = "sur_place"
	ModeEmporter = "emporter"
)

// Commande описывает заказ, оформленный в текущей сессии.
type Commande struct {
	ID           string         `json:"_id"`
	Statut       CommandeStatut `json:"statut"`
	ModeCommande string         `json:"modeCommande,omitempty"`
	Items        []PanierItem   `json:"items,omitempty"`
	Total        float64        `json:"total"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty"`
}
