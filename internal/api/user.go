package api

import (
	"context"
	"net/http"

	"github.com/foodhive/client-shell/internal/model"
)

// RegisterRequest — данные регистрации нового пользователя.
type RegisterRequest struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Password  string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login аутентифицирует пользователя и возвращает профиль с токеном.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", nil, credentialsRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, "", err
	}

	var auth authData
	if err := decodeData(data, &auth); err != nil {
		return nil, "", err
	}
	return &auth.User, auth.Token, nil
}

// Register регистрирует пользователя и возвращает профиль с токеном.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, "", err
	}

	var auth authData
	if err := decodeData(data, &auth); err != nil {
		return nil, "", err
	}
	return &auth.User, auth.Token, nil
}

// UpdateUser отправляет частичное обновление профиля и возвращает
// обновлённого пользователя.
func (c *Client) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	data, err := c.do(ctx, http.MethodPut, "/users/"+userID, nil, patch)
	if err != nil {
		return nil, err
	}

	var payload struct {
		User model.User `json:"user"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// GetFavorites возвращает избранные блюда пользователя.
// 404 транслируется в ErrNotFound и означает пустое избранное.
func (c *Client) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/"+userID+"/favorites", nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Favoris []string `json:"favoris"`
	}
	if err := decodeData(data, &payload); err != nil {
		return nil, err
	}
	return payload.Favoris, nil
}

// AddFavorite добавляет блюдо в избранное пользователя.
func (c *Client) AddFavorite(ctx context.Context, userID, platID string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/"+userID+"/add-favorite", nil, map[string]string{
		"platId": platID,
	})
	return err
}

// RemoveFavorite убирает блюдо из избранного пользователя.
func (c *Client) RemoveFavorite(ctx context.Context, userID, platID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+userID+"/remove-favorite/"+platID, nil, nil)
	return err
}
