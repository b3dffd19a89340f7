package service

import "context"

// Favoris возвращает избранные блюда пользователя. Для анонимной
// сессии избранного не существует.
func (s *Service) Favoris() []string {
	if !s.sessions.Session().IsAuthenticated() {
		return []string{}
	}
	return s.favoris.Favoris()
}

// AddFavori добавляет блюдо в избранное. Локальный стор меняется только
// после успешного серверного запроса.
func (s *Service) AddFavori(ctx context.Context, platID string) error {
	sess := s.sessions.Session()
	if !sess.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if err := s.api.AddFavorite(ctx, sess.User.ID, platID); err != nil {
		return err
	}

	s.favoris.AddFavori(platID)
	return nil
}

// RemoveFavori убирает блюдо из избранного.
func (s *Service) RemoveFavori(ctx context.Context, platID string) error {
	sess := s.sessions.Session()
	if !sess.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if err := s.api.RemoveFavorite(ctx, sess.User.ID, platID); err != nil {
		return err
	}

	s.favoris.RemoveFavori(platID)
	return nil
}
