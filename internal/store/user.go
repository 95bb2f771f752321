package store

import (
	"context"
	"fmt"

	"twitterclone/backend/internal/models"
)

// FollowersSuggestions lists users that userID neither is nor follows, most followed first.
func (s *Store) FollowersSuggestions(ctx context.Context, userID uint, limit int) ([]*models.User, error) {
	db := s.db.WithContext(ctx)
	followed := db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)

	var users []*models.User
	err := db.
		Where("users.id <> ?", userID).
		Where("users.id NOT IN (?)", followed).
		Order("(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) DESC, users.id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("load suggestions for %d: %w", userID, err)
	}
	return users, nil
}
