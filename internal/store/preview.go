package store

import (
	"context"
	"fmt"

	"twitterclone/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavePreview upserts p by URL and links it to tweetID. The stored preview is returned.
func (s *Store) SavePreview(ctx context.Context, tweetID uint, p models.Preview) (*models.Preview, error) {
	var stored models.Preview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "image", "updated_at"}),
		}).Create(&p).Error
		if err != nil {
			return fmt.Errorf("upsert preview: %w", err)
		}

		if err := tx.Where("url = ?", p.URL).First(&stored).Error; err != nil {
			return fmt.Errorf("reload preview: %w", err)
		}

		link := models.PreviewTweet{PreviewID: stored.ID, TweetID: tweetID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("link preview to tweet %d: %w", tweetID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
