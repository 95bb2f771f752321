package models

import "time"

// Preview is the scraped metadata of a link, shared by every tweet that posts the same URL.
type Preview struct {
	ID          uint    `gorm:"primaryKey"`
	URL         string  `gorm:"size:2048;unique;not null"`
	Title       string  `gorm:"size:512;not null"`
	Description *string `gorm:"type:text"`
	Image       *string `gorm:"size:2048"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PreviewTweet attaches a preview to a tweet. It is created after the tweet, asynchronously.
type PreviewTweet struct {
	PreviewID uint `gorm:"primaryKey"`
	TweetID   uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	Preview *Preview `gorm:"foreignKey:PreviewID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet   *Tweet   `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
