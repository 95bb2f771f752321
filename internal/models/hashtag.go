package models

import "time"

// Hashtag is a unique tag text, including the leading '#'.
type Hashtag struct {
	ID        uint   `gorm:"primaryKey"`
	Hashtag   string `gorm:"size:32;unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashtagTweet links a hashtag to a tweet using it.
type HashtagTweet struct {
	HashtagID uint      `gorm:"primaryKey"`
	TweetID   uint      `gorm:"primaryKey;index"`
	CreatedAt time.Time `gorm:"index"`

	Hashtag *Hashtag `gorm:"foreignKey:HashtagID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet   *Tweet   `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TrendingHashtag is a hashtag with the number of tweets that recently used it.
type TrendingHashtag struct {
	ID          uint
	Hashtag     string
	TweetsCount int64
}
