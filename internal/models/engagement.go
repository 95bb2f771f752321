package models

import "time"

// Like, Retweet and Bookmark are (user, tweet) join records. The composite primary key makes
// each pair unique, so a concurrent duplicate insert fails instead of double counting.

// Like marks a tweet as liked by a user.
type Like struct {
	UserID    uint `gorm:"primaryKey"`
	TweetID   uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Retweet is the canonical representation of a retweet. It never clones the tweet.
type Retweet struct {
	UserID    uint `gorm:"primaryKey"`
	TweetID   uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Bookmark saves a tweet for later.
type Bookmark struct {
	UserID    uint `gorm:"primaryKey"`
	TweetID   uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
