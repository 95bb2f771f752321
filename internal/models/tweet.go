package models

import "time"

// TweetType is fixed when the tweet is created.
type TweetType string

const (
	TweetTypeTweet   TweetType = "tweet"
	TweetTypeRetweet TweetType = "retweet"
	TweetTypeComment TweetType = "comment"
)

// Visibility controls who a tweet is intended for.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
)

// Tweet is a piece of authored content. Comments point at their parent through ParentID and
// are deleted together with it.
type Tweet struct {
	ID         uint       `gorm:"primaryKey"`
	Body       string     `gorm:"type:text;not null"`
	UserID     uint       `gorm:"not null;index"`
	ParentID   *uint      `gorm:"index"`
	Type       TweetType  `gorm:"size:20;not null;default:'tweet';index"`
	Visibility Visibility `gorm:"size:20;not null;default:'public'"`
	CreatedAt  time.Time  `gorm:"index"`
	UpdatedAt  time.Time

	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Parent *Tweet `gorm:"foreignKey:ParentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TweetCounts are the social counters shown next to a tweet. They are global, not scoped to
// the viewer's graph.
type TweetCounts struct {
	LikesCount     int64
	RetweetsCount  int64
	CommentsCount  int64
	BookmarksCount int64
}

// TweetWithCounts is a tweet row hydrated with its counters.
type TweetWithCounts struct {
	Tweet
	TweetCounts
}
