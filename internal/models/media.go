package models

import "time"

// Media is the single attachment a tweet may carry.
type Media struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"size:2048;not null"`
	TweetID   uint   `gorm:"unique;not null"`
	UserID    uint   `gorm:"not null;index"`
	CreatedAt time.Time

	Tweet *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Media) TableName() string {
	return "medias"
}
