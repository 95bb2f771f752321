package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
// The primary key is a composite of (FollowerID, FollowingID) to ensure uniqueness.
type Follow struct {
	FollowerID  uint `gorm:"primaryKey"`
	FollowingID uint `gorm:"primaryKey;index"`
	CreatedAt   time.Time

	Follower  *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
