package graph

import (
	"context"

	"twitterclone/backend/internal/auth"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/models"
)

type userResolver struct {
	user *models.User
	// self forces private fields on, e.g. for the user returned by login.
	self bool
}

func (u *userResolver) ID() int32           { return int32(u.user.ID) }
func (u *userResolver) Username() string    { return u.user.Username }
func (u *userResolver) DisplayName() string { return u.user.DisplayName }
func (u *userResolver) Avatar() *string     { return u.user.Avatar }
func (u *userResolver) Bio() *string        { return u.user.Bio }
func (u *userResolver) Banner() *string     { return u.user.Banner }
func (u *userResolver) CreatedAt() string   { return formatTime(u.user.CreatedAt) }
func (u *userResolver) UpdatedAt() string   { return formatTime(u.user.UpdatedAt) }

func (u *userResolver) Email(ctx context.Context) *string {
	if !u.self && auth.UserID(ctx) != u.user.ID {
		return nil
	}
	return &u.user.Email
}

func (u *userResolver) FollowersCount(ctx context.Context) (int32, error) {
	n, err := loader.For(ctx).FollowersCount(ctx, u.user.ID)
	return int32(n), public(err)
}

func (u *userResolver) FollowingsCount(ctx context.Context) (int32, error) {
	n, err := loader.For(ctx).FollowingsCount(ctx, u.user.ID)
	return int32(n), public(err)
}

func (u *userResolver) IsFollowed(ctx context.Context) (bool, error) {
	viewerID := auth.UserID(ctx)
	if viewerID == 0 || viewerID == u.user.ID {
		return false, nil
	}
	ok, err := loader.For(ctx).IsFollowing(ctx, viewerID, u.user.ID)
	return ok, public(err)
}
