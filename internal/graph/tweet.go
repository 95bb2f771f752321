package graph

import (
	"context"
	"fmt"

	"twitterclone/backend/internal/auth"
	"twitterclone/backend/internal/feed"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/store"
)

// tweetResolver resolves a Tweet. counts is set when the row came from a query that already
// computed them; otherwise the counters go through the count loaders.
type tweetResolver struct {
	tweet         *models.Tweet
	counts        *models.TweetCounts
	likeAuthor    *feed.Author
	retweetAuthor *feed.Author
}

func (t *tweetResolver) ID() int32          { return int32(t.tweet.ID) }
func (t *tweetResolver) Body() string       { return t.tweet.Body }
func (t *tweetResolver) Type() string       { return string(t.tweet.Type) }
func (t *tweetResolver) Visibility() string { return string(t.tweet.Visibility) }
func (t *tweetResolver) CreatedAt() string  { return formatTime(t.tweet.CreatedAt) }
func (t *tweetResolver) UpdatedAt() string  { return formatTime(t.tweet.UpdatedAt) }

func (t *tweetResolver) ParentID() *int32 {
	if t.tweet.ParentID == nil {
		return nil
	}
	id := int32(*t.tweet.ParentID)
	return &id
}

func (t *tweetResolver) Parent(ctx context.Context) (*tweetResolver, error) {
	if t.tweet.ParentID == nil {
		return nil, nil
	}
	parent, err := loader.For(ctx).Tweet(ctx, *t.tweet.ParentID)
	if err != nil || parent == nil {
		return nil, public(err)
	}
	return &tweetResolver{tweet: &parent.Tweet}, nil
}

func (t *tweetResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := loader.For(ctx).User(ctx, t.tweet.UserID)
	if err != nil {
		return nil, public(err)
	}
	if user == nil {
		return nil, public(fmt.Errorf("author %d of tweet %d is missing", t.tweet.UserID, t.tweet.ID))
	}
	return &userResolver{user: user}, nil
}

func (t *tweetResolver) LikesCount(ctx context.Context) (int32, error) {
	if t.counts != nil {
		return int32(t.counts.LikesCount), nil
	}
	return t.engagementCount(ctx, store.Likes)
}

func (t *tweetResolver) RetweetsCount(ctx context.Context) (int32, error) {
	if t.counts != nil {
		return int32(t.counts.RetweetsCount), nil
	}
	return t.engagementCount(ctx, store.Retweets)
}

func (t *tweetResolver) BookmarksCount(ctx context.Context) (int32, error) {
	if t.counts != nil {
		return int32(t.counts.BookmarksCount), nil
	}
	return t.engagementCount(ctx, store.Bookmarks)
}

func (t *tweetResolver) CommentsCount(ctx context.Context) (int32, error) {
	if t.counts != nil {
		return int32(t.counts.CommentsCount), nil
	}
	n, err := loader.For(ctx).CommentsCount(ctx, t.tweet.ID)
	return int32(n), public(err)
}

func (t *tweetResolver) engagementCount(ctx context.Context, e store.Engagement) (int32, error) {
	n, err := loader.For(ctx).EngagementCount(ctx, e, t.tweet.ID)
	return int32(n), public(err)
}

func (t *tweetResolver) IsLiked(ctx context.Context) (bool, error) {
	return t.engaged(ctx, store.Likes)
}

func (t *tweetResolver) IsRetweeted(ctx context.Context) (bool, error) {
	return t.engaged(ctx, store.Retweets)
}

func (t *tweetResolver) IsBookmarked(ctx context.Context) (bool, error) {
	return t.engaged(ctx, store.Bookmarks)
}

// engaged is false for anonymous viewers.
func (t *tweetResolver) engaged(ctx context.Context, e store.Engagement) (bool, error) {
	userID := auth.UserID(ctx)
	if userID == 0 {
		return false, nil
	}
	ok, err := loader.For(ctx).Engaged(ctx, e, loader.TweetUserKey{TweetID: t.tweet.ID, UserID: userID})
	return ok, public(err)
}

func (t *tweetResolver) Preview(ctx context.Context) (*previewResolver, error) {
	p, err := loader.For(ctx).Preview(ctx, t.tweet.ID)
	if err != nil || p == nil {
		return nil, public(err)
	}
	return &previewResolver{p: p}, nil
}

func (t *tweetResolver) Media(ctx context.Context) (*mediaResolver, error) {
	m, err := loader.For(ctx).Media(ctx, t.tweet.ID)
	if err != nil || m == nil {
		return nil, public(err)
	}
	return &mediaResolver{m: m}, nil
}

func (t *tweetResolver) LikeAuthor() *authorResolver {
	if t.likeAuthor == nil {
		return nil
	}
	return &authorResolver{a: t.likeAuthor}
}

func (t *tweetResolver) RetweetAuthor() *authorResolver {
	if t.retweetAuthor == nil {
		return nil
	}
	return &authorResolver{a: t.retweetAuthor}
}

type authorResolver struct {
	a *feed.Author
}

func (a *authorResolver) Username() string    { return a.a.Username }
func (a *authorResolver) DisplayName() string { return a.a.DisplayName }

type previewResolver struct {
	p *models.Preview
}

func (p *previewResolver) ID() int32            { return int32(p.p.ID) }
func (p *previewResolver) URL() string          { return p.p.URL }
func (p *previewResolver) Title() string        { return p.p.Title }
func (p *previewResolver) Description() *string { return p.p.Description }
func (p *previewResolver) Image() *string       { return p.p.Image }

type mediaResolver struct {
	m *models.Media
}

func (m *mediaResolver) ID() int32   { return int32(m.m.ID) }
func (m *mediaResolver) URL() string { return m.m.URL }

type hashtagResolver struct {
	h models.TrendingHashtag
}

func (h *hashtagResolver) ID() int32          { return int32(h.h.ID) }
func (h *hashtagResolver) Hashtag() string    { return h.h.Hashtag }
func (h *hashtagResolver) TweetsCount() int32 { return int32(h.h.TweetsCount) }
