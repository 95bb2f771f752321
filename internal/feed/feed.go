// Package feed builds the home feed and the profile timelines.
//
// Both are produced in two steps. A UNION over tweets, likes and retweets yields one row per
// feed entry with its attribution timestamp and, for surfaced likes and retweets, the label
// of the user who performed them. The page of ids is then hydrated with the tweets and their
// counters in a single query. The SQL sticks to what postgres and sqlite both accept.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"twitterclone/backend/internal/models"

	"gorm.io/gorm"
)

// Filter selects what a profile timeline shows.
type Filter string

const (
	TweetsRetweets Filter = "TWEETS_RETWEETS"
	WithComments   Filter = "WITH_COMMENTS"
	OnlyMedia      Filter = "ONLY_MEDIA"
	OnlyLikes      Filter = "ONLY_LIKES"
)

func (f Filter) Valid() bool {
	switch f {
	case TweetsRetweets, WithComments, OnlyMedia, OnlyLikes:
		return true
	}
	return false
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a limit/offset window. A zero Limit means DefaultLimit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	switch {
	case p.Limit == 0:
		p.Limit = DefaultLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Author identifies the user whose like or retweet surfaced an entry.
type Author struct {
	DisplayName string
	Username    string
}

// Entry is one line of a feed.
type Entry struct {
	TweetID       uint
	AttributedAt  time.Time
	LikeAuthor    *Author
	RetweetAuthor *Author
	Tweet         *models.TweetWithCounts
}

type Result struct {
	Entries []Entry
	// Total is the number of entries across all pages.
	Total int64
}

// Hydrator loads tweets with their counters. *store.Store implements it.
type Hydrator interface {
	TweetsWithCounts(ctx context.Context, ids []uint) (map[uint]*models.TweetWithCounts, error)
}

type Engine struct {
	db     *gorm.DB
	tweets Hydrator
}

func NewEngine(db *gorm.DB, tweets Hydrator) *Engine {
	return &Engine{db: db, tweets: tweets}
}

// Home returns the feed of viewerID, who follows the users in following.
func (e *Engine) Home(ctx context.Context, viewerID uint, following []uint, page Page) (*Result, error) {
	q := homeQuery(viewerID, following)
	return e.run(ctx, q, page)
}

// Profile returns the timeline of userID under filter. An empty filter means TweetsRetweets.
func (e *Engine) Profile(ctx context.Context, userID uint, filter Filter, page Page) (*Result, error) {
	if filter == "" {
		filter = TweetsRetweets
	}
	if !filter.Valid() {
		return nil, fmt.Errorf("unknown timeline filter %q", filter)
	}
	return e.run(ctx, profileQuery(userID, filter), page)
}

func (e *Engine) run(ctx context.Context, q unionQuery, page Page) (*Result, error) {
	page = page.normalize()
	db := e.db.WithContext(ctx)
	union := q.sql()

	var total int64
	if err := db.Raw("SELECT COUNT(*) FROM ("+union+") AS results", q.args).Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("count feed entries: %w", err)
	}
	if total == 0 || int64(page.Offset) >= total {
		return &Result{Entries: []Entry{}, Total: total}, nil
	}

	args := make(map[string]any, len(q.args)+2)
	for k, v := range q.args {
		args[k] = v
	}
	args["limit"] = page.Limit
	args["offset"] = page.Offset

	rows, err := db.Raw(`SELECT tweet_id, attributed_at, like_author, retweet_author
FROM (`+union+`) AS results
ORDER BY attributed_at DESC, tweet_id DESC
LIMIT @limit OFFSET @offset`, args).Rows()
	if err != nil {
		return nil, fmt.Errorf("select feed entries: %w", err)
	}
	defer rows.Close()

	var (
		entries []Entry
		ids     []uint
	)
	for rows.Next() {
		var (
			entry                   Entry
			at                      timestamp
			likeLabel, retweetLabel *string
		)
		if err := rows.Scan(&entry.TweetID, &at, &likeLabel, &retweetLabel); err != nil {
			return nil, fmt.Errorf("scan feed entry: %w", err)
		}
		entry.AttributedAt = at.Time
		entry.LikeAuthor = parseAuthor(likeLabel)
		entry.RetweetAuthor = parseAuthor(retweetLabel)
		entries = append(entries, entry)
		ids = append(ids, entry.TweetID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read feed entries: %w", err)
	}
	rows.Close()

	tweets, err := e.tweets.TweetsWithCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	// A tweet deleted between the two queries drops out of the page.
	hydrated := entries[:0]
	for _, entry := range entries {
		if t, ok := tweets[entry.TweetID]; ok {
			entry.Tweet = t
			hydrated = append(hydrated, entry)
		}
	}
	return &Result{Entries: hydrated, Total: total}, nil
}

// parseAuthor splits a "display_name,username" label. Usernames cannot contain commas, so
// the last comma is the separator.
func parseAuthor(label *string) *Author {
	if label == nil {
		return nil
	}
	i := strings.LastIndex(*label, ",")
	if i < 0 {
		return &Author{Username: *label}
	}
	return &Author{DisplayName: (*label)[:i], Username: (*label)[i+1:]}
}
