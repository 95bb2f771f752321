package feed

import (
	"strings"

	"twitterclone/backend/internal/models"
)

// Every branch selects (tweet_id, attributed_at, like_author, retweet_author).
const (
	noAuthor    = "CAST(NULL AS TEXT)"
	authorLabel = "u.display_name || ',' || u.username"
)

type unionQuery struct {
	branches []string
	args     map[string]any
}

func (q unionQuery) sql() string {
	return strings.Join(q.branches, "\nUNION\n")
}

// later picks the most recent of two timestamp columns; the second may be NULL.
func later(a, b string) string {
	return "CASE WHEN " + b + " > " + a + " THEN " + b + " ELSE " + a + " END"
}

func typeArgs(types ...models.TweetType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// homeQuery unions the tweets and comments of the viewer and the users they follow, the
// likes of followed users and the retweets of followed users. A like is hidden when a
// followed user retweeted the same tweet.
func homeQuery(viewerID uint, following []uint) unionQuery {
	followed := make([]uint, 0, len(following))
	for _, id := range following {
		if id != viewerID {
			followed = append(followed, id)
		}
	}

	q := unionQuery{
		args: map[string]any{
			"viewer":   viewerID,
			"members":  append(append([]uint{}, followed...), viewerID),
			"followed": followed,
			"types":    typeArgs(models.TweetTypeTweet, models.TweetTypeComment),
		},
	}

	q.branches = append(q.branches, `SELECT t.id AS tweet_id, t.created_at AS attributed_at, `+noAuthor+` AS like_author, `+noAuthor+` AS retweet_author
FROM tweets t
WHERE t.user_id IN @members AND t.type IN @types`)

	if len(followed) == 0 {
		return q
	}

	q.branches = append(q.branches, `SELECT t.id AS tweet_id, l.created_at AS attributed_at, `+authorLabel+` AS like_author, `+noAuthor+` AS retweet_author
FROM likes l
JOIN tweets t ON t.id = l.tweet_id
JOIN users u ON u.id = l.user_id
WHERE l.user_id IN @followed
AND t.id NOT IN (SELECT r.tweet_id FROM retweets r WHERE r.user_id IN @followed)`)

	q.branches = append(q.branches, `SELECT t.id AS tweet_id, r.created_at AS attributed_at, `+noAuthor+` AS like_author, `+authorLabel+` AS retweet_author
FROM retweets r
JOIN tweets t ON t.id = r.tweet_id
JOIN users u ON u.id = r.user_id
WHERE r.user_id IN @followed`)

	return q
}

func profileQuery(userID uint, filter Filter) unionQuery {
	q := unionQuery{args: map[string]any{"user": userID}}

	switch filter {
	case OnlyMedia:
		q.branches = []string{`SELECT t.id AS tweet_id, t.created_at AS attributed_at, ` + noAuthor + ` AS like_author, ` + noAuthor + ` AS retweet_author
FROM tweets t
JOIN medias m ON m.tweet_id = t.id
WHERE t.user_id = @user`}

	case OnlyLikes:
		q.branches = []string{`SELECT t.id AS tweet_id, ` + later("t.created_at", "l.created_at") + ` AS attributed_at, ` + authorLabel + ` AS like_author, ` + noAuthor + ` AS retweet_author
FROM likes l
JOIN tweets t ON t.id = l.tweet_id
JOIN users u ON u.id = l.user_id
WHERE l.user_id = @user`}

	default:
		types := []models.TweetType{models.TweetTypeTweet}
		if filter == WithComments {
			types = append(types, models.TweetTypeComment)
		}
		q.args["types"] = typeArgs(types...)

		// Own tweets, moved up when the author retweeted them later.
		q.branches = append(q.branches, `SELECT t.id AS tweet_id, `+later("t.created_at", "r.created_at")+` AS attributed_at, `+noAuthor+` AS like_author, `+noAuthor+` AS retweet_author
FROM tweets t
LEFT JOIN retweets r ON r.tweet_id = t.id AND r.user_id = @user
WHERE t.user_id = @user AND t.type IN @types`)

		// Retweets of anything the first branch does not already list.
		q.branches = append(q.branches, `SELECT t.id AS tweet_id, `+later("t.created_at", "r.created_at")+` AS attributed_at, `+noAuthor+` AS like_author, `+authorLabel+` AS retweet_author
FROM retweets r
JOIN tweets t ON t.id = r.tweet_id
JOIN users u ON u.id = r.user_id
WHERE r.user_id = @user AND NOT (t.user_id = @user AND t.type IN @types)`)
	}

	return q
}
