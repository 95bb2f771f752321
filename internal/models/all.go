package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Follow{},
		&Tweet{},
		&Like{},
		&Retweet{},
		&Bookmark{},
		&Hashtag{},
		&HashtagTweet{},
		&Preview{},
		&PreviewTweet{},
		&Media{},
	}
}
