package validation

import (
	"strings"
	"testing"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/models"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fields(errs []apperr.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestAddTweet(t *testing.T) {
	tests := []struct {
		name  string
		input AddTweetInput
		want  []string
	}{
		{name: "plain tweet", input: AddTweetInput{Body: "Hello world"}},
		{name: "body too short", input: AddTweetInput{Body: "a"}, want: []string{"body"}},
		{name: "body too long", input: AddTweetInput{Body: strings.Repeat("a", 381)}, want: []string{"body"}},
		{name: "body counts surrounding spaces", input: AddTweetInput{Body: "  a "}},
		{name: "body at max", input: AddTweetInput{Body: strings.Repeat("é", 380)}},
		{
			name:  "valid hashtags and url",
			input: AddTweetInput{Body: "tags", Hashtags: []string{"#golang", "#go_lang"}, URL: ptr("https://go.dev")},
		},
		{name: "hashtag without hash", input: AddTweetInput{Body: "tags", Hashtags: []string{"golang"}}, want: []string{"hashtags"}},
		{name: "hashtag too long", input: AddTweetInput{Body: "tags", Hashtags: []string{"#" + strings.Repeat("a", 21)}}, want: []string{"hashtags"}},
		{name: "bad url", input: AddTweetInput{Body: "link", URL: ptr("not a url")}, want: []string{"url"}},
		{name: "bad media", input: AddTweetInput{Body: "media", Media: ptr("::")}, want: []string{"media"}},
		{
			name:  "comment",
			input: AddTweetInput{Body: "reply", ParentID: ptr(uint(1)), Type: ptr(models.TweetTypeComment)},
		},
		{name: "type without parent", input: AddTweetInput{Body: "reply", Type: ptr(models.TweetTypeComment)}, want: []string{"parent_id"}},
		{name: "parent without type", input: AddTweetInput{Body: "reply", ParentID: ptr(uint(1))}, want: []string{"type"}},
		{
			name:  "parent with tweet type",
			input: AddTweetInput{Body: "reply", ParentID: ptr(uint(1)), Type: ptr(models.TweetTypeTweet)},
			want:  []string{"type"},
		},
		{name: "bad visibility", input: AddTweetInput{Body: "hidden", Visibility: ptr(models.Visibility("private"))}, want: []string{"visibility"}},
		{
			name:  "collects every failure",
			input: AddTweetInput{Body: "", Hashtags: []string{"x"}, URL: ptr("nope")},
			want:  []string{"body", "hashtags", "url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(AddTweet(tt.input))
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegister(t *testing.T) {
	require.Empty(t, Register(RegisterInput{Username: "john_doe", DisplayName: "John", Email: "john@test.fr", Password: "password"}))

	errs := Register(RegisterInput{Username: "j!", DisplayName: "J", Email: "john", Password: "123"})
	require.Equal(t, []string{"username", "display_name", "email", "password"}, fields(errs))
}

func TestLogin(t *testing.T) {
	require.Empty(t, Login(LoginInput{Email: "john@test.fr", Password: "password"}))
	require.Equal(t, []string{"email", "password"}, fields(Login(LoginInput{})))
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(nil))

	err := Check([]apperr.FieldError{{Field: "body", Message: "too short"}})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUniqueHashtags(t *testing.T) {
	require.Equal(t, []string{"#go", "#sql"}, UniqueHashtags([]string{"#go", "#sql", "#go"}))
	require.Empty(t, UniqueHashtags(nil))
}
