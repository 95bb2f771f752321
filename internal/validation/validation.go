// Package validation checks mutation inputs before any state changes. Every function returns
// the full list of failed fields rather than stopping at the first one.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	MinBodyLength = 2
	MaxBodyLength = 380
)

var (
	validate = validator.New()

	hashtagPattern  = regexp.MustCompile(`^#[\w]{2,20}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,30}$`)
)

// AddTweetInput is the payload of addTweet.
type AddTweetInput struct {
	Body       string
	Hashtags   []string
	URL        *string
	Media      *string
	ParentID   *uint
	Type       *models.TweetType
	Visibility *models.Visibility
}

// RegisterInput is the payload of register.
type RegisterInput struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

// LoginInput is the payload of login. Email also accepts a username.
type LoginInput struct {
	Email    string
	Password string
}

// AddTweet validates a new tweet, comment or retweet.
func AddTweet(in AddTweetInput) []apperr.FieldError {
	var errs []apperr.FieldError

	if n := utf8.RuneCountInString(in.Body); n < MinBodyLength || n > MaxBodyLength {
		errs = append(errs, apperr.FieldError{Field: "body", Message: "body must be between 2 and 380 characters"})
	}

	for _, tag := range in.Hashtags {
		if !hashtagPattern.MatchString(tag) {
			errs = append(errs, apperr.FieldError{
				Field:   "hashtags",
				Message: "Each hashtag should start with a # and have a length between 2 and 20 characters",
			})
			break
		}
	}

	if in.URL != nil && validate.Var(*in.URL, "required,url") != nil {
		errs = append(errs, apperr.FieldError{Field: "url", Message: "url must be a valid URL"})
	}
	if in.Media != nil && validate.Var(*in.Media, "required,url") != nil {
		errs = append(errs, apperr.FieldError{Field: "media", Message: "media must be a valid URL"})
	}

	switch {
	case in.Type != nil && in.ParentID == nil:
		errs = append(errs, apperr.FieldError{Field: "parent_id", Message: "parent_id is required with a type"})
	case in.ParentID != nil && in.Type == nil:
		errs = append(errs, apperr.FieldError{Field: "type", Message: "type is required with a parent_id"})
	case in.ParentID != nil && *in.Type != models.TweetTypeComment && *in.Type != models.TweetTypeRetweet:
		errs = append(errs, apperr.FieldError{Field: "type", Message: "type must be one of: comment, retweet"})
	}

	if in.Visibility != nil && *in.Visibility != models.VisibilityPublic && *in.Visibility != models.VisibilityFollowers {
		errs = append(errs, apperr.FieldError{Field: "visibility", Message: "visibility must be one of: public, followers"})
	}

	return errs
}

// Register validates a registration.
func Register(in RegisterInput) []apperr.FieldError {
	var errs []apperr.FieldError

	if !usernamePattern.MatchString(in.Username) {
		errs = append(errs, apperr.FieldError{
			Field:   "username",
			Message: "The username should only contains alphanumeric characters and should have a length between 2 to 30",
		})
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.DisplayName)) < 2 {
		errs = append(errs, apperr.FieldError{Field: "display_name", Message: "display_name must be at least 2 characters"})
	}
	if validate.Var(in.Email, "required,email") != nil {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "email must be an email"})
	}
	if validate.Var(in.Password, "min=6") != nil {
		errs = append(errs, apperr.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs
}

// Login validates a login attempt.
func Login(in LoginInput) []apperr.FieldError {
	var errs []apperr.FieldError
	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "email should not be empty"})
	}
	if in.Password == "" {
		errs = append(errs, apperr.FieldError{Field: "password", Message: "password should not be empty"})
	}
	return errs
}

// Check turns a list of field errors into a VALIDATION error, or nil when the list is empty.
func Check(errs []apperr.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return apperr.Validation(errs)
}

// UniqueHashtags drops repeated tags, keeping the first occurrence order.
func UniqueHashtags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
