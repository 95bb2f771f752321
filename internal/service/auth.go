package service

import (
	"context"
	"errors"
	"time"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/store"
	"twitterclone/backend/internal/validation"
	"twitterclone/backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *models.User
}

type AuthService struct {
	store    *store.Store
	secret   string
	tokenTTL time.Duration
	cost     int
}

func NewAuthService(s *store.Store, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: s, secret: secret, tokenTTL: tokenTTL, cost: bcrypt.DefaultCost}
}

func (s *AuthService) Register(ctx context.Context, in validation.RegisterInput) (*AuthResult, error) {
	if err := validation.Check(validation.Register(in)); err != nil {
		return nil, err
	}

	db := s.store.DB().WithContext(ctx)

	var taken []models.User
	if err := db.Where("username = ? OR email = ?", in.Username, in.Email).Find(&taken).Error; err != nil {
		return nil, apperr.Wrapf(err, "check existing user")
	}
	for _, u := range taken {
		if u.Username == in.Username {
			return nil, apperr.Conflict("username", "Username already taken")
		}
	}
	if len(taken) > 0 {
		return nil, apperr.Conflict("email", "Email already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperr.Wrapf(err, "hash password")
	}

	user := models.User{
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username", "Username or email already taken")
		}
		return nil, apperr.Wrapf(err, "create user")
	}

	return s.issue(&user)
}

// Login accepts an email or a username.
func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (*AuthResult, error) {
	if err := validation.Check(validation.Login(in)); err != nil {
		return nil, err
	}

	user, err := s.store.UserByLogin(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := jwt.GenerateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, apperr.Wrapf(err, "generate token")
	}
	return &AuthResult{Token: token, User: user}, nil
}

func invalidCredentials() *apperr.Error {
	return &apperr.Error{Kind: apperr.KindUnauthenticated, Message: "Invalid credentials"}
}
