// Package auth implements user registration and login: password hashing
// and access-token issuance for the API surface. It is a collaborator of
// the book service, not part of the asset lifecycle itself.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

const (
	bcryptCost = 10
	tokenTTL   = 7 * 24 * time.Hour
)

// Service registers users and issues access tokens.
type Service struct {
	users  bookvault.UserRepository
	tokens *jwtauth.JWTAuth
}

// New creates an auth service issuing tokens through the given authority.
func New(users bookvault.UserRepository, tokens *jwtauth.JWTAuth) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and returns an
// access token for the new account.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", bookvault.ErrMissingUserFields
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return "", bookvault.ErrEmailTaken
	}
	if !errors.Is(err, bookvault.ErrUserNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	user := &bookvault.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	return s.issueToken(user.ID)
}

// Login verifies credentials and returns an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", bookvault.ErrMissingUserFields
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, bookvault.ErrUserNotFound) {
			return "", bookvault.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", bookvault.ErrInvalidCredentials
	}

	return s.issueToken(user.ID)
}

func (s *Service) issueToken(userID string) (string, error) {
	claims := map[string]interface{}{"sub": userID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenTTL)

	_, tokenString, err := s.tokens.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
