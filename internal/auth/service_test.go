package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elibhq/bookvault/pkg/bookvault"
	"github.com/elibhq/bookvault/pkg/bookvault/repo/memory"
)

func newTestService() (*Service, *jwtauth.JWTAuth) {
	tokens := jwtauth.New("HS256", []byte("test-secret"), nil)
	return New(memory.NewUserRepository(), tokens), tokens
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestService()

	tokenString, err := svc.Register(context.Background(), "Paul", "paul@arrakis.example", "muaddib")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwtauth.VerifyToken(tokens, tokenString)
	require.NoError(t, err)
	sub, ok := token.Get("sub")
	require.True(t, ok)
	assert.NotEmpty(t, sub)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "", "paul@arrakis.example", "muaddib")
	assert.ErrorIs(t, err, bookvault.ErrMissingUserFields)

	_, err = svc.Register(context.Background(), "Paul", "paul@arrakis.example", "")
	assert.ErrorIs(t, err, bookvault.ErrMissingUserFields)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Paul", "paul@arrakis.example", "muaddib")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "paul@arrakis.example", "other")
	assert.ErrorIs(t, err, bookvault.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Paul", "paul@arrakis.example", "muaddib")
	require.NoError(t, err)

	tokenString, err := svc.Login(ctx, "paul@arrakis.example", "muaddib")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	_, err = svc.Login(ctx, "paul@arrakis.example", "wrong")
	assert.ErrorIs(t, err, bookvault.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@arrakis.example", "muaddib")
	assert.ErrorIs(t, err, bookvault.ErrInvalidCredentials)
}
