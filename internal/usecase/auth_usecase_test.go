package usecase

import (
	"context"
	"testing"

	"portfolio-api/internal/pkg/jwt"
	"portfolio-api/internal/repository/memory"
	ucauth "portfolio-api/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(store *memory.Store, publicOwner int64) (*Auth, *jwt.HMACService) {
	tokens := jwt.NewHMACService("test-secret", 0)
	return NewAuthUsecase(store.Users(), store.Profiles(), tokens, publicOwner, nil), tokens
}

func TestAuth_SignupCreatesOwnedProfile(t *testing.T) {
	store := memory.New()
	uc, tokens := newAuth(store, 1)

	sess, err := uc.Signup(context.Background(), ucauth.SignupInput{
		Username: "ada",
		Password: "pw",
		Name:     "Ada",
		Email:    "ada@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, sess.User.ID, sess.Profile.UserID)
	assert.Empty(t, sess.User.PasswordHash)

	claims, err := tokens.ValidateToken(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)
}

func TestAuth_SignupValidation(t *testing.T) {
	uc, _ := newAuth(memory.New(), 1)

	_, err := uc.Signup(context.Background(), ucauth.SignupInput{Username: "ada", Password: "pw", Name: "Ada"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
}

func TestAuth_DuplicateUsername(t *testing.T) {
	uc, _ := newAuth(memory.New(), 1)
	ctx := context.Background()

	_, err := uc.Register(ctx, ucauth.RegisterInput{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, ucauth.RegisterInput{Username: "ada", Password: "other"})
	assert.ErrorIs(t, err, ucauth.ErrUsernameTaken)

	_, err = uc.Signup(ctx, ucauth.SignupInput{Username: "ada", Password: "pw", Name: "A", Email: "a@x"})
	assert.ErrorIs(t, err, ucauth.ErrUsernameTaken)
}

func TestAuth_LoginAndMe(t *testing.T) {
	uc, tokens := newAuth(memory.New(), 1)
	ctx := context.Background()

	signed, err := uc.Signup(ctx, ucauth.SignupInput{Username: "ada", Password: "pw", Name: "Ada", Email: "ada@x"})
	require.NoError(t, err)

	sess, err := uc.Login(ctx, ucauth.LoginInput{Username: "ada", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, signed.Profile.ID, sess.Profile.ID)

	claims, err := tokens.ValidateToken(sess.Token)
	require.NoError(t, err)

	me, err := uc.Me(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ada", me.Username)
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	uc, _ := newAuth(memory.New(), 1)
	ctx := context.Background()

	_, err := uc.Register(ctx, ucauth.RegisterInput{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, ucauth.LoginInput{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, err = uc.Login(ctx, ucauth.LoginInput{Username: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)
}

func TestAuth_LoginFallsBackToPublicProfile(t *testing.T) {
	store := memory.New()
	ownerID, ownerProfileID := seedUser(t, store, "owner")
	uc, _ := newAuth(store, ownerID)
	ctx := context.Background()

	_, err := uc.Register(ctx, ucauth.RegisterInput{Username: "guest", Password: "pw"})
	require.NoError(t, err)

	sess, err := uc.Login(ctx, ucauth.LoginInput{Username: "guest", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, ownerProfileID, sess.Profile.ID)
}

func TestAuth_LoginWithoutAnyProfile(t *testing.T) {
	uc, _ := newAuth(memory.New(), 99)
	ctx := context.Background()

	_, err := uc.Register(ctx, ucauth.RegisterInput{Username: "guest", Password: "pw"})
	require.NoError(t, err)

	sess, err := uc.Login(ctx, ucauth.LoginInput{Username: "guest", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, sess.Profile)
}

func TestAuth_MeUnknownUser(t *testing.T) {
	uc, _ := newAuth(memory.New(), 1)
	_, err := uc.Me(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

