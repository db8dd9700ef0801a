package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksred/folio-api/internal/auth"
	"github.com/ksred/folio-api/internal/database"
	"github.com/ksred/folio-api/internal/types"
)

func TestRegister(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	user, err := service.Register(auth.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "testpass123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "testpass123", user.PasswordHash, "password must be stored hashed")
	assert.False(t, user.IsAdmin)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	_, err := service.Register(auth.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = service.Register(auth.RegisterRequest{Username: "alice", Password: "pw2"})
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	_, err := service.Register(auth.RegisterRequest{Username: "", Password: ""})
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	user, err := service.Register(auth.RegisterRequest{
		Username: "bob",
		Password: "testpass123",
	})
	require.NoError(t, err)

	token, err := service.GenerateToken(auth.Credentials{
		Username: "bob",
		Password: "testpass123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.Expiration, time.Minute)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.False(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID, "token should carry a unique id")
}

func TestGenerateToken_WrongPassword(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	_, err := service.Register(auth.RegisterRequest{Username: "bob", Password: "testpass123"})
	require.NoError(t, err)

	_, err = service.GenerateToken(auth.Credentials{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestGenerateToken_UnknownUser(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	_, err := service.GenerateToken(auth.Credentials{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	db := database.SetupTestDB(t)
	service := auth.NewService(db, "test-secret")

	_, err := service.Register(auth.RegisterRequest{Username: "bob", Password: "testpass123"})
	require.NoError(t, err)
	token, err := service.GenerateToken(auth.Credentials{Username: "bob", Password: "testpass123"})
	require.NoError(t, err)

	other := auth.NewService(db, "different-secret")
	_, err = other.ValidateToken(token.Token)
	assert.Error(t, err)
}
