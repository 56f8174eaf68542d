package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/elibdev/elib/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestRegister(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterOptions{
		Name:     "Frank Herbert",
		Email:    "frank@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Frank Herbert", user.Name)
	assert.Equal(t, "frank@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, CheckPassword("password123", user.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterOptions{
		Name:     "Frank Herbert",
		Email:    "frank@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Same address with different casing is still a duplicate.
	_, err = svc.Register(ctx, RegisterOptions{
		Name:     "Imposter",
		Email:    "Frank@Example.com",
		Password: "password456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.ValidationError("User already exists with this email."))
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterOptions{
		Name:     "Frank Herbert",
		Email:    "frank@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "frank@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "frank@example.com", "wrongpassword")
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid email or password"))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "password123")
		require.Error(t, err)

		// The message never reveals whether the account exists.
		assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid email or password"))
	})
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterOptions{
		Name:     "Frank Herbert",
		Email:    "frank@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	other := NewService(db, "different-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterOptions{
		Name:     "Frank Herbert",
		Email:    "frank@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db, "test-jwt-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
