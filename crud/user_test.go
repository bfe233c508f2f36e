package crud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/domain"
	"inkwell/errs"
)

func TestUserService_CreateHashesSecrets(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	user := &domain.User{
		Username: "leo",
		Email:    "Leo@Example.com ",
		Password: "password123",
	}
	require.NoError(t, us.Create(context.Background(), user))

	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.Remember)
	assert.NotEqual(t, user.Remember, user.RememberHash)
	assert.Equal(t, "leo@example.com", user.Email)
}

func TestUserService_CreateValidations(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	ctx := context.Background()

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing username", domain.User{Email: "a@example.com", Password: "password123"}},
		{"bad username", domain.User{Username: "bad name!", Email: "a@example.com", Password: "password123"}},
		{"missing password", domain.User{Username: "ok", Email: "a@example.com"}},
		{"short password", domain.User{Username: "ok", Email: "a@example.com", Password: "short"}},
		{"missing email", domain.User{Username: "ok", Password: "password123"}},
		{"bad email", domain.User{Username: "ok", Email: "not-an-email", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := us.Create(ctx, &tt.user)
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		})
	}
}

func TestUserService_CreateTakenUsername(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	testUser(t, db, "taken")

	err := us.Create(context.Background(), &domain.User{
		Username: "taken",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestUserService_Authenticate(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	user := testUser(t, db, "leo")

	got, err := us.Authenticate(user.Email, "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = us.Authenticate(user.Email, "wrong-password")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	_, err = us.Authenticate("nobody@example.com", "password123")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestUserService_ByRemember(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	user := testUser(t, db, "leo")

	got, err := us.ByRemember(user.Remember)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = us.ByRemember("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestUserService_ByUsername(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	testUser(t, db, "leo")

	got, err := us.ByUsername("leo")
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Username)

	_, err = us.ByUsername("nobody")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
