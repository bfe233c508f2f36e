package crud

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/domain"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.OAuth{},
		&domain.Group{},
		&domain.Post{},
		&domain.Comment{},
		&domain.Follow{},
	))
	return db
}

// testUser registers a user through the real service, so password and
// remember token handling match production.
func testUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	us := NewUserService(db, "test-hmac-key", "test-pepper")
	user := &domain.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "password123",
	}
	require.NoError(t, us.Create(context.Background(), user))
	return user
}

func testGroup(t *testing.T, db *gorm.DB, slug string) *domain.Group {
	t.Helper()
	gs := NewGroupService(db)
	group := &domain.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "A test group",
	}
	require.NoError(t, gs.Create(group))
	return group
}

func testPost(t *testing.T, db *gorm.DB, author *domain.User, text string) *domain.Post {
	t.Helper()
	ps := NewPostService(db)
	post := &domain.Post{
		Text:     text,
		AuthorID: author.ID,
	}
	require.NoError(t, ps.Create(post))
	return post
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return int(n)
}
