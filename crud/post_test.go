package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/domain"
	"inkwell/errs"
)

func TestPostService_Create(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")
	group := testGroup(t, db, "travel")

	before := countRows(t, db, &domain.Post{})
	post := &domain.Post{
		Text:     "A post about travel",
		AuthorID: author.ID,
		GroupID:  group.ID,
	}
	require.NoError(t, ps.Create(post))

	assert.Equal(t, before+1, countRows(t, db, &domain.Post{}))
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, group.ID, post.GroupID)
	assert.False(t, post.PubDate.IsZero())
	assert.Equal(t, "author", post.Author.Username)
}

func TestPostService_CreateWithoutGroup(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")

	post := &domain.Post{
		Text:     "No group on this one",
		AuthorID: author.ID,
	}
	require.NoError(t, ps.Create(post))
	assert.Zero(t, post.GroupID)
}

func TestPostService_CreateEmptyText(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")

	for _, text := range []string{"", "   ", "\n\t"} {
		err := ps.Create(&domain.Post{Text: text, AuthorID: author.ID})
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err), "text=%q", text)
	}
	assert.Equal(t, 0, countRows(t, db, &domain.Post{}))
}

func TestPostService_CreateUnknownGroup(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")

	err := ps.Create(&domain.Post{
		Text:     "Pointing at a group that is not there",
		AuthorID: author.ID,
		GroupID:  999,
	})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestPostService_UpdateKeepsAuthor(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")
	other := testUser(t, db, "other")
	post := testPost(t, db, author, "Original text")

	post.Text = "Edited text"
	post.AuthorID = other.ID // must not stick
	require.NoError(t, ps.Update(post))

	got, err := ps.ByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited text", got.Text)
	assert.Equal(t, author.ID, got.AuthorID)
}

func TestPostService_UpdateCanClearGroup(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")
	group := testGroup(t, db, "travel")

	post := &domain.Post{Text: "Grouped", AuthorID: author.ID, GroupID: group.ID}
	require.NoError(t, ps.Create(post))

	post.GroupID = 0
	require.NoError(t, ps.Update(post))

	got, err := ps.ByID(post.ID)
	require.NoError(t, err)
	assert.Zero(t, got.GroupID)
	assert.Nil(t, got.Group)
}

func TestPostService_DeleteRemovesComments(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	cs := NewCommentService(db)
	author := testUser(t, db, "author")
	post := testPost(t, db, author, "Commented post")

	require.NoError(t, cs.Create(&domain.Comment{
		Text:     "nice",
		PostID:   post.ID,
		AuthorID: author.ID,
	}))

	require.NoError(t, ps.Delete(post))
	assert.Equal(t, 0, countRows(t, db, &domain.Post{}))
	assert.Equal(t, 0, countRows(t, db, &domain.Comment{}))

	_, err := ps.ByID(post.ID)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestPostService_ByGroupID(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")
	group := testGroup(t, db, "75")
	other := testGroup(t, db, "other")

	post := &domain.Post{Text: "Filed under 75", AuthorID: author.ID, GroupID: group.ID}
	require.NoError(t, ps.Create(post))

	posts, err := ps.ByGroupID(group.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Filed under 75", posts[0].Text)

	posts, err = ps.ByGroupID(other.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostService_LatestOrdersNewestFirst(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	author := testUser(t, db, "author")

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		post := &domain.Post{
			Text:     text,
			AuthorID: author.ID,
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, ps.Create(post))
	}

	posts, err := ps.Latest(0, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "second", posts[1].Text)

	total, err := ps.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestPostService_FollowFeed(t *testing.T) {
	db := testDB(t)
	ps := NewPostService(db)
	fs := NewFollowService(db)
	reader := testUser(t, db, "reader")
	followed := testUser(t, db, "followed")
	ignored := testUser(t, db, "ignored")

	testPost(t, db, followed, "From a followed author")
	testPost(t, db, ignored, "From an ignored author")

	require.NoError(t, fs.Create(&domain.Follow{UserID: reader.ID, AuthorID: followed.ID}))

	posts, err := ps.ByFollowerID(reader.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "From a followed author", posts[0].Text)

	total, err := ps.CountByFollowerID(reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
