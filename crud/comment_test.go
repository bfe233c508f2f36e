package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/domain"
	"inkwell/errs"
)

func TestCommentService_Create(t *testing.T) {
	db := testDB(t)
	cs := NewCommentService(db)
	author := testUser(t, db, "author")
	commenter := testUser(t, db, "commenter")
	post := testPost(t, db, author, "A commentable post")

	before := countRows(t, db, &domain.Comment{})
	comment := &domain.Comment{
		Text:     "post is good!",
		PostID:   post.ID,
		AuthorID: commenter.ID,
	}
	require.NoError(t, cs.Create(comment))

	assert.Equal(t, before+1, countRows(t, db, &domain.Comment{}))
	assert.Equal(t, "commenter", comment.Author.Username)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentService_CreateEmptyText(t *testing.T) {
	db := testDB(t)
	cs := NewCommentService(db)
	author := testUser(t, db, "author")
	post := testPost(t, db, author, "A commentable post")

	err := cs.Create(&domain.Comment{
		Text:     "   ",
		PostID:   post.ID,
		AuthorID: author.ID,
	})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, 0, countRows(t, db, &domain.Comment{}))
}

func TestCommentService_CreateOnMissingPost(t *testing.T) {
	db := testDB(t)
	cs := NewCommentService(db)
	author := testUser(t, db, "author")

	err := cs.Create(&domain.Comment{
		Text:     "into the void",
		PostID:   999,
		AuthorID: author.ID,
	})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestCommentService_ByPostIDOldestFirst(t *testing.T) {
	db := testDB(t)
	cs := NewCommentService(db)
	author := testUser(t, db, "author")
	post := testPost(t, db, author, "A commentable post")

	for _, text := range []string{"first", "second"} {
		require.NoError(t, cs.Create(&domain.Comment{
			Text:     text,
			PostID:   post.ID,
			AuthorID: author.ID,
		}))
	}

	comments, err := cs.ByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
}
