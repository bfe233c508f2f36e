package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/domain"
	"inkwell/errs"
)

func TestGroupService_Create(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)

	group := &domain.Group{
		Title:       "Travel",
		Slug:        "travel",
		Description: "Going places",
	}
	require.NoError(t, gs.Create(group))

	got, err := gs.BySlug("travel")
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Title)
}

func TestGroupService_CreateValidations(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)

	err := gs.Create(&domain.Group{Title: " ", Slug: "x"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = gs.Create(&domain.Group{Title: "No slug"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = gs.Create(&domain.Group{Title: "Bad slug", Slug: "no spaces!"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestGroupService_SlugTaken(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)
	testGroup(t, db, "travel")

	err := gs.Create(&domain.Group{Title: "Another", Slug: "travel"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestGroupService_BySlugNotFound(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)

	_, err := gs.BySlug("missing")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestGroupService_AllOrdersByTitle(t *testing.T) {
	db := testDB(t)
	gs := NewGroupService(db)

	require.NoError(t, gs.Create(&domain.Group{Title: "Zebra", Slug: "zebra"}))
	require.NoError(t, gs.Create(&domain.Group{Title: "Apple", Slug: "apple"}))

	groups, err := gs.All()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Apple", groups[0].Title)
	assert.Equal(t, "Zebra", groups[1].Title)
}
