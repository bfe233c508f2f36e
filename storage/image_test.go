package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/domain"
	"inkwell/errs"
)

// chTempDir runs the test in a throwaway working directory so the
// images tree never lands in the repo.
func chTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestImageService_Create(t *testing.T) {
	chTempDir(t)
	is := NewImageService()

	img := &domain.Image{
		PostID:   1,
		Filename: "../../etc/passwd.png",
		File:     bytes.NewReader([]byte("fake image bytes")),
	}
	require.NoError(t, is.Create(img))

	// The client filename is replaced, only the extension survives.
	assert.NotContains(t, img.Filename, "..")
	assert.True(t, strings.HasSuffix(img.Filename, ".png"))
	assert.True(t, strings.HasPrefix(img.URL, "/images/posts/1/"))

	data, err := os.ReadFile(filepath.Join("images", "posts", "1", img.Filename))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestImageService_CreateValidations(t *testing.T) {
	chTempDir(t)
	is := NewImageService()

	err := is.Create(&domain.Image{File: bytes.NewReader([]byte("x"))})
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))

	err = is.Create(&domain.Image{PostID: 1})
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
}

func TestImageService_ByPost(t *testing.T) {
	chTempDir(t)
	is := NewImageService()

	require.NoError(t, is.Create(&domain.Image{
		PostID:   7,
		Filename: "pic.jpg",
		File:     bytes.NewReader([]byte("a")),
	}))

	images, err := is.ByPost(7)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 7, images[0].PostID)

	images, err = is.ByPost(8)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestImageService_DeleteByPost(t *testing.T) {
	chTempDir(t)
	is := NewImageService()

	require.NoError(t, is.Create(&domain.Image{
		PostID:   7,
		Filename: "pic.jpg",
		File:     bytes.NewReader([]byte("a")),
	}))
	require.NoError(t, is.DeleteByPost(7))

	_, err := os.Stat(filepath.Join("images", "posts", "7"))
	assert.True(t, os.IsNotExist(err))
}
