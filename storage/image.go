package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"inkwell/domain"
	"inkwell/errs"
)

// MaxUploadSize caps how much of a multipart upload is buffered in memory.
const MaxUploadSize int64 = 20 << 20 // 20 Megabyte

// ImageService stores post attachments on disk under
// images/posts/{postID}/. Any file type is accepted, the post form does
// not restrict content types.
type ImageService struct {
	imageValidator
}

type imageValidator struct {
	imageCrud
}

type imageCrud struct{}

// NewImageService returns an instance of ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		imageValidator{
			imageCrud{},
		},
	}
}

var _ domain.ImageService = &ImageService{}

// Create runs validations / normalizations, then writes the file to disk.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.postIdValid,
		iv.fileRequired,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageCrud.Create(img)
}

type imageValFn func(img *domain.Image) error

func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

func (iv *imageValidator) postIdValid(img *domain.Image) error {
	if img.PostID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "An image needs a post to belong to.")
	}
	return nil
}

func (iv *imageValidator) fileRequired(img *domain.Image) error {
	if img.File == nil {
		return errs.Errorf(errs.EINTERNAL, "An image needs file contents.")
	}
	return nil
}

// fileNameUnique replaces the client-supplied filename with a generated
// one, keeping only the extension. Client filenames are never trusted
// as path components.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	img.Filename = uuid.NewString() + ext
	return nil
}

func (ic *imageCrud) Create(img *domain.Image) error {
	path, err := ic.mkImagePath(img.PostID)
	if err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(path, img.Filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := img.File.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.Copy(dst, img.File); err != nil {
		return err
	}
	img.URL = "/" + filepath.ToSlash(filepath.Join(path, img.Filename))
	return nil
}

// ByPost lists the stored files of a post.
func (ic *imageCrud) ByPost(postID int) ([]domain.Image, error) {
	path := ic.imagePath(postID)
	matches, err := filepath.Glob(filepath.Join(path, "*"))
	if err != nil {
		return nil, err
	}
	ret := make([]domain.Image, len(matches))
	for i, m := range matches {
		ret[i] = domain.Image{
			PostID:   postID,
			Filename: filepath.Base(m),
			URL:      "/" + filepath.ToSlash(m),
		}
	}
	return ret, nil
}

// Delete removes a single stored file.
func (ic *imageCrud) Delete(img *domain.Image) error {
	return os.Remove(filepath.Join(ic.imagePath(img.PostID), img.Filename))
}

// DeleteByPost removes a post's whole attachment directory.
// Used when the post itself is deleted.
func (ic *imageCrud) DeleteByPost(postID int) error {
	return os.RemoveAll(ic.imagePath(postID))
}

func (ic *imageCrud) mkImagePath(postID int) (string, error) {
	imagePath := ic.imagePath(postID)
	err := os.MkdirAll(imagePath, 0755)
	if err != nil {
		return "", err
	}
	return imagePath, nil
}

func (ic *imageCrud) imagePath(postID int) string {
	return fmt.Sprintf("%s/posts/%d", domain.ImagesBaseDir, postID)
}
