package domain

import "io"

// ImagesBaseDir is the directory post images are stored under,
// relative to the working directory.
const ImagesBaseDir = "images"

// Image is a file attached to a Post. Only the filename is stored on
// the Post record, the bytes live on disk.
type Image struct {
	PostID   int
	Filename string
	File     io.ReadSeeker
	URL      string
}

// ImageService stores and retrieves post images on disk.
type ImageService interface {
	Create(img *Image) error
	ByPost(postID int) ([]Image, error)
	Delete(img *Image) error
	DeleteByPost(postID int) error
}
