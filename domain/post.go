package domain

import "time"

// Post is a unit of content. The author is set at creation and never
// reassigned; editing only touches text, group and image.
type Post struct {
	ID       int    `json:"id"`
	Text     string `json:"text" gorm:"notNull"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   User   `json:"author"`

	GroupID int    `json:"group_id,omitempty" gorm:"default:null"`
	Group   *Group `json:"group,omitempty"`

	// Image is the stored filename of the post's attached file,
	// empty when the post has none. The file itself lives on disk,
	// see storage.ImageService.
	Image string `json:"image,omitempty"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`

	PubDate   time.Time `json:"pub_date" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
// All listing methods return posts newest first.
type PostService interface {
	ByID(id int) (*Post, error)
	Latest(offset, limit int) ([]Post, error)
	ByGroupID(groupID, offset, limit int) ([]Post, error)
	ByAuthorID(authorID, offset, limit int) ([]Post, error)
	ByFollowerID(userID, offset, limit int) ([]Post, error)
	CountAll() (int, error)
	CountByGroupID(groupID int) (int, error)
	CountByAuthorID(authorID int) (int, error)
	CountByFollowerID(userID int) (int, error)
	Create(post *Post) error
	Update(post *Post) error
	Delete(post *Post) error
}
