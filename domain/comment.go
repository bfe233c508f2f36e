package domain

import "time"

// Comment belongs to exactly one Post. Comments are immutable once
// created, there is no edit or delete surface.
type Comment struct {
	ID       int    `json:"id"`
	Text     string `json:"text" gorm:"notNull"`
	PostID   int    `json:"post_id" gorm:"notNull;index"`
	Post     Post   `json:"-"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   User   `json:"author"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	ByPostID(postID int) ([]Comment, error)
	Create(comment *Comment) error
}
