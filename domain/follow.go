package domain

import "time"

// Follow represents a self-referential many-to-many relationship between
// two users: UserID follows AuthorID. The (user_id, author_id) pair is
// unique at the database level, so a follow edge can exist at most once
// regardless of how many requests race on it.
type Follow struct {
	ID       int  `json:"id"`
	UserID   int  `json:"-" gorm:"notNull;uniqueIndex:idx_follows_user_author"`
	User     User `json:"user"`
	AuthorID int  `json:"-" gorm:"notNull;uniqueIndex:idx_follows_user_author"`
	Author   User `json:"author"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	// Create adds a follow edge. Following a user twice is a no-op,
	// not an error. Following yourself returns EINVALID.
	Create(follow *Follow) error
	// Delete removes a follow edge. Deleting an edge that does not
	// exist returns ENOTFOUND.
	Delete(follow *Follow) error
	Follows(userID, authorID int) bool
}
