package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username" gorm:"notNull;uniqueIndex;size:150"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" gorm:"uniqueIndex;size:254"`
	Password     string `json:"-" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	Posts  []Post   `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	OAuths []*OAuth `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display name shown on profile pages, falling back
// to the username when no real name has been set.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// UserService is a set of methods to manipulate and work with the User model.
// It also covers the database-facing half of the authentication system.
type UserService interface {
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByEmail(email string) (*User, error)
	ByRemember(token string) (*User, error)
	Authenticate(email, password string) (*User, error)
	MakeRememberToken() (string, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
