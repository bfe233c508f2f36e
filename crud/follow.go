package crud

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/domain"
	"inkwell/errs"
)

// FollowService manages Follow edges.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
// Following yourself is rejected. Following a user twice is treated as
// already satisfied and returns nil, the uniqueness is enforced by the
// database so concurrent requests cannot slip a duplicate edge in.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.userIdValid,
		fv.notSelf,
		fv.authorExists)
	if err != nil {
		return err
	}
	err = fv.followGorm.Create(follow)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Delete runs validations needed for deleting existing Follow database
// records. Deleting an edge that does not exist returns ENOTFOUND, unlike
// the idempotent Create.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.userIdValid,
		fv.edgeExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the
// passed in Follow object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow
// object and returns an error.
type followValFn func(follow *domain.Follow) error

// userIdValid ensures that the follower id is not empty.
func (fv *followValidator) userIdValid(follow *domain.Follow) error {
	if follow.UserID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "A follower is required.")
	}
	return nil
}

// notSelf makes sure a user is not following themselves.
func (fv *followValidator) notSelf(follow *domain.Follow) error {
	if follow.UserID == follow.AuthorID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// authorExists makes sure that the user to be followed actually exists.
func (fv *followValidator) authorExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.AuthorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// edgeExists makes sure the Follow record to be deleted actually exists.
// It also fills in the record's ID so the delete hits the right row.
func (fv *followValidator) edgeExists(follow *domain.Follow) error {
	var existing domain.Follow
	err := fv.db.
		Where("user_id = ? AND author_id = ?", follow.UserID, follow.AuthorID).
		First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "You cannot unfollow a user you are not following.")
		}
		return err
	}
	follow.ID = existing.ID
	return nil
}

// Follows reports whether userID currently follows authorID.
func (fg *followGorm) Follows(userID, authorID int) bool {
	err := fg.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&domain.Follow{}).Error
	return err == nil
}

// Create stores the data from the Follow object in a new database record.
func (fg *followGorm) Create(follow *domain.Follow) error {
	return fg.db.Create(follow).Error
}

// Delete permanently deletes the database record matching the Follow object.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.Delete(follow).Error
}
