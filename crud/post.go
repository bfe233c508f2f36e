package crud

import (
	"strings"

	"gorm.io/gorm"

	"inkwell/domain"
	"inkwell/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.authorIdValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations needed for updating existing Post database records.
// The author is set at creation and is deliberately not validated or written
// here, see postGorm.Update.
func (pv *postValidator) Update(post *domain.Post) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post)
}

// Delete runs validations needed for deleting existing Post database records.
func (pv *postValidator) Delete(post *domain.Post) error {
	err := runPostValFns(post, pv.idValid)
	if err != nil {
		return err
	}
	return pv.postGorm.Delete(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed
// in Post object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object
// and returns an error.
type postValFn func(post *domain.Post) error

// authorIdValid ensures that the author id is not empty.
func (pv *postValidator) authorIdValid(post *domain.Post) error {
	if post.AuthorID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "An author is required.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Post is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "The post ID is invalid.")
	}
	return nil
}

// textRequired makes sure that the Post's text is not empty after trimming.
func (pv *postValidator) textRequired(post *domain.Post) error {
	if strings.TrimSpace(post.Text) == "" {
		return errs.Errorf(errs.EINVALID, "The post text must not be empty.")
	}
	return nil
}

// groupExists makes sure that the referenced Group actually exists.
// This check only runs if the incoming Post object carries a group ID,
// the group is optional.
func (pv *postValidator) groupExists(post *domain.Post) error {
	if post.GroupID == 0 {
		return nil
	}
	err := pv.db.First(&domain.Group{}, "id = ?", post.GroupID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.EINVALID, "The selected group does not exist.")
		}
		return err
	}
	return nil
}

// ByID retrieves a single Post by ID, along with its author and group.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// Latest retrieves one page of all posts, newest first.
func (pg *postGorm) Latest(offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		Order("pub_date desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByGroupID retrieves one page of the posts filed under a group, newest first.
func (pg *postGorm) ByGroupID(groupID, offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Where("group_id = ?", groupID).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByAuthorID retrieves one page of a single author's posts, newest first.
func (pg *postGorm) ByAuthorID(authorID, offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Where("author_id = ?", authorID).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByFollowerID retrieves one page of the posts written by authors the given
// user follows, newest first. This backs the /follow/ feed.
func (pg *postGorm) ByFollowerID(userID, offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date desc, posts.id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CountAll returns the total number of posts.
func (pg *postGorm) CountAll() (int, error) {
	var count int64
	err := pg.db.Model(&domain.Post{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountByGroupID returns the number of posts filed under a group.
func (pg *postGorm) CountByGroupID(groupID int) (int, error) {
	var count int64
	err := pg.db.Model(&domain.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountByAuthorID returns the number of posts written by an author.
func (pg *postGorm) CountByAuthorID(authorID int) (int, error) {
	var count int64
	err := pg.db.Model(&domain.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountByFollowerID returns the number of posts in the given user's follow feed.
func (pg *postGorm) CountByFollowerID(userID int) (int, error) {
	var count int64
	err := pg.db.Model(&domain.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Create stores the data from the Post object in a new database record.
func (pg *postGorm) Create(post *domain.Post) error {
	if err := pg.db.Create(post).Error; err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post).Error
}

// Update writes the mutable columns of the Post record. The author column
// is never part of the update, so a post cannot be reassigned.
func (pg *postGorm) Update(post *domain.Post) error {
	return pg.db.Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": groupIDOrNull(post.GroupID),
			"image":    post.Image,
		}).Error
}

// Delete permanently deletes the Post record, along with its comments.
func (pg *postGorm) Delete(post *domain.Post) error {
	err := pg.db.Where("post_id = ?", post.ID).Delete(&domain.Comment{}).Error
	if err != nil {
		return err
	}
	return pg.db.Delete(post).Error
}

// groupIDOrNull maps the zero group ID to SQL NULL, matching the
// default:null column definition on Post.GroupID.
func groupIDOrNull(id int) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
