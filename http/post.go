package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/auth"
	"inkwell/domain"
	"inkwell/errs"
	"inkwell/paginate"
	"inkwell/storage"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/create/", s.requireAuth(s.handleCreatePost)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id:[0-9]+}/", s.handlePostDetail).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit/", s.requireAuth(s.handleEditPost)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id:[0-9]+}/delete/", s.requireAuth(s.handleDeletePost)).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}/comment/", s.requireAuth(s.handleAddComment)).Methods("POST")
}

// handleIndex renders the paginated front page. The unpaginated base page
// is served from the page cache when possible; requests with an explicit
// page parameter always hit the database. Nothing evicts a cached page on
// post mutation, stale entries live until expiry or an explicit clear.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cacheable := !r.URL.Query().Has("page")
	if cacheable {
		if out, ok := s.pages.Get(r.URL.Path); ok {
			writeHTML(w, http.StatusOK, out)
			return
		}
	}

	total, err := s.ps.CountAll()
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	page := paginate.New(r.URL.Query().Get("page"), total, s.postsPerPage)
	posts, err := s.ps.Latest(page.Offset(), page.Size)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	out, err := s.renderBytes(r, "index", &htmlData{
		Title: "Latest posts",
		Page:  page,
		Posts: posts,
	})
	if err != nil {
		errs.LogError(r, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cacheable {
		s.pages.Set(r.URL.Path, out)
	}
	writeHTML(w, http.StatusOK, out)
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderPostDetail(w, r, http.StatusOK, post, "", "")
}

// renderPostDetail renders the detail page including comments. It doubles
// as the re-render target when a submitted comment fails validation.
func (s *Server) renderPostDetail(w http.ResponseWriter, r *http.Request, status int, post *domain.Post, formError, formText string) {
	comments, err := s.cs.ByPostID(post.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.attachImage(post)
	s.renderStatus(w, r, status, "post_detail", &htmlData{
		Title:     "Post by " + post.Author.FullName(),
		Post:      post,
		Comments:  comments,
		FormError: formError,
		FormText:  formText,
	})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())

	if r.Method == http.MethodGet {
		s.renderPostForm(w, r, http.StatusOK, nil, "", nil)
		return
	}

	post, formErr, err := s.bindPostForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	post.AuthorID = user.ID
	if formErr == "" {
		if err := s.ps.Create(post); err != nil {
			if errs.ErrorCode(err) == errs.EINVALID {
				formErr = errs.ErrorMessage(err)
			} else {
				s.renderError(w, r, err)
				return
			}
		}
	}
	if formErr != "" {
		s.renderPostForm(w, r, http.StatusOK, nil, formErr, post)
		return
	}

	if err := s.savePostImage(r, post); err != nil {
		errs.LogError(r, err)
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	// Editing is silently denied to everyone but the author.
	user := auth.GetUser(r.Context())
	if post.AuthorID != user.ID {
		http.Redirect(w, r, postDetailPath(post.ID), http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		s.renderPostForm(w, r, http.StatusOK, post, "", post)
		return
	}

	bound, formErr, err := s.bindPostForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if formErr == "" {
		post.Text = bound.Text
		post.GroupID = bound.GroupID
		if err := s.ps.Update(post); err != nil {
			if errs.ErrorCode(err) == errs.EINVALID {
				formErr = errs.ErrorMessage(err)
			} else {
				s.renderError(w, r, err)
				return
			}
		}
	}
	if formErr != "" {
		s.renderPostForm(w, r, http.StatusOK, post, formErr, bound)
		return
	}

	if err := s.savePostImage(r, post); err != nil {
		errs.LogError(r, err)
	}
	http.Redirect(w, r, postDetailPath(post.ID), http.StatusFound)
}

// handleDeletePost deletes a post and its stored attachments. The cached
// front page is left alone on purpose, see the page cache notes.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	user := auth.GetUser(r.Context())
	if post.AuthorID != user.ID {
		http.Redirect(w, r, postDetailPath(post.ID), http.StatusFound)
		return
	}
	if err := s.ps.Delete(post); err != nil {
		s.renderError(w, r, err)
		return
	}
	if err := s.is.DeleteByPost(post.ID); err != nil {
		errs.LogError(r, err)
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

// handleAddComment creates a comment on the post named by the route.
// The post id is deliberately taken from the URL, not the form, so a
// form cannot be spoofed to comment on a different post.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	user := auth.GetUser(r.Context())
	comment := &domain.Comment{
		Text:     r.PostFormValue("text"),
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := s.cs.Create(comment); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			s.renderPostDetail(w, r, http.StatusOK, post, errs.ErrorMessage(err), comment.Text)
			return
		}
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, postDetailPath(post.ID), http.StatusFound)
}

// renderPostForm renders the shared create/edit form. editing is nil on
// the create path; entered carries the submitted values back into the
// form after a validation error.
func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, status int, editing *domain.Post, formError string, entered *domain.Post) {
	groups, err := s.gs.All()
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	title := "New post"
	if editing != nil {
		title = "Edit post"
	}
	data := &htmlData{
		Title:     title,
		Post:      editing,
		Groups:    groups,
		FormError: formError,
	}
	if entered != nil {
		data.FormText = entered.Text
		data.Group = &domain.Group{ID: entered.GroupID}
	}
	s.renderStatus(w, r, status, "post_form", data)
}

// bindPostForm parses the multipart post form into an unsaved Post.
// A user-facing validation problem comes back as formErr, anything
// else as err.
func (s *Server) bindPostForm(r *http.Request) (post *domain.Post, formErr string, err error) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		return nil, "", errs.Errorf(errs.EINVALID, "The submitted form could not be read.")
	}
	post = &domain.Post{
		Text: r.PostFormValue("text"),
	}
	if g := r.PostFormValue("group"); g != "" {
		groupID, convErr := strconv.Atoi(g)
		if convErr != nil {
			return post, "The selected group does not exist.", nil
		}
		post.GroupID = groupID
	}
	return post, "", nil
}

// savePostImage stores an uploaded attachment, if the form carried one,
// and records its filename on the post.
func (s *Server) savePostImage(r *http.Request, post *domain.Post) error {
	if r.MultipartForm == nil {
		return nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil
		}
		return err
	}
	defer file.Close()
	img := &domain.Image{
		PostID:   post.ID,
		File:     file,
		Filename: header.Filename,
	}
	if err := s.is.Create(img); err != nil {
		return err
	}
	post.Image = img.Filename
	return s.ps.Update(post)
}

// postFromRoute loads the post named by the {id} route variable.
func (s *Server) postFromRoute(r *http.Request) (*domain.Post, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
	}
	return s.ps.ByID(id)
}

// attachImage resolves the stored attachment URL for a post, if any.
func (s *Server) attachImage(post *domain.Post) {
	if post.Image == "" {
		return
	}
	images, err := s.is.ByPost(post.ID)
	if err != nil || len(images) == 0 {
		return
	}
	post.Image = images[0].URL
}

func postDetailPath(id int) string {
	return "/posts/" + strconv.Itoa(id) + "/"
}

func writeHTML(w http.ResponseWriter, status int, out []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}
