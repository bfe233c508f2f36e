package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"inkwell/auth"
	"inkwell/domain"
	"inkwell/errs"
	"inkwell/paginate"
)

func (s *Server) registerProfileRoutes(r *mux.Router) {
	r.HandleFunc("/follow/", s.requireAuth(s.handleFollowIndex)).Methods("GET")
	r.HandleFunc("/profile/{username}/", s.handleProfile).Methods("GET")
	r.HandleFunc("/profile/{username}/follow/", s.requireAuth(s.handleFollow)).Methods("POST")
	r.HandleFunc("/profile/{username}/unfollow/", s.requireAuth(s.handleUnfollow)).Methods("POST")
}

// handleProfile renders an author's page with their paginated posts.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	total, err := s.ps.CountByAuthorID(profile.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	page := paginate.New(r.URL.Query().Get("page"), total, s.postsPerPage)
	posts, err := s.ps.ByAuthorID(profile.ID, page.Offset(), page.Size)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	following := false
	if user := auth.GetUser(r.Context()); user != nil {
		following = s.fs.Follows(user.ID, profile.ID)
	}
	s.render(w, r, "profile", &htmlData{
		Title:     profile.FullName(),
		Profile:   profile,
		PostCount: total,
		Page:      page,
		Posts:     posts,
		Following: following,
	})
}

// handleFollowIndex renders the follow feed: paginated posts by every
// author the requesting user follows.
func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	total, err := s.ps.CountByFollowerID(user.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	page := paginate.New(r.URL.Query().Get("page"), total, s.postsPerPage)
	posts, err := s.ps.ByFollowerID(user.ID, page.Offset(), page.Size)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, "follow", &htmlData{
		Title: "Your feed",
		Page:  page,
		Posts: posts,
	})
}

// handleFollow adds a follow edge. Following yourself and re-following
// are both quietly absorbed, the caller always lands back on the profile.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	target, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	user := auth.GetUser(r.Context())
	follow := &domain.Follow{
		UserID:   user.ID,
		AuthorID: target.ID,
	}
	if err := s.fs.Create(follow); err != nil {
		// A self-follow is a no-op, not an error the caller sees.
		if errs.ErrorCode(err) != errs.EINVALID {
			s.renderError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/profile/"+target.Username+"/", http.StatusFound)
}

// handleUnfollow removes a follow edge. Unlike following, unfollowing a
// user you are not following is a not-found, not a no-op.
func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	target, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	user := auth.GetUser(r.Context())
	follow := &domain.Follow{
		UserID:   user.ID,
		AuthorID: target.ID,
	}
	if err := s.fs.Delete(follow); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+target.Username+"/", http.StatusFound)
}
