package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"inkwell/paginate"
)

func (s *Server) registerGroupRoutes(r *mux.Router) {
	r.HandleFunc("/group/{slug}/", s.handleGroupList).Methods("GET")
}

// handleGroupList renders the paginated posts of a single group.
func (s *Server) handleGroupList(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	total, err := s.ps.CountByGroupID(group.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	page := paginate.New(r.URL.Query().Get("page"), total, s.postsPerPage)
	posts, err := s.ps.ByGroupID(group.ID, page.Offset(), page.Size)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, "group_list", &htmlData{
		Title: group.Title,
		Group: group,
		Page:  page,
		Posts: posts,
	})
}
