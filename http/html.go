package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"inkwell/auth"
	"inkwell/domain"
	"inkwell/errs"
	"inkwell/paginate"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// htmlData is the single data shape handed to every page template.
// Handlers fill in whatever their page needs and leave the rest zero.
type htmlData struct {
	Title     string
	User      *domain.User
	CSRFField template.HTML

	FormError string
	FormText  string

	Page     paginate.Page
	Posts    []domain.Post
	Post     *domain.Post
	Comments []domain.Comment
	Group    *domain.Group
	Groups   []domain.Group

	Profile   *domain.User
	PostCount int
	Following bool

	Next string
}

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// templateSet holds one parsed template per page, each combined with the
// shared base layout.
type templateSet struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"index",
	"group_list",
	"profile",
	"post_detail",
	"post_form",
	"follow",
	"login",
	"signup",
	"not_found",
	"error",
}

func parseTemplates() *templateSet {
	set := &templateSet{pages: make(map[string]*template.Template)}
	for _, name := range pageNames {
		set.pages[name] = template.Must(
			template.New("base").Funcs(templateFuncs).ParseFS(
				templateFS,
				"templates/base.gohtml",
				"templates/"+name+".gohtml",
			))
	}
	return set
}

// renderBytes executes a page template into a buffer, so that failed
// renders never leak half a page and successful ones can be cached.
func (s *Server) renderBytes(r *http.Request, name string, data *htmlData) ([]byte, error) {
	tmpl, ok := s.templates.pages[name]
	if !ok {
		return nil, errs.Errorf(errs.EINTERNAL, "unknown template %q", name)
	}
	if data == nil {
		data = &htmlData{}
	}
	if data.User == nil {
		data.User = auth.GetUser(r.Context())
	}
	data.CSRFField = csrf.TemplateField(r)
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// render writes a page with status 200.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data *htmlData) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *htmlData) {
	out, err := s.renderBytes(r, name, data)
	if err != nil {
		errs.LogError(r, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}

// renderNotFound renders the site's custom not-found page.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusNotFound, "not_found", &htmlData{Title: "Page not found"})
}

// renderError surfaces an application error on the generic error page,
// except not-found errors, which get the custom not-found page.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.ErrorCode(err)
	if code == errs.ENOTFOUND {
		s.renderNotFound(w, r)
		return
	}
	if code == errs.EINTERNAL {
		errs.LogError(r, err)
	}
	s.renderStatus(w, r, errs.ErrorStatusCode(code), "error", &htmlData{
		Title:     "Error",
		FormError: errs.ErrorMessage(err),
	})
}
