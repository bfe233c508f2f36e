package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"

	"inkwell/cache"
	"inkwell/crud"
	"inkwell/domain"
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, rendering and middleware. It also performs authentication
// and authorization before handing things over to one of the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	gs     domain.GroupService
	ps     domain.PostService
	cs     domain.CommentService
	fs     domain.FollowService
	is     domain.ImageService
	os     domain.OAuthService

	pages        *cache.PageCache
	postsPerPage int
	github       *oauth2.Config
	templates    *templateSet
}

// ServerConfig carries the knobs NewServer needs beyond the services.
type ServerConfig struct {
	IsProd       bool
	CSRFKey      string
	PostsPerPage int
	CacheTTL     time.Duration
	GithubOAuth  *oauth2.Config
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(cfg ServerConfig, services *crud.Services, is domain.ImageService) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		us:           services.User,
		gs:           services.Group,
		ps:           services.Post,
		cs:           services.Comment,
		fs:           services.Follow,
		is:           is,
		os:           services.OAuth,
		pages:        cache.NewPageCache(cfg.CacheTTL),
		postsPerPage: cfg.PostsPerPage,
		github:       cfg.GithubOAuth,
		templates:    parseTemplates(),
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)
	s.registerOAuthRoutes(s.router)

	// Register routes of the blog itself.
	s.registerPostRoutes(s.router)
	s.registerGroupRoutes(s.router)
	s.registerProfileRoutes(s.router)

	// Serve uploaded post attachments.
	s.router.PathPrefix("/" + domain.ImagesBaseDir + "/").Handler(
		http.StripPrefix("/"+domain.ImagesBaseDir+"/",
			http.FileServer(http.Dir(domain.ImagesBaseDir))))

	// Unmapped paths render the site's own not-found page instead of
	// the default plain-text one.
	s.router.NotFoundHandler = s.logRequest(s.authUser(http.HandlerFunc(s.handleNotFound)))

	// Set up middleware that needs to run on every request. CSRF
	// protection is active whenever a key is configured.
	s.router.Use(s.logRequest)
	if cfg.CSRFKey != "" {
		s.router.Use(csrf.Protect([]byte(cfg.CSRFKey), csrf.Secure(cfg.IsProd), csrf.Path("/")))
	}
	s.router.Use(s.authUser)
	return s
}

// Router exposes the underlying handler, mainly so tests can drive the
// full middleware chain through httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Pages exposes the page cache for the explicit-clear management path.
func (s *Server) Pages() *cache.PageCache {
	return s.pages
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := "localhost:" + strconv.Itoa(port)
	slog.Info("listening", "addr", addr)
	slog.Error("server stopped", "error", http.ListenAndServe(addr, s.router))
}
