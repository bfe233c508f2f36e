package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"inkwell/auth"
	"inkwell/domain"
	"inkwell/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup/", s.handleSignup).Methods("GET", "POST")
	r.HandleFunc("/auth/login/", s.handleLogin).Methods("GET", "POST")
	r.HandleFunc("/auth/logout/", s.requireAuth(s.handleLogout)).Methods("POST")
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "signup", &htmlData{Title: "Sign up"})
		return
	}

	user := domain.User{
		Username:  r.PostFormValue("username"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
	}
	if err := s.us.Create(r.Context(), &user); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			s.render(w, r, "signup", &htmlData{
				Title:     "Sign up",
				FormError: errs.ErrorMessage(err),
			})
			return
		}
		s.renderError(w, r, err)
		return
	}
	if err := s.signIn(w, r, &user); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.FormValue("next"))

	if r.Method == http.MethodGet {
		s.render(w, r, "login", &htmlData{Title: "Log in", Next: next})
		return
	}

	user, err := s.us.Authenticate(r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		code := errs.ErrorCode(err)
		if code == errs.EINVALID || code == errs.ENOTFOUND {
			s.render(w, r, "login", &htmlData{
				Title:     "Log in",
				Next:      next,
				FormError: "Wrong email address or password.",
			})
			return
		}
		s.renderError(w, r, err)
		return
	}
	if err := s.signIn(w, r, user); err != nil {
		s.renderError(w, r, err)
		return
	}
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now(),
		HttpOnly: true,
	})

	// Rotate the remember token so the old cookie value is dead even
	// if it was copied somewhere.
	user := auth.GetUser(r.Context())
	token, err := s.us.MakeRememberToken()
	if err == nil {
		user.Remember = token
		if err := s.us.Update(r.Context(), user); err != nil {
			errs.LogError(r, err)
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleNotFound renders the site's custom not-found page for any
// unmapped path.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r)
}

// signIn is used to sign the given user in via cookies.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	if user.Remember == "" {
		token, err := s.us.MakeRememberToken()
		if err != nil {
			return err
		}
		user.Remember = token
		if err = s.us.Update(r.Context(), user); err != nil {
			return err
		}
	}
	// The cookie is scoped to the whole site. Login posts to
	// /auth/login/, and without an explicit path the cookie would be
	// confined to that URL and never reach any other route.
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    user.Remember,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// safeNext keeps login redirects on this site. Anything that is not a
// local absolute path is dropped.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
