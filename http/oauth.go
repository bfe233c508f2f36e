package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/auth"
	"inkwell/domain"
	"inkwell/errs"
)

func (s *Server) registerOAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/github/", s.handleGithubLogin).Methods("GET")
	r.HandleFunc("/auth/github/callback/", s.handleGithubCallback).Methods("GET")
}

// handleGithubLogin kicks off the GitHub OAuth flow. The state value is
// echoed back through a short-lived cookie to tie the callback to this
// browser.
func (s *Server) handleGithubLogin(w http.ResponseWriter, r *http.Request) {
	if s.github == nil {
		s.renderNotFound(w, r)
		return
	}
	state, err := auth.MakeRememberToken()
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.github.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGithubCallback(w http.ResponseWriter, r *http.Request) {
	if s.github == nil {
		s.renderNotFound(w, r)
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.FormValue("state") {
		s.renderError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "The OAuth state does not match."))
		return
	}
	token, err := s.github.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		s.renderError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "GitHub did not accept the login."))
		return
	}

	ghUser, err := fetchGithubUser(s.github.Client(r.Context(), token))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	user, err := s.userForGithub(r, ghUser, token.AccessToken)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if err := s.signIn(w, r, user); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func fetchGithubUser(client *http.Client) (*githubUser, error) {
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "GitHub rejected the user lookup.")
	}
	var gh githubUser
	if err := json.NewDecoder(resp.Body).Decode(&gh); err != nil {
		return nil, err
	}
	return &gh, nil
}

// userForGithub finds the local user linked to a GitHub account, creating
// both the user and the link on first login.
func (s *Server) userForGithub(r *http.Request, gh *githubUser, accessToken string) (*domain.User, error) {
	providerUserID := strconv.FormatInt(gh.ID, 10)
	existing, err := s.os.ByProviderUserID("github", providerUserID)
	if err == nil {
		return s.us.ByID(existing.UserID)
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return nil, err
	}

	password, err := auth.MakeRememberToken()
	if err != nil {
		return nil, err
	}
	email := gh.Email
	if email == "" {
		email = fmt.Sprintf("%s@users.github.local", gh.Login)
	}
	user := &domain.User{
		Username:  gh.Login,
		FirstName: gh.Name,
		Email:     email,
		Password:  password,
	}
	if err := s.us.Create(r.Context(), user); err != nil {
		return nil, err
	}
	oauth := &domain.OAuth{
		UserID:         user.ID,
		Provider:       "github",
		ProviderUserID: providerUserID,
		AccessToken:    accessToken,
	}
	if err := s.os.Create(oauth); err != nil {
		return nil, err
	}
	return user, nil
}
