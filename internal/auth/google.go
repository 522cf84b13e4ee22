package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleIDPrefix    = "google:"
	defaultStateTTL   = 5 * time.Minute
)

// GoogleService runs the browser sign-in flow: start redirects to Google,
// callback exchanges the code and hands the UI a session token.
type GoogleService struct {
	Auth *Service

	oauthConfig *oauth2.Config
	userInfoURL string
	uiRedirect  string
	stateTTL    time.Duration
	stateStore  *stateStore
}

// NewGoogleService builds a GoogleService. Empty credentials leave the
// routes mounted but answering 503.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, svc *Service) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		Auth:        svc,
		userInfoURL: googleUserInfoURL,
		uiRedirect:  uiRedirect,
		stateTTL:    defaultStateTTL,
		stateStore:  newStateStore(),
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	c.Set(middleware.FeatureKey, "auth")
	if !s.configured() {
		respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "Google sign-in is not configured", nil)
		return
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	s.stateStore.put(state, verifier, time.Now().Add(s.stateTTL))

	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	))
}

func (s *GoogleService) callback(c *gin.Context) {
	c.Set(middleware.FeatureKey, "auth")
	if !s.configured() {
		respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "Google sign-in is not configured", nil)
		return
	}
	if reason := c.Query("error"); reason != "" {
		respond.Error(c, http.StatusBadRequest, "auth_cancelled", "Google sign-in was cancelled", gin.H{"reason": reason})
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	verifier, ok := s.stateStore.consume(state, time.Now())
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		telemetry.Warn("auth.google_exchange_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		telemetry.Warn("auth.google_userinfo_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if info.Sub == "" || info.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}
	// Sign-in links to an existing account by email, so it must be verified.
	if !info.emailVerified() {
		respond.Error(c, http.StatusForbidden, "email_unverified", "Your Google email address is not verified", nil)
		return
	}

	session, err := s.Auth.CompleteOAuth(ctx, info.user())
	if err != nil {
		telemetry.Error("auth.oauth_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, session.Token)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

// googleUserInfo covers both the v2 userinfo and the OIDC field names.
type googleUserInfo struct {
	Sub               string `json:"sub"`
	ID                string `json:"id"`
	Email             string `json:"email"`
	VerifiedEmail     *bool  `json:"verified_email"`
	EmailVerifiedOIDC *bool  `json:"email_verified"`
	Name              string `json:"name"`
	Picture           string `json:"picture"`
}

// emailVerified treats a missing flag as verified; Google only omits it for
// accounts whose address it owns.
func (i googleUserInfo) emailVerified() bool {
	for _, flag := range []*bool{i.VerifiedEmail, i.EmailVerifiedOIDC} {
		if flag != nil && !*flag {
			return false
		}
	}
	return true
}

func (i googleUserInfo) user() users.User {
	return users.User{
		ID:         googleIDPrefix + i.Sub,
		Email:      strings.ToLower(strings.TrimSpace(i.Email)),
		FullName:   strings.TrimSpace(i.Name),
		PictureURL: i.Picture,
		Provider:   users.ProviderGoogle,
	}
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return googleUserInfo{}, err
	}
	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

type pendingLogin struct {
	verifier string
	expires  time.Time
}

// stateStore holds in-flight logins. Entries are single use and expired
// ones are dropped whenever a new login starts.
type stateStore struct {
	mu    sync.Mutex
	items map[string]pendingLogin
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]pendingLogin)}
}

func (s *stateStore) put(state, verifier string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.items {
		if now.After(v.expires) {
			delete(s.items, k)
		}
	}
	s.items[state] = pendingLogin{verifier: verifier, expires: expires}
}

func (s *stateStore) consume(state string, now time.Time) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[state]
	if !ok {
		return "", false
	}
	delete(s.items, state)
	if now.After(p.expires) {
		return "", false
	}
	return p.verifier, true
}

func (s *stateStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
