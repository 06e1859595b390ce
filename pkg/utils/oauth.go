package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/parks-scoring/internal/config"
)

const (
	AuthPort     = 3000
	callbackPath = "/oauth/callback"
	consentWait  = 5 * time.Minute

	tokenDirName   = ".parks-scoring/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// ScopeSheetsReadonly is the only scope requested; volunteer sheets are never written
const ScopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"

// NewOAuthConfig builds the installed-app OAuth2 config with the local callback as redirect
func NewOAuthConfig(client *config.OAuthClientConfig) (*oauth2.Config, error) {
	raw, err := json.Marshal(client)
	if err != nil {
		return nil, fmt.Errorf("encoding oauth client: %w", err)
	}

	cfg, err := google.ConfigFromJSON(raw, ScopeSheetsReadonly)
	if err != nil {
		return nil, fmt.Errorf("building google oauth config: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return cfg, nil
}

// TokenStore keeps one token per environment, in memory and as a JSON file under dir
type TokenStore struct {
	dir string

	mu     sync.Mutex
	cached map[string]*oauth2.Token
}

// NewTokenStore returns a store rooted at dir
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir, cached: map[string]*oauth2.Token{}}
}

// DefaultTokenStore returns a store under the user's home directory
func DefaultTokenStore() (*TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return NewTokenStore(filepath.Join(home, tokenDirName)), nil
}

// Path returns the token file for env
func (s *TokenStore) Path(env string) string {
	if env == "" {
		env = "default"
	}
	return filepath.Join(s.dir, "token-"+env+".json")
}

// Load reads the persisted token for env. A missing file is not an error: it returns nil, nil.
func (s *TokenStore) Load(env string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path(env))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading token %s: %w", env, err)
	}

	token := new(oauth2.Token)
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("decoding token %s: %w", env, err)
	}
	return token, nil
}

// Save writes the token with owner-only permissions and caches it
func (s *TokenStore) Save(env string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, tokenDirPerms); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token %s: %w", env, err)
	}
	if err := os.WriteFile(s.Path(env), data, tokenFilePerms); err != nil {
		return fmt.Errorf("writing token %s: %w", env, err)
	}

	s.mu.Lock()
	s.cached[env] = token
	s.mu.Unlock()
	return nil
}

// Delete forgets the token for env, both cached and on disk
func (s *TokenStore) Delete(env string) error {
	s.mu.Lock()
	delete(s.cached, env)
	s.mu.Unlock()

	if err := os.Remove(s.Path(env)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token %s: %w", env, err)
	}
	return nil
}

func (s *TokenStore) cachedToken(env string) *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached[env]
}

// Authorizer obtains Sheets tokens, prompting for browser consent only when nothing reusable exists
type Authorizer struct {
	config *oauth2.Config
	store  *TokenStore
	logger *zap.Logger

	flowMu sync.Mutex
}

func NewAuthorizer(cfg *oauth2.Config, store *TokenStore, logger *zap.Logger) *Authorizer {
	return &Authorizer{config: cfg, store: store, logger: logger}
}

// Token returns a valid token for env: cached, then on disk (refreshed if expired), then consent
func (a *Authorizer) Token(ctx context.Context, env string) (*oauth2.Token, error) {
	a.flowMu.Lock()
	defer a.flowMu.Unlock()

	if token := a.store.cachedToken(env); token.Valid() {
		return token, nil
	}

	stored, err := a.store.Load(env)
	if err != nil {
		a.logger.Warn("Ignoring unreadable token file", zap.String("env", env), zap.Error(err))
	}
	if stored != nil {
		if token, ok := a.reuse(ctx, env, stored); ok {
			return token, nil
		}
	}

	return a.consent(ctx, env)
}

// reuse returns the stored token when valid or refreshable
func (a *Authorizer) reuse(ctx context.Context, env string, stored *oauth2.Token) (*oauth2.Token, bool) {
	token := stored
	if !stored.Valid() {
		if stored.RefreshToken == "" {
			return nil, false
		}
		refreshed, err := a.config.TokenSource(ctx, stored).Token()
		if err != nil {
			a.logger.Warn("Token refresh failed, asking for consent again", zap.String("env", env), zap.Error(err))
			return nil, false
		}
		a.logger.Info("OAuth token refreshed", zap.String("env", env))
		token = refreshed
	}

	if err := a.store.Save(env, token); err != nil {
		a.logger.Warn("Failed to persist token", zap.String("env", env), zap.Error(err))
	}
	return token, true
}

func (a *Authorizer) consent(ctx context.Context, env string) (*oauth2.Token, error) {
	state := uuid.NewString()
	fmt.Printf("\nOpen this URL to allow read access to the volunteer sheet:\n%s\n\n",
		a.config.AuthCodeURL(state, oauth2.AccessTypeOffline))

	code, err := awaitAuthCode(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("waiting for consent: %w", err)
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	if err := a.store.Save(env, token); err != nil {
		a.logger.Warn("Failed to persist token", zap.String("env", env), zap.Error(err))
	}
	return token, nil
}

// callbackHandler accepts the first redirect carrying the expected state and a code
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			select {
			case errs <- fmt.Errorf("consent denied: %s", query.Get("error")):
			default:
			}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Access granted. You can close this tab.</p></body></html>")
		select {
		case codes <- code:
		default:
		}
	}
}

// awaitAuthCode serves the redirect URL on localhost until a code arrives or consentWait passes
func awaitAuthCode(ctx context.Context, state string) (string, error) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, codes, errs))
	srv := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errs <- fmt.Errorf("callback listener: %w", err):
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	waitCtx, cancel := context.WithTimeout(ctx, consentWait)
	defer cancel()

	select {
	case code := <-codes:
		return code, nil
	case err := <-errs:
		return "", err
	case <-waitCtx.Done():
		return "", fmt.Errorf("no consent within %v: %w", consentWait, waitCtx.Err())
	}
}
