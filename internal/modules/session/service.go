// README: Session service: Google sign-in, sign-out with token revocation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const (
	defaultUserinfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
	defaultRevokeURL   = "https://oauth2.googleapis.com/revoke"
)

// AuthError wraps failures of the sign-in exchange. Stage names the step that
// failed (userinfo, decode, store).
type AuthError struct {
	Stage string
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Stage, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Service owns the signed-out/signed-in transition. The access token comes
// from the client's OAuth flow; the service trades it for a profile and keeps
// the profile under the caller's session key.
type Service struct {
	store       ProfileStore
	userinfoURL string
	revokeURL   string
}

func NewService(store ProfileStore) *Service {
	return &Service{
		store:       store,
		userinfoURL: defaultUserinfoURL,
		revokeURL:   defaultRevokeURL,
	}
}

// SignIn fetches the Google profile for accessToken and stores it under key.
// A failed fetch leaves the session signed out.
func (s *Service) SignIn(ctx context.Context, key, accessToken string) (UserProfile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	resp, err := client.Get(s.userinfoURL + "?alt=json")
	if err != nil {
		return UserProfile{}, &AuthError{Stage: "userinfo", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UserProfile{}, &AuthError{Stage: "userinfo", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var profile UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return UserProfile{}, &AuthError{Stage: "decode", Err: err}
	}
	if profile.Email == "" {
		return UserProfile{}, &AuthError{Stage: "decode", Err: fmt.Errorf("userinfo response has no email")}
	}
	profile.AccessToken = accessToken

	if err := s.store.Set(ctx, key, profile); err != nil {
		return UserProfile{}, &AuthError{Stage: "store", Err: err}
	}

	log.Printf("session %s signed in as %s", key, profile.Email)
	return profile, nil
}

// SignOut revokes the session's access token and clears the stored profile.
// Revocation is best effort: a revoke failure is logged, the local session is
// cleared regardless.
func (s *Service) SignOut(ctx context.Context, key string) error {
	profile, err := s.store.Get(ctx, key)
	if err == nil && profile.AccessToken != "" {
		s.revoke(ctx, profile.AccessToken)
	}
	return s.store.Clear(ctx, key)
}

func (s *Service) revoke(ctx context.Context, token string) {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("token revoke skipped: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("token revoke failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("token revoke returned status %d", resp.StatusCode)
	}
}

// Current returns the profile stored under key, or ErrNoSession.
func (s *Service) Current(ctx context.Context, key string) (UserProfile, error) {
	return s.store.Get(ctx, key)
}
