package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rohits-web03/safehands/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleAuth wraps the OAuth2 client for Google sign-in.
type GoogleAuth struct {
	cfg         *oauth2.Config
	userInfoURL string
}

func NewGoogleAuth(c config.GoogleConfig) *GoogleAuth {
	return &GoogleAuth{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *GoogleAuth) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Profile exchanges code for a token and fetches the user's profile.
func (g *GoogleAuth) Profile(ctx context.Context, code string) (GoogleProfile, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("code exchange: %w", err)
	}
	client := g.cfg.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return GoogleProfile{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("get user info: status %d", resp.StatusCode)
	}
	var p GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return GoogleProfile{}, fmt.Errorf("parse user info: %w", err)
	}
	return p, nil
}
