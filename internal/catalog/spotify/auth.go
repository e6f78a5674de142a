package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mixport/internal/services"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// token returns a cached access token or exchanges the refresh token for a
// new one. Cached tokens are reused until a minute before they expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.expiresAt.Add(-tokenSafetyMargin)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.refreshToken)

	build := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("build token request: %w", err)
		}
		req.SetBasicAuth(c.clientID, c.clientSecret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}
	resp, err := c.doWithRetry(ctx, build)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := decodeAPIError(resp)
		return "", services.Wrap(services.ErrAuthorization, component, "refresh token", "token exchange rejected", apiErr)
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrExternal, component, "refresh token", "decode token response", err)
	}
	if payload.AccessToken == "" {
		return "", services.Wrap(services.ErrAuthorization, component, "refresh token", "empty access token", nil)
	}

	c.accessToken = payload.AccessToken
	c.expiresAt = c.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	if payload.RefreshToken != "" {
		c.refreshToken = payload.RefreshToken
	}
	return c.accessToken, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

// Authenticate verifies the credentials and returns the current user's id
// and display name.
func (c *Client) Authenticate(ctx context.Context) (string, string, error) {
	var me struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &me); err != nil {
		return "", "", err
	}
	if me.ID == "" {
		return "", "", services.Wrap(services.ErrAuthorization, component, "current user", "empty user id", nil)
	}
	c.mu.Lock()
	c.userID = me.ID
	c.mu.Unlock()
	return me.ID, me.DisplayName, nil
}

func (c *Client) currentUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.userID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}
	id, _, err := c.Authenticate(ctx)
	return id, err
}
