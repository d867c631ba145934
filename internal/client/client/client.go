// Package client is a thin HTTP client for the gophauth API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// ErrUnavailable is returned when the server cannot be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a failure response decoded from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Signup(ctx context.Context, email, password, confirmPassword, name string) (string, error) {
	req := map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": confirmPassword,
		"name":            name,
	}
	var resp struct {
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/signup", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Email, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := map[string]string{"email": email, "password": password}
	var resp LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/user/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Refresh(ctx context.Context, userID, refreshToken string) (*TokenPair, error) {
	req := map[string]string{"userId": userID, "refreshToken": refreshToken}
	var resp TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/user/refresh", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Info(ctx context.Context, accessToken string) (*UserInfo, error) {
	var resp UserInfo
	if err := c.do(ctx, http.MethodGet, "/api/user/info", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context, accessToken string) (bool, error) {
	var resp struct {
		Revoked bool `json:"revoked"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/logout", accessToken, nil, &resp); err != nil {
		return false, err
	}
	return resp.Revoked, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			ErrorCode string `json:"errorCode"`
			Error     string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: e.ErrorCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
