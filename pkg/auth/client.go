// Package auth talks to the remote login/signup API and keeps the returned
// token in local storage.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	SuccessMessage     = "Login successful!"
	SignupMessage      = "Signup successful!"
	unreachableMessage = "Failed to connect to the server. Please try again later."
	loginFailedMessage = "Login failed. Please check your credentials."
	signupFailedMsg    = "Signup failed. Please try again."
)

var (
	ErrUnreachable = errors.New("auth server unreachable")
	ErrNoToken     = errors.New("auth server returned no token")
)

// RejectedError is a non-2xx answer from the auth API. Msg is shown to the
// user as is.
type RejectedError struct {
	Status int
	Msg    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("auth rejected (%d): %s", e.Status, e.Msg)
}

// TokenSaver persists the token from a successful login or signup.
type TokenSaver interface {
	SaveToken(ctx context.Context, token string) error
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Msg   string `json:"msg"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSaver
}

// NewClient returns a client for the auth API at baseURL, e.g.
// "http://localhost:5000". A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSaver) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// Login posts creds to /api/auth/login and stores the returned token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", creds, loginFailedMessage)
}

// Signup posts creds to /api/auth/signup and stores the returned token.
func (c *Client) Signup(ctx context.Context, creds Credentials) (string, error) {
	return c.authenticate(ctx, "/api/auth/signup", creds, signupFailedMsg)
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials, fallback string) (string, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	// A body that is not JSON still yields the status-based outcome.
	var decoded tokenResponse
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.Msg
		if msg == "" {
			msg = fallback
		}
		return "", &RejectedError{Status: resp.StatusCode, Msg: msg}
	}

	if decoded.Token == "" {
		return "", ErrNoToken
	}
	if c.tokens != nil {
		if err := c.tokens.SaveToken(ctx, decoded.Token); err != nil {
			return "", fmt.Errorf("failed to store token: %w", err)
		}
	}
	return decoded.Token, nil
}

// UserMessage converts an error returned by Login or Signup into the text
// shown to the user.
func UserMessage(err error) string {
	var rejected *RejectedError
	switch {
	case err == nil:
		return SuccessMessage
	case errors.As(err, &rejected):
		return rejected.Msg
	case errors.Is(err, ErrUnreachable):
		return unreachableMessage
	default:
		return err.Error()
	}
}
