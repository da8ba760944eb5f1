// Package client talks to the portfolio API over HTTP. It keeps the bearer
// token of the last successful login or signup and attaches it to every
// request.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	fiberclient "github.com/gofiber/fiber/v3/client"
)

const (
	DefaultTimeout   = 10 * time.Second
	headerTotalCount = "X-Total-Count"
)

var ErrNoBaseURL = errors.New("api base url is not configured")

// APIError is a non-2xx response decoded from the {"error", "details"} body.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	http *fiberclient.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithToken starts the client already authenticated.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	hc := fiberclient.New()
	hc.SetBaseURL(baseURL)
	hc.SetTimeout(DefaultTimeout)

	c := &Client{http: hc}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout forgets the held token. The API keeps no session state.
func (c *Client) Logout() {
	c.setToken("")
}

type Session struct {
	Token   string           `json:"token"`
	User    user.Public      `json:"user"`
	Profile *profile.Profile `json:"profile"`
}

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &s); err != nil {
		return Session{}, err
	}
	c.setToken(s.Token)
	return s, nil
}

type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education,omitempty"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (Session, error) {
	var s Session
	if _, err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &s); err != nil {
		return Session{}, err
	}
	c.setToken(s.Token)
	return s, nil
}

func (c *Client) Me(ctx context.Context) (user.Public, error) {
	var u user.Public
	_, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

// do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. It returns the X-Total-Count header, or -1 when absent.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) (int, error) {
	req := c.http.R().SetContext(ctx).SetMethod(method).SetURL(path)
	req.SetHeader(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if tok := c.Token(); tok != "" {
		req.SetHeader(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	for k, v := range query {
		req.SetParam(k, v)
	}
	if body != nil {
		req.SetJSON(body)
	}

	resp, err := req.Send()
	if err != nil {
		return -1, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	raw := resp.Body()
	if status < 200 || status > 299 {
		return -1, decodeError(status, raw)
	}

	total := -1
	if h := resp.Header(headerTotalCount); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			total = n
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return -1, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return total, nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
