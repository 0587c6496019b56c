package intelitalk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBaseURL matches the local API server used during development
const DefaultAPIBaseURL = "http://localhost:5001/api/v1"

// APIResponse is the envelope every InteliTalk endpoint answers with. The
// payload location varies by endpoint (user, data, chats, ans), so the
// typed accessors below pick the right field.
type APIResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
	User     json.RawMessage `json:"user,omitempty"`
	UserData json.RawMessage `json:"userData,omitempty"`
	Chats    json.RawMessage `json:"chats,omitempty"`
	ChatSave json.RawMessage `json:"chatSave,omitempty"`
	Token    string          `json:"token,omitempty"`
	Ans      string          `json:"ans,omitempty"`
	Error    string          `json:"error,omitempty"`
}

var _ AuthAPI = &APIClient{}

// APIClient is a thin typed wrapper over the remote InteliTalk API. Every
// operation is attempted exactly once and reports failure upward; there is
// no retry policy and no local caching.
type APIClient struct {
	baseURL string
	http    *http.Client
	Logger  Logger
}

type APIClientOption func(*APIClient)

func WithHTTPClient(hc *http.Client) APIClientOption {
	return func(c *APIClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithClientLogger(lgr Logger) APIClientOption {
	return func(c *APIClient) {
		if lgr != nil {
			c.Logger = lgr
		}
	}
}

func NewAPIClient(baseURL string, opts ...APIClientOption) *APIClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		Logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login exchanges credentials for the actor record. The server is the
// source of truth for role, department, and ids.
func (c *APIClient) Login(ctx context.Context, email, password string) (*User, error) {
	res, err := c.post(ctx, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	user, err := res.DecodeUser()
	if err != nil {
		return nil, err
	}

	if user.Token == "" && res.Token != "" {
		user.Token = res.Token
	}

	return user, nil
}

// Logout tells the server to drop its session. Callers clear local state
// regardless of the outcome; this call is best effort.
func (c *APIClient) Logout(ctx context.Context, token string) error {
	_, err := c.post(ctx, "/logout", token, nil)
	return err
}

// ChangePassword swaps the actor's password. The server re-checks the
// current password and owns the final verdict.
func (c *APIClient) ChangePassword(ctx context.Context, token, current, next string) error {
	_, err := c.post(ctx, "/change-password", token, map[string]string{
		"password":    current,
		"newPassword": next,
	})
	return err
}

// DecodeUser unpacks the actor record from whichever envelope field the
// endpoint used.
func (r *APIResponse) DecodeUser() (*User, error) {
	raw := r.User
	if len(raw) == 0 {
		raw = r.Data
	}
	if len(raw) == 0 {
		raw = r.UserData
	}
	if len(raw) == 0 {
		return nil, NewServerError("response carried no user record")
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, NewServerError("unreadable user record: " + err.Error())
	}
	return user, nil
}

// DecodeUsers unpacks a list payload from data.
func (r *APIResponse) DecodeUsers() ([]User, error) {
	if len(r.Data) == 0 {
		return []User{}, nil
	}
	var users []User
	if err := json.Unmarshal(r.Data, &users); err != nil {
		return nil, NewServerError("unreadable user list: " + err.Error())
	}
	return users, nil
}

// DecodeChats unpacks the chat history payload.
func (r *APIResponse) DecodeChats() ([]Chat, error) {
	raw := r.Chats
	if len(raw) == 0 {
		raw = r.Data
	}
	if len(raw) == 0 {
		return []Chat{}, nil
	}
	var chats []Chat
	if err := json.Unmarshal(raw, &chats); err != nil {
		return nil, NewServerError("unreadable chat history: " + err.Error())
	}
	return chats, nil
}

func (c *APIClient) get(ctx context.Context, endpoint, token string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, token)
}

func (c *APIClient) post(ctx context.Context, endpoint, token string, body any) (*APIResponse, error) {
	return c.send(ctx, http.MethodPost, endpoint, token, body)
}

func (c *APIClient) put(ctx context.Context, endpoint, token string, body any) (*APIResponse, error) {
	return c.send(ctx, http.MethodPut, endpoint, token, body)
}

func (c *APIClient) del(ctx context.Context, endpoint, token string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token)
}

func (c *APIClient) send(ctx context.Context, method, endpoint, token string, body any) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, token)
}

// upload sends a single file as multipart form data under the given field
// name and hands back the envelope with the stored URL.
func (c *APIClient) upload(ctx context.Context, endpoint, token, field, filename string, content io.Reader) (*APIResponse, error) {
	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	part, err := form.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.do(req, token)
}

func (c *APIClient) do(req *http.Request, token string) (*APIResponse, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.Logger.Error("api request failed: %s %s: %s", req.Method, req.URL.Path, err)
		return nil, WrapNetworkError(err)
	}
	defer res.Body.Close()

	payload := &APIResponse{}
	decodeErr := json.NewDecoder(res.Body).Decode(payload)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		message := payload.Message
		if message == "" {
			message = payload.Error
		}
		c.Logger.Debug("api rejection: %s %s -> %d %s", req.Method, req.URL.Path, res.StatusCode, message)
		return nil, NewRejectionError(res.StatusCode, message)
	}

	if decodeErr != nil {
		return nil, NewServerError(fmt.Sprintf("invalid response format from server: %s", decodeErr))
	}

	return payload, nil
}

func queryEscape(q string) string {
	return url.QueryEscape(q)
}
