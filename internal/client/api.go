package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Owner       *User     `json:"owner"`
	Attendees   []*User   `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasAttendee reports whether userID is in the attendee list.
func (e *Event) HasAttendee(userID string) bool {
	for _, a := range e.Attendees {
		if a != nil && a.ID == userID {
			return true
		}
	}
	return false
}

// EventInput is the body for create and update. Empty fields are omitted,
// which the server treats as "unchanged" on update.
type EventInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Location    string `json:"location,omitempty"`
}

// APIError is a failed call. Status is 0 when the server was unreachable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// API calls the REST endpoints on behalf of a Session.
type API struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func NewAPI(baseURL string, session *Session, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		session:    session,
	}
}

func (a *API) Session() *Session {
	return a.session
}

func (a *API) Signup(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var user User
	if _, err := a.do(ctx, http.MethodPost, "/auth/signup", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the resulting session.
func (a *API) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if _, err := a.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "Malformed login response"}
	}
	if err := a.session.Save(ctx, result.Token, result.User); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return result.User, nil
}

// Logout forgets the local session. The server keeps no session state.
func (a *API) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *API) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := a.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) ListEvents(ctx context.Context) ([]*Event, error) {
	var events []*Event
	if _, err := a.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (a *API) MyEvents(ctx context.Context) ([]*Event, error) {
	var events []*Event
	if _, err := a.do(ctx, http.MethodGet, "/events/my", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (a *API) GetEvent(ctx context.Context, id string) (*Event, error) {
	return a.eventCall(ctx, http.MethodGet, eventPath(id, ""), nil)
}

func (a *API) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	return a.eventCall(ctx, http.MethodPost, "/events", in)
}

func (a *API) UpdateEvent(ctx context.Context, id string, in EventInput) (*Event, error) {
	return a.eventCall(ctx, http.MethodPut, eventPath(id, ""), in)
}

// DeleteEvent returns the server's confirmation message.
func (a *API) DeleteEvent(ctx context.Context, id string) (string, error) {
	return a.do(ctx, http.MethodDelete, eventPath(id, ""), nil, nil)
}

func (a *API) JoinEvent(ctx context.Context, id string) (*Event, error) {
	return a.eventCall(ctx, http.MethodPost, eventPath(id, "/join"), nil)
}

func (a *API) LeaveEvent(ctx context.Context, id string) (*Event, error) {
	return a.eventCall(ctx, http.MethodPost, eventPath(id, "/leave"), nil)
}

func (a *API) eventCall(ctx context.Context, method, path string, body any) (*Event, error) {
	var event Event
	if _, err := a.do(ctx, method, path, body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func eventPath(id, suffix string) string {
	return "/events/" + url.PathEscape(id) + suffix
}

// do sends one request and decodes the envelope's data into out. It returns
// the envelope message. A 401 clears the session.
func (a *API) do(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Message: "Server unreachable"}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusUnauthorized {
		_ = a.session.Clear(ctx)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &APIError{Status: resp.StatusCode, Message: "Malformed response"}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &APIError{Status: resp.StatusCode, Message: "Malformed response"}
		}
	}
	return env.Message, nil
}
