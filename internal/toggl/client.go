package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
)

// createdWith identifies this client in entries it creates, so they can
// be told apart from entries made in the Toggl web UI.
const createdWith = "togglcli"

// Client talks to the Toggl Track API v9.
type Client struct {
	baseURL   string
	apiToken  string
	workspace int64
	http      *http.Client
	log       *slog.Logger
}

func NewClient(baseURL, apiToken string, workspaceID int64, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.track.toggl.com"
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:   baseURL,
		apiToken:  apiToken,
		workspace: workspaceID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// do performs a single authenticated request. A nil out skips decoding,
// which is what DELETE and other empty-body responses want.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.apiToken == "" {
		return errors.NewConfigError("toggl.api_token", "API token is not set; run `togglcli init` or set TOGGL_API_TOKEN")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.NewConfigError("toggl.base_url", err.Error())
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypeAPI, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeAPI, "failed to build request")
	}

	// Basic auth: token:api_token
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("toggl request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeAPI, "request to Toggl failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Debug("toggl error response", "status", resp.StatusCode, "body", string(raw))
		if resp.StatusCode == http.StatusNotFound {
			return errors.NewNotFoundError("resource", path)
		}
		return errors.NewAPIError(resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapError(err, errors.ErrorTypeAPI, "failed to decode response")
	}
	return nil
}

// GetMe fetches the authenticated user's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.Me, error) {
	var raw rawMe
	if err := c.do(ctx, http.MethodGet, "/api/v9/me", nil, nil, &raw); err != nil {
		return nil, err
	}
	me := raw.toDomain()
	return &me, nil
}

// ListWorkspaces fetches the workspaces visible to the token.
func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	var raw []rawWorkspace
	if err := c.do(ctx, http.MethodGet, "/api/v9/me/workspaces", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Workspace, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// ListProjects fetches the projects of the configured workspace.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var raw []rawProject
	path := fmt.Sprintf("/api/v9/workspaces/%d/projects", c.workspace)
	if c.workspace == 0 {
		path = "/api/v9/me/projects"
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// ListClients fetches the clients of the configured workspace.
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var raw []rawClient
	path := fmt.Sprintf("/api/v9/workspaces/%d/clients", c.workspace)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(raw))
	for _, cl := range raw {
		out = append(out, cl.toDomain())
	}
	return out, nil
}

// CreateClient creates a client in the configured workspace.
func (c *Client) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	body := map[string]interface{}{
		"name": name,
		"wid":  c.workspace,
	}
	var raw rawClient
	path := fmt.Sprintf("/api/v9/workspaces/%d/clients", c.workspace)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return nil, err
	}
	cl := raw.toDomain()
	return &cl, nil
}

// ListTimeEntries fetches entries starting in [from, to).
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	q := url.Values{}
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))

	var raw []rawTimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/v9/me/time_entries", q, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// GetTimeEntry fetches a single entry by id.
func (c *Client) GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v9/me/time_entries/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	entry := raw.toDomain()
	return &entry, nil
}

// GetCurrentTimeEntry fetches the running entry, or nil when nothing runs.
// Toggl answers `null` in that case, which decodes to a nil pointer.
func (c *Client) GetCurrentTimeEntry(ctx context.Context) (*domain.TimeEntry, error) {
	var raw *rawTimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/v9/me/time_entries/current", nil, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	entry := raw.toDomain()
	return &entry, nil
}

// CreateTimeEntry creates a completed entry.
func (c *Client) CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	return c.postTimeEntry(ctx, newTimeEntryRequest(entry, c.workspace))
}

// StartTimeEntry creates a running entry. Toggl marks running entries
// with duration -1.
func (c *Client) StartTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	req := newTimeEntryRequest(entry, c.workspace)
	req.Stop = nil
	req.Duration = -1
	return c.postTimeEntry(ctx, req)
}

func (c *Client) postTimeEntry(ctx context.Context, req timeEntryRequest) (*domain.TimeEntry, error) {
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries", req.WorkspaceID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &raw); err != nil {
		return nil, err
	}
	entry := raw.toDomain()
	return &entry, nil
}

// StopTimeEntry stops a running entry.
func (c *Client) StopTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d/stop", c.workspace, id)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	entry := raw.toDomain()
	return &entry, nil
}

// UpdateTimeEntry replaces an existing entry.
func (c *Client) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	req := newTimeEntryRequest(entry, c.workspace)
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", req.WorkspaceID, entry.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &raw); err != nil {
		return nil, err
	}
	updated := raw.toDomain()
	return &updated, nil
}

// DeleteTimeEntry removes an entry.
func (c *Client) DeleteTimeEntry(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", c.workspace, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
