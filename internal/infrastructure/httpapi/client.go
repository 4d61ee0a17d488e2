package httpapi

import (
	"bufio"
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

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/messaging"
)

const defaultClientTimeout = 10 * time.Second

// ErrDaemonUnavailable is returned when the daemon cannot be reached.
var ErrDaemonUnavailable = errors.New("daemon unavailable")

// APIError is a non-2xx answer from the daemon.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.Status, e.Message)
}

// Health is the /api/health answer.
type Health struct {
	Status    string `json:"status"`
	Pages     int    `json:"pages"`
	Listeners int    `json:"listeners"`
}

// Client talks to a running daemon.
type Client struct {
	base   string
	http   *http.Client
	stream *http.Client
}

// NewClient creates a client for the daemon listening on addr, given as
// host:port or a full base URL.
func NewClient(addr string) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: defaultClientTimeout},
		stream: &http.Client{},
	}
}

// BaseURL returns the daemon base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Health checks that the daemon answers.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &h)
	return h, err
}

// Send posts a message envelope and decodes the response into out.
func (c *Client) Send(ctx context.Context, msg, out any) error {
	return c.do(ctx, http.MethodPost, "/api/messages", msg, out)
}

// GetSettings returns the resolved view for one site or URL.
func (c *Client) GetSettings(ctx context.Context, site string) (entity.SiteView, error) {
	var view entity.SiteView
	err := c.Send(ctx, messaging.SiteRequest{Action: messaging.ActionGetSettings, Site: site}, &view)
	return view, err
}

// GetAllSettings returns the whole settings record.
func (c *Client) GetAllSettings(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	if err := c.Send(ctx, messaging.SiteRequest{Action: messaging.ActionGetAllSettings}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings stores a partial override for one site.
func (c *Client) UpdateSettings(ctx context.Context, req messaging.UpdateSettingsRequest) error {
	req.Action = messaging.ActionUpdateSettings
	return c.Send(ctx, req, nil)
}

// SetDefaults stores the global values.
func (c *Client) SetDefaults(ctx context.Context, req messaging.SetDefaultsRequest) error {
	req.Action = messaging.ActionSetDefaults
	return c.Send(ctx, req, nil)
}

// SetSiteEnabled turns the style on or off for one site.
func (c *Client) SetSiteEnabled(ctx context.Context, site string, enabled bool) error {
	return c.Send(ctx, messaging.SetSiteEnabledRequest{
		Action:  messaging.ActionSetSiteEnabled,
		Site:    site,
		Enabled: &enabled,
	}, nil)
}

// SiteAction sends one of the actions that carry only a site.
func (c *Client) SiteAction(ctx context.Context, action, site string) error {
	return c.Send(ctx, messaging.SiteRequest{Action: action, Site: site}, nil)
}

// ResetAll restores the factory record.
func (c *Client) ResetAll(ctx context.Context) error {
	return c.Send(ctx, messaging.SiteRequest{Action: messaging.ActionResetAll}, nil)
}

// ImportSettings replaces the whole record.
func (c *Client) ImportSettings(ctx context.Context, s *entity.Settings) error {
	return c.Send(ctx, messaging.ImportSettingsRequest{Action: messaging.ActionImportSettings, Settings: s}, nil)
}

// ToggleFont flips the site of a page, as the toolbar command does.
func (c *Client) ToggleFont(ctx context.Context, id port.PageID) (messaging.ToggleResponse, error) {
	var resp messaging.ToggleResponse
	err := c.do(ctx, http.MethodPost, "/api/commands/toggle-font", messaging.ToggleFontRequest{PageID: id}, &resp)
	return resp, err
}

// ListPages returns the open pages.
func (c *Client) ListPages(ctx context.Context) ([]port.PageInfo, error) {
	var pages []port.PageInfo
	err := c.do(ctx, http.MethodGet, "/api/pages", nil, &pages)
	return pages, err
}

// OpenPage registers a page with the host.
func (c *Client) OpenPage(ctx context.Context, rawURL, markup string) (port.PageInfo, error) {
	var info port.PageInfo
	err := c.do(ctx, http.MethodPost, "/api/pages", OpenPageRequest{URL: rawURL, HTML: markup}, &info)
	return info, err
}

// LoadPage attaches the receiver of a page.
func (c *Client) LoadPage(ctx context.Context, id port.PageID) (LoadResponse, error) {
	var resp LoadResponse
	err := c.do(ctx, http.MethodPost, pagePath(id, "load"), struct{}{}, &resp)
	return resp, err
}

// ClosePage forgets a page.
func (c *Client) ClosePage(ctx context.Context, id port.PageID) error {
	return c.do(ctx, http.MethodDelete, pagePath(id, ""), nil, nil)
}

// Document fetches the current markup of a page.
func (c *Client) Document(ctx context.Context, id port.PageID) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pagePath(id, "document"), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(body), nil
}

// Subscribe streams SETTINGS_UPDATED events to fn until ctx is done or the
// stream ends. client names the subscriber in daemon logs.
func (c *Client) Subscribe(ctx context.Context, client string, fn func(messaging.SettingsUpdated)) error {
	path := "/api/events"
	if client != "" {
		path += "?client=" + url.QueryEscape(client)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}

	err = readEvents(resp.Body, func(event string, data []byte) {
		if event != messaging.ActionSettingsUpdated {
			return
		}
		var ev messaging.SettingsUpdated
		if json.Unmarshal(data, &ev) == nil {
			fn(ev)
		}
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// readEvents parses a server-sent event stream. Comment lines are ignored.
func readEvents(r io.Reader, fn func(event string, data []byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBodyBytes)

	var event string
	var data bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				fn(event, bytes.TrimSuffix(data.Bytes(), []byte("\n")))
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			data.WriteByte('\n')
		}
	}
	return scanner.Err()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}
	var e messaging.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if json.Unmarshal(data, &e) != nil || e.Error == "" {
		e.Error = strings.TrimSpace(string(data))
	}
	return &APIError{Status: resp.StatusCode, Message: e.Error}
}

func pagePath(id port.PageID, action string) string {
	p := "/api/pages/" + url.PathEscape(string(id))
	if action != "" {
		p += "/" + action
	}
	return p
}
