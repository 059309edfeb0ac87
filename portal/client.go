package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dbouwman/graphql-api/errors"
)

// CallRecorder observes the outcome of individual backend calls. A nil
// recorder disables collection; calls are never blocked on it.
type CallRecorder interface {
	RecordCall(call, status string, duration time.Duration)
}

// Client issues REST calls against the portal catalog service. It is safe
// for concurrent use; per-request credential state travels in the Session
// argument of each call, never in the client itself.
type Client struct {
	portalURL string
	http      *http.Client
	logger    *slog.Logger
	recorder  CallRecorder
}

// NewClient creates a portal client rooted at portalURL. A nil httpClient
// falls back to http.DefaultClient; timeout policy belongs to the injected
// client, not to this package.
func NewClient(portalURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if portalURL == "" {
		portalURL = DefaultPortalURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		portalURL: strings.TrimSuffix(portalURL, "/"),
		http:      httpClient,
		logger:    logger.With("component", "portal-client"),
	}
}

// PortalURL returns the sharing API root this client is bound to.
func (c *Client) PortalURL() string {
	return c.portalURL
}

// SetCallRecorder attaches a backend call recorder. Must be called before
// the client is shared across goroutines.
func (c *Client) SetCallRecorder(recorder CallRecorder) {
	c.recorder = recorder
}

// recordCall reports one backend call outcome to the recorder, if any.
func (c *Client) recordCall(call string, err error, duration time.Duration) {
	if c.recorder == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.recorder.RecordCall(call, status, duration)
}

// base returns the API root for a call: the session's portal when present,
// otherwise the client default.
func (c *Client) base(session *Session) string {
	if session != nil && session.Portal != "" {
		return strings.TrimSuffix(session.Portal, "/")
	}
	return c.portalURL
}

// FetchItem fetches a single item by id. A missing item is a not-found
// failure, not a nil result.
func (c *Client) FetchItem(ctx context.Context, id string, session *Session) (*Item, error) {
	var item Item
	endpoint := fmt.Sprintf("%s/content/items/%s", c.base(session), url.PathEscape(id))
	if err := c.getJSON(ctx, endpoint, nil, session, &item, "FetchItem"); err != nil {
		return nil, err
	}
	return &item, nil
}

// FetchUser fetches a single user by username.
func (c *Client) FetchUser(ctx context.Context, username string, session *Session) (*User, error) {
	var user User
	endpoint := fmt.Sprintf("%s/community/users/%s", c.base(session), url.PathEscape(username))
	if err := c.getJSON(ctx, endpoint, nil, session, &user, "FetchUser"); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchGroup fetches a single group by id.
func (c *Client) FetchGroup(ctx context.Context, id string, session *Session) (*Group, error) {
	var group Group
	endpoint := fmt.Sprintf("%s/community/groups/%s", c.base(session), url.PathEscape(id))
	if err := c.getJSON(ctx, endpoint, nil, session, &group, "FetchGroup"); err != nil {
		return nil, err
	}
	return &group, nil
}

// SearchItems runs an item search with the given portal query string.
// When a session is present the call carries both the filter and the
// credential; otherwise the query string goes alone.
func (c *Client) SearchItems(ctx context.Context, q string, session *Session) ([]Item, error) {
	var resp itemSearchResponse
	endpoint := fmt.Sprintf("%s/search", c.base(session))
	params := url.Values{"q": {q}}
	if err := c.getJSON(ctx, endpoint, params, session, &resp, "SearchItems"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchUsers runs a community user search.
func (c *Client) SearchUsers(ctx context.Context, q string, session *Session) ([]User, error) {
	var resp userSearchResponse
	endpoint := fmt.Sprintf("%s/community/users", c.base(session))
	params := url.Values{"q": {q}}
	if err := c.getJSON(ctx, endpoint, params, session, &resp, "SearchUsers"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchGroups runs a community group search.
func (c *Client) SearchGroups(ctx context.Context, q string, session *Session) ([]Group, error) {
	var resp groupSearchResponse
	endpoint := fmt.Sprintf("%s/community/groups", c.base(session))
	params := url.Values{"q": {q}}
	if err := c.getJSON(ctx, endpoint, params, session, &resp, "SearchGroups"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// FetchItemGroups returns the admin/member/other group categorization for
// an item, relative to the calling user.
func (c *Client) FetchItemGroups(ctx context.Context, id string, session *Session) (*ItemGroups, error) {
	var groups ItemGroups
	endpoint := fmt.Sprintf("%s/content/items/%s/groups", c.base(session), url.PathEscape(id))
	if err := c.getJSON(ctx, endpoint, nil, session, &groups, "FetchItemGroups"); err != nil {
		return nil, err
	}
	return &groups, nil
}

// RawGet fetches an arbitrary URL and decodes the JSON body into out.
// When the session carries a token it is appended as a query parameter.
// Used for endpoints with no typed call shape: form configuration,
// related-items lookups, statistical queries against layers.
func (c *Client) RawGet(ctx context.Context, rawURL string, session *Session, out any) error {
	start := time.Now()
	err := c.rawGet(ctx, rawURL, session, out)
	c.recordCall("RawGet", err, time.Since(start))
	return err
}

func (c *Client) rawGet(ctx context.Context, rawURL string, session *Session, out any) error {
	if session.Authenticated() {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL = rawURL + sep + "token=" + url.QueryEscape(session.Token())
	}

	c.logger.Debug("Raw portal fetch", "url", redactToken(rawURL))

	body, err := c.do(ctx, rawURL, "RawGet")
	if err != nil {
		return err
	}
	return c.decode(body, out, "RawGet")
}

// GenerateToken mints a portal token from a username and password.
// This backs the demo-only quickToken field; it is a development
// convenience, not a production contract.
func (c *Client) GenerateToken(ctx context.Context, username, password string) (*Token, error) {
	start := time.Now()
	token, err := c.generateToken(ctx, username, password)
	c.recordCall("GenerateToken", err, time.Since(start))
	return token, err
}

func (c *Client) generateToken(ctx context.Context, username, password string) (*Token, error) {
	endpoint := fmt.Sprintf("%s/generateToken", c.portalURL)
	form := url.Values{
		"username": {username},
		"password": {password},
		"referer":  {"http://localhost"},
		"f":        {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WrapInvalid(err, "Client", "GenerateToken", "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransient(
			fmt.Errorf("%w: %v", errors.ErrBackendUnavailable, err),
			"Client", "GenerateToken", "POST request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapTransient(errors.ErrBackendStatus, "Client", "GenerateToken",
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapTransient(err, "Client", "GenerateToken", "read response")
	}

	var token Token
	if err := c.decode(body, &token, "GenerateToken"); err != nil {
		return nil, err
	}
	return &token, nil
}

// getJSON issues a GET against endpoint with f=json, optional extra params
// and optional token, then decodes the body into out. The whole call,
// decode included, is reported to the recorder as one backend call.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values,
	session *Session, out any, method string) error {
	start := time.Now()
	err := c.fetchJSON(ctx, endpoint, params, session, out, method)
	c.recordCall(method, err, time.Since(start))
	return err
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params url.Values,
	session *Session, out any, method string) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("f", "json")
	if session.Authenticated() {
		params.Set("token", session.Token())
	}

	fullURL := endpoint + "?" + params.Encode()
	c.logger.Debug("Portal fetch", "url", redactToken(fullURL))

	body, err := c.do(ctx, fullURL, method)
	if err != nil {
		return err
	}
	return c.decode(body, out, method)
}

// do performs the HTTP GET and returns the raw body. HTTP and network
// failures are transient; they propagate without retries.
func (c *Client) do(ctx context.Context, fullURL, method string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Client", method, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransient(
			fmt.Errorf("%w: %v", errors.ErrBackendUnavailable, err),
			"Client", method, "GET request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapTransient(errors.ErrBackendStatus, "Client", method,
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapTransient(err, "Client", method, "read response")
	}
	return body, nil
}

// decode unmarshals a portal response body, surfacing the portal's
// 200-with-error-envelope convention as a real error first.
func (c *Client) decode(body []byte, out any, method string) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		pe := envelope.Error
		base := errors.ErrPortalError
		if isNotFoundMessage(pe.Code, pe.Message) {
			base = errors.ErrNotFound
		}
		return errors.WrapInvalid(
			fmt.Errorf("%w: code %d: %s", base, pe.Code, pe.Message),
			"Client", method, "portal error response")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidResponse, err),
			"Client", method, "unmarshal response")
	}
	return nil
}

// isNotFoundMessage recognizes the portal's not-found wording. The portal
// reports missing records as code 400 with a "does not exist" message.
func isNotFoundMessage(code int, message string) bool {
	if code == 404 {
		return true
	}
	lower := strings.ToLower(message)
	return code == 400 &&
		(strings.Contains(lower, "does not exist") || strings.Contains(lower, "not found"))
}

// redactToken strips token values from URLs before logging.
func redactToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
