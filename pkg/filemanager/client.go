package filemanager

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/OluchukwuJoseph/alx-files-manager/internal/filesapi"
	"github.com/OluchukwuJoseph/alx-files-manager/internal/httpx"
)

// Client provides access to the files-manager API.
type Client struct {
	backend Backend
}

// New constructs an HTTP-backed client. The token is forwarded on every
// request as the X-Token header.
func New(baseURL, token string, opts ...httpx.Option) (*Client, error) {
	headers := make(http.Header)
	if strings.TrimSpace(token) != "" {
		headers.Set("X-Token", token)
	}
	opts = append([]httpx.Option{httpx.WithHeaders(headers)}, opts...)
	cl, err := httpx.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(cl), nil
}

// NewWithHTTPClient wraps an existing httpx.Client.
func NewWithHTTPClient(httpClient *httpx.Client) *Client {
	return &Client{backend: &httpBackend{client: httpClient}}
}

// NewWithBackend allows callers to provide a custom backend (e.g., mocks).
func NewWithBackend(b Backend) *Client {
	return &Client{backend: b}
}

// CreateFile submits one document via POST /files and returns the created
// document. Exactly one wire request is issued per call: creates are never
// retried regardless of the client's retry policy.
func (c *Client) CreateFile(ctx context.Context, req FileRequest) (*FileDoc, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("filemanager: name is required")
	}
	if req.Type == "" {
		return nil, fmt.Errorf("filemanager: type is required")
	}
	return c.backend.CreateFile(ctx, req)
}

// GetFile retrieves a document via GET /files/:id.
func (c *Client) GetFile(ctx context.Context, id string) (*FileDoc, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("filemanager: id is required")
	}
	return c.backend.GetFile(ctx, id)
}

// ListFiles returns one page of documents under the given parent.
// Pages hold at most PageSize entries; page numbering starts at 0.
func (c *Client) ListFiles(ctx context.Context, parentID int64, page int) ([]FileDoc, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, fmt.Errorf("filemanager: page must not be negative")
	}
	return c.backend.ListFiles(ctx, parentID, page)
}

// SetPublic flips a document's visibility via PUT /files/:id/publish or
// /unpublish and returns the updated document.
func (c *Client) SetPublic(ctx context.Context, id string, public bool) (*FileDoc, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("filemanager: id is required")
	}
	return c.backend.SetPublic(ctx, id, public)
}

// FileData fetches the decoded content of a document via GET /files/:id/data.
func (c *Client) FileData(ctx context.Context, id string) ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("filemanager: id is required")
	}
	return c.backend.FileData(ctx, id)
}

// Status probes GET /status. No authentication is required.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.backend.Status(ctx)
}

// Stats probes GET /stats. No authentication is required.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.backend.Stats(ctx)
}

func (c *Client) check() error {
	if c == nil || c.backend == nil {
		return fmt.Errorf("filemanager: client is nil")
	}
	return nil
}

// Backend is the transport behind a Client. The HTTP backend talks to the
// real service; the mock package provides an in-memory implementation.
type Backend interface {
	CreateFile(ctx context.Context, req FileRequest) (*FileDoc, error)
	GetFile(ctx context.Context, id string) (*FileDoc, error)
	ListFiles(ctx context.Context, parentID int64, page int) ([]FileDoc, error)
	SetPublic(ctx context.Context, id string, public bool) (*FileDoc, error)
	FileData(ctx context.Context, id string) ([]byte, error)
	Status(ctx context.Context) (*Status, error)
	Stats(ctx context.Context) (*Stats, error)
}

type httpBackend struct {
	client *httpx.Client
}

func (b *httpBackend) CreateFile(ctx context.Context, req FileRequest) (*FileDoc, error) {
	body, err := httpx.EncodeJSON(req)
	if err != nil {
		return nil, err
	}
	return b.fileDoc(ctx, &httpx.Request{
		Method:       http.MethodPost,
		Path:         "/files",
		Header:       jsonHeader(),
		Body:         body,
		DisableRetry: true,
	})
}

func (b *httpBackend) GetFile(ctx context.Context, id string) (*FileDoc, error) {
	return b.fileDoc(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "/files/" + url.PathEscape(id),
	})
}

func (b *httpBackend) ListFiles(ctx context.Context, parentID int64, page int) ([]FileDoc, error) {
	q := url.Values{}
	q.Set("parentId", strconv.FormatInt(parentID, 10))
	q.Set("page", strconv.Itoa(page))
	payload, err := b.do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "/files",
		Query:  q,
	})
	if err != nil {
		return nil, err
	}
	var docs []FileDoc
	if err := filesapi.Decode(payload, &docs); err != nil {
		return nil, fmt.Errorf("filemanager: decode file listing: %w", err)
	}
	return docs, nil
}

func (b *httpBackend) SetPublic(ctx context.Context, id string, public bool) (*FileDoc, error) {
	action := "unpublish"
	if public {
		action = "publish"
	}
	return b.fileDoc(ctx, &httpx.Request{
		Method: http.MethodPut,
		Path:   "/files/" + url.PathEscape(id) + "/" + action,
	})
}

func (b *httpBackend) FileData(ctx context.Context, id string) ([]byte, error) {
	return b.do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "/files/" + url.PathEscape(id) + "/data",
	})
}

func (b *httpBackend) Status(ctx context.Context) (*Status, error) {
	payload, err := b.do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "/status",
	})
	if err != nil {
		return nil, err
	}
	status := &Status{}
	if err := filesapi.Decode(payload, status); err != nil {
		return nil, fmt.Errorf("filemanager: decode status: %w", err)
	}
	return status, nil
}

func (b *httpBackend) Stats(ctx context.Context) (*Stats, error) {
	payload, err := b.do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "/stats",
	})
	if err != nil {
		return nil, err
	}
	stats := &Stats{}
	if err := filesapi.Decode(payload, stats); err != nil {
		return nil, fmt.Errorf("filemanager: decode stats: %w", err)
	}
	return stats, nil
}

func (b *httpBackend) fileDoc(ctx context.Context, req *httpx.Request) (*FileDoc, error) {
	payload, err := b.do(ctx, req)
	if err != nil {
		return nil, err
	}
	doc := &FileDoc{}
	if err := filesapi.Decode(payload, doc); err != nil {
		return nil, fmt.Errorf("filemanager: decode file document: %w", err)
	}
	doc.Raw = append([]byte(nil), payload...)
	return doc, nil
}

func (b *httpBackend) do(ctx context.Context, req *httpx.Request) ([]byte, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("filemanager: http backend not configured")
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return nil, apiError(err)
	}
	payload, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("filemanager: read response body: %w", err)
	}
	return payload, nil
}

// apiError translates HTTP failures into the package's error vocabulary,
// surfacing the service's {"error": ...} message when present.
func apiError(err error) error {
	var httpErr *httpx.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	msg, ok := filesapi.ErrorMessage(httpErr.Body)
	if !ok {
		msg = http.StatusText(httpErr.StatusCode)
	}
	switch httpErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return fmt.Errorf("filemanager: %s: %w", msg, err)
}

func jsonHeader() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return h
}
