// Package client talks to the lifeboard JSON API. It implements
// canvas.Store so the browser UI can drive the canvas core remotely.
package client

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

	"github.com/kidandcat/lifeboard/internal/canvas"
)

type Client struct {
	base string
	http *http.Client
}

// New returns a client for the API rooted at base, e.g. "" for same-origin
// requests from the browser or "http://localhost:8080".
func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("api: %s: %s", http.StatusText(e.Code), e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// Boards

func (c *Client) ListBoards(ctx context.Context) ([]canvas.Board, error) {
	var boards []canvas.Board
	_, err := c.doJSON(ctx, http.MethodGet, "/api/boards", nil, &boards)
	return boards, err
}

// CreateBoard returns a zero Board when the server ignored the name.
func (c *Client) CreateBoard(ctx context.Context, name string) (canvas.Board, error) {
	var b canvas.Board
	_, err := c.doJSON(ctx, http.MethodPost, "/api/boards", map[string]string{"name": name}, &b)
	return b, err
}

func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/boards/"+url.PathEscape(id), nil, nil)
	return err
}

// Items

func (c *Client) ListItems(ctx context.Context) ([]canvas.Item, error) {
	var items []canvas.Item
	_, err := c.doJSON(ctx, http.MethodGet, "/api/items", nil, &items)
	return items, err
}

func (c *Client) ListItemsByBoard(ctx context.Context, boardID string) ([]canvas.Item, error) {
	var items []canvas.Item
	_, err := c.doJSON(ctx, http.MethodGet, "/api/items?board_id="+url.QueryEscape(boardID), nil, &items)
	return items, err
}

func (c *Client) AddItem(ctx context.Context, it canvas.Item) (canvas.Item, error) {
	var created canvas.Item
	_, err := c.doJSON(ctx, http.MethodPost, "/api/items", it, &created)
	return created, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
	return err
}

// CommitItem sends the full mutable state of it. A 404 means the item was
// deleted elsewhere and is not an error.
func (c *Client) CommitItem(ctx context.Context, it canvas.Item) error {
	req := map[string]any{
		"content": it.Content,
		"x":       it.X,
		"y":       it.Y,
		"width":   it.Width,
		"color":   it.Color,
	}
	code, err := c.doJSON(ctx, http.MethodPut, "/api/items/"+url.PathEscape(it.ID), req, nil)
	if code == http.StatusNotFound {
		return nil
	}
	return err
}

// UploadImage posts raw image bytes to be stored as an inline image item.
// ok is false when the server had nothing to add.
func (c *Client) UploadImage(ctx context.Context, boardID, filename string, data []byte) (canvas.Item, bool, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return canvas.Item{}, false, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return canvas.Item{}, false, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return canvas.Item{}, false, fmt.Errorf("close form: %w", err)
	}

	var it canvas.Item
	code, err := c.do(ctx, http.MethodPost, "/api/boards/"+url.PathEscape(boardID)+"/images", &body, mw.FormDataContentType(), &it)
	if err != nil {
		return canvas.Item{}, false, err
	}
	return it, code != http.StatusNoContent, nil
}

var _ canvas.Store = (*Client)(nil)
