// Package apitest provides test helpers for services documented with restdoc.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bjaus/restdoc"
)

// Client wraps an httptest.Server for convenient API testing.
type Client struct {
	Server *httptest.Server

	// DocsPath is the base the documents were registered under with
	// Router.ServeSwagger. Default "/".
	DocsPath string
}

// NewClient creates a test client from a router.
func NewClient(t testing.TB, r *restdoc.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &Client{Server: srv, DocsPath: "/"}
}

// Response holds a decoded API response.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
	Raw     []byte
}

// Listing fetches the resource listing.
func (c *Client) Listing(t testing.TB) *Response[restdoc.ResourceListing] {
	t.Helper()
	return Get[restdoc.ResourceListing](t, c, c.docs("swagger-api-docs"))
}

// Declaration fetches the API declaration of pathID.
func (c *Client) Declaration(t testing.TB, pathID string) *Response[restdoc.APIDeclaration] {
	t.Helper()
	return Get[restdoc.APIDeclaration](t, c, c.docs("swagger-api-spec/"+url.PathEscape(pathID)))
}

// Problem fetches path and decodes the problem details body of an error answer.
func (c *Client) Problem(t testing.TB, method, path string) *Response[restdoc.ProblemDetail] {
	t.Helper()
	return do[restdoc.ProblemDetail](t, c, method, path, nil)
}

func (c *Client) docs(name string) string {
	base := "/" + strings.Trim(c.DocsPath, "/")
	if base != "/" {
		base += "/"
	}
	return base + name
}

// Get sends a GET request and decodes a JSON answer into Resp.
func Get[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodGet, path, nil)
}

// Do sends a request with an optional form body and decodes a JSON answer into
// Resp.
func Do[Resp any](t testing.TB, c *Client, method, path string, form url.Values) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, method, path, form)
}

func do[Resp any](t testing.TB, c *Client, method, path string, form url.Values) *Response[Resp] {
	t.Helper()

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("apitest: read body: %v", err)
	}

	result := &Response[Resp]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Raw:     raw,
	}

	if isJSON(resp.Header.Get("Content-Type")) && len(raw) > 0 {
		var decoded Resp
		if err := json.Unmarshal(raw, &decoded); err == nil {
			result.Body = &decoded
		}
	}

	return result
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json") ||
		strings.HasPrefix(contentType, "application/problem+json")
}
