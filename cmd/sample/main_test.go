package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/restdoc"
	"github.com/bjaus/restdoc/apitest"
)

func newTestClient(t *testing.T) *apitest.Client {
	t.Helper()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	return apitest.NewClient(t, newRouter(cfg, slog.New(slog.DiscardHandler)))
}

func TestSample_documents(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	listing := c.Listing(t)
	require.Equal(t, http.StatusOK, listing.Status)
	require.NotNil(t, listing.Body)
	assert.Equal(t, []restdoc.APIRef{
		{Path: "users", Description: "User accounts."},
		{Path: "user", Description: "UserByID serves a single user account."},
	}, listing.Body.APIs)

	decl := c.Declaration(t, "user")
	require.Equal(t, http.StatusOK, decl.Status)
	require.NotNil(t, decl.Body)

	api := decl.Body.APIs[0]
	assert.Equal(t, "user/{user_id}", api.Path)
	require.Len(t, api.Operations, 3)
	assert.Equal(t, "GET", api.Operations[0].HTTPMethod)
	assert.Equal(t, "Get user", api.Operations[0].Summary)
	assert.Equal(t, []restdoc.ErrorResponse{{Code: "NotFound", Reason: "no user with that id"}}, api.Operations[0].ErrorResponses)

	users := c.Declaration(t, "users")
	require.NotNil(t, users.Body)
	post := users.Body.APIs[0].Operations[1]
	assert.Equal(t, "POST", post.HTTPMethod)
	assert.Equal(t, "Create a user.", post.Summary)
}

func TestSample_users(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	created := apitest.Do[User](t, c, http.MethodPost, "/users", url.Values{
		"name":  {"Carol"},
		"email": {"carol@example.com"},
	})
	require.Equal(t, http.StatusCreated, created.Status)
	require.NotNil(t, created.Body)
	assert.Equal(t, "member", created.Body.Role)

	got := apitest.Get[User](t, c, "/user/"+created.Body.ID)
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "Carol", got.Body.Name)

	admins := apitest.Get[[]User](t, c, "/users?role=admin")
	require.NotNil(t, admins.Body)
	require.Len(t, *admins.Body, 1)
	assert.Equal(t, "Alice", (*admins.Body)[0].Name)

	missing := c.Problem(t, http.MethodGet, "/user/99")
	assert.Equal(t, http.StatusNotFound, missing.Status)
	assert.Equal(t, "user 99 not found", missing.Body.Detail)

	invalid := c.Problem(t, http.MethodPost, "/users")
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
}

func TestSample_routers_keep_separate_stores(t *testing.T) {
	t.Parallel()

	first, second := newTestClient(t), newTestClient(t)

	created := apitest.Do[User](t, second, http.MethodPost, "/users", url.Values{
		"name":  {"Dave"},
		"email": {"dave@example.com"},
	})
	require.Equal(t, http.StatusCreated, created.Status)
	require.NotNil(t, created.Body)

	assert.Contains(t, userNames(t, second), "Dave")
	assert.NotContains(t, userNames(t, first), "Dave")

	missing := apitest.Get[User](t, first, "/user/"+created.Body.ID)
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

func userNames(t *testing.T, c *apitest.Client) []string {
	t.Helper()

	list := apitest.Get[[]User](t, c, "/users")
	require.NotNil(t, list.Body)

	names := make([]string, 0, len(*list.Body))
	for _, u := range *list.Body {
		names = append(names, u.Name)
	}
	return names
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	r := newRouter(cfg, slog.New(slog.DiscardHandler))

	tests := map[string]struct {
		pathID  string
		openapi bool
		key     string
		wantErr bool
	}{
		"listing":     {key: "apis"},
		"declaration": {pathID: "user", key: "basePath"},
		"openapi":     {openapi: true, key: "openapi"},
		"unknown":     {pathID: "nope", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := writeDocument(&buf, r, tc.pathID, tc.openapi)
			if tc.wantErr {
				require.ErrorIs(t, err, restdoc.ErrNotFound)
				return
			}
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
			assert.Contains(t, doc, tc.key)
		})
	}
}
