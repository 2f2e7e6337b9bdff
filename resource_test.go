package restdoc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/restdoc"
)

func TestResource_dispatch(t *testing.T) {
	t.Parallel()

	get := restdoc.MustBind("get", getUser, restdoc.WithArguments("user_id"))
	del := restdoc.MustBind("delete", func(w http.ResponseWriter, _ *http.Request, _ string) {
		w.WriteHeader(http.StatusNoContent)
	}, restdoc.WithArguments("user_id"))
	res := restdoc.NewResource("Users.", get, del)

	tests := map[string]struct {
		method     string
		wantStatus int
		wantBody   string
		wantAllow  string
	}{
		"get": {
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantBody:   "user 42",
		},
		"delete": {
			method:     http.MethodDelete,
			wantStatus: http.StatusNoContent,
		},
		"method not allowed": {
			method:     http.MethodPut,
			wantStatus: http.StatusMethodNotAllowed,
			wantAllow:  "DELETE, GET",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			res.ServeArgs(w, httptest.NewRequest(tc.method, "/users/42", nil), []string{"42"})

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
			assert.Equal(t, tc.wantAllow, w.Header().Get("Allow"))
		})
	}
}

func TestResource_operation_error(t *testing.T) {
	t.Parallel()

	op := restdoc.MustBind("get", func(http.ResponseWriter, *http.Request, string) error {
		return restdoc.Error(http.StatusNotFound, "no such user")
	}, restdoc.WithArguments("user_id"))
	res := restdoc.NewResource("Users.", op)

	w := httptest.NewRecorder()
	res.ServeArgs(w, httptest.NewRequest(http.MethodGet, "/users/9", nil), []string{"9"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var pd restdoc.ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pd))
	assert.Equal(t, http.StatusNotFound, pd.Status)
	assert.Equal(t, "no such user", pd.Detail)
}

func TestResource_ServeHTTP(t *testing.T) {
	t.Parallel()

	op := restdoc.MustBind("GET", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	res := restdoc.NewResource("Health.", op)

	w := httptest.NewRecorder()
	res.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestResource_accessors(t *testing.T) {
	t.Parallel()

	get := restdoc.MustBind("get", getUser, restdoc.WithArguments("user_id"))
	res := restdoc.NewResource("Users.", nil, get, nil)

	assert.Equal(t, "Users.", res.Description())
	assert.Equal(t, []*restdoc.Operation{get}, res.Operations())

	op, ok := res.Operation("GET")
	require.True(t, ok)
	assert.Same(t, get, op)

	_, ok = res.Operation("post")
	assert.False(t, ok)
}
