package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	files, err := generate(filepath.Join("testdata", "users"), false)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "files_restdoc.go", filepath.Base(files[0].path))
	assert.Equal(t, "users_restdoc.go", filepath.Base(files[1].path))

	for _, f := range files {
		_, err := parser.ParseFile(token.NewFileSet(), f.path, f.src, parser.ParseComments)
		require.NoError(t, err, f.path)
	}

	users := string(files[1].src)
	assert.Contains(t, users, "// Code generated by restdocgen. DO NOT EDIT.")
	assert.Contains(t, users, "package users")
	assert.Contains(t, users, "func (u *Users) Resource() *restdoc.Resource {")
	assert.Contains(t, users, `restdoc.NewResource("Users serves user accounts.",`)
	assert.Contains(t, users, `restdoc.MustBind("get", u.Get,`)
	assert.Contains(t, users, `restdoc.WithArguments("user_id"),`)
	assert.Contains(t, users, `restdoc.WithDoc("Get fetches a user.\n\n@param user_id the user id\n@rtype User\n@raise NotFound no user with that id"),`)
	assert.Contains(t, users, `restdoc.WithComment("Fetch one user"),`)
	assert.Contains(t, users, `restdoc.MustBind("put", u.Put,`)
	assert.NotContains(t, users, "u.Delete")
	assert.NotContains(t, users, "restdoc:api")

	fs := string(files[0].src)
	assert.Contains(t, fs, "func (f Files) Resource() *restdoc.Resource {")
	assert.Contains(t, fs, `restdoc.MustBind("get", f.Get,`)
	assert.Contains(t, fs, `restdoc.WithComment("List files below a directory"),`)
	assert.NotContains(t, fs, "WithArguments")
	assert.NotContains(t, fs, "WithDoc")
}

func TestGenerate_invalid_handler(t *testing.T) {
	t.Parallel()

	_, err := generate(filepath.Join("testdata", "invalid"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Counter.Post")
	assert.Contains(t, err.Error(), "unsupported parameter n of type int")
}

func TestFindDirective(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lines       []string
		wantComment string
		wantOK      bool
	}{
		"bare":         {lines: []string{"// Get a user.", "//restdoc:api"}, wantOK: true},
		"with comment": {lines: []string{"//restdoc:api  Fetch one user "}, wantComment: "Fetch one user", wantOK: true},
		"spaced":       {lines: []string{"// restdoc:api"}},
		"longer word":  {lines: []string{"//restdoc:apis"}},
		"absent":       {lines: []string{"// Get a user."}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			comment, ok := findDirective(commentGroup(tc.lines...))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantComment, comment)
		})
	}

	_, ok := findDirective(nil)
	assert.False(t, ok)
}

func commentGroup(lines ...string) *ast.CommentGroup {
	g := &ast.CommentGroup{}
	for _, l := range lines {
		g.List = append(g.List, &ast.Comment{Text: l})
	}
	return g
}
