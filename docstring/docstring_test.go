package docstring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/restdoc/docstring"
)

func TestParse_fields(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text   string
		fields []docstring.Field
	}{
		"param with description": {
			text: "@param user_id the user id",
			fields: []docstring.Field{
				{Tag: "param", Arg: "user_id", Body: "the user id", Line: 1},
			},
		},
		"param with colon": {
			text: "@param user_id: the user id",
			fields: []docstring.Field{
				{Tag: "param", Arg: "user_id", Body: "the user id", Line: 1},
			},
		},
		"rtype argument": {
			text: "@rtype User",
			fields: []docstring.Field{
				{Tag: "rtype", Arg: "User", Line: 1},
			},
		},
		"rtype with colon on tag": {
			text: "@rtype: User",
			fields: []docstring.Field{
				{Tag: "rtype", Body: "User", Line: 1},
			},
		},
		"raise keeps order and duplicates": {
			text: "@raise NotFound missing\n@raise NotFound gone\n@raise Conflict taken",
			fields: []docstring.Field{
				{Tag: "raise", Arg: "NotFound", Body: "missing", Line: 1},
				{Tag: "raise", Arg: "NotFound", Body: "gone", Line: 2},
				{Tag: "raise", Arg: "Conflict", Body: "taken", Line: 3},
			},
		},
		"note without argument": {
			text: "@note: careful here",
			fields: []docstring.Field{
				{Tag: "note", Body: "careful here", Line: 1},
			},
		},
		"summary plain tag": {
			text: "@summary Fetch it",
			fields: []docstring.Field{
				{Tag: "summary", Body: "Fetch it", Line: 1},
			},
		},
		"unknown tag without argument": {
			text: "@header X-Token auth token",
			fields: []docstring.Field{
				{Tag: "header", Body: "X-Token auth token", Line: 1},
			},
		},
		"unknown tag with colon argument": {
			text: "@header token: auth token",
			fields: []docstring.Field{
				{Tag: "header", Arg: "token", Body: "auth token", Line: 1},
			},
		},
		"tag is lower-cased": {
			text: "@Param id the id",
			fields: []docstring.Field{
				{Tag: "param", Arg: "id", Body: "the id", Line: 1},
			},
		},
		"continuation lines": {
			text: "@param id the id\n  of the user\n@rtype User",
			fields: []docstring.Field{
				{Tag: "param", Arg: "id", Body: "the id\nof the user", Line: 1},
				{Tag: "rtype", Arg: "User", Line: 3},
			},
		},
		"indented paragraph continues field": {
			text: "Intro.\n\n@note first\n\n  second",
			fields: []docstring.Field{
				{Tag: "note", Body: "first\n\nsecond", Line: 3},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := docstring.Parse(tc.text)
			assert.Equal(t, tc.fields, doc.Fields)
			assert.Empty(t, doc.Diagnostics)
		})
	}
}

func TestParse_body(t *testing.T) {
	t.Parallel()

	text := `Fetch a user.

    Looks the user up by id
    and returns it.

    @param user_id the user id
    @rtype User`

	doc := docstring.Parse(text)

	assert.Equal(t, "Fetch a user.\n\nLooks the user up by id\nand returns it.", doc.Body)
	assert.Equal(t, "Fetch a user.", doc.Summary())
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, "user_id", doc.Fields[0].Arg)
	assert.Equal(t, 6, doc.Fields[0].Line)
	assert.Empty(t, doc.Diagnostics)
}

func TestParse_prose_directly_before_fields(t *testing.T) {
	t.Parallel()

	doc := docstring.Parse("Fetch a user.\n@param user_id the user id\n@rtype User")

	assert.Equal(t, "Fetch a user.", doc.Body)
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, docstring.Field{Tag: "param", Arg: "user_id", Body: "the user id", Line: 2}, doc.Fields[0])
	assert.Equal(t, docstring.Field{Tag: "rtype", Arg: "User", Line: 3}, doc.Fields[1])
}

func TestParse_empty(t *testing.T) {
	t.Parallel()

	for name, text := range map[string]string{
		"empty":      "",
		"whitespace": "  \n\t\n  ",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := docstring.Parse(text)
			assert.Empty(t, doc.Body)
			assert.Empty(t, doc.Fields)
			assert.Empty(t, doc.Diagnostics)
			assert.Empty(t, doc.Summary())
		})
	}
}

func TestParse_diagnostics(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text      string
		wantBody  string
		wantTags  []string
		wantDiags int
	}{
		"missing param argument": {
			text:      "Body.\n\n@param\n@rtype User",
			wantBody:  "Body.",
			wantTags:  []string{"rtype"},
			wantDiags: 1,
		},
		"bare at sign": {
			text:      "Body.\n\n@\n@note hi",
			wantBody:  "Body.",
			wantTags:  []string{"note"},
			wantDiags: 1,
		},
		"invalid tag": {
			text:      "@foo.bar baz\n@note hi",
			wantTags:  []string{"note"},
			wantDiags: 1,
		},
		"prose after fields": {
			text:      "Body.\n\n@note hi\n\nTrailing prose.",
			wantBody:  "Body.\n\nTrailing prose.",
			wantTags:  []string{"note"},
			wantDiags: 1,
		},
		"unbalanced markup in body": {
			text:      "Uses C{broken\n\n@rtype User",
			wantBody:  "Uses C{broken",
			wantTags:  []string{"rtype"},
			wantDiags: 1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := docstring.Parse(tc.text)
			assert.Equal(t, tc.wantBody, doc.Body)

			tags := make([]string, 0, len(doc.Fields))
			for _, f := range doc.Fields {
				tags = append(tags, f.Tag)
			}
			assert.Equal(t, tc.wantTags, tags)
			assert.Len(t, doc.Diagnostics, tc.wantDiags)
		})
	}
}

func TestParse_markup(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want string
	}{
		"code":            {text: "Returns C{nil} on miss.", want: "Returns nil on miss."},
		"bold and italic": {text: "B{very} I{important}", want: "very important"},
		"nested":          {text: "B{see C{id}}", want: "see id"},
		"link label":      {text: "See L{users<api.Users>}.", want: "See users."},
		"url without label": {
			text: "U{https://example.com}",
			want: "https://example.com",
		},
		"escapes":      {text: "E{lb}id E{rb} E{lt}x E{gt}", want: "{id } <x >"},
		"plain braces": {text: "a {b} c", want: "a {b} c"},
		"lowercase not markup": {
			text: "map{string}",
			want: "map{string}",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := docstring.Parse(tc.text)
			assert.Equal(t, tc.want, doc.Body)
			assert.Empty(t, doc.Diagnostics)
		})
	}
}

func TestParse_unknown_escape(t *testing.T) {
	t.Parallel()

	doc := docstring.Parse("E{zz}")

	assert.Equal(t, "E{zz}", doc.Body)
	require.Len(t, doc.Diagnostics, 1)
	assert.Contains(t, doc.Diagnostics[0].Error(), "unknown escape")
}

func TestParse_markup_in_field_body(t *testing.T) {
	t.Parallel()

	doc := docstring.Parse("@param id the C{id} of the user")

	require.Len(t, doc.Fields, 1)
	assert.Equal(t, "the id of the user", doc.Fields[0].Body)
}

func TestDoc_Lookup(t *testing.T) {
	t.Parallel()

	doc := docstring.Parse("@raise A a\n@note n\n@raise B b")

	got := doc.Lookup("raise")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Arg)
	assert.Equal(t, "B", got[1].Arg)
	assert.Empty(t, doc.Lookup("param"))
}

func TestDiagnostic_Error(t *testing.T) {
	t.Parallel()

	d := docstring.Diagnostic{Line: 3, Msg: "boom"}
	assert.EqualError(t, d, "line 3: boom")
}
