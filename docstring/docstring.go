// Package docstring parses structured documentation comments of API handler methods.
//
// A comment is free prose followed by a list of tagged fields:
//
//	Fetch a user.
//
//	Looks the user up by id and returns its public profile.
//
//	@param user_id the user id
//	@type user_id integer
//	@rtype User
//	@raise NotFound no user with that id
//
// A field starts with @tag at the beginning of a line. Tags that take an argument
// (param, type, rtype, raise, ...) read it from the next word; a trailing colon on
// either the tag or the argument is accepted, so "@param user_id: the user id" and
// "@rtype: User" parse as well. A field body continues on the following lines until a
// blank line or the next field. After a blank line, lines indented deeper than the
// field's @ keep extending it.
//
// Inline markup of the form X{...} (B, I, C, M, L, U, S, G, X) is reduced to its
// text and E{lb}, E{rb}, E{lt}, E{gt} escape braces and angle brackets.
//
// Parse never fails. Malformed markup is reported as Diagnostics and the rest of the
// comment is still parsed.
package docstring

import (
	"fmt"
	"strings"
)

// Field is one tagged field of a documentation comment.
type Field struct {
	Tag  string // lower-cased tag without the leading @
	Arg  string // argument, empty for tags without one
	Body string // plain text body, trimmed
	Line int    // 1-based line of the field in the comment
}

// Diagnostic describes malformed markup found while parsing.
type Diagnostic struct {
	Line int
	Msg  string
}

// Error implements error so diagnostics can be joined or logged as errors.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Msg)
}

// Doc is a parsed documentation comment.
type Doc struct {
	Body        string
	Fields      []Field
	Diagnostics []Diagnostic
}

// Summary returns the first line of the prose body, trimmed.
func (d *Doc) Summary() string {
	first, _, _ := strings.Cut(d.Body, "\n")
	return strings.TrimSpace(first)
}

// Lookup returns the fields carrying the given tag, in comment order.
func (d *Doc) Lookup(tag string) []Field {
	var out []Field
	for _, f := range d.Fields {
		if f.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// argTags take an argument word after the tag.
var argTags = map[string]bool{
	"param":   true,
	"type":    true,
	"rtype":   true,
	"raise":   true,
	"raises":  true,
	"except":  true,
	"keyword": true,
	"kwarg":   true,
	"kwparam": true,
	"var":     true,
	"ivar":    true,
	"cvar":    true,
}

// plainTags are known to take no argument.
var plainTags = map[string]bool{
	"note":       true,
	"summary":    true,
	"return":     true,
	"returns":    true,
	"see":        true,
	"since":      true,
	"deprecated": true,
	"author":     true,
	"version":    true,
	"warning":    true,
	"todo":       true,
}

type line struct {
	text string
	num  int
}

type fieldBuilder struct {
	field   Field
	col     int
	lines   []string
	discard bool
}

type parser struct {
	doc     *Doc
	body    []string
	cur     *fieldBuilder
	blank   bool
	inField bool
}

// Parse parses a documentation comment.
func Parse(text string) *Doc {
	p := &parser{doc: &Doc{}}

	for _, l := range cleandoc(text) {
		p.line(l)
	}
	p.flush()

	body, diags := plain(joinParagraphs(p.body), 1)
	p.doc.Body = body
	p.doc.Diagnostics = append(p.doc.Diagnostics, diags...)

	return p.doc
}

func (p *parser) line(l line) {
	trimmed := strings.TrimLeft(l.text, " \t")
	indent := len(l.text) - len(trimmed)

	if trimmed == "" {
		if p.cur != nil {
			p.blank = true
			return
		}
		p.body = append(p.body, "")
		return
	}

	if strings.HasPrefix(trimmed, "@") {
		p.flush()
		p.cur = p.header(trimmed, indent, l.num)
		p.inField = true
		return
	}

	if p.cur != nil {
		if !p.blank || indent > p.cur.col {
			if p.blank {
				p.cur.lines = append(p.cur.lines, "")
			}
			p.cur.lines = append(p.cur.lines, strings.TrimSpace(trimmed))
			p.blank = false
			return
		}
		p.flush()
		p.body = append(p.body, "")
	}

	if p.inField && (len(p.body) == 0 || p.body[len(p.body)-1] == "") {
		p.diag(l.num, "paragraph after field list")
	}
	p.body = append(p.body, l.text)
}

// header parses the "@tag [arg] body" line that opens a field.
func (p *parser) header(trimmed string, col, num int) *fieldBuilder {
	fb := &fieldBuilder{col: col, field: Field{Line: num}}

	tagTok, rest := cutSpace(trimmed[1:])
	noArg := strings.HasSuffix(tagTok, ":")
	tag := strings.ToLower(strings.TrimSuffix(tagTok, ":"))

	if tag == "" {
		p.diag(num, "field without a tag")
		fb.discard = true
		return fb
	}
	if !validTag(tag) {
		p.diag(num, fmt.Sprintf("invalid field tag %q", tag))
		fb.discard = true
		return fb
	}
	fb.field.Tag = tag

	switch {
	case noArg:
		fb.lines = append(fb.lines, rest)
	case argTags[tag]:
		arg, body := cutSpace(rest)
		arg = strings.TrimSuffix(arg, ":")
		if arg == "" {
			p.diag(num, fmt.Sprintf("field @%s requires an argument", tag))
			fb.discard = true
			return fb
		}
		fb.field.Arg = arg
		fb.lines = append(fb.lines, body)
	case plainTags[tag]:
		fb.lines = append(fb.lines, strings.TrimSpace(strings.TrimPrefix(rest, ":")))
	default:
		tok, body := cutSpace(rest)
		if len(tok) > 1 && strings.HasSuffix(tok, ":") {
			fb.field.Arg = strings.TrimSuffix(tok, ":")
			fb.lines = append(fb.lines, body)
		} else {
			fb.lines = append(fb.lines, rest)
		}
	}

	return fb
}

func (p *parser) flush() {
	fb := p.cur
	p.cur = nil
	p.blank = false
	if fb == nil || fb.discard {
		return
	}

	body, diags := plain(joinParagraphs(fb.lines), fb.field.Line)
	fb.field.Body = body
	p.doc.Diagnostics = append(p.doc.Diagnostics, diags...)
	p.doc.Fields = append(p.doc.Fields, fb.field)
}

func (p *parser) diag(num int, msg string) {
	p.doc.Diagnostics = append(p.doc.Diagnostics, Diagnostic{Line: num, Msg: msg})
}

// cleandoc normalizes line endings, strips the first line, removes the common
// indentation of the remaining lines and drops blank lines at both ends.
func cleandoc(text string) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")

	margin := -1
	for _, l := range raw[1:] {
		t := strings.TrimLeft(l, " \t")
		if t == "" {
			continue
		}
		if ind := len(l) - len(t); margin < 0 || ind < margin {
			margin = ind
		}
	}

	lines := make([]line, 0, len(raw))
	for i, l := range raw {
		switch {
		case i == 0:
			l = strings.TrimLeft(l, " \t")
		case strings.TrimSpace(l) == "":
			l = ""
		case margin > 0:
			l = l[margin:]
		}
		lines = append(lines, line{text: strings.TrimRight(l, " \t"), num: i + 1})
	}

	for len(lines) > 0 && lines[0].text == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinParagraphs joins lines with newlines, collapsing runs of blank lines into a
// single paragraph break.
func joinParagraphs(lines []string) string {
	var b strings.Builder
	blank := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(l)
		blank = false
	}
	return strings.TrimSpace(b.String())
}

func cutSpace(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func validTag(tag string) bool {
	for i, c := range tag {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
