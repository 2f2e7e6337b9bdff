package docstring

import (
	"bytes"
	"fmt"
)

var escapes = map[string]string{
	"lb": "{",
	"rb": "}",
	"lt": "<",
	"gt": ">",
}

func markupTag(c byte) bool {
	switch c {
	case 'B', 'I', 'C', 'M', 'L', 'U', 'S', 'G', 'X', 'E':
		return true
	}
	return false
}

type frame struct {
	tag   byte // 0 for a bare brace
	start int
}

// plain reduces inline markup to text. On unbalanced braces the input is returned
// unchanged together with a diagnostic.
func plain(s string, num int) (string, []Diagnostic) {
	var (
		out   []byte
		stack []frame
		diags []Diagnostic
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case markupTag(c) && i+1 < len(s) && s[i+1] == '{':
			stack = append(stack, frame{tag: c, start: len(out)})
			i++

		case c == '{':
			stack = append(stack, frame{start: len(out)})
			out = append(out, c)

		case c == '}':
			if len(stack) == 0 {
				diags = append(diags, Diagnostic{Line: num, Msg: "unbalanced '}'"})
				return s, diags
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch f.tag {
			case 0:
				out = append(out, c)
			case 'E':
				name := string(out[f.start:])
				out = out[:f.start]
				if esc, ok := escapes[name]; ok {
					out = append(out, esc...)
					continue
				}
				diags = append(diags, Diagnostic{Line: num, Msg: fmt.Sprintf("unknown escape E{%s}", name)})
				out = append(out, "E{"+name+"}"...)
			case 'L', 'U':
				out = append(out[:f.start], linkText(out[f.start:])...)
			}

		default:
			out = append(out, c)
		}
	}

	if len(stack) > 0 {
		diags = append(diags, Diagnostic{Line: num, Msg: "unbalanced '{'"})
		return s, diags
	}
	return string(out), diags
}

// linkText keeps the label of "label<target>" link markup.
func linkText(content []byte) []byte {
	i := bytes.LastIndexByte(content, '<')
	if i <= 0 || content[len(content)-1] != '>' {
		return append([]byte(nil), content...)
	}
	return append([]byte(nil), bytes.TrimSpace(content[:i])...)
}
