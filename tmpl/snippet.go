package tmpl

import "strings"

// Snippet is the expression text extracted from one doubly-delimited block,
// optionally prefixed with "name =" denoting an assignment. Snippets are
// created fresh each time the scanner locates a block and consumed
// immediately by the evaluator.
type Snippet struct {
	Raw  string // full snippet text as written
	Name string // binding name, empty for value-producing snippets
	Expr string // expression text to evaluate
}

// ParseSnippet decomposes a snippet body into its optional binding name and
// expression text.
//
// The body is split on the first "=" that appears at bracket depth zero and
// outside quotes, and that is not part of a comparison operator (==, !=, <=,
// >=). The split is taken only when both trimmed halves are non-empty;
// otherwise the whole body is a value-producing expression.
func ParseSnippet(body string) Snippet {
	s := Snippet{Raw: body, Expr: body}

	if at := topLevelAssign(body); at >= 0 {
		name := strings.TrimSpace(body[:at])
		expr := strings.TrimSpace(body[at+1:])

		if name != "" && expr != "" {
			s.Name = name
			s.Expr = expr
		}
	}

	return s
}

// topLevelAssign returns the byte index of the first assignment "=" at
// nesting depth zero, or -1 if none exists.
func topLevelAssign(body string) int {
	depth := 0

	var quote byte

	for i := 0; i < len(body); i++ {
		c := body[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--

		case '=':
			if depth != 0 {
				continue
			}

			// Skip comparison operators: ==, !=, <=, >=.
			if i > 0 && strings.IndexByte("=!<>", body[i-1]) >= 0 {
				continue
			}

			if i+1 < len(body) && body[i+1] == '=' {
				i++ // skip both runes of ==

				continue
			}

			return i
		}
	}

	return -1
}
