package pathmatch

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Key describes one named parameter of a pattern.
type Key struct {
	Name      string
	Prefix    string // "/" or "." consumed together with the parameter, may be empty
	Delimiter string // separator used between repeated segments
	Optional  bool   // "?" or "*" modifier
	Repeat    bool   // "*" or "+" modifier
	Pattern   string // capture expression for a single segment
}

// token is either a literal run of the pattern or a parameter.
type token struct {
	literal string
	key     *Key
}

func isNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// parse splits an Express-style pattern into literal and parameter tokens.
func parse(pattern string) ([]token, error) {
	var (
		tokens  []token
		literal strings.Builder
		seen    = make(map[string]struct{})
	)

	invalid := func(offset int, reason string) error {
		return &InvalidPatternError{Pattern: pattern, Offset: offset, Reason: reason}
	}

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		switch c {
		case '\\':
			if i+1 >= len(pattern) {
				return nil, invalid(i, "dangling escape")
			}
			i++
			literal.WriteByte(pattern[i])

		case ':':
			start := i
			j := i + 1
			for j < len(pattern) && isNameChar(pattern[j]) {
				j++
			}
			if j == i+1 {
				return nil, invalid(start, "parameter has no name")
			}
			name := pattern[i+1 : j]
			if _, dup := seen[name]; dup {
				return nil, invalid(start, "duplicate parameter name "+name)
			}
			seen[name] = struct{}{}

			// the separator right before the parameter belongs to it
			prefix := ""
			if lit := literal.String(); strings.HasSuffix(lit, "/") || strings.HasSuffix(lit, ".") {
				prefix = lit[len(lit)-1:]
				literal.Reset()
				literal.WriteString(lit[:len(lit)-1])
			}
			flush()

			delimiter := prefix
			if delimiter == "" {
				delimiter = "/"
			}
			key := &Key{
				Name:      name,
				Prefix:    prefix,
				Delimiter: delimiter,
				Pattern:   "[^" + regexp2.Escape(delimiter) + "]+?",
			}

			if j < len(pattern) && pattern[j] == '(' {
				group, end, err := readGroup(pattern, j)
				if err != nil {
					return nil, err
				}
				key.Pattern = group
				j = end + 1
			}

			if j < len(pattern) {
				switch pattern[j] {
				case '?':
					key.Optional = true
					j++
				case '*':
					key.Optional = true
					key.Repeat = true
					j++
				case '+':
					key.Repeat = true
					j++
				}
			}

			tokens = append(tokens, token{key: key})
			i = j - 1

		case '(':
			return nil, invalid(i, "unnamed groups are not supported, use :name(...)")

		case ')':
			return nil, invalid(i, "unbalanced parenthesis")

		default:
			literal.WriteByte(c)
		}
	}

	flush()

	return tokens, nil
}

// readGroup reads the custom capture expression starting at the '(' at offset open and
// returns it together with the offset of the closing ')'.
func readGroup(pattern string, open int) (string, int, error) {
	depth := 1
	i := open + 1

	for ; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '(':
			if i+1 >= len(pattern) || pattern[i+1] != '?' {
				return "", 0, &InvalidPatternError{
					Pattern: pattern, Offset: i,
					Reason: "capturing groups are not allowed inside a parameter, use (?:...)",
				}
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				group := pattern[open+1 : i]
				if group == "" {
					return "", 0, &InvalidPatternError{Pattern: pattern, Offset: open, Reason: "empty parameter group"}
				}
				if _, err := regexp2.Compile("^(?:"+group+")$", regexp2.None); err != nil {
					return "", 0, &InvalidPatternError{
						Pattern: pattern, Offset: open, Reason: "parameter group does not compile", Cause: err,
					}
				}

				return group, i, nil
			}
		}
	}

	return "", 0, &InvalidPatternError{Pattern: pattern, Offset: open, Reason: "unclosed parameter group"}
}
