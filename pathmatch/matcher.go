// Package pathmatch compiles Express-style route patterns such as "/block/:color" into
// matchers that test a path, extract the named parameters and build paths back from
// parameter values.
package pathmatch

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Options control how a pattern is compared with a path. The zero value requires the
// pattern to consume the whole path, compares case-sensitively and treats a trailing
// slash as optional.
type Options struct {
	// Loose matches when the pattern consumes a prefix of the path ending on a
	// segment boundary: "/foo" matches "/foo/bar".
	Loose bool `json:"loose" koanf:"loose"`
	// IgnoreCase folds case for literal segments and captures.
	IgnoreCase bool `json:"ignore_case" koanf:"ignore_case"`
	// Strict makes a trailing slash significant on both pattern and path.
	Strict bool `json:"strict" koanf:"strict"`
}

// Match is the result of a successful Exec.
type Match struct {
	// Segment is the part of the path consumed by the pattern.
	Segment string
	// Values holds one raw value per Key, in declaration order. Absent optional
	// parameters have an empty value.
	Values []string
}

// Matcher is a compiled pattern. It is safe for concurrent use.
type Matcher struct {
	pattern  string
	options  Options
	tokens   []token
	keys     []Key
	expr     *regexp2.Regexp
	segments []*regexp2.Regexp // per-key validators used by Reverse
}

// Compile parses pattern and builds its matcher.
func Compile(pattern string, opts Options) (*Matcher, error) {
	tokens, err := parse(pattern)
	if err != nil {
		return nil, err
	}

	flags := regexp2.None
	if opts.IgnoreCase {
		flags = regexp2.IgnoreCase
	}

	source := buildExpression(tokens, opts)

	expr, err := regexp2.Compile(source, flags)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Reason: "compiled expression is invalid", Cause: err}
	}

	m := &Matcher{
		pattern: pattern,
		options: opts,
		tokens:  tokens,
		expr:    expr,
	}

	for _, t := range tokens {
		if t.key == nil {
			continue
		}

		validator, err := regexp2.Compile(`^(?:`+t.key.Pattern+`)\z`, flags)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Reason: "parameter " + t.key.Name + " is invalid", Cause: err}
		}

		m.keys = append(m.keys, *t.key)
		m.segments = append(m.segments, validator)
	}

	return m, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts Options) *Matcher {
	m, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}

	return m
}

// buildExpression turns tokens into the anchored expression, following the
// path-to-regexp rules for strict and end handling.
func buildExpression(tokens []token, opts Options) string {
	var route strings.Builder

	for _, t := range tokens {
		if t.key == nil {
			route.WriteString(regexp2.Escape(t.literal))

			continue
		}

		key := t.key
		prefix := regexp2.Escape(key.Prefix)
		capture := "(?:" + key.Pattern + ")"

		if key.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}

		if key.Optional {
			capture = "(?:" + prefix + "(" + capture + "))?"
		} else {
			capture = prefix + "(" + capture + ")"
		}

		route.WriteString(capture)
	}

	const delimiter = "/"

	expr := route.String()
	endsWithDelimiter := strings.HasSuffix(expr, delimiter)

	if !opts.Strict {
		expr = strings.TrimSuffix(expr, delimiter) + `(?:/(?=\z))?`
	}

	switch {
	case !opts.Loose:
		expr += `\z`
	case !(opts.Strict && endsWithDelimiter):
		expr += `(?=/|\z)`
	}

	return "^" + expr
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string { return m.pattern }

// Options returns the options the matcher was compiled with.
func (m *Matcher) Options() Options { return m.options }

// Keys returns the named parameters in declaration order.
func (m *Matcher) Keys() []Key {
	keys := make([]Key, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// Exec matches path and returns the consumed segment and the raw parameter values.
func (m *Matcher) Exec(path string) (Match, bool) {
	match, _, ok := m.exec(path)

	return match, ok
}

func (m *Matcher) exec(path string) (Match, []bool, bool) {
	// a match error only happens on timeouts, which is a miss as well
	found, err := m.expr.FindStringMatch(path)
	if err != nil || found == nil {
		return Match{}, nil, false
	}

	match := Match{
		Segment: found.String(),
		Values:  make([]string, len(m.keys)),
	}
	present := make([]bool, len(m.keys))

	for idx := range m.keys {
		group := found.GroupByNumber(idx + 1)
		if group == nil || len(group.Captures) == 0 {
			continue
		}

		match.Values[idx] = group.String()
		present[idx] = true
	}

	return match, present, true
}

// Params matches path and returns the captured parameters by name. Optional parameters
// that did not capture are left out.
func (m *Matcher) Params(path string) (map[string]string, bool) {
	match, present, ok := m.exec(path)
	if !ok {
		return nil, false
	}

	params := make(map[string]string, len(m.keys))

	for idx, key := range m.keys {
		if present[idx] {
			params[key.Name] = match.Values[idx]
		}
	}

	return params, true
}

// Test reports whether path matches.
func (m *Matcher) Test(path string) bool {
	ok, err := m.expr.MatchString(path)

	return err == nil && ok
}

// Reverse builds the concrete path for params. Values are percent-encoded per segment;
// repeated parameters take their segments separated by the key's delimiter.
func (m *Matcher) Reverse(params map[string]string) (string, error) {
	var (
		path strings.Builder
		idx  int
	)

	for _, t := range m.tokens {
		if t.key == nil {
			path.WriteString(t.literal)

			continue
		}

		key := t.key
		validator := m.segments[idx]
		idx++

		value, ok := params[key.Name]
		if !ok || value == "" {
			if key.Optional {
				continue
			}

			if ok {
				return "", &InvalidParameterError{Pattern: m.pattern, Name: key.Name, Value: value}
			}

			return "", &MissingParameterError{Pattern: m.pattern, Name: key.Name}
		}

		parts := []string{value}
		if key.Repeat {
			parts = strings.Split(value, key.Delimiter)
		}

		for i, part := range parts {
			encoded := encodeSegment(part)

			if ok, err := validator.MatchString(encoded); err != nil || !ok {
				return "", &InvalidParameterError{Pattern: m.pattern, Name: key.Name, Value: part}
			}

			if i == 0 {
				path.WriteString(key.Prefix)
			} else {
				path.WriteString(key.Delimiter)
			}

			path.WriteString(encoded)
		}
	}

	return path.String(), nil
}

// Reverse compiles pattern with default options and builds the path for params.
func Reverse(pattern string, params map[string]string) (string, error) {
	m, err := Compile(pattern, Options{})
	if err != nil {
		return "", err
	}

	return m.Reverse(params)
}

// String implements fmt.Stringer.
func (m *Matcher) String() string {
	return fmt.Sprintf("%s %s", m.pattern, m.expr.String())
}

// encodeSegment percent-encodes everything outside the RFC 3986 segment alphabet.
// Existing %XX escapes pass through so raw values taken from a path reverse to the same path.
func encodeSegment(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case isSegmentChar(c):
			b.WriteByte(c)
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}

	return b.String()
}

func isSegmentChar(c byte) bool {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return true
	}

	return strings.IndexByte("-._~!$&'()*+,;=:@", c) >= 0
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
