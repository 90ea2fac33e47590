package router

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// matcher tests request paths against one compiled pattern set. Patterns
// are tried in the order given; the first one that matches determines the
// parameter bindings. Matching is always against the path component only;
// query string and fragment are stripped before the matcher runs.
type matcher struct {
	specs []patternSpec
}

// patternSpec is a single compiled pattern: either a literal segment list
// (with :name parameter segments) or a regexp with named capture groups.
type patternSpec struct {
	raw      string
	segments []segment
	rex      *regexp.Regexp
}

// segment matches one /-delimited path element. A non-empty param binds
// the element's URL-decoded value under that name; otherwise the element
// must equal literal exactly, case-sensitively.
type segment struct {
	literal string
	param   string
}

// compilePattern compiles one or more literal patterns into a matcher.
// Multiple patterns form an ordered alternation.
func compilePattern(patterns ...string) (*matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns given", ErrInvalidPattern)
	}
	m := &matcher{specs: make([]patternSpec, 0, len(patterns))}
	for _, pattern := range patterns {
		spec, err := parsePattern(pattern)
		if err != nil {
			return nil, err
		}
		m.specs = append(m.specs, spec)
	}
	return m, nil
}

// compileRegexp wraps a native regexp as a matcher. Named capture groups
// become parameter bindings; unnamed groups are ignored. The regexp is
// applied to the path as-is.
func compileRegexp(re *regexp.Regexp) (*matcher, error) {
	if re == nil {
		return nil, ErrInvalidRegexp
	}
	seen := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, re.String())
		}
		seen[name] = true
	}
	return &matcher{specs: []patternSpec{{raw: re.String(), rex: re}}}, nil
}

func parsePattern(pattern string) (patternSpec, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return patternSpec{}, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	spec := patternSpec{raw: pattern, segments: []segment{}}
	seen := make(map[string]bool)

	for _, el := range splitPath(pattern) {
		if strings.HasPrefix(el, ":") {
			name := el[1:]
			if name == "" {
				return patternSpec{}, fmt.Errorf("%w: empty parameter in '%s'", ErrInvalidPattern, pattern)
			}
			if seen[name] {
				return patternSpec{}, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, pattern)
			}
			seen[name] = true
			spec.segments = append(spec.segments, segment{param: name})
			continue
		}
		spec.segments = append(spec.segments, segment{literal: el})
	}

	return spec, nil
}

// splitPath breaks a path into its /-delimited elements. The root path and
// trailing slashes yield no elements, so "/users/" and "/users" compare
// equal on segment count.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// match tests the full path and returns parameter bindings on success.
func (m *matcher) match(path string) (map[string]string, bool) {
	elements := splitPath(path)
	for i := range m.specs {
		if params, ok := m.specs[i].match(path, elements); ok {
			return params, true
		}
	}
	return nil, false
}

// matchPrefix tests whether the pattern matches a leading portion of the
// path on a segment boundary, returning the bindings and the remainder
// (always rooted at "/"). Used by mounts and prefix-scoped use layers.
func (m *matcher) matchPrefix(path string) (map[string]string, string, bool) {
	elements := splitPath(path)
	for i := range m.specs {
		if params, rest, ok := m.specs[i].matchPrefix(path, elements); ok {
			return params, rest, true
		}
	}
	return nil, "", false
}

func (s *patternSpec) match(path string, elements []string) (map[string]string, bool) {
	if s.rex != nil {
		return s.matchRegexp(path)
	}
	if len(elements) != len(s.segments) {
		return nil, false
	}
	return s.bind(elements)
}

func (s *patternSpec) matchPrefix(path string, elements []string) (map[string]string, string, bool) {
	if s.rex != nil {
		params, rest, ok := s.matchRegexpPrefix(path)
		return params, rest, ok
	}
	if len(elements) < len(s.segments) {
		return nil, "", false
	}
	params, ok := s.bind(elements[:len(s.segments)])
	if !ok {
		return nil, "", false
	}
	rest := "/" + strings.Join(elements[len(s.segments):], "/")
	return params, rest, true
}

// bind matches elements against the segment list and collects the
// URL-decoded parameter values.
func (s *patternSpec) bind(elements []string) (map[string]string, bool) {
	var params map[string]string
	for i, seg := range s.segments {
		if seg.param == "" {
			if elements[i] != seg.literal {
				return nil, false
			}
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[seg.param] = decodeSegment(elements[i])
	}
	return params, true
}

func (s *patternSpec) matchRegexp(path string) (map[string]string, bool) {
	groups := s.rex.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}
	return s.bindGroups(groups), true
}

func (s *patternSpec) matchRegexpPrefix(path string) (map[string]string, string, bool) {
	loc := s.rex.FindStringSubmatchIndex(path)
	if loc == nil || loc[0] != 0 {
		return nil, "", false
	}
	rest := path[loc[1]:]
	if rest != "" && rest[0] != '/' {
		// Not a segment boundary.
		return nil, "", false
	}
	if rest == "" {
		rest = "/"
	}

	groups := make([]string, 0, s.rex.NumSubexp()+1)
	for i := 0; i <= s.rex.NumSubexp(); i++ {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, path[start:end])
	}
	return s.bindGroups(groups), rest, true
}

func (s *patternSpec) bindGroups(groups []string) map[string]string {
	var params map[string]string
	for i, name := range s.rex.SubexpNames() {
		if name == "" || i >= len(groups) {
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[name] = decodeSegment(groups[i])
	}
	return params
}

// decodeSegment URL-decodes a captured value, falling back to the raw
// bytes when the escaping is malformed rather than failing the match.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
