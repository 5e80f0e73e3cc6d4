// Package robots parses robots-exclusion files into precedence-ordered rule
// sets and answers whether a URL is blocked for a given agent.
//
// Matching follows the commonly adopted interpretation of the exclusion
// protocol: among all rules whose pattern matches the path, the longest
// pattern string wins, and on equal length Allow wins over Disallow.
package robots

import (
	"net/url"
	"strings"
)

// Rule is one Allow or Disallow directive.
type Rule struct {
	Allow   bool
	Pattern string
}

// Section is one user-agent group: the agent tokens it names plus its rules
// in declaration order.
type Section struct {
	Agents []string
	Rules  []Rule
}

// Robots holds the ordered sections of a parsed robots.txt body.
type Robots struct {
	Sections []Section
}

// Parse parses robots-exclusion text. A User-agent line starts a new section
// only when the current section already has at least one rule, so consecutive
// User-agent lines with no intervening rules form one group (the published
// convention). Comments, blank lines and unrecognized directives are ignored.
func Parse(text string) *Robots {
	r := &Robots{}
	var cur *Section

	for _, line := range strings.Split(text, "\n") {
		// Strip comments and surrounding whitespace.
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		directive, value, ok := splitDirective(line)
		if !ok {
			continue
		}

		switch directive {
		case "user-agent":
			if cur == nil || len(cur.Rules) > 0 {
				r.Sections = append(r.Sections, Section{})
				cur = &r.Sections[len(r.Sections)-1]
			}
			cur.Agents = append(cur.Agents, value)

		case "allow", "disallow":
			if cur == nil {
				// Rules before any User-agent line have no group to
				// attach to; skip them rather than erroring.
				continue
			}
			cur.Rules = append(cur.Rules, Rule{
				Allow:   directive == "allow",
				Pattern: value,
			})
		}
	}

	return r
}

// splitDirective splits "Directive: value" into a lowercased directive name
// and a trimmed value.
func splitDirective(line string) (directive, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	directive = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return directive, value, true
}

// IsBlocked reports whether rawURL is blocked for agent. The applicable
// section is the first one naming the agent (exact, case-insensitive),
// falling back to the wildcard section; with neither, nothing is blocked.
func (r *Robots) IsBlocked(rawURL, agent string) bool {
	sec := r.findSection(agent)
	if sec == nil {
		return false
	}

	path := urlPath(rawURL)

	// Evaluate every matching rule; longest pattern wins, Allow breaks ties.
	var winner *Rule
	for i := range sec.Rules {
		rule := &sec.Rules[i]
		if !patternMatches(rule.Pattern, path) {
			continue
		}
		if winner == nil ||
			len(rule.Pattern) > len(winner.Pattern) ||
			(len(rule.Pattern) == len(winner.Pattern) && rule.Allow && !winner.Allow) {
			winner = rule
		}
	}

	return winner != nil && !winner.Allow
}

// findSection prefers an exact agent match over the wildcard group.
func (r *Robots) findSection(agent string) *Section {
	var wildcard *Section
	for i := range r.Sections {
		sec := &r.Sections[i]
		for _, a := range sec.Agents {
			if strings.EqualFold(a, agent) {
				return sec
			}
			if a == "*" && wildcard == nil {
				wildcard = sec
			}
		}
	}
	return wildcard
}

// patternMatches applies the protocol's wildcard semantics: a trailing "$"
// anchors the pattern to the exact path, otherwise the pattern (minus any
// trailing "*") must be a literal prefix of the path. An empty Disallow
// pattern matches nothing.
func patternMatches(pattern, path string) bool {
	if pattern == "" {
		return false
	}
	if strings.HasSuffix(pattern, "$") {
		return path == strings.TrimSuffix(pattern, "$")
	}
	return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
}

// urlPath extracts the path component used for rule matching. Bare paths are
// used as-is; the query is not part of robots matching here.
func urlPath(rawURL string) string {
	if strings.HasPrefix(rawURL, "/") {
		if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
			rawURL = rawURL[:idx]
		}
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
