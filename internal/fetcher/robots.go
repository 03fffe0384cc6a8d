package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	robotsTTL       = time.Hour
	robotsTimeout   = 10 * time.Second
	robotsMaxBytes  = 512 * 1024
	robotsAgentName = "recipe-import"
)

type robotsRules struct {
	disallowed []string
	allowed    []string
	fetched    time.Time
}

// allows applies the longest matching rule, Allow winning ties.
func (r *robotsRules) allows(path string) bool {
	best, allow := -1, true
	for _, p := range r.disallowed {
		if strings.HasPrefix(path, p) && len(p) > best {
			best, allow = len(p), false
		}
	}
	for _, p := range r.allowed {
		if strings.HasPrefix(path, p) && len(p) >= best {
			best, allow = len(p), true
		}
	}
	return allow
}

type robotsCache struct {
	mu    sync.RWMutex
	rules map[string]*robotsRules
}

func newRobotsCache() *robotsCache {
	return &robotsCache{rules: make(map[string]*robotsRules)}
}

// allowed reports whether the site's robots.txt permits rawURL. Unreachable
// or missing robots files allow everything.
func (c *robotsCache) allowed(ctx context.Context, client *http.Client, rawURL, userAgent string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	origin := u.Scheme + "://" + u.Host

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return c.get(ctx, client, origin, userAgent).allows(path)
}

func (c *robotsCache) get(ctx context.Context, client *http.Client, origin, userAgent string) *robotsRules {
	c.mu.RLock()
	rules, ok := c.rules[origin]
	c.mu.RUnlock()
	if ok && time.Since(rules.fetched) < robotsTTL {
		return rules
	}

	rules = fetchRobots(ctx, client, origin, userAgent)
	c.mu.Lock()
	c.rules[origin] = rules
	c.mu.Unlock()
	return rules
}

func fetchRobots(ctx context.Context, client *http.Client, origin, userAgent string) *robotsRules {
	empty := &robotsRules{fetched: time.Now()}

	ctx, cancel := context.WithTimeout(ctx, robotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return empty
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return empty
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return empty
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxBytes))
	if err != nil {
		return empty
	}
	rules := parseRobotsTxt(string(body), userAgent)
	rules.fetched = time.Now()
	return rules
}

// robotsAgents lists the lowercased product tokens robots groups are matched
// against: this client's own name and every "name/version" token of the
// configured User-Agent header.
func robotsAgents(userAgent string) map[string]struct{} {
	agents := map[string]struct{}{robotsAgentName: {}}
	for _, field := range strings.Fields(strings.ToLower(userAgent)) {
		name, _, ok := strings.Cut(field, "/")
		if ok && name != "" {
			agents[name] = struct{}{}
		}
	}
	return agents
}

// parseRobotsTxt returns the rules of the groups naming one of the client's
// agents, falling back to the "*" group when none does.
func parseRobotsTxt(content, userAgent string) *robotsRules {
	agents := robotsAgents(userAgent)
	specific, wildcard := &robotsRules{}, &robotsRules{}
	matchedSpecific := false

	var groups []*robotsRules
	inAgents := false
	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		directive, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		directive = strings.ToLower(strings.TrimSpace(directive))
		value = strings.TrimSpace(value)

		switch directive {
		case "user-agent":
			if !inAgents {
				groups = groups[:0]
			}
			inAgents = true
			agent := strings.ToLower(value)
			if agent == "*" {
				groups = appendGroup(groups, wildcard)
				continue
			}
			if _, ok := agents[agent]; ok {
				matchedSpecific = true
				groups = appendGroup(groups, specific)
			}
		case "disallow":
			inAgents = false
			if value == "" {
				continue
			}
			for _, g := range groups {
				g.disallowed = append(g.disallowed, value)
			}
		case "allow":
			inAgents = false
			if value == "" {
				continue
			}
			for _, g := range groups {
				g.allowed = append(g.allowed, value)
			}
		default:
			inAgents = false
		}
	}

	if matchedSpecific {
		return specific
	}
	return wildcard
}

func appendGroup(groups []*robotsRules, g *robotsRules) []*robotsRules {
	for _, existing := range groups {
		if existing == g {
			return groups
		}
	}
	return append(groups, g)
}
