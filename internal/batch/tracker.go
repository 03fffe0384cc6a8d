// Package batch imports many recipe URLs concurrently and tracks their progress.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/marcosevegrand/recipe-import/internal/urlguard"
)

// Item statuses.
const (
	StatusPending   = "pending"
	StatusImported  = "imported"
	StatusDuplicate = "duplicate"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Item is one URL of a batch.
type Item struct {
	URL      string
	Index    int
	Title    string
	Status   string
	RecipeID string
	Reason   string
}

// Tracker records the status of every item in a batch. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	items   []Item
	visited map[string]bool
}

// NewTracker creates a tracker with pending items for urls. Repeated URLs are kept once.
func NewTracker(urls []string) *Tracker {
	t := &Tracker{
		items:   make([]Item, 0, len(urls)),
		visited: make(map[string]bool),
	}
	for _, u := range urls {
		t.Add(u)
	}
	return t
}

// Add appends url as a pending item unless it was already added.
func (t *Tracker) Add(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if url == "" || t.visited[url] {
		return false
	}
	t.visited[url] = true
	t.items = append(t.items, Item{
		URL:    url,
		Index:  len(t.items) + 1,
		Status: StatusPending,
	})
	return true
}

// Items returns a copy of the items in input order.
func (t *Tracker) Items() []Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Item(nil), t.items...)
}

// Len returns the number of items.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

func (t *Tracker) item(index int) Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items[index-1]
}

// Update sets the outcome of the item at the 1-based index.
func (t *Tracker) Update(index int, status, title, recipeID, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index <= 0 || index > len(t.items) {
		return
	}
	it := &t.items[index-1]
	it.Status = status
	if title != "" {
		it.Title = title
	}
	it.RecipeID = recipeID
	it.Reason = reason
}

// Progress is a snapshot of batch counters.
type Progress struct {
	Total     int
	Imported  int
	Duplicate int
	Skipped   int
	Failed    int
}

// Done returns the number of items that are no longer pending.
func (p Progress) Done() int {
	return p.Imported + p.Duplicate + p.Skipped + p.Failed
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d done, %d imported, %d failed", p.Done(), p.Total, p.Imported, p.Failed)
}

// GetProgress returns the current counters.
func (t *Tracker) GetProgress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := Progress{Total: len(t.items)}
	for _, it := range t.items {
		switch it.Status {
		case StatusImported:
			p.Imported++
		case StatusDuplicate:
			p.Duplicate++
		case StatusSkipped:
			p.Skipped++
		case StatusFailed:
			p.Failed++
		}
	}
	return p
}

// ReadURLs reads one URL per line. Blank lines and lines starting with # are
// ignored, schemeless entries get https:// and repeats are dropped.
func ReadURLs(r io.Reader) ([]string, error) {
	seen := make(map[string]bool)
	urls := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u := urlguard.NormalizeURL(line)
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}
	return urls, nil
}
