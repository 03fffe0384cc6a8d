// Package sanitize turns untrusted extracted text into safe plain text.
package sanitize

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// dangerousTags are removed together with their content.
var dangerousTags = []string{"script", "style", "iframe", "noscript", "object", "embed", "template"}

var (
	dangerousBlockRes = compileTagRes(dangerousTags)
	commentRe         = regexp.MustCompile(`<!--[\s\S]*?-->`)
	eventHandlerRe    = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	scriptURLRe       = regexp.MustCompile(`(?i)(?:java|vb)script\s*:`)
	dataHTMLRe        = regexp.MustCompile(`(?i)data\s*:\s*text/html[^\s"'>]*`)
	blockBoundaryRe   = regexp.MustCompile(`(?i)</?(?:p|div|br|li|ul|ol|h[1-6]|tr|td|th|section|article|blockquote)\b[^>]*>`)
	decodedTagRe      = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)

	// policyUnescaper undoes exactly the escaping bluemonday applies to text.
	policyUnescaper = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`, "&lt;", "<", "&gt;", ">")
)

type tagRes struct {
	block    *regexp.Regexp
	unclosed *regexp.Regexp
}

func compileTagRes(tags []string) []tagRes {
	res := make([]tagRes, 0, len(tags))
	for _, tag := range tags {
		res = append(res, tagRes{
			block:    regexp.MustCompile(`(?is)<` + tag + `\b[^>]*>.*?</` + tag + `\s*>`),
			unclosed: regexp.MustCompile(`(?i)</?` + tag + `\b[^>]*/?>`),
		})
	}
	return res
}

// Sanitizer strips markup from text. It is safe for concurrent use.
type Sanitizer struct {
	policyPool sync.Pool
}

// New creates a sanitizer backed by a pool of strict bluemonday policies.
func New() *Sanitizer {
	return &Sanitizer{
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

var defaultSanitizer = New()

// Text sanitizes s with the package-level sanitizer.
func Text(s string) string {
	return defaultSanitizer.Text(s)
}

// Text removes dangerous elements, event handlers, script URLs and every tag,
// decodes entities, strips control characters and collapses whitespace.
// The output is single-line plain text and Text is idempotent on it.
func (s *Sanitizer) Text(input string) string {
	if input == "" {
		return ""
	}

	text := removeDangerousTags(input)
	text = commentRe.ReplaceAllString(text, "")
	text = removeEventHandlers(text)
	text = neutralizeURLs(text)
	text = s.stripTags(text)
	text = DecodeEntities(text)
	// decoded "&lt;script&gt;" must not survive as a live block
	text = removeDangerousTags(text)
	text = decodedTagRe.ReplaceAllString(text, " ")
	text = neutralizeURLs(text)
	text = RemoveControlCharacters(text)
	return collapseWhitespace(text)
}

func removeDangerousTags(html string) string {
	for _, re := range dangerousBlockRes {
		html = re.block.ReplaceAllString(html, "")
		html = re.unclosed.ReplaceAllString(html, "")
	}
	return html
}

func removeEventHandlers(html string) string {
	return eventHandlerRe.ReplaceAllString(html, "")
}

func neutralizeURLs(html string) string {
	html = scriptURLRe.ReplaceAllString(html, "")
	return dataHTMLRe.ReplaceAllString(html, "")
}

func (s *Sanitizer) stripTags(html string) string {
	if !strings.ContainsAny(html, "<>&") {
		return html
	}
	html = blockBoundaryRe.ReplaceAllString(html, " ")
	// entities are decoded by DecodeEntities, not by the HTML tokenizer
	html = strings.ReplaceAll(html, "&", "&amp;")

	policy := s.policyPool.Get().(*bluemonday.Policy)
	out := policy.Sanitize(html)
	s.policyPool.Put(policy)

	return policyUnescaper.Replace(out)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
