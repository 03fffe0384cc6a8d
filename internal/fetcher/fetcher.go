// Package fetcher retrieves recipe pages over HTTP with browser-like headers,
// bounded retries, per-domain pacing and body size limits.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/urlguard"
)

const (
	logKeyURL     = "url"
	logKeyAttempt = "attempt"
	logKeyStatus  = "status"
	logKeyDelay   = "delay"

	maxRedirects    = 5
	challengeWindow = 64 * 1024
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ErrTooManyRedirects indicates the redirect chain exceeded the limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// Options configures a Fetcher.
type Options struct {
	Attempts       int
	Timeout        time.Duration
	MaxBodyBytes   int64
	MinDelay       time.Duration
	BaseDelay      time.Duration
	BlockedDelay   time.Duration
	MaxJitter      time.Duration
	UserAgent      string
	AcceptLanguage string
	Referer        string
	// DomainRate is the number of requests per second allowed per host.
	// Zero disables pacing.
	DomainRate       float64
	DomainBurst      int
	RespectRobotsTxt bool
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Attempts:       3,
		Timeout:        20 * time.Second,
		MaxBodyBytes:   5 * 1024 * 1024,
		MinDelay:       500 * time.Millisecond,
		BaseDelay:      time.Second,
		BlockedDelay:   3 * time.Second,
		MaxJitter:      time.Second,
		UserAgent:      defaultUserAgent,
		AcceptLanguage: "fr-FR,fr;q=0.9,en-US;q=0.6,en;q=0.4",
		Referer:        "https://www.google.com/",
		DomainRate:     1,
		DomainBurst:    2,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Attempts <= 0 {
		o.Attempts = def.Attempts
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = def.MaxBodyBytes
	}
	if o.UserAgent == "" {
		o.UserAgent = def.UserAgent
	}
	if o.AcceptLanguage == "" {
		o.AcceptLanguage = def.AcceptLanguage
	}
	if o.Referer == "" {
		o.Referer = def.Referer
	}
	if o.DomainBurst <= 0 {
		o.DomainBurst = def.DomainBurst
	}
	return o
}

// Fetcher downloads HTML pages. It is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	opts   Options
	logger *zerolog.Logger

	domainLimiters map[string]*rate.Limiter
	mu             sync.RWMutex

	robots *robotsCache

	validate func(string) error
	sleep    func(context.Context, time.Duration) error
	jitter   func(time.Duration) time.Duration
	observe  func(status string)
}

// New creates a fetcher. A nil logger disables logging.
func New(opts Options, logger *zerolog.Logger) *Fetcher {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	f := &Fetcher{
		opts:           opts.withDefaults(),
		logger:         logger,
		domainLimiters: make(map[string]*rate.Limiter),
		robots:         newRobotsCache(),
		validate:       urlguard.Validate,
		sleep:          sleepContext,
		jitter:         randomJitter,
		observe:        func(string) {},
	}
	f.client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return ErrTooManyRedirects
			}
			return f.validate(req.URL.String())
		},
	}
	return f
}

// OnAttempt registers a callback receiving the outcome label of every attempt.
func (f *Fetcher) OnAttempt(fn func(status string)) {
	if fn != nil {
		f.observe = fn
	}
}

// attemptError carries the status of a failed attempt so the backoff can
// tell blocked responses from plain failures.
type attemptError struct {
	status    int
	retryable bool
	err       error
}

func (e *attemptError) Error() string { return e.err.Error() }
func (e *attemptError) Unwrap() error { return e.err }

// Fetch returns the decoded HTML of rawURL. Errors wrap recipe.ErrNetwork,
// recipe.ErrTooLarge, recipe.ErrBotChallenge, recipe.ErrRobotsDisallowed or a URL guard error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.validate(rawURL); err != nil {
		return "", err
	}

	if f.opts.RespectRobotsTxt {
		if !f.robots.allowed(ctx, f.client, rawURL, f.opts.UserAgent) {
			return "", fmt.Errorf("%w: %s", recipe.ErrRobotsDisallowed, rawURL)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= f.opts.Attempts; attempt++ {
		if attempt > 1 {
			delay := f.backoff(attempt-1, lastErr)
			f.logger.Debug().
				Str(logKeyURL, rawURL).
				Int(logKeyAttempt, attempt).
				Dur(logKeyDelay, delay).
				Msg("retrying fetch")
			if err := f.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("%w: %w", recipe.ErrNetwork, err)
			}
		}

		body, err := f.attempt(ctx, rawURL)
		if err == nil {
			f.observe("ok")
			return body, nil
		}
		lastErr = err

		var ae *attemptError
		if !errors.As(err, &ae) || !ae.retryable {
			f.observe(outcomeLabel(err))
			return "", err
		}
		f.observe("retry")
		f.logger.Warn().
			Err(err).
			Str(logKeyURL, rawURL).
			Int(logKeyAttempt, attempt).
			Int(logKeyStatus, ae.status).
			Msg("fetch attempt failed")
	}

	f.observe("exhausted")
	return "", fmt.Errorf("%w: %d attempts: %w", recipe.ErrNetwork, f.opts.Attempts, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, rawURL string) (string, error) {
	if err := f.validate(rawURL); err != nil {
		return "", err
	}
	if err := f.waitForDomain(ctx, rawURL); err != nil {
		return "", fmt.Errorf("%w: domain rate limiter wait: %w", recipe.ErrNetwork, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", recipe.ErrInvalidURL, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		switch {
		case isGuardError(err):
			return "", fmt.Errorf("redirect rejected: %w", err)
		case errors.Is(err, ErrTooManyRedirects), errors.Is(err, context.Canceled):
			return "", fmt.Errorf("%w: %w", recipe.ErrNetwork, err)
		}
		return "", &attemptError{retryable: true, err: fmt.Errorf("%w: execute request: %w", recipe.ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", f.statusError(resp)
	}

	body, err := f.readBody(resp)
	if err != nil {
		return "", err
	}
	if IsChallenge(body) {
		return "", fmt.Errorf("%w: challenge page served for %s", recipe.ErrBotChallenge, rawURL)
	}
	return body, nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
	req.Header.Set("Referer", f.opts.Referer)
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// statusError classifies a non-2xx response. Blocking statuses are retried
// unless their body is a challenge page.
func (f *Fetcher) statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		head, _ := io.ReadAll(io.LimitReader(resp.Body, challengeWindow))
		if IsChallenge(string(head)) {
			return fmt.Errorf("%w: status %d", recipe.ErrBotChallenge, resp.StatusCode)
		}
		return &attemptError{
			status:    resp.StatusCode,
			retryable: true,
			err:       fmt.Errorf("%w: status %d", recipe.ErrNetwork, resp.StatusCode),
		}
	}
	return fmt.Errorf("%w: status %d", recipe.ErrNetwork, resp.StatusCode)
}

// readBody decodes the body to UTF-8 and rejects it once the decoded size
// exceeds MaxBodyBytes.
func (f *Fetcher) readBody(resp *http.Response) (string, error) {
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = resp.Body
	}

	limit := f.opts.MaxBodyBytes
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(reader, limit+1))
	if err != nil {
		return "", &attemptError{retryable: true, err: fmt.Errorf("%w: read response body: %w", recipe.ErrNetwork, err)}
	}
	if n > limit {
		size := n
		if resp.ContentLength > size {
			size = resp.ContentLength
		}
		return "", &recipe.TooLargeError{Size: size, Limit: limit}
	}
	return buf.String(), nil
}

// backoff grows with the attempt number, with a larger base after a
// blocking status.
func (f *Fetcher) backoff(attempt int, lastErr error) time.Duration {
	base := f.opts.BaseDelay
	var ae *attemptError
	if errors.As(lastErr, &ae) && isBlockingStatus(ae.status) {
		base = f.opts.BlockedDelay
	}
	delay := f.opts.MinDelay + base*time.Duration(1<<(attempt-1))
	return delay + f.jitter(f.opts.MaxJitter)
}

func isBlockingStatus(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func (f *Fetcher) waitForDomain(ctx context.Context, rawURL string) error {
	if f.opts.DomainRate <= 0 {
		return nil
	}
	return f.getDomainLimiter(domainOf(rawURL)).Wait(ctx)
}

func (f *Fetcher) getDomainLimiter(domain string) *rate.Limiter {
	f.mu.RLock()
	limiter, exists := f.domainLimiters[domain]
	f.mu.RUnlock()
	if exists {
		return limiter
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if limiter, exists := f.domainLimiters[domain]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(f.opts.DomainRate), f.opts.DomainBurst)
	f.domainLimiters[domain] = limiter
	return limiter
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func isGuardError(err error) bool {
	return errors.Is(err, recipe.ErrDisallowedHost) || errors.Is(err, recipe.ErrDisallowedProtocol) || errors.Is(err, recipe.ErrInvalidURL)
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, recipe.ErrBotChallenge):
		return "challenge"
	case errors.Is(err, recipe.ErrTooLarge):
		return "too_large"
	case isGuardError(err):
		return "blocked"
	default:
		return "error"
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}
