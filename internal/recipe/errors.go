package recipe

import (
	"errors"
	"fmt"
)

// URL guard errors.
var (
	// ErrInvalidURL indicates the input could not be parsed as an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrDisallowedProtocol indicates a scheme other than http or https.
	ErrDisallowedProtocol = errors.New("disallowed protocol")

	// ErrDisallowedHost indicates a loopback, private, link-local or metadata host.
	ErrDisallowedHost = errors.New("disallowed host")
)

// Fetch errors.
var (
	// ErrNetwork indicates the page could not be retrieved after all attempts.
	ErrNetwork = errors.New("network error")

	// ErrTooLarge indicates the decoded body exceeded the size limit.
	ErrTooLarge = errors.New("page too large")

	// ErrBotChallenge indicates an anti-bot interstitial was served instead of the page.
	ErrBotChallenge = errors.New("bot challenge detected")

	// ErrRobotsDisallowed indicates the site's robots.txt forbids fetching the URL.
	ErrRobotsDisallowed = errors.New("disallowed by robots.txt")
)

// Extraction errors.
var (
	// ErrIncompleteExtraction indicates the merged candidate lacks ingredients or instructions.
	ErrIncompleteExtraction = errors.New("incomplete extraction")

	// ErrExtractionFailed indicates no extraction stage produced a usable recipe.
	ErrExtractionFailed = errors.New("extraction failed")
)

// TooLargeError reports the decoded size of a rejected page.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("page too large: ~%s (limit %s)", megabytes(e.Size), megabytes(e.Limit))
}

// Unwrap lets errors.Is match ErrTooLarge.
func (e *TooLargeError) Unwrap() error {
	return ErrTooLarge
}

func megabytes(n int64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
}

// Reason maps a pipeline error onto the short categorized message shown to users.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var tooLarge *TooLargeError

	switch {
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrDisallowedProtocol), errors.Is(err, ErrDisallowedHost):
		return "URL not allowed"
	case errors.As(err, &tooLarge):
		return "page too large (~" + megabytes(tooLarge.Size) + ")"
	case errors.Is(err, ErrTooLarge):
		return "page too large"
	case errors.Is(err, ErrBotChallenge):
		return "protection detected"
	case errors.Is(err, ErrRobotsDisallowed):
		return "blocked by robots.txt"
	case errors.Is(err, ErrNetwork):
		return "could not reach page"
	case errors.Is(err, ErrIncompleteExtraction):
		return "incomplete extraction, try manual entry"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction failed, try manual entry"
	default:
		return "import failed"
	}
}
