package fetcher

import "strings"

// Interstitials are small pages; real recipe pages past this size are never
// treated as challenges even if they embed a protection script.
const challengeMaxBytes = 50000

var challengeMarkers = []string{
	"cf-browser-verification",
	"cf_chl_opt",
	"<title>Just a moment...</title>",
	"Checking your browser before accessing",
	"Attention Required! | Cloudflare",
	"_Incapsula_Resource",
	"captcha-delivery.com",
	"px-captcha",
}

// IsChallenge reports whether body looks like an anti-bot interstitial.
func IsChallenge(body string) bool {
	if len(body) > challengeMaxBytes {
		return false
	}
	for _, marker := range challengeMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
