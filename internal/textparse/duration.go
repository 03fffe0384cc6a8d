package textparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	minutesPerHour  = 60
	minutesPerDay   = 24 * minutesPerHour
	minutesPerWeek  = 7 * minutesPerDay
	minutesPerMonth = 30 * minutesPerDay
	minutesPerYear  = 365 * minutesPerDay
)

var (
	isoDurationRe = regexp.MustCompile(`^P(?:(\d+(?:[.,]\d+)?)Y)?(?:(\d+(?:[.,]\d+)?)M)?(?:(\d+(?:[.,]\d+)?)W)?(?:(\d+(?:[.,]\d+)?)D)?(?:T(?:(\d+(?:[.,]\d+)?)H)?(?:(\d+(?:[.,]\d+)?)M)?(?:(\d+(?:[.,]\d+)?)S)?)?$`)

	hoursMinutesRe = regexp.MustCompile(`(?i)(\d+)\s*(?:h|heures?|hours?|hrs?)\b\.?\s*(?:(\d+)\s*(?:min(?:ute)?s?|mn)?)?`)
	hoursGluedRe   = regexp.MustCompile(`(?i)(\d+)\s*h(\d{1,2})`)
	minutesRe      = regexp.MustCompile(`(?i)(\d+)\s*(?:min(?:ute)?s?|mn|m)\b`)
	bareMinutesRe  = regexp.MustCompile(`^\s*(\d+)\s*$`)
	firstIntRe     = regexp.MustCompile(`\d+`)
)

// ParseISODuration converts an ISO-8601 duration such as "PT1H30M" to whole minutes.
// Years count as 365 days and months as 30 days; seconds are rounded.
func ParseISODuration(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	weights := []float64{minutesPerYear, minutesPerMonth, minutesPerWeek, minutesPerDay, minutesPerHour, 1}
	var total float64
	found := false
	for i, w := range weights {
		if m[i+1] == "" {
			continue
		}
		v, ok := parseNumber(m[i+1])
		if !ok {
			return 0, false
		}
		total += v * w
		found = true
	}
	if m[7] != "" {
		secs, ok := parseNumber(m[7])
		if !ok {
			return 0, false
		}
		total += math.Round(secs / 60)
		found = true
	}
	if !found {
		return 0, false
	}
	return int(math.Round(total)), true
}

// ParseTimeText reads a duration written for humans ("1h30", "45 min",
// "1 heure 15 minutes") or in ISO-8601 form. A bare number counts as minutes.
func ParseTimeText(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(strings.ToUpper(s), "P") {
		if v, ok := ParseISODuration(s); ok {
			return v, true
		}
	}

	if m := hoursGluedRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return h*minutesPerHour + mins, true
	}
	if m := hoursMinutesRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins := 0
		if m[2] != "" {
			mins, _ = strconv.Atoi(m[2])
		}
		return h*minutesPerHour + mins, true
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v, true
	}
	if m := bareMinutesRe.FindStringSubmatch(s); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v, true
	}
	return 0, false
}

// ParseServings returns the first integer found in s.
func ParseServings(s string) (int, bool) {
	m := firstIntRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// DeriveTimes fills a missing prep or cook time from the total.
// The derived value is never negative. With only a total, prep takes it and cook is zero.
func DeriveTimes(prep, cook, total *int) (*int, *int) {
	if total == nil {
		return prep, cook
	}
	switch {
	case prep == nil && cook == nil:
		p, c := *total, 0
		return &p, &c
	case prep == nil:
		p := max(*total-*cook, 0)
		return &p, cook
	case cook == nil:
		c := max(*total-*prep, 0)
		return prep, &c
	}
	return prep, cook
}
