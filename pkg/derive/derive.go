// Package derive provides the pure derived-value helpers used across the
// site: URL slugs from titles, contest week labels, read-time estimates,
// and rules-textarea parsing.
package derive

import (
	"fmt"
	"strings"
	"time"
)

// readingSpeedWPM is the assumed reading speed for read-time estimates.
const readingSpeedWPM = 200

// Slugify derives a URL-safe slug from a title: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped. Idempotent. Uniqueness against existing slugs
// is the caller's problem.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// WeekLabel returns the human-readable contest week identifier for t,
// e.g. "Week 35, 2026", using ISO week numbering.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("Week %d, %d", week, year)
}

// CurrentWeek returns the week label for the current date.
func CurrentWeek() string {
	return WeekLabel(time.Now())
}

// ReadTime estimates reading time for content at 200 words per minute,
// rounded up and never below one minute.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + readingSpeedWPM - 1) / readingSpeedWPM
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// SplitRules parses a rules textarea into an ordered list: one rule per
// line, surrounding whitespace trimmed, blank lines dropped.
func SplitRules(text string) []string {
	var rules []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rules = append(rules, line)
		}
	}
	return rules
}
