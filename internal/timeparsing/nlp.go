package timeparsing

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var nlpParser = newNLPParser()

func newNLPParser() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}

// ParseNaturalLanguage resolves expressions like "tomorrow" or
// "next monday" relative to now.
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	result, err := nlpParser.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("not a recognized time expression: %q", s)
	}
	return result.Time, nil
}

// ParseRelativeTime tries each parsing layer in order and returns the
// first success: compact duration, date-only, RFC3339, then natural
// language.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	if IsCompactDuration(s) {
		return ParseCompactDuration(s, now)
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ParseNaturalLanguage(s, now)
}

// ParseDate resolves a date expression to the YYYY-MM-DD form stored in
// decision frontmatter.
func ParseDate(s string, now time.Time) (string, error) {
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
