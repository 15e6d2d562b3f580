// internal/app/system/inputval/parse.go
package inputval

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/waffle/toolkit/validate"
	"github.com/microcosm-cc/bluemonday"
)

// DateLayout is the only accepted calendar-date format.
const DateLayout = "2006-01-02"

var strict = bluemonday.StrictPolicy()

// CleanText strips all markup from s and trims surrounding whitespace.
// Entities the policy escapes are turned back into plain characters, since
// the result is printed to a terminal rather than embedded in HTML.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsValidEmail reports whether s is a plausible email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	return validate.SimpleEmailValid(s)
}

// ParseLevel accepts a level name (any case) or its ordinal 1-3.
func ParseLevel(s string) (models.Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if l := models.Level(n); l.Valid() {
			return l, nil
		}
		return 0, fmt.Errorf("invalid level %q", s)
	}
	for _, l := range models.Levels {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("invalid level %q (want BASIC, INTERMEDIATE or ADVANCED)", s)
}

// ParseDate parses a YYYY-MM-DD calendar day as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParsePostingStatus accepts a posting status name in any case.
func ParsePostingStatus(s string) (models.PostingStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, st := range models.PostingStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// ParseYesNo accepts y/yes/n/no in any case.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("please answer y or n")
}

// ParsePositive parses a strictly positive integer.
func ParsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("please enter a positive whole number")
	}
	return n, nil
}
