// internal/app/system/csvutil/errors.go
package csvutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrTooManyRows is returned when a file has more data rows than ParseOptions.MaxRows.
var ErrTooManyRows = errors.New("csv file has too many rows")

// RowError describes one rejected row. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	Reason string
	Raw    []string
}

// FormatRowErrors renders up to maxShow row errors as plain text lines.
// If maxShow is <= 0, it defaults to 5.
func FormatRowErrors(errs []RowError, maxShow int) string {
	if maxShow <= 0 {
		maxShow = 5
	}
	if len(errs) < maxShow {
		maxShow = len(errs)
	}

	var b strings.Builder
	for i := 0; i < maxShow; i++ {
		e := errs[i]
		b.WriteString("  - ")
		if e.Line > 0 {
			b.WriteString("line ")
			b.WriteString(strconv.Itoa(e.Line))
			b.WriteString(": ")
		}
		b.WriteString(e.Reason)
		b.WriteString("\n")
	}
	if len(errs) > maxShow {
		b.WriteString("  ... and ")
		b.WriteString(strconv.Itoa(len(errs) - maxShow))
		b.WriteString(" more errors.\n")
	}
	return b.String()
}
